package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/Teahana/user-enrollment/internal/services"
  "github.com/Teahana/user-enrollment/internal/types"
)

type StudentHandler struct {
  studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService) *StudentHandler {
  return &StudentHandler{studentService: studentService}
}

func studentIDParam(c *gin.Context) (int64, bool) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
    return 0, false
  }
  return id, true
}

func (sh *StudentHandler) GetAllStudents(c *gin.Context) {
  students, err := sh.studentService.GetAllStudents(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "students_load_failed", err)
    return
  }
  RespondOK(c, students)
}

func (sh *StudentHandler) GetStudent(c *gin.Context) {
  id, ok := studentIDParam(c)
  if !ok {
    return
  }
  student, err := sh.studentService.GetStudent(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "student_not_found", err)
    return
  }
  RespondOK(c, student)
}

func (sh *StudentHandler) AddStudent(c *gin.Context) {
  var req struct {
    StudentID    string  `json:"studentId"`
    FirstName    string  `json:"firstName"`
    LastName     string  `json:"lastName"`
    Email        string  `json:"email"`
    PhoneNumber  string  `json:"phoneNumber"`
    Address      string  `json:"address"`
    ProgrammeIDs []int64 `json:"programmeIds"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  student := types.Student{
    StudentID:   req.StudentID,
    FirstName:   req.FirstName,
    LastName:    req.LastName,
    Email:       req.Email,
    PhoneNumber: req.PhoneNumber,
    Address:     req.Address,
  }
  created, err := sh.studentService.CreateStudent(c.Request.Context(), &student, req.ProgrammeIDs)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "student_create_failed", err)
    return
  }
  RespondOK(c, created)
}

func (sh *StudentHandler) AdmitToProgramme(c *gin.Context) {
  id, ok := studentIDParam(c)
  if !ok {
    return
  }
  var req struct {
    ProgrammeID int64 `json:"programmeId"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := sh.studentService.AdmitToProgramme(c.Request.Context(), id, req.ProgrammeID); err != nil {
    RespondError(c, http.StatusBadRequest, "admission_failed", err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

func (sh *StudentHandler) GetAdmittedProgrammes(c *gin.Context) {
  id, ok := studentIDParam(c)
  if !ok {
    return
  }
  programmes, err := sh.studentService.GetAdmittedProgrammes(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "programmes_load_failed", err)
    return
  }
  RespondOK(c, programmes)
}
