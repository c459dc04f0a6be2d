package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/Teahana/user-enrollment/internal/services"
  "github.com/Teahana/user-enrollment/internal/types"
)

type CourseHandler struct {
  courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService) *CourseHandler {
  return &CourseHandler{courseService: courseService}
}

type courseRequest struct {
  CourseCode   string  `json:"courseCode"`
  Title        string  `json:"title"`
  Description  string  `json:"description"`
  CreditPoints int16   `json:"creditPoints"`
  Level        int16   `json:"level"`
  Cost         float64 `json:"cost"`
  OfferedSem1  bool    `json:"offeredSem1"`
  OfferedSem2  bool    `json:"offeredSem2"`
  ProgrammeIDs []int64 `json:"programmeIds"`
}

func (ch *CourseHandler) GetAllCourses(c *gin.Context) {
  courses, err := ch.courseService.GetAllCourses(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "courses_load_failed", err)
    return
  }
  RespondOK(c, courses)
}

func (ch *CourseHandler) GetCourse(c *gin.Context) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return
  }
  course, err := ch.courseService.GetCourse(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "course_not_found", err)
    return
  }
  RespondOK(c, course)
}

// GetCoursesExcept lists candidate prerequisite courses, excluding the
// course being edited.
func (ch *CourseHandler) GetCoursesExcept(c *gin.Context) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return
  }
  courses, err := ch.courseService.GetCoursesExcept(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "courses_load_failed", err)
    return
  }
  RespondOK(c, courses)
}

func (ch *CourseHandler) AddCourse(c *gin.Context) {
  var req courseRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  course := types.Course{
    CourseCode:   req.CourseCode,
    Title:        req.Title,
    Description:  req.Description,
    CreditPoints: req.CreditPoints,
    Level:        req.Level,
    Cost:         req.Cost,
    OfferedSem1:  req.OfferedSem1,
    OfferedSem2:  req.OfferedSem2,
  }
  created, err := ch.courseService.CreateCourse(c.Request.Context(), &course, req.ProgrammeIDs)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "course_create_failed", err)
    return
  }
  RespondOK(c, created)
}

func (ch *CourseHandler) UpdateCourse(c *gin.Context) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return
  }
  var req courseRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  existing, err := ch.courseService.GetCourse(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusNotFound, "course_not_found", err)
    return
  }
  existing.CourseCode = req.CourseCode
  existing.Title = req.Title
  existing.Description = req.Description
  existing.CreditPoints = req.CreditPoints
  existing.Level = req.Level
  existing.Cost = req.Cost
  existing.OfferedSem1 = req.OfferedSem1
  existing.OfferedSem2 = req.OfferedSem2
  if err := ch.courseService.UpdateCourse(c.Request.Context(), existing, req.ProgrammeIDs); err != nil {
    RespondError(c, http.StatusBadRequest, "course_update_failed", err)
    return
  }
  RespondOK(c, existing)
}

func (ch *CourseHandler) DeleteCourse(c *gin.Context) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return
  }
  if err := ch.courseService.DeleteCourse(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusInternalServerError, "course_delete_failed", err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}
