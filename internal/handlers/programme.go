package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/Teahana/user-enrollment/internal/services"
  "github.com/Teahana/user-enrollment/internal/types"
)

type ProgrammeHandler struct {
  programmeService services.ProgrammeService
}

func NewProgrammeHandler(programmeService services.ProgrammeService) *ProgrammeHandler {
  return &ProgrammeHandler{programmeService: programmeService}
}

func (ph *ProgrammeHandler) GetAllProgrammes(c *gin.Context) {
  programmes, err := ph.programmeService.GetAllProgrammes(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "programmes_load_failed", err)
    return
  }
  RespondOK(c, programmes)
}

func (ph *ProgrammeHandler) AddProgramme(c *gin.Context) {
  var req struct {
    Name          string `json:"name"`
    ProgrammeCode string `json:"programmeCode"`
    Faculty       string `json:"faculty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  programme := types.Programme{
    Name:          req.Name,
    ProgrammeCode: req.ProgrammeCode,
    Faculty:       req.Faculty,
  }
  created, err := ph.programmeService.CreateProgramme(c.Request.Context(), &programme)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "programme_create_failed", err)
    return
  }
  RespondOK(c, created)
}

func (ph *ProgrammeHandler) DeleteProgramme(c *gin.Context) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_programme_id", err)
    return
  }
  if err := ph.programmeService.DeleteProgramme(c.Request.Context(), id); err != nil {
    RespondError(c, http.StatusInternalServerError, "programme_delete_failed", err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}
