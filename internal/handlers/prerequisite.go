package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/Teahana/user-enrollment/internal/services"
  "github.com/Teahana/user-enrollment/internal/types"
)

type PrerequisiteHandler struct {
  prereqService services.PrerequisiteService
}

func NewPrerequisiteHandler(prereqService services.PrerequisiteService) *PrerequisiteHandler {
  return &PrerequisiteHandler{prereqService: prereqService}
}

func courseIDParam(c *gin.Context, name string) (int64, bool) {
  id, err := strconv.ParseInt(c.Param(name), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
    return 0, false
  }
  return id, true
}

// GetPrerequisites returns the stored flat rows for a course, the form
// the edit screen rebuilds its tree from.
func (ph *PrerequisiteHandler) GetPrerequisites(c *gin.Context) {
  courseID, ok := courseIDParam(c, "courseId")
  if !ok {
    return
  }
  rows, err := ph.prereqService.GetPrerequisites(c.Request.Context(), courseID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "prerequisites_load_failed", err)
    return
  }
  RespondOK(c, rows)
}

func (ph *PrerequisiteHandler) AddPrerequisites(c *gin.Context) {
  var req types.FlatPrerequisiteRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := ph.prereqService.AddPrerequisites(c.Request.Context(), &req); err != nil {
    RespondError(c, http.StatusBadRequest, "prerequisites_add_failed", err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

func (ph *PrerequisiteHandler) UpdatePrerequisites(c *gin.Context) {
  var req types.FlatPrerequisiteRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := ph.prereqService.UpdatePrerequisites(c.Request.Context(), &req); err != nil {
    RespondError(c, http.StatusBadRequest, "prerequisites_update_failed", err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

func (ph *PrerequisiteHandler) DeletePrerequisites(c *gin.Context) {
  courseID, ok := courseIDParam(c, "courseId")
  if !ok {
    return
  }
  if err := ph.prereqService.DeletePrerequisites(c.Request.Context(), courseID); err != nil {
    RespondError(c, http.StatusInternalServerError, "prerequisites_delete_failed", err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

// GetExpression renders the stored rules as a boolean expression string.
func (ph *PrerequisiteHandler) GetExpression(c *gin.Context) {
  courseID, ok := courseIDParam(c, "courseId")
  if !ok {
    return
  }
  expr, err := ph.prereqService.Expression(c.Request.Context(), courseID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "expression_failed", err)
    return
  }
  RespondOK(c, gin.H{"expression": expr})
}

// GetPrerequisiteTree returns the nested label tree used by the diagram
// front end.
func (ph *PrerequisiteHandler) GetPrerequisiteTree(c *gin.Context) {
  courseID, ok := courseIDParam(c, "courseId")
  if !ok {
    return
  }
  tree, err := ph.prereqService.PrerequisiteTree(c.Request.Context(), courseID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "tree_failed", err)
    return
  }
  RespondOK(c, tree)
}

// GenerateSVG renders the course's prerequisite diagram through the
// mermaid sidecar. The response is the SVG document itself.
func (ph *PrerequisiteHandler) GenerateSVG(c *gin.Context) {
  courseID, ok := courseIDParam(c, "courseId")
  if !ok {
    return
  }
  svg, err := ph.prereqService.DiagramSVG(c.Request.Context(), courseID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "diagram_failed", err)
    return
  }
  c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

// GetEditorData bundles the reference lists and current rows for the
// prerequisite edit screen.
func (ph *PrerequisiteHandler) GetEditorData(c *gin.Context) {
  courseID, ok := courseIDParam(c, "courseId")
  if !ok {
    return
  }
  data, err := ph.prereqService.EditorData(c.Request.Context(), courseID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "editor_data_failed", err)
    return
  }
  RespondOK(c, data)
}

func (ph *PrerequisiteHandler) GetSpecialTypes(c *gin.Context) {
  RespondOK(c, types.SpecialPrerequisiteTypes())
}
