package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/Teahana/user-enrollment/internal/services"
  "github.com/Teahana/user-enrollment/internal/types"
)

type HoldHandler struct {
  holdService services.HoldService
}

func NewHoldHandler(holdService services.HoldService) *HoldHandler {
  return &HoldHandler{holdService: holdService}
}

type holdRequest struct {
  HoldType types.OnHoldType `json:"holdType"`
}

func (hh *HoldHandler) PlaceHold(c *gin.Context) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
    return
  }
  var req holdRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := hh.holdService.PlaceHold(c.Request.Context(), id, req.HoldType); err != nil {
    RespondError(c, http.StatusBadRequest, "hold_place_failed", err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

func (hh *HoldHandler) RemoveHold(c *gin.Context) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
    return
  }
  var req holdRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := hh.holdService.RemoveHold(c.Request.Context(), id, req.HoldType); err != nil {
    RespondError(c, http.StatusBadRequest, "hold_remove_failed", err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}

func (hh *HoldHandler) GetActiveHolds(c *gin.Context) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
    return
  }
  holds, err := hh.holdService.GetActiveHolds(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "holds_load_failed", err)
    return
  }
  RespondOK(c, holds)
}

func (hh *HoldHandler) GetHoldHistory(c *gin.Context) {
  id, err := strconv.ParseInt(c.Param("id"), 10, 64)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
    return
  }
  history, err := hh.holdService.GetHoldHistory(c.Request.Context(), id)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "hold_history_load_failed", err)
    return
  }
  RespondOK(c, history)
}
