package services

import (
  "context"
  "encoding/json"
  "fmt"

  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/repos"
  "github.com/Teahana/user-enrollment/internal/types"
)

type HoldService interface {
  PlaceHold(ctx context.Context, studentID int64, holdType types.OnHoldType) error
  RemoveHold(ctx context.Context, studentID int64, holdType types.OnHoldType) error
  GetActiveHolds(ctx context.Context, studentID int64) ([]types.OnHoldStatus, error)
  GetHoldHistory(ctx context.Context, studentID int64) ([]types.StudentHoldHistory, error)
  HasActiveHold(ctx context.Context, studentID int64) (bool, error)
}

type holdService struct {
  db          *gorm.DB
  log         *logger.Logger
  holdRepo    repos.HoldRepo
  studentRepo repos.StudentRepo
}

func NewHoldService(
  db *gorm.DB,
  log *logger.Logger,
  holdRepo repos.HoldRepo,
  studentRepo repos.StudentRepo,
) HoldService {
  return &holdService{
    db:          db,
    log:         log.With("service", "HoldService"),
    holdRepo:    holdRepo,
    studentRepo: studentRepo,
  }
}

func (hs *holdService) PlaceHold(ctx context.Context, studentID int64, holdType types.OnHoldType) error {
  return hs.setHold(ctx, studentID, holdType, true)
}

func (hs *holdService) RemoveHold(ctx context.Context, studentID int64, holdType types.OnHoldType) error {
  return hs.setHold(ctx, studentID, holdType, false)
}

func (hs *holdService) setHold(ctx context.Context, studentID int64, holdType types.OnHoldType, onHold bool) error {
  if !holdType.Valid() {
    return fmt.Errorf("unknown hold type %q", holdType)
  }
  if _, sErr := hs.studentRepo.GetByID(ctx, nil, studentID); sErr != nil {
    return fmt.Errorf("student %d not found", studentID)
  }

  return hs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, gErr := hs.holdRepo.GetByStudentAndType(ctx, tx, studentID, holdType)
    switch {
    case gErr == nil:
      if existing.OnHold == onHold {
        return nil
      }
      if uErr := hs.holdRepo.SetOnHold(ctx, tx, existing.ID, onHold); uErr != nil {
        return fmt.Errorf("failed to update hold: %w", uErr)
      }
    case gErr == gorm.ErrRecordNotFound:
      if !onHold {
        return nil
      }
      hold := &types.OnHoldStatus{StudentID: studentID, OnHoldType: holdType, OnHold: true}
      if _, cErr := hs.holdRepo.Create(ctx, tx, hold); cErr != nil {
        return fmt.Errorf("failed to create hold: %w", cErr)
      }
    default:
      return fmt.Errorf("failed to load hold: %w", gErr)
    }

    snapshot, snErr := hs.snapshot(ctx, tx, studentID)
    if snErr != nil {
      return snErr
    }
    entry := &types.StudentHoldHistory{
      StudentID:  studentID,
      HoldType:   holdType,
      HoldPlaced: onHold,
      Snapshot:   snapshot,
    }
    if hErr := hs.holdRepo.RecordHistory(ctx, tx, entry); hErr != nil {
      return fmt.Errorf("failed to record hold history: %w", hErr)
    }
    return nil
  })
}

// snapshot captures the student's full hold state at the time of the
// change, so history entries stand alone without replaying earlier rows.
func (hs *holdService) snapshot(ctx context.Context, tx *gorm.DB, studentID int64) (datatypes.JSON, error) {
  holds, err := hs.holdRepo.GetByStudent(ctx, tx, studentID)
  if err != nil {
    return nil, fmt.Errorf("failed to load holds for snapshot: %w", err)
  }
  raw, err := json.Marshal(holds)
  if err != nil {
    return nil, fmt.Errorf("failed to encode hold snapshot: %w", err)
  }
  return datatypes.JSON(raw), nil
}

func (hs *holdService) GetActiveHolds(ctx context.Context, studentID int64) ([]types.OnHoldStatus, error) {
  return hs.holdRepo.GetActiveByStudent(ctx, nil, studentID)
}

func (hs *holdService) GetHoldHistory(ctx context.Context, studentID int64) ([]types.StudentHoldHistory, error) {
  return hs.holdRepo.GetHistory(ctx, nil, studentID)
}

func (hs *holdService) HasActiveHold(ctx context.Context, studentID int64) (bool, error) {
  holds, err := hs.holdRepo.GetActiveByStudent(ctx, nil, studentID)
  if err != nil {
    return false, err
  }
  return len(holds) > 0, nil
}
