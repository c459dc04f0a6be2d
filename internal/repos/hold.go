package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/types"
)

type HoldRepo interface {
  Create(ctx context.Context, tx *gorm.DB, hold *types.OnHoldStatus) (*types.OnHoldStatus, error)
  GetByStudent(ctx context.Context, tx *gorm.DB, studentID int64) ([]types.OnHoldStatus, error)
  GetActiveByStudent(ctx context.Context, tx *gorm.DB, studentID int64) ([]types.OnHoldStatus, error)
  GetByStudentAndType(ctx context.Context, tx *gorm.DB, studentID int64, holdType types.OnHoldType) (*types.OnHoldStatus, error)
  SetOnHold(ctx context.Context, tx *gorm.DB, holdID int64, onHold bool) error
  RecordHistory(ctx context.Context, tx *gorm.DB, entry *types.StudentHoldHistory) error
  GetHistory(ctx context.Context, tx *gorm.DB, studentID int64) ([]types.StudentHoldHistory, error)
}

type holdRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewHoldRepo(db *gorm.DB, baseLog *logger.Logger) HoldRepo {
  return &holdRepo{db: db, log: baseLog.With("repo", "HoldRepo")}
}

func (hr *holdRepo) resolve(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return hr.db
}

func (hr *holdRepo) Create(ctx context.Context, tx *gorm.DB, hold *types.OnHoldStatus) (*types.OnHoldStatus, error) {
  if err := hr.resolve(tx).WithContext(ctx).Create(hold).Error; err != nil {
    return nil, err
  }
  return hold, nil
}

func (hr *holdRepo) GetByStudent(ctx context.Context, tx *gorm.DB, studentID int64) ([]types.OnHoldStatus, error) {
  var holds []types.OnHoldStatus
  if err := hr.resolve(tx).WithContext(ctx).
    Where("student_id = ?", studentID).
    Order("id asc").
    Find(&holds).Error; err != nil {
    return nil, err
  }
  return holds, nil
}

func (hr *holdRepo) GetActiveByStudent(ctx context.Context, tx *gorm.DB, studentID int64) ([]types.OnHoldStatus, error) {
  var holds []types.OnHoldStatus
  if err := hr.resolve(tx).WithContext(ctx).
    Where("student_id = ? AND on_hold = ?", studentID, true).
    Order("id asc").
    Find(&holds).Error; err != nil {
    return nil, err
  }
  return holds, nil
}

func (hr *holdRepo) GetByStudentAndType(ctx context.Context, tx *gorm.DB, studentID int64, holdType types.OnHoldType) (*types.OnHoldStatus, error) {
  var hold types.OnHoldStatus
  if err := hr.resolve(tx).WithContext(ctx).
    Where("student_id = ? AND on_hold_type = ?", studentID, holdType).
    First(&hold).Error; err != nil {
    return nil, err
  }
  return &hold, nil
}

func (hr *holdRepo) SetOnHold(ctx context.Context, tx *gorm.DB, holdID int64, onHold bool) error {
  return hr.resolve(tx).WithContext(ctx).
    Model(&types.OnHoldStatus{}).
    Where("id = ?", holdID).
    Update("on_hold", onHold).Error
}

func (hr *holdRepo) RecordHistory(ctx context.Context, tx *gorm.DB, entry *types.StudentHoldHistory) error {
  return hr.resolve(tx).WithContext(ctx).Create(entry).Error
}

func (hr *holdRepo) GetHistory(ctx context.Context, tx *gorm.DB, studentID int64) ([]types.StudentHoldHistory, error) {
  var entries []types.StudentHoldHistory
  if err := hr.resolve(tx).WithContext(ctx).
    Where("student_id = ?", studentID).
    Order("id desc").
    Find(&entries).Error; err != nil {
    return nil, err
  }
  return entries, nil
}
