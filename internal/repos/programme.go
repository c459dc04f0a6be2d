package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/types"
)

type ProgrammeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, programmes []*types.Programme) ([]*types.Programme, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Programme, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Programme, error)
  GetByCode(ctx context.Context, tx *gorm.DB, programmeCode string) (*types.Programme, error)
  Update(ctx context.Context, tx *gorm.DB, programme *types.Programme) error
  Delete(ctx context.Context, tx *gorm.DB, id int64) error
}

type programmeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProgrammeRepo(db *gorm.DB, baseLog *logger.Logger) ProgrammeRepo {
  return &programmeRepo{db: db, log: baseLog.With("repo", "ProgrammeRepo")}
}

func (pr *programmeRepo) resolve(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return pr.db
}

func (pr *programmeRepo) Create(ctx context.Context, tx *gorm.DB, programmes []*types.Programme) ([]*types.Programme, error) {
  if len(programmes) == 0 {
    return []*types.Programme{}, nil
  }
  if err := pr.resolve(tx).WithContext(ctx).Create(&programmes).Error; err != nil {
    return nil, err
  }
  return programmes, nil
}

func (pr *programmeRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Programme, error) {
  var results []*types.Programme
  if err := pr.resolve(tx).WithContext(ctx).
    Order("programme_code asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *programmeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Programme, error) {
  var results []*types.Programme
  if len(ids) == 0 {
    return results, nil
  }
  if err := pr.resolve(tx).WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *programmeRepo) GetByCode(ctx context.Context, tx *gorm.DB, programmeCode string) (*types.Programme, error) {
  var result types.Programme
  if err := pr.resolve(tx).WithContext(ctx).
    Where("programme_code = ?", programmeCode).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *programmeRepo) Update(ctx context.Context, tx *gorm.DB, programme *types.Programme) error {
  return pr.resolve(tx).WithContext(ctx).Save(programme).Error
}

func (pr *programmeRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
  return pr.resolve(tx).WithContext(ctx).Delete(&types.Programme{}, id).Error
}
