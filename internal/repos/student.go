package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/types"
)

type StudentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, student *types.Student) (*types.Student, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Student, error)
  GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Student, error)
  GetByStudentID(ctx context.Context, tx *gorm.DB, studentID string) (*types.Student, error)
  Update(ctx context.Context, tx *gorm.DB, student *types.Student) error
  LinkProgramme(ctx context.Context, tx *gorm.DB, link *types.StudentProgramme) error
  GetProgrammeLinks(ctx context.Context, tx *gorm.DB, studentID int64) ([]types.StudentProgramme, error)
}

type studentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
  return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (sr *studentRepo) resolve(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return sr.db
}

func (sr *studentRepo) Create(ctx context.Context, tx *gorm.DB, student *types.Student) (*types.Student, error) {
  if err := sr.resolve(tx).WithContext(ctx).Create(student).Error; err != nil {
    return nil, err
  }
  return student, nil
}

func (sr *studentRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Student, error) {
  var results []*types.Student
  if err := sr.resolve(tx).WithContext(ctx).
    Order("student_id asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *studentRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Student, error) {
  var result types.Student
  if err := sr.resolve(tx).WithContext(ctx).First(&result, id).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (sr *studentRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID string) (*types.Student, error) {
  var result types.Student
  if err := sr.resolve(tx).WithContext(ctx).
    Where("student_id = ?", studentID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (sr *studentRepo) Update(ctx context.Context, tx *gorm.DB, student *types.Student) error {
  return sr.resolve(tx).WithContext(ctx).Save(student).Error
}

func (sr *studentRepo) LinkProgramme(ctx context.Context, tx *gorm.DB, link *types.StudentProgramme) error {
  return sr.resolve(tx).WithContext(ctx).Create(link).Error
}

func (sr *studentRepo) GetProgrammeLinks(ctx context.Context, tx *gorm.DB, studentID int64) ([]types.StudentProgramme, error) {
  var links []types.StudentProgramme
  if err := sr.resolve(tx).WithContext(ctx).
    Where("student_id = ?", studentID).
    Find(&links).Error; err != nil {
    return nil, err
  }
  return links, nil
}
