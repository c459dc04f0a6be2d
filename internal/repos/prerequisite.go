package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/types"
)

type PrerequisiteRepo interface {
  GetByCourseID(ctx context.Context, tx *gorm.DB, courseID int64) ([]types.CoursePrerequisite, error)
  // ReplaceForCourse deletes every stored row for the course and inserts the
  // new set. Callers run it inside a transaction so a failed insert never
  // leaves the course without its previous rules.
  ReplaceForCourse(ctx context.Context, tx *gorm.DB, courseID int64, rows []types.CoursePrerequisite) error
  DeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID int64) error
  HasPrerequisites(ctx context.Context, tx *gorm.DB, courseID int64) (bool, error)
  // DeleteReferencing removes rows where the course appears as someone
  // else's prerequisite, used when a course is deleted outright.
  DeleteReferencing(ctx context.Context, tx *gorm.DB, prerequisiteID int64) error
}

type prerequisiteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPrerequisiteRepo(db *gorm.DB, baseLog *logger.Logger) PrerequisiteRepo {
  return &prerequisiteRepo{db: db, log: baseLog.With("repo", "PrerequisiteRepo")}
}

func (pr *prerequisiteRepo) resolve(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return pr.db
}

func (pr *prerequisiteRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID int64) ([]types.CoursePrerequisite, error) {
  var rows []types.CoursePrerequisite
  if err := pr.resolve(tx).WithContext(ctx).
    Where("course_id = ?", courseID).
    Order("id asc").
    Find(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (pr *prerequisiteRepo) ReplaceForCourse(ctx context.Context, tx *gorm.DB, courseID int64, rows []types.CoursePrerequisite) error {
  transaction := pr.resolve(tx).WithContext(ctx)
  if err := transaction.Where("course_id = ?", courseID).Delete(&types.CoursePrerequisite{}).Error; err != nil {
    return err
  }
  if len(rows) == 0 {
    return nil
  }
  for i := range rows {
    rows[i].ID = 0
    rows[i].CourseID = courseID
  }
  return transaction.Create(&rows).Error
}

func (pr *prerequisiteRepo) DeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID int64) error {
  return pr.resolve(tx).WithContext(ctx).
    Where("course_id = ?", courseID).
    Delete(&types.CoursePrerequisite{}).Error
}

func (pr *prerequisiteRepo) HasPrerequisites(ctx context.Context, tx *gorm.DB, courseID int64) (bool, error) {
  var count int64
  if err := pr.resolve(tx).WithContext(ctx).
    Model(&types.CoursePrerequisite{}).
    Where("course_id = ?", courseID).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (pr *prerequisiteRepo) DeleteReferencing(ctx context.Context, tx *gorm.DB, prerequisiteID int64) error {
  return pr.resolve(tx).WithContext(ctx).
    Where("prerequisite_id = ?", prerequisiteID).
    Delete(&types.CoursePrerequisite{}).Error
}
