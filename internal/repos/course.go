package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/types"
)

type CourseRepo interface {
  Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
  GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Course, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Course, error)
  GetByCode(ctx context.Context, tx *gorm.DB, courseCode string) (*types.Course, error)
  GetAllExcept(ctx context.Context, tx *gorm.DB, id int64) ([]*types.Course, error)
  Update(ctx context.Context, tx *gorm.DB, course *types.Course) error
  Delete(ctx context.Context, tx *gorm.DB, id int64) error
  CodeExists(ctx context.Context, tx *gorm.DB, courseCode string) (bool, error)
  ReplaceProgrammeLinks(ctx context.Context, tx *gorm.DB, courseID int64, programmeIDs []int64) error
  GetProgrammeIDs(ctx context.Context, tx *gorm.DB, courseID int64) ([]int64, error)
}

type courseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
  return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (cr *courseRepo) resolve(tx *gorm.DB) *gorm.DB {
  if tx != nil {
    return tx
  }
  return cr.db
}

func (cr *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
  if len(courses) == 0 {
    return []*types.Course{}, nil
  }
  if err := cr.resolve(tx).WithContext(ctx).Create(&courses).Error; err != nil {
    return nil, err
  }
  return courses, nil
}

func (cr *courseRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
  var results []*types.Course
  if err := cr.resolve(tx).WithContext(ctx).
    Order("course_code asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Course, error) {
  var result types.Course
  if err := cr.resolve(tx).WithContext(ctx).First(&result, id).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Course, error) {
  var results []*types.Course
  if len(ids) == 0 {
    return results, nil
  }
  if err := cr.resolve(tx).WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *courseRepo) GetByCode(ctx context.Context, tx *gorm.DB, courseCode string) (*types.Course, error) {
  var result types.Course
  if err := cr.resolve(tx).WithContext(ctx).
    Where("course_code = ?", courseCode).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *courseRepo) GetAllExcept(ctx context.Context, tx *gorm.DB, id int64) ([]*types.Course, error) {
  var results []*types.Course
  if err := cr.resolve(tx).WithContext(ctx).
    Where("id <> ?", id).
    Order("course_code asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *courseRepo) Update(ctx context.Context, tx *gorm.DB, course *types.Course) error {
  return cr.resolve(tx).WithContext(ctx).Save(course).Error
}

func (cr *courseRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
  return cr.resolve(tx).WithContext(ctx).Delete(&types.Course{}, id).Error
}

func (cr *courseRepo) ReplaceProgrammeLinks(ctx context.Context, tx *gorm.DB, courseID int64, programmeIDs []int64) error {
  transaction := cr.resolve(tx).WithContext(ctx)
  if err := transaction.Where("course_id = ?", courseID).Delete(&types.CourseProgramme{}).Error; err != nil {
    return err
  }
  if len(programmeIDs) == 0 {
    return nil
  }
  links := make([]types.CourseProgramme, 0, len(programmeIDs))
  for _, pid := range programmeIDs {
    links = append(links, types.CourseProgramme{CourseID: courseID, ProgrammeID: pid})
  }
  return transaction.Create(&links).Error
}

func (cr *courseRepo) GetProgrammeIDs(ctx context.Context, tx *gorm.DB, courseID int64) ([]int64, error) {
  var ids []int64
  if err := cr.resolve(tx).WithContext(ctx).
    Model(&types.CourseProgramme{}).
    Where("course_id = ?", courseID).
    Order("programme_id asc").
    Pluck("programme_id", &ids).Error; err != nil {
    return nil, err
  }
  return ids, nil
}

func (cr *courseRepo) CodeExists(ctx context.Context, tx *gorm.DB, courseCode string) (bool, error) {
  var count int64
  if err := cr.resolve(tx).WithContext(ctx).
    Model(&types.Course{}).
    Where("course_code = ?", courseCode).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}
