package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  redisclient "github.com/Teahana/user-enrollment/internal/clients/redis"
  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/normalization"
  "github.com/Teahana/user-enrollment/internal/repos"
  "github.com/Teahana/user-enrollment/internal/types"
)

type CourseService interface {
  CreateCourse(ctx context.Context, course *types.Course, programmeIDs []int64) (*types.Course, error)
  GetAllCourses(ctx context.Context) ([]*types.Course, error)
  GetCourse(ctx context.Context, id int64) (*types.Course, error)
  GetCoursesExcept(ctx context.Context, id int64) ([]*types.Course, error)
  UpdateCourse(ctx context.Context, course *types.Course, programmeIDs []int64) error
  DeleteCourse(ctx context.Context, id int64) error
  GetCourseProgrammeIDs(ctx context.Context, courseID int64) ([]int64, error)
}

type courseService struct {
  db         *gorm.DB
  log        *logger.Logger
  courseRepo repos.CourseRepo
  prereqRepo repos.PrerequisiteRepo
  cache      redisclient.Cache
}

func NewCourseService(
  db *gorm.DB,
  log *logger.Logger,
  courseRepo repos.CourseRepo,
  prereqRepo repos.PrerequisiteRepo,
  cache redisclient.Cache,
) CourseService {
  return &courseService{
    db:         db,
    log:        log.With("service", "CourseService"),
    courseRepo: courseRepo,
    prereqRepo: prereqRepo,
    cache:      cache,
  }
}

func (cs *courseService) CreateCourse(ctx context.Context, course *types.Course, programmeIDs []int64) (*types.Course, error) {
  course.CourseCode = normalization.Code(course.CourseCode)
  if course.CourseCode == "" || course.Title == "" {
    return nil, fmt.Errorf("course code and title are required")
  }
  exists, exErr := cs.courseRepo.CodeExists(ctx, nil, course.CourseCode)
  if exErr != nil {
    return nil, fmt.Errorf("failed to check course code: %w", exErr)
  }
  if exists {
    return nil, fmt.Errorf("course code %s already exists", course.CourseCode)
  }

  if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := cs.courseRepo.Create(ctx, tx, []*types.Course{course}); cErr != nil {
      return fmt.Errorf("failed to create course: %w", cErr)
    }
    if lErr := cs.courseRepo.ReplaceProgrammeLinks(ctx, tx, course.ID, programmeIDs); lErr != nil {
      return fmt.Errorf("failed to link programmes: %w", lErr)
    }
    return nil
  }); err != nil {
    return nil, err
  }
  InvalidateReferenceData(ctx, cs.cache, cs.log)
  return course, nil
}

func (cs *courseService) GetAllCourses(ctx context.Context) ([]*types.Course, error) {
  return cs.courseRepo.GetAll(ctx, nil)
}

func (cs *courseService) GetCourse(ctx context.Context, id int64) (*types.Course, error) {
  return cs.courseRepo.GetByID(ctx, nil, id)
}

func (cs *courseService) GetCoursesExcept(ctx context.Context, id int64) ([]*types.Course, error) {
  return cs.courseRepo.GetAllExcept(ctx, nil, id)
}

func (cs *courseService) UpdateCourse(ctx context.Context, course *types.Course, programmeIDs []int64) error {
  course.CourseCode = normalization.Code(course.CourseCode)
  if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if uErr := cs.courseRepo.Update(ctx, tx, course); uErr != nil {
      return fmt.Errorf("failed to update course: %w", uErr)
    }
    if lErr := cs.courseRepo.ReplaceProgrammeLinks(ctx, tx, course.ID, programmeIDs); lErr != nil {
      return fmt.Errorf("failed to update programme links: %w", lErr)
    }
    return nil
  }); err != nil {
    return err
  }
  InvalidateReferenceData(ctx, cs.cache, cs.log)
  return nil
}

// DeleteCourse removes the course along with its own prerequisite rows,
// any rows where it appears as another course's prerequisite, and its
// programme links, all in one transaction.
func (cs *courseService) DeleteCourse(ctx context.Context, id int64) error {
  if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := cs.prereqRepo.DeleteByCourseID(ctx, tx, id); err != nil {
      return fmt.Errorf("failed to delete prerequisite rows: %w", err)
    }
    if err := cs.prereqRepo.DeleteReferencing(ctx, tx, id); err != nil {
      return fmt.Errorf("failed to delete referencing prerequisite rows: %w", err)
    }
    if err := cs.courseRepo.ReplaceProgrammeLinks(ctx, tx, id, nil); err != nil {
      return fmt.Errorf("failed to delete programme links: %w", err)
    }
    if err := cs.courseRepo.Delete(ctx, tx, id); err != nil {
      return fmt.Errorf("failed to delete course: %w", err)
    }
    return nil
  }); err != nil {
    return err
  }
  InvalidateReferenceData(ctx, cs.cache, cs.log)
  return nil
}

func (cs *courseService) GetCourseProgrammeIDs(ctx context.Context, courseID int64) ([]int64, error) {
  return cs.courseRepo.GetProgrammeIDs(ctx, nil, courseID)
}
