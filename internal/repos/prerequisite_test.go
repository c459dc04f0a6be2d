package repos

import (
  "context"
  "testing"

  "github.com/stretchr/testify/require"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/types"
)

func newRepoTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  if err := gormDB.AutoMigrate(&types.CoursePrerequisite{}); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  return gormDB
}

func newRepoTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("init logger: %v", err)
  }
  return log
}

func courseRow(courseID, prereqID int64, groupID int) types.CoursePrerequisite {
  id := prereqID
  return types.CoursePrerequisite{
    CourseID:         courseID,
    PrerequisiteID:   &id,
    GroupID:          groupID,
    PrerequisiteType: types.PrerequisiteAll,
    IsParent:         true,
  }
}

func TestReplaceForCourse(t *testing.T) {
  gormDB := newRepoTestDB(t)
  repo := NewPrerequisiteRepo(gormDB, newRepoTestLogger(t))
  ctx := context.Background()

  require.NoError(t, repo.ReplaceForCourse(ctx, nil, 10, []types.CoursePrerequisite{
    courseRow(10, 1, 1),
    courseRow(10, 2, 1),
  }))
  rows, err := repo.GetByCourseID(ctx, nil, 10)
  require.NoError(t, err)
  require.Len(t, rows, 2)

  // Replacing overwrites, never appends.
  require.NoError(t, repo.ReplaceForCourse(ctx, nil, 10, []types.CoursePrerequisite{
    courseRow(10, 3, 1),
  }))
  rows, err = repo.GetByCourseID(ctx, nil, 10)
  require.NoError(t, err)
  require.Len(t, rows, 1)
  require.Equal(t, int64(3), *rows[0].PrerequisiteID)
}

func TestReplaceForCourseScopedToCourse(t *testing.T) {
  gormDB := newRepoTestDB(t)
  repo := NewPrerequisiteRepo(gormDB, newRepoTestLogger(t))
  ctx := context.Background()

  require.NoError(t, repo.ReplaceForCourse(ctx, nil, 10, []types.CoursePrerequisite{courseRow(10, 1, 1)}))
  require.NoError(t, repo.ReplaceForCourse(ctx, nil, 20, []types.CoursePrerequisite{courseRow(20, 2, 1)}))
  require.NoError(t, repo.ReplaceForCourse(ctx, nil, 10, nil))

  rows, err := repo.GetByCourseID(ctx, nil, 10)
  require.NoError(t, err)
  require.Empty(t, rows)
  rows, err = repo.GetByCourseID(ctx, nil, 20)
  require.NoError(t, err)
  require.Len(t, rows, 1)
}

func TestDeleteReferencing(t *testing.T) {
  gormDB := newRepoTestDB(t)
  repo := NewPrerequisiteRepo(gormDB, newRepoTestLogger(t))
  ctx := context.Background()

  require.NoError(t, repo.ReplaceForCourse(ctx, nil, 10, []types.CoursePrerequisite{
    courseRow(10, 5, 1),
    courseRow(10, 6, 1),
  }))
  require.NoError(t, repo.DeleteReferencing(ctx, nil, 5))

  rows, err := repo.GetByCourseID(ctx, nil, 10)
  require.NoError(t, err)
  require.Len(t, rows, 1)
  require.Equal(t, int64(6), *rows[0].PrerequisiteID)

  has, err := repo.HasPrerequisites(ctx, nil, 10)
  require.NoError(t, err)
  require.True(t, has)
}
