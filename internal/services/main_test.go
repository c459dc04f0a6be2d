package services

import (
  "testing"

  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  if err := gormDB.AutoMigrate(
    &types.User{},
    &types.Course{},
    &types.Programme{},
    &types.CourseProgramme{},
    &types.CoursePrerequisite{},
    &types.Student{},
    &types.StudentProgramme{},
    &types.OnHoldStatus{},
    &types.StudentHoldHistory{},
  ); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  return gormDB
}

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("init logger: %v", err)
  }
  return log
}
