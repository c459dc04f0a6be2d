package types

import (
  "time"
)

type Course struct {
  ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
  CourseCode   string    `gorm:"uniqueIndex;not null;column:course_code" json:"courseCode"`
  Title        string    `gorm:"not null;column:title" json:"title"`
  Description  string    `gorm:"column:description" json:"description"`
  CreditPoints int16     `gorm:"column:credit_points" json:"creditPoints"`
  Level        int16     `gorm:"column:level" json:"level"`
  Cost         float64   `gorm:"column:cost" json:"cost"`
  OfferedSem1  bool      `gorm:"column:offered_sem1" json:"offeredSem1"`
  OfferedSem2  bool      `gorm:"column:offered_sem2" json:"offeredSem2"`
  CreatedAt    time.Time `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Course) TableName() string { return "course" }

type Programme struct {
  ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
  Name          string `gorm:"not null;column:name" json:"name"`
  ProgrammeCode string `gorm:"uniqueIndex;not null;column:programme_code" json:"programmeCode"`
  Faculty       string `gorm:"column:faculty" json:"faculty"`
}

func (Programme) TableName() string { return "programme" }

// CourseProgramme links a course into a programme's structure.
type CourseProgramme struct {
  ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
  CourseID    int64 `gorm:"not null;index;uniqueIndex:idx_course_programme;column:course_id" json:"courseId"`
  ProgrammeID int64 `gorm:"not null;index;uniqueIndex:idx_course_programme;column:programme_id" json:"programmeId"`
}

func (CourseProgramme) TableName() string { return "course_programme" }
