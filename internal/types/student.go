package types

import (
  "time"

  "gorm.io/datatypes"
)

type Student struct {
  ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
  StudentID   string    `gorm:"uniqueIndex;not null;column:student_number" json:"studentId"`
  FirstName   string    `gorm:"not null;column:first_name" json:"firstName"`
  LastName    string    `gorm:"not null;column:last_name" json:"lastName"`
  Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  PhoneNumber string    `gorm:"column:phone_number" json:"phoneNumber"`
  Address     string    `gorm:"column:address" json:"address"`
  CreatedAt   time.Time `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Student) TableName() string { return "student" }

// StudentProgramme records a student's admission into a programme.
type StudentProgramme struct {
  ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
  StudentID   int64 `gorm:"not null;index;uniqueIndex:idx_student_programme;column:student_id" json:"studentId"`
  ProgrammeID int64 `gorm:"not null;index;uniqueIndex:idx_student_programme;column:programme_id" json:"programmeId"`
}

func (StudentProgramme) TableName() string { return "student_programme" }

// OnHoldStatus is the live hold flag per student and hold type.
type OnHoldStatus struct {
  ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
  StudentID  int64      `gorm:"not null;index;column:student_id" json:"studentId"`
  OnHoldType OnHoldType `gorm:"not null;column:on_hold_type" json:"onHoldType"`
  OnHold     bool       `gorm:"column:on_hold" json:"onHold"`
}

func (OnHoldStatus) TableName() string { return "on_hold_status" }

// StudentHoldHistory is an append-only record of hold placements/removals.
// Snapshot keeps the student's full hold state as of the change.
type StudentHoldHistory struct {
  ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
  StudentID  int64          `gorm:"not null;index;column:student_id" json:"studentId"`
  HoldType   OnHoldType     `gorm:"not null;column:hold_type" json:"holdType"`
  HoldPlaced bool           `gorm:"column:hold_placed" json:"holdPlaced"`
  Snapshot   datatypes.JSON `gorm:"column:snapshot;type:jsonb" json:"snapshot,omitempty"`
  CreatedAt  time.Time      `gorm:"not null;default:now()" json:"timestamp"`
}

func (StudentHoldHistory) TableName() string { return "student_hold_history" }
