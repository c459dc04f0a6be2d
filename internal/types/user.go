package types

import (
  "strings"
  "time"
)

type User struct {
  ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
  Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password  string    `gorm:"not null;column:password" json:"-"`
  FirstName string    `gorm:"column:first_name" json:"firstName"`
  LastName  string    `gorm:"column:last_name" json:"lastName"`
  Roles     string    `gorm:"not null;column:roles" json:"roles"`
  CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string { return "app_user" }

const (
  RoleAdmin   = "ROLE_ADMIN"
  RoleStudent = "ROLE_STUDENT"
)

func (u *User) HasRole(role string) bool {
  for _, r := range strings.Split(u.Roles, ",") {
    if strings.TrimSpace(r) == role {
      return true
    }
  }
  return false
}
