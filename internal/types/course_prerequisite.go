package types

// CoursePrerequisite is one flat row of a course's prerequisite rule set.
// Many rows reconstruct one tree: shape lives entirely in GroupID/ParentID.
// Special rows (Special = true) carry no prerequisite course; an
// ADMISSION_PROGRAMME item with N programmes is stored as N rows that share
// every other field.
type CoursePrerequisite struct {
  ID               int64                    `gorm:"primaryKey;autoIncrement" json:"id"`
  CourseID         int64                    `gorm:"not null;index;column:course_id" json:"courseId"`
  PrerequisiteID   *int64                   `gorm:"column:prerequisite_id" json:"prerequisiteId,omitempty"`
  ProgrammeID      *int64                   `gorm:"column:programme_id" json:"programmeId,omitempty"`
  GroupID          int                      `gorm:"not null;column:group_id" json:"groupId"`
  PrerequisiteType PrerequisiteType         `gorm:"not null;column:prerequisite_type" json:"prerequisiteType"`
  OperatorToNext   *PrerequisiteType        `gorm:"column:operator_to_next" json:"operatorToNext,omitempty"`
  IsParent         bool                     `gorm:"column:is_parent" json:"parent"`
  IsChild          bool                     `gorm:"column:is_child" json:"child"`
  ParentID         int                      `gorm:"column:parent_id" json:"parentId"`
  ChildID          int                      `gorm:"column:child_id" json:"childId"`
  Special          bool                     `gorm:"column:special" json:"special"`
  SpecialType      *SpecialPrerequisiteType `gorm:"column:special_type" json:"specialType,omitempty"`
  TargetLevel      int16                    `gorm:"column:target_level" json:"targetLevel,omitempty"`
  PercentageValue  float64                  `gorm:"column:percentage_value" json:"percentageValue,omitempty"`
}

func (CoursePrerequisite) TableName() string { return "course_prerequisite" }

// FlatPrerequisiteRequest is the wire shape the editor submits and receives.
type FlatPrerequisiteRequest struct {
  CourseID      int64                `json:"courseId"`
  Prerequisites []CoursePrerequisite `json:"prerequisites"`
}
