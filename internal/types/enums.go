package types

// PrerequisiteType is the boolean combinator stored on groups and on the
// sibling connectors between groups.
type PrerequisiteType string

const (
  PrerequisiteAll PrerequisiteType = "AND"
  PrerequisiteAny PrerequisiteType = "OR"
)

func (t PrerequisiteType) Valid() bool {
  return t == PrerequisiteAll || t == PrerequisiteAny
}

// SpecialPrerequisiteType enumerates the non-course prerequisite conditions.
type SpecialPrerequisiteType string

const (
  SpecialCompletionLevelPercent SpecialPrerequisiteType = "COMPLETION_LEVEL_PERCENT"
  SpecialAdmissionProgramme     SpecialPrerequisiteType = "ADMISSION_PROGRAMME"
)

// SpecialPrerequisiteTypes lists the kinds the editor is allowed to offer.
func SpecialPrerequisiteTypes() []SpecialPrerequisiteType {
  return []SpecialPrerequisiteType{
    SpecialCompletionLevelPercent,
    SpecialAdmissionProgramme,
  }
}

type OnHoldType string

const (
  HoldUnpaidFees   OnHoldType = "UNPAID_FEES"
  HoldLibraryFines OnHoldType = "LIBRARY_FINES"
  HoldDisciplinary OnHoldType = "DISCIPLINARY"
)

func (h OnHoldType) Valid() bool {
  switch h {
  case HoldUnpaidFees, HoldLibraryFines, HoldDisciplinary:
    return true
  }
  return false
}
