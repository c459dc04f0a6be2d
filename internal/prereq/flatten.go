package prereq

import (
  "github.com/Teahana/user-enrollment/internal/types"
)

// Flatten serializes a forest into flat rows for courseID. One row is
// emitted per item; an AdmissionProgramme item with N programmes expands to
// N rows (the flat format has no multi-valued column). operatorToNext is
// only ever carried on top-level groups' rows: a subgroup's connector is
// re-derived against its own sibling set when the tree is rebuilt.
func Flatten(courseID int64, forest []*Group) []types.CoursePrerequisite {
  return flattenLevel(courseID, forest, 0, true)
}

func flattenLevel(courseID int64, groups []*Group, parentID int, topLevel bool) []types.CoursePrerequisite {
  var rows []types.CoursePrerequisite
  for i, g := range groups {
    var opToNext *types.PrerequisiteType
    if topLevel && i < len(groups)-1 && g.OperatorToNext.Valid() {
      op := g.OperatorToNext
      opToNext = &op
    }
    childID := 0
    if len(g.SubGroups) > 0 {
      childID = g.SubGroups[0].ID
    }
    base := types.CoursePrerequisite{
      CourseID:         courseID,
      GroupID:          g.ID,
      PrerequisiteType: g.Type,
      OperatorToNext:   opToNext,
      IsParent:         topLevel,
      IsChild:          !topLevel,
      ParentID:         parentID,
      ChildID:          childID,
    }
    for _, it := range g.Items {
      switch item := it.(type) {
      case CourseRequirement:
        row := base
        id := item.CourseID
        row.PrerequisiteID = &id
        if item.ProgrammeID != nil {
          pid := *item.ProgrammeID
          row.ProgrammeID = &pid
        }
        rows = append(rows, row)
      case CompletionPercent:
        row := base
        row.Special = true
        kind := types.SpecialCompletionLevelPercent
        row.SpecialType = &kind
        row.TargetLevel = item.TargetLevel
        row.PercentageValue = item.PercentageValue
        rows = append(rows, row)
      case AdmissionProgramme:
        for _, progID := range item.ProgrammeIDs {
          row := base
          row.Special = true
          kind := types.SpecialAdmissionProgramme
          row.SpecialType = &kind
          pid := progID
          row.ProgrammeID = &pid
          rows = append(rows, row)
        }
      }
    }
    if len(g.SubGroups) > 0 {
      rows = append(rows, flattenLevel(courseID, g.SubGroups, g.ID, false)...)
    }
  }
  return rows
}
