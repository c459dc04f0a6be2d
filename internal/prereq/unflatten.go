package prereq

import (
  "github.com/Teahana/user-enrollment/internal/types"
)

// Unflatten rebuilds the forest from stored rows. Shape comes solely from
// each row's groupId/parentId (parentId 0 marks a root). Rows within one
// group are trusted to agree on type and operatorToNext; the first seen
// value wins and disagreements are not reported. ADMISSION_PROGRAMME rows
// sharing a group merge back into the single multi-programme item they were
// expanded from.
func Unflatten(rows []types.CoursePrerequisite) []*Group {
  groupMap := make(map[int]*Group)
  admissionMap := make(map[int]*AdmissionProgramme)
  parentMap := make(map[int]int)
  var order []int

  for _, row := range rows {
    g, ok := groupMap[row.GroupID]
    if !ok {
      g = &Group{ID: row.GroupID, Type: row.PrerequisiteType}
      if !g.Type.Valid() {
        g.Type = types.PrerequisiteAll
      }
      if row.OperatorToNext != nil && row.OperatorToNext.Valid() {
        g.OperatorToNext = *row.OperatorToNext
      }
      groupMap[row.GroupID] = g
      order = append(order, row.GroupID)
    }
    if row.ParentID != 0 {
      if _, seen := parentMap[row.GroupID]; !seen {
        parentMap[row.GroupID] = row.ParentID
      }
    }

    switch {
    case row.Special && row.SpecialType != nil && *row.SpecialType == types.SpecialAdmissionProgramme:
      adm, ok := admissionMap[row.GroupID]
      if !ok {
        adm = &AdmissionProgramme{}
        admissionMap[row.GroupID] = adm
      }
      if row.ProgrammeID != nil {
        adm.ProgrammeIDs = append(adm.ProgrammeIDs, *row.ProgrammeID)
      }
    case row.Special && row.SpecialType != nil && *row.SpecialType == types.SpecialCompletionLevelPercent:
      g.Items = append(g.Items, CompletionPercent{
        TargetLevel:     row.TargetLevel,
        PercentageValue: row.PercentageValue,
      })
    case row.PrerequisiteID != nil:
      item := CourseRequirement{CourseID: *row.PrerequisiteID}
      if row.ProgrammeID != nil {
        pid := *row.ProgrammeID
        item.ProgrammeID = &pid
      }
      g.Items = append(g.Items, item)
    }
  }

  // Merged admission items attach once per group, after all rows are read.
  for _, id := range order {
    if adm, ok := admissionMap[id]; ok {
      groupMap[id].Items = append(groupMap[id].Items, *adm)
    }
  }

  var roots []*Group
  for _, id := range order {
    g := groupMap[id]
    parentID, isChild := parentMap[id]
    if !isChild {
      roots = append(roots, g)
      continue
    }
    if parent, ok := groupMap[parentID]; ok {
      parent.SubGroups = append(parent.SubGroups, g)
    } else {
      // Orphaned parent reference in stored data; keep the group visible
      // rather than dropping the rule.
      roots = append(roots, g)
    }
  }
  return roots
}
