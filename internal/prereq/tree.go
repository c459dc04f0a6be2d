package prereq

import (
  "github.com/Teahana/user-enrollment/internal/types"
)

// Item is a leaf requirement inside a group. It is a closed sum: either a
// specific course (optionally scoped to a programme) or one of the special
// conditions. Flatten, unflatten and render type-switch over every variant.
type Item interface {
  isItem()
}

// CourseRequirement requires completion of one course. A nil ProgrammeID
// means the requirement applies to students of any programme.
type CourseRequirement struct {
  CourseID    int64
  ProgrammeID *int64
}

func (CourseRequirement) isItem() {}

// CompletionPercent requires the student to have completed at least
// PercentageValue (a fraction in [0,1]) of courses at TargetLevel.
type CompletionPercent struct {
  TargetLevel     int16
  PercentageValue float64
}

func (CompletionPercent) isItem() {}

// AdmissionProgramme requires admission into any one of the listed
// programmes. The IDs are OR'd within this single item.
type AdmissionProgramme struct {
  ProgrammeIDs []int64
}

func (AdmissionProgramme) isItem() {}

// Group is one node of the prerequisite tree. IDs are dense 1..N in
// pre-order; they are reassigned after every structural deletion.
// OperatorToNext is empty on the last sibling of any sequence.
type Group struct {
  ID             int
  Type           types.PrerequisiteType
  Items          []Item
  SubGroups      []*Group
  OperatorToNext types.PrerequisiteType
}

// FindGroup does a depth-first search across the forest. A nil result is a
// recoverable miss, never an error: callers may race a deletion against a
// stale reference and must treat it as a no-op.
func FindGroup(id int, forest []*Group) *Group {
  for _, g := range forest {
    if g.ID == id {
      return g
    }
    if sub := FindGroup(id, g.SubGroups); sub != nil {
      return sub
    }
  }
  return nil
}

// FindParent returns the group whose SubGroups contain id, or nil when id is
// a top-level root (or absent).
func FindParent(id int, forest []*Group) *Group {
  for _, g := range forest {
    for _, sub := range g.SubGroups {
      if sub.ID == id {
        return g
      }
    }
    if p := FindParent(id, g.SubGroups); p != nil {
      return p
    }
  }
  return nil
}

// MaxGroupID returns the highest id present anywhere in the forest.
func MaxGroupID(forest []*Group) int {
  max := 0
  var walk func(groups []*Group)
  walk = func(groups []*Group) {
    for _, g := range groups {
      if g.ID > max {
        max = g.ID
      }
      walk(g.SubGroups)
    }
  }
  walk(forest)
  return max
}

// ValidateForest reports whether every group, recursively, holds at least one
// item or subgroup. An empty forest is trivially valid; requiring at least
// one group at submit time is the caller's concern.
func ValidateForest(forest []*Group) bool {
  for _, g := range forest {
    if !ValidateForest(g.SubGroups) {
      return false
    }
    if len(g.Items) == 0 && len(g.SubGroups) == 0 {
      return false
    }
  }
  return true
}

// PruneForest drops empty groups bottom-up: a parent whose subgroups all
// pruned away and that holds no items is itself removed. The input slice is
// not modified.
func PruneForest(forest []*Group) []*Group {
  out := make([]*Group, 0, len(forest))
  for _, g := range forest {
    kept := &Group{
      ID:             g.ID,
      Type:           g.Type,
      Items:          g.Items,
      SubGroups:      PruneForest(g.SubGroups),
      OperatorToNext: g.OperatorToNext,
    }
    if len(kept.Items) == 0 && len(kept.SubGroups) == 0 {
      continue
    }
    out = append(out, kept)
  }
  return out
}
