package prereq

import (
  "errors"

  "github.com/Teahana/user-enrollment/internal/types"
)

// ErrLastGroup is returned when a caller tries to delete the only remaining
// top-level group. The message is shown to the user as-is.
var ErrLastGroup = errors.New("at least one prerequisite group must remain")

// Session owns the prerequisite forest for one open editor. Each editor
// (each admin tab) gets its own instance; nothing here is shared or
// goroutine-safe, matching the single-owner lifecycle of the editor.
type Session struct {
  courseID int64
  groups   []*Group
  nextID   int
}

// NewSession starts an add-mode editor: one empty ALL group, counter at 2.
func NewSession(courseID int64) *Session {
  s := &Session{courseID: courseID, nextID: 1}
  s.AddGroup(0)
  return s
}

// SessionFromRows starts an edit-mode editor from previously stored rows.
// The counter resumes above the highest stored group id.
func SessionFromRows(courseID int64, rows []types.CoursePrerequisite) *Session {
  groups := Unflatten(rows)
  s := &Session{
    courseID: courseID,
    groups:   groups,
    nextID:   MaxGroupID(groups) + 1,
  }
  if len(s.groups) == 0 {
    s.AddGroup(0)
  }
  return s
}

func (s *Session) CourseID() int64  { return s.courseID }
func (s *Session) Groups() []*Group { return s.groups }
func (s *Session) NextID() int      { return s.nextID }

// AddGroup creates a fresh group and appends it to the top level (parentID 0)
// or to the named parent's subgroups. An unresolved parent is a caller-error
// guard: nothing happens and nil is returned.
func (s *Session) AddGroup(parentID int) *Group {
  g := &Group{
    ID:             s.nextID,
    Type:           types.PrerequisiteAll,
    OperatorToNext: types.PrerequisiteAll,
  }
  if parentID == 0 {
    s.nextID++
    s.groups = append(s.groups, g)
    return g
  }
  parent := FindGroup(parentID, s.groups)
  if parent == nil {
    return nil
  }
  s.nextID++
  parent.SubGroups = append(parent.SubGroups, g)
  return g
}

// RemoveGroup deletes the group wherever it sits. Deleting the last
// remaining top-level group is refused with ErrLastGroup and the forest is
// untouched. After a successful removal every surviving group is renumbered
// in pre-order starting at 1. An id that no longer resolves is a no-op.
func (s *Session) RemoveGroup(id int) error {
  for i, g := range s.groups {
    if g.ID == id {
      if len(s.groups) == 1 {
        return ErrLastGroup
      }
      s.groups = append(s.groups[:i], s.groups[i+1:]...)
      s.renumber()
      return nil
    }
  }
  if removeNested(id, s.groups) {
    s.renumber()
  }
  return nil
}

func removeNested(id int, groups []*Group) bool {
  for _, g := range groups {
    for i, sub := range g.SubGroups {
      if sub.ID == id {
        g.SubGroups = append(g.SubGroups[:i], g.SubGroups[i+1:]...)
        return true
      }
    }
    if removeNested(id, g.SubGroups) {
      return true
    }
  }
  return false
}

// renumber reassigns dense pre-order ids and resets the counter, keeping the
// stored adjacency (parentId/childId are derived at flatten time) valid.
func (s *Session) renumber() {
  counter := 1
  var walk func(groups []*Group)
  walk = func(groups []*Group) {
    for _, g := range groups {
      g.ID = counter
      counter++
      walk(g.SubGroups)
    }
  }
  walk(s.groups)
  s.nextID = counter
}

// AddItem appends a requirement to the group. Returns false when the group
// id does not resolve (stale reference, treated as a no-op).
func (s *Session) AddItem(groupID int, item Item) bool {
  g := FindGroup(groupID, s.groups)
  if g == nil {
    return false
  }
  g.Items = append(g.Items, item)
  return true
}

// RemoveItem drops every item of the group matched by the predicate and
// returns how many were removed.
func (s *Session) RemoveItem(groupID int, match func(Item) bool) int {
  g := FindGroup(groupID, s.groups)
  if g == nil {
    return 0
  }
  kept := g.Items[:0]
  removed := 0
  for _, it := range g.Items {
    if match(it) {
      removed++
      continue
    }
    kept = append(kept, it)
  }
  g.Items = kept
  return removed
}

// MatchCourse builds a predicate for RemoveItem over a course+programme pair.
func MatchCourse(courseID int64, programmeID *int64) func(Item) bool {
  return func(it Item) bool {
    cr, ok := it.(CourseRequirement)
    if !ok || cr.CourseID != courseID {
      return false
    }
    if cr.ProgrammeID == nil || programmeID == nil {
      return cr.ProgrammeID == nil && programmeID == nil
    }
    return *cr.ProgrammeID == *programmeID
  }
}

// SetGroupType switches the group's combinator. Unknown ids are ignored.
func (s *Session) SetGroupType(id int, t types.PrerequisiteType) {
  if g := FindGroup(id, s.groups); g != nil && t.Valid() {
    g.Type = t
  }
}

// SetOperatorToNext sets the connector between a sibling and the one after
// it. The last sibling of any sequence has no "next", so the call is a
// rejected no-op there.
func (s *Session) SetOperatorToNext(id int, op types.PrerequisiteType) {
  if !op.Valid() {
    return
  }
  for i, g := range s.groups {
    if g.ID == id {
      if i < len(s.groups)-1 {
        g.OperatorToNext = op
      }
      return
    }
  }
  parent := FindParent(id, s.groups)
  if parent == nil {
    return
  }
  for i, sub := range parent.SubGroups {
    if sub.ID == id {
      if i < len(parent.SubGroups)-1 {
        sub.OperatorToNext = op
      }
      return
    }
  }
}

// Validate reports whether the forest can be persisted as-is.
func (s *Session) Validate() bool {
  return ValidateForest(s.groups)
}

// Prune removes empty groups bottom-up. Safe to call repeatedly.
func (s *Session) Prune() {
  s.groups = PruneForest(s.groups)
}

// Flatten serializes the forest into storage rows for the session's course.
// Callers are expected to Prune and Validate first.
func (s *Session) Flatten() []types.CoursePrerequisite {
  return Flatten(s.courseID, s.groups)
}
