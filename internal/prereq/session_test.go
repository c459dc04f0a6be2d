package prereq

import (
  "testing"

  "github.com/Teahana/user-enrollment/internal/types"
)

func TestNewSessionStartsWithOneEmptyGroup(t *testing.T) {
  s := NewSession(10)
  if len(s.Groups()) != 1 {
    t.Fatalf("expected 1 top-level group, got %d", len(s.Groups()))
  }
  g := s.Groups()[0]
  if g.ID != 1 || g.Type != types.PrerequisiteAll {
    t.Fatalf("unexpected initial group: id=%d type=%s", g.ID, g.Type)
  }
  if len(g.Items) != 0 || len(g.SubGroups) != 0 {
    t.Fatalf("initial group should be empty")
  }
  if s.NextID() != 2 {
    t.Fatalf("next id should be 2, got %d", s.NextID())
  }
}

func TestAddGroupToUnknownParentIsNoOp(t *testing.T) {
  s := NewSession(10)
  if g := s.AddGroup(99); g != nil {
    t.Fatalf("adding under unresolved parent should return nil")
  }
  if len(s.Groups()) != 1 || s.NextID() != 2 {
    t.Fatalf("forest mutated by failed add: groups=%d nextID=%d", len(s.Groups()), s.NextID())
  }
}

func TestRemoveLastTopLevelGroupIsRejected(t *testing.T) {
  s := NewSession(10)
  err := s.RemoveGroup(1)
  if err != ErrLastGroup {
    t.Fatalf("expected ErrLastGroup, got %v", err)
  }
  if len(s.Groups()) != 1 {
    t.Fatalf("forest changed by rejected removal")
  }
}

func TestRemoveGroupRenumbersPreOrder(t *testing.T) {
  s := NewSession(10)
  s.AddGroup(0) // id 2
  s.AddGroup(0) // id 3

  if err := s.RemoveGroup(2); err != nil {
    t.Fatalf("remove failed: %v", err)
  }
  ids := []int{}
  for _, g := range s.Groups() {
    ids = append(ids, g.ID)
  }
  if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
    t.Fatalf("expected ids [1 2] after renumber, got %v", ids)
  }
  added := s.AddGroup(0)
  if added.ID != 3 {
    t.Fatalf("next assigned id should be 3, got %d", added.ID)
  }
}

func TestRemoveNestedGroupRenumbersWholeForest(t *testing.T) {
  s := NewSession(10)
  s.AddGroup(1) // id 2, child of 1
  s.AddGroup(1) // id 3, child of 1
  s.AddGroup(0) // id 4, top level

  if err := s.RemoveGroup(2); err != nil {
    t.Fatalf("remove failed: %v", err)
  }
  root := s.Groups()[0]
  if root.ID != 1 || len(root.SubGroups) != 1 || root.SubGroups[0].ID != 2 {
    t.Fatalf("subgroup not renumbered: %+v", root)
  }
  if s.Groups()[1].ID != 3 {
    t.Fatalf("second top-level group should renumber to 3, got %d", s.Groups()[1].ID)
  }
  if s.NextID() != 4 {
    t.Fatalf("next id should be 4, got %d", s.NextID())
  }
}

func TestRemoveUnknownGroupIsBenign(t *testing.T) {
  s := NewSession(10)
  s.AddGroup(0)
  if err := s.RemoveGroup(42); err != nil {
    t.Fatalf("stale removal should be a no-op, got %v", err)
  }
  if len(s.Groups()) != 2 {
    t.Fatalf("forest changed by stale removal")
  }
}

func TestAddAndRemoveItems(t *testing.T) {
  s := NewSession(10)
  prog := int64(7)
  if !s.AddItem(1, CourseRequirement{CourseID: 2}) {
    t.Fatalf("AddItem failed on existing group")
  }
  s.AddItem(1, CourseRequirement{CourseID: 2, ProgrammeID: &prog})
  if s.AddItem(55, CourseRequirement{CourseID: 3}) {
    t.Fatalf("AddItem should no-op on unknown group")
  }

  removed := s.RemoveItem(1, MatchCourse(2, &prog))
  if removed != 1 {
    t.Fatalf("expected 1 removed, got %d", removed)
  }
  if len(s.Groups()[0].Items) != 1 {
    t.Fatalf("expected 1 remaining item, got %d", len(s.Groups()[0].Items))
  }
  if got := s.Groups()[0].Items[0].(CourseRequirement); got.ProgrammeID != nil {
    t.Fatalf("wrong item removed: %+v", got)
  }
}

func TestSetOperatorToNextRejectsLastSibling(t *testing.T) {
  s := NewSession(10)
  s.AddGroup(0) // id 2

  s.SetOperatorToNext(2, types.PrerequisiteAny)
  if s.Groups()[1].OperatorToNext == types.PrerequisiteAny {
    t.Fatalf("last sibling must not accept an operatorToNext")
  }

  s.SetOperatorToNext(1, types.PrerequisiteAny)
  if s.Groups()[0].OperatorToNext != types.PrerequisiteAny {
    t.Fatalf("non-last sibling should accept the operator")
  }

  // Same rule inside a subgroup sequence.
  s.AddGroup(1) // id 3
  s.AddGroup(1) // id 4
  s.SetOperatorToNext(3, types.PrerequisiteAny)
  s.SetOperatorToNext(4, types.PrerequisiteAny)
  root := s.Groups()[0]
  if root.SubGroups[0].OperatorToNext != types.PrerequisiteAny {
    t.Fatalf("first subgroup should accept the operator")
  }
  if root.SubGroups[1].OperatorToNext == types.PrerequisiteAny {
    t.Fatalf("last subgroup must not accept an operatorToNext")
  }
}

func TestValidateAndPrune(t *testing.T) {
  s := NewSession(10)
  s.AddItem(1, CourseRequirement{CourseID: 2})
  s.AddGroup(1) // id 2: empty subgroup
  s.AddGroup(2) // id 3: empty subgroup of the empty subgroup

  if s.Validate() {
    t.Fatalf("forest with empty groups must fail validation")
  }

  s.Prune()
  if !s.Validate() {
    t.Fatalf("pruned forest should validate")
  }
  if len(s.Groups()) != 1 || len(s.Groups()[0].SubGroups) != 0 {
    t.Fatalf("empty chain not pruned: %+v", s.Groups()[0])
  }

  // Pruning is idempotent.
  before := RenderForest(s.Groups(), CodeLookup{})
  s.Prune()
  after := RenderForest(s.Groups(), CodeLookup{})
  if before != after || len(s.Groups()) != 1 {
    t.Fatalf("second prune changed the forest")
  }
}

func TestPruneKeepsParentWithDeepItems(t *testing.T) {
  s := NewSession(10)
  s.AddGroup(1) // id 2
  s.AddGroup(2) // id 3
  s.AddItem(3, CourseRequirement{CourseID: 5})

  s.Prune()
  root := s.Groups()[0]
  if len(root.SubGroups) != 1 || len(root.SubGroups[0].SubGroups) != 1 {
    t.Fatalf("groups with non-empty descendants must survive pruning")
  }
  if !s.Validate() {
    t.Fatalf("forest should validate after prune")
  }
}
