package prereq

import (
  "fmt"
  "sort"
  "testing"

  "github.com/Teahana/user-enrollment/internal/types"
)

func ptr[T any](v T) *T { return &v }

// itemKey gives an order-independent identity for comparing item sets.
func itemKey(it Item) string {
  switch item := it.(type) {
  case CourseRequirement:
    if item.ProgrammeID != nil {
      return fmt.Sprintf("course:%d:prog:%d", item.CourseID, *item.ProgrammeID)
    }
    return fmt.Sprintf("course:%d:any", item.CourseID)
  case CompletionPercent:
    return fmt.Sprintf("percent:%d:%v", item.TargetLevel, item.PercentageValue)
  case AdmissionProgramme:
    ids := append([]int64(nil), item.ProgrammeIDs...)
    sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
    return fmt.Sprintf("admission:%v", ids)
  }
  return "?"
}

func assertSameForest(t *testing.T, want, got []*Group) {
  t.Helper()
  if len(want) != len(got) {
    t.Fatalf("group count mismatch: want %d, got %d", len(want), len(got))
  }
  for i := range want {
    w, g := want[i], got[i]
    if w.ID != g.ID || w.Type != g.Type || w.OperatorToNext != g.OperatorToNext {
      t.Fatalf("group %d mismatch: want {id:%d %s next:%q}, got {id:%d %s next:%q}",
        i, w.ID, w.Type, w.OperatorToNext, g.ID, g.Type, g.OperatorToNext)
    }
    wantKeys := make([]string, 0, len(w.Items))
    gotKeys := make([]string, 0, len(g.Items))
    for _, it := range w.Items {
      wantKeys = append(wantKeys, itemKey(it))
    }
    for _, it := range g.Items {
      gotKeys = append(gotKeys, itemKey(it))
    }
    sort.Strings(wantKeys)
    sort.Strings(gotKeys)
    if fmt.Sprint(wantKeys) != fmt.Sprint(gotKeys) {
      t.Fatalf("group %d items mismatch: want %v, got %v", w.ID, wantKeys, gotKeys)
    }
    assertSameForest(t, w.SubGroups, g.SubGroups)
  }
}

func TestFlattenRowShape(t *testing.T) {
  forest := []*Group{
    {
      ID:   1,
      Type: types.PrerequisiteAll,
      Items: []Item{
        CourseRequirement{CourseID: 11},
        CourseRequirement{CourseID: 12, ProgrammeID: ptr(int64(3))},
      },
      SubGroups: []*Group{
        {
          ID:    2,
          Type:  types.PrerequisiteAny,
          Items: []Item{CourseRequirement{CourseID: 13}},
        },
      },
      OperatorToNext: types.PrerequisiteAny,
    },
    {
      ID:    3,
      Type:  types.PrerequisiteAny,
      Items: []Item{CourseRequirement{CourseID: 14}},
    },
  }

  rows := Flatten(77, forest)
  if len(rows) != 4 {
    t.Fatalf("expected 4 rows, got %d", len(rows))
  }
  for _, row := range rows {
    if row.CourseID != 77 {
      t.Fatalf("every row must carry the subject course id, got %d", row.CourseID)
    }
  }

  first := rows[0]
  if first.GroupID != 1 || !first.IsParent || first.IsChild || first.ParentID != 0 {
    t.Fatalf("top-level adjacency wrong: %+v", first)
  }
  if first.ChildID != 2 {
    t.Fatalf("childId should point at the first subgroup, got %d", first.ChildID)
  }
  if first.OperatorToNext == nil || *first.OperatorToNext != types.PrerequisiteAny {
    t.Fatalf("non-last top-level group must carry operatorToNext")
  }

  sub := rows[2]
  if sub.GroupID != 2 || sub.IsParent || !sub.IsChild || sub.ParentID != 1 {
    t.Fatalf("subgroup adjacency wrong: %+v", sub)
  }
  if sub.OperatorToNext != nil {
    t.Fatalf("subgroup rows must not carry operatorToNext")
  }

  last := rows[3]
  if last.GroupID != 3 || last.OperatorToNext != nil {
    t.Fatalf("last top-level group carries no operatorToNext: %+v", last)
  }
}

func TestRoundTripCourseOnlyForest(t *testing.T) {
  forest := []*Group{
    {
      ID:   1,
      Type: types.PrerequisiteAll,
      Items: []Item{
        CourseRequirement{CourseID: 11},
        CourseRequirement{CourseID: 12, ProgrammeID: ptr(int64(4))},
      },
      SubGroups: []*Group{
        {
          ID:    2,
          Type:  types.PrerequisiteAny,
          Items: []Item{CourseRequirement{CourseID: 13}, CourseRequirement{CourseID: 14}},
          SubGroups: []*Group{
            {ID: 3, Type: types.PrerequisiteAll, Items: []Item{CourseRequirement{CourseID: 15}}},
          },
        },
      },
      OperatorToNext: types.PrerequisiteAny,
    },
    {
      ID:    4,
      Type:  types.PrerequisiteAny,
      Items: []Item{CourseRequirement{CourseID: 16}},
    },
  }

  got := Unflatten(Flatten(9, forest))
  assertSameForest(t, forest, got)
}

func TestRoundTripMergesAdmissionProgrammeRows(t *testing.T) {
  forest := []*Group{
    {
      ID:    1,
      Type:  types.PrerequisiteAll,
      Items: []Item{AdmissionProgramme{ProgrammeIDs: []int64{2, 5, 9}}},
    },
  }

  rows := Flatten(9, forest)
  if len(rows) != 3 {
    t.Fatalf("admission item with 3 programmes must expand to 3 rows, got %d", len(rows))
  }
  for _, row := range rows {
    if !row.Special || row.SpecialType == nil || *row.SpecialType != types.SpecialAdmissionProgramme {
      t.Fatalf("expected admission rows, got %+v", row)
    }
    if row.PrerequisiteID != nil {
      t.Fatalf("special rows carry no prerequisite course")
    }
  }

  got := Unflatten(rows)
  if len(got) != 1 || len(got[0].Items) != 1 {
    t.Fatalf("rows must merge back into one item, got %+v", got)
  }
  adm, ok := got[0].Items[0].(AdmissionProgramme)
  if !ok {
    t.Fatalf("expected AdmissionProgramme, got %T", got[0].Items[0])
  }
  ids := append([]int64(nil), adm.ProgrammeIDs...)
  sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
  if fmt.Sprint(ids) != fmt.Sprint([]int64{2, 5, 9}) {
    t.Fatalf("programme ids lost in merge: %v", adm.ProgrammeIDs)
  }
}

func TestRoundTripCompletionPercent(t *testing.T) {
  forest := []*Group{
    {
      ID:   1,
      Type: types.PrerequisiteAny,
      Items: []Item{
        CompletionPercent{TargetLevel: 200, PercentageValue: 0.5},
        CourseRequirement{CourseID: 21},
      },
    },
  }

  rows := Flatten(9, forest)
  if len(rows) != 2 {
    t.Fatalf("expected 2 rows, got %d", len(rows))
  }
  var specialRow *types.CoursePrerequisite
  for i := range rows {
    if rows[i].Special {
      specialRow = &rows[i]
    }
  }
  if specialRow == nil || specialRow.TargetLevel != 200 || specialRow.PercentageValue != 0.5 {
    t.Fatalf("completion row fields wrong: %+v", specialRow)
  }
  if specialRow.PrerequisiteID != nil || specialRow.ProgrammeID != nil {
    t.Fatalf("completion rows carry no course or programme")
  }

  assertSameForest(t, forest, Unflatten(rows))
}

func TestUnflattenFirstSeenWinsOnDisagreement(t *testing.T) {
  rows := []types.CoursePrerequisite{
    {CourseID: 9, GroupID: 1, PrerequisiteType: types.PrerequisiteAll, PrerequisiteID: ptr(int64(11)), IsParent: true},
    {CourseID: 9, GroupID: 1, PrerequisiteType: types.PrerequisiteAny, PrerequisiteID: ptr(int64(12)), IsParent: true},
  }
  got := Unflatten(rows)
  if len(got) != 1 || got[0].Type != types.PrerequisiteAll {
    t.Fatalf("first seen prerequisiteType must win, got %+v", got)
  }
}

func TestUnflattenNextIDFromMaxObservedID(t *testing.T) {
  rows := []types.CoursePrerequisite{
    {CourseID: 9, GroupID: 2, PrerequisiteType: types.PrerequisiteAll, PrerequisiteID: ptr(int64(11)), IsParent: true},
    {CourseID: 9, GroupID: 5, PrerequisiteType: types.PrerequisiteAll, PrerequisiteID: ptr(int64(12)), IsChild: true, ParentID: 2},
  }
  s := SessionFromRows(9, rows)
  if s.NextID() != 6 {
    t.Fatalf("counter must resume at max id + 1, got %d", s.NextID())
  }
  if len(s.Groups()) != 1 || len(s.Groups()[0].SubGroups) != 1 {
    t.Fatalf("parent linkage lost: %+v", s.Groups())
  }
}
