package prereq

import (
  "testing"

  "github.com/Teahana/user-enrollment/internal/types"
)

func testLookup() CodeLookup {
  return CodeLookup{
    Courses:    map[int64]string{1: "CS101", 2: "CS102", 3: "CS211", 4: "MA111"},
    Programmes: map[int64]string{1: "BSE", 2: "BNS"},
  }
}

func TestRenderTwoItemAllGroup(t *testing.T) {
  g := &Group{
    ID:    1,
    Type:  types.PrerequisiteAll,
    Items: []Item{CourseRequirement{CourseID: 1}, CourseRequirement{CourseID: 2}},
  }
  got := RenderGroup(g, testLookup())
  want := "(CS101(Any) AND CS102(Any))"
  if got != want {
    t.Fatalf("want %q, got %q", want, got)
  }
}

func TestRenderSingleItemUnwrapped(t *testing.T) {
  g := &Group{ID: 1, Type: types.PrerequisiteAll, Items: []Item{CourseRequirement{CourseID: 1}}}
  if got := RenderGroup(g, testLookup()); got != "CS101(Any)" {
    t.Fatalf("single item must render without parentheses, got %q", got)
  }
}

func TestRenderLabels(t *testing.T) {
  lookup := testLookup()
  cases := []struct {
    name string
    item Item
    want string
  }{
    {
      name: "course_scoped_to_programme",
      item: CourseRequirement{CourseID: 3, ProgrammeID: ptr(int64(2))},
      want: "CS211(BNS)",
    },
    {
      name: "course_unscoped",
      item: CourseRequirement{CourseID: 4},
      want: "MA111(Any)",
    },
    {
      name: "unknown_course",
      item: CourseRequirement{CourseID: 999},
      want: "???(Any)",
    },
    {
      name: "completion_percent",
      item: CompletionPercent{TargetLevel: 200, PercentageValue: 0.5},
      want: "{50% of 200-level courses}",
    },
    {
      name: "admission_two_programmes",
      item: AdmissionProgramme{ProgrammeIDs: []int64{1, 2}},
      want: "{Admission into (BSE OR BNS)}",
    },
    {
      name: "admission_empty",
      item: AdmissionProgramme{},
      want: "{Admission into (none)}",
    },
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := ItemLabel(tc.item, lookup); got != tc.want {
        t.Fatalf("want %q, got %q", tc.want, got)
      }
    })
  }
}

func TestRenderNestedGroups(t *testing.T) {
  forest := []*Group{
    {
      ID:    1,
      Type:  types.PrerequisiteAll,
      Items: []Item{CourseRequirement{CourseID: 1}},
      SubGroups: []*Group{
        {
          ID:    2,
          Type:  types.PrerequisiteAny,
          Items: []Item{CourseRequirement{CourseID: 2}, CourseRequirement{CourseID: 3}},
        },
      },
      OperatorToNext: types.PrerequisiteAny,
    },
    {
      ID:    3,
      Type:  types.PrerequisiteAll,
      Items: []Item{CourseRequirement{CourseID: 4}},
    },
  }
  got := RenderForest(forest, testLookup())
  want := "(CS101(Any) AND (CS102(Any) OR CS211(Any))) OR MA111(Any)"
  if got != want {
    t.Fatalf("want %q, got %q", want, got)
  }
}

func TestRenderEmptyForestPlaceholder(t *testing.T) {
  if got := RenderForest(nil, testLookup()); got != NoPrerequisites {
    t.Fatalf("empty forest must render %q, got %q", NoPrerequisites, got)
  }
}

func TestRenderOmitsOperatorAfterLastGroup(t *testing.T) {
  forest := []*Group{
    {ID: 1, Type: types.PrerequisiteAll, Items: []Item{CourseRequirement{CourseID: 1}}, OperatorToNext: types.PrerequisiteAll},
    {ID: 2, Type: types.PrerequisiteAll, Items: []Item{CourseRequirement{CourseID: 2}}, OperatorToNext: types.PrerequisiteAll},
  }
  got := RenderForest(forest, testLookup())
  want := "CS101(Any) AND CS102(Any)"
  if got != want {
    t.Fatalf("want %q, got %q", want, got)
  }
}
