package prereq

import (
  "fmt"
  "strings"

  "github.com/Teahana/user-enrollment/internal/types"
)

// NoPrerequisites is rendered for an empty forest.
const NoPrerequisites = "(No prerequisites)"

// CodeLookup maps database ids to display codes for rendering. Missing
// entries degrade to placeholder labels instead of failing the render.
type CodeLookup struct {
  Courses    map[int64]string
  Programmes map[int64]string
}

func (l CodeLookup) courseCode(id int64) string {
  if code, ok := l.Courses[id]; ok {
    return code
  }
  return "???"
}

func (l CodeLookup) programmeCode(id int64) string {
  if code, ok := l.Programmes[id]; ok {
    return code
  }
  return "??"
}

// ItemLabel renders one requirement the way the editor preview and the
// stored expression show it.
func ItemLabel(it Item, lookup CodeLookup) string {
  switch item := it.(type) {
  case CourseRequirement:
    label := lookup.courseCode(item.CourseID)
    if item.ProgrammeID != nil {
      return label + "(" + lookup.programmeCode(*item.ProgrammeID) + ")"
    }
    return label + "(Any)"
  case CompletionPercent:
    return fmt.Sprintf("{%g%% of %d-level courses}", item.PercentageValue*100, item.TargetLevel)
  case AdmissionProgramme:
    if len(item.ProgrammeIDs) == 0 {
      return "{Admission into (none)}"
    }
    codes := make([]string, 0, len(item.ProgrammeIDs))
    for _, id := range item.ProgrammeIDs {
      codes = append(codes, lookup.programmeCode(id))
    }
    return "{Admission into (" + strings.Join(codes, " OR ") + ")}"
  }
  return "???"
}

// RenderGroup builds the parenthesized boolean expression for one group:
// item labels and subgroup expressions joined by the group's combinator.
// Zero or one parts stay unwrapped; two or more are wrapped in parens.
func RenderGroup(g *Group, lookup CodeLookup) string {
  parts := make([]string, 0, len(g.Items)+len(g.SubGroups))
  for _, it := range g.Items {
    parts = append(parts, ItemLabel(it, lookup))
  }
  for _, sub := range g.SubGroups {
    parts = append(parts, RenderGroup(sub, lookup))
  }
  switch len(parts) {
  case 0:
    return ""
  case 1:
    return parts[0]
  }
  joiner := " AND "
  if g.Type == types.PrerequisiteAny {
    joiner = " OR "
  }
  return "(" + strings.Join(parts, joiner) + ")"
}

// RenderForest concatenates each top-level group's expression, inserting its
// operatorToNext between consecutive groups. The connector after the last
// group is never emitted.
func RenderForest(forest []*Group, lookup CodeLookup) string {
  if len(forest) == 0 {
    return NoPrerequisites
  }
  var b strings.Builder
  for i, g := range forest {
    b.WriteString(RenderGroup(g, lookup))
    if i < len(forest)-1 {
      op := g.OperatorToNext
      if !op.Valid() {
        op = types.PrerequisiteAll
      }
      b.WriteString(" " + string(op) + " ")
    }
  }
  return b.String()
}

// Render is the session-level expression preview.
func (s *Session) Render(lookup CodeLookup) string {
  return RenderForest(s.groups, lookup)
}
