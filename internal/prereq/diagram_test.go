package prereq

import (
  "strings"
  "testing"
)

func TestParseExpressionLeaf(t *testing.T) {
  tree := ParseExpression("CS211", "CS101(Any)")
  if tree.Label != "CS211 (Main Course)" {
    t.Fatalf("root label wrong: %q", tree.Label)
  }
  if len(tree.Children) != 1 || tree.Children[0].Label != "CS101(Any)" {
    t.Fatalf("expected single leaf child, got %+v", tree.Children)
  }
}

func TestParseExpressionOperatorPrecedence(t *testing.T) {
  // OR is tried first at the top level; AND binds inside the parens.
  tree := ParseExpression("CS350", "(CS101(Any) AND CS102(Any)) OR MA111(Any)")
  body := tree.Children[0]
  if body.Label != "OR" || len(body.Children) != 2 {
    t.Fatalf("expected top-level OR with 2 children, got %+v", body)
  }
  and := body.Children[0]
  if and.Label != "AND" || len(and.Children) != 2 {
    t.Fatalf("expected nested AND, got %+v", and)
  }
  if and.Children[0].Label != "CS101(Any)" || and.Children[1].Label != "CS102(Any)" {
    t.Fatalf("AND leaves wrong: %+v", and.Children)
  }
  if body.Children[1].Label != "MA111(Any)" {
    t.Fatalf("OR second leaf wrong: %q", body.Children[1].Label)
  }
}

func TestParseExpressionIgnoresOperatorsInsideBraces(t *testing.T) {
  tree := ParseExpression("CS300", "{Admission into (BSE OR BNS)} AND CS102(Any)")
  body := tree.Children[0]
  if body.Label != "AND" || len(body.Children) != 2 {
    t.Fatalf("brace-delimited OR must not split, got %+v", body)
  }
  if body.Children[0].Label != "{Admission into (BSE OR BNS)}" {
    t.Fatalf("special label broken: %q", body.Children[0].Label)
  }
}

func TestParseExpressionStripsOnlyFullWrap(t *testing.T) {
  cases := []struct {
    name string
    expr string
    want string
  }{
    {name: "fully_wrapped", expr: "(CS101(Any) AND CS102(Any))", want: "AND"},
    {name: "not_fully_wrapped", expr: "(CS101(Any)) OR (CS102(Any))", want: "OR"},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      tree := ParseExpression("X", tc.expr)
      if tree.Children[0].Label != tc.want {
        t.Fatalf("want operator %q, got %q", tc.want, tree.Children[0].Label)
      }
    })
  }
}

func TestMermaidOutput(t *testing.T) {
  got := Mermaid("CS211", "CS101(Any) AND CS102(Any)")
  lines := strings.Split(got, "\n")
  if lines[0] != "graph TD" {
    t.Fatalf("mermaid header missing: %q", lines[0])
  }
  wantLines := []string{
    `N0["CS211 (Main Course)"]`,
    `N1["AND"]`,
    `N2["CS101(Any)"]`,
    `N3["CS102(Any)"]`,
    "N1 --> N2",
    "N1 --> N3",
    "N0 --> N1",
  }
  for _, w := range wantLines {
    if !strings.Contains(got, w) {
      t.Fatalf("mermaid output missing %q:\n%s", w, got)
    }
  }
}

func TestMermaidEscapesQuotes(t *testing.T) {
  got := Mermaid("CS101", `{Admission into ("none")}`)
  if !strings.Contains(got, `\"none\"`) {
    t.Fatalf("quotes must be escaped in node labels:\n%s", got)
  }
}

func TestMermaidEmptyExpression(t *testing.T) {
  got := Mermaid("CS101", "")
  if !strings.Contains(got, `N0["CS101 (Main Course)"]`) {
    t.Fatalf("empty expression still yields the root node:\n%s", got)
  }
  if strings.Contains(got, "-->") {
    t.Fatalf("no edges expected for an empty expression:\n%s", got)
  }
}
