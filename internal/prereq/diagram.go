package prereq

import (
  "strconv"
  "strings"
)

// Node is one vertex of the visualization tree re-derived from a rendered
// expression. Leaves carry requirement labels; interior nodes carry "AND" or
// "OR". This path is display-only: a parse ambiguity degrades the diagram,
// never the stored rows.
type Node struct {
  Label    string  `json:"label"`
  Children []*Node `json:"children,omitempty"`
}

// ParseExpression reverse-parses a rendered expression into a diagram tree
// rooted at the subject course.
func ParseExpression(courseCode, expression string) *Node {
  root := &Node{Label: courseCode + " (Main Course)"}
  body := parseExpr(expression)
  if body != nil {
    root.Children = append(root.Children, body)
  }
  return root
}

func parseExpr(expr string) *Node {
  expr = strings.TrimSpace(expr)
  if expr == "" {
    return nil
  }
  if fullyWrapped(expr) {
    expr = strings.TrimSpace(expr[1 : len(expr)-1])
  }

  parts := splitTopLevel(expr, "OR")
  operator := "OR"
  if len(parts) == 1 {
    parts = splitTopLevel(expr, "AND")
    operator = "AND"
  }
  if len(parts) == 1 {
    return &Node{Label: parts[0]}
  }

  op := &Node{Label: operator}
  for _, part := range parts {
    if child := parseExpr(part); child != nil {
      op.Children = append(op.Children, child)
    }
  }
  return op
}

// fullyWrapped reports whether one outer parenthesis pair encloses the whole
// string, e.g. "(A AND B)" but not "(A) OR (B)".
func fullyWrapped(s string) bool {
  s = strings.TrimSpace(s)
  if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
    return false
  }
  depth := 0
  for i := 0; i < len(s); i++ {
    switch s[i] {
    case '(':
      depth++
    case ')':
      depth--
    }
    if depth == 0 && i < len(s)-1 {
      return false
    }
  }
  return depth == 0
}

// splitTopLevel splits on " OP " occurrences that sit outside parentheses
// and outside brace-delimited special-condition labels.
func splitTopLevel(expr, operator string) []string {
  token := " " + operator + " "
  var parts []string
  var current strings.Builder
  depth, braceDepth := 0, 0

  for i := 0; i < len(expr); i++ {
    switch expr[i] {
    case '(':
      depth++
    case ')':
      depth--
    case '{':
      braceDepth++
    case '}':
      braceDepth--
    }
    if depth == 0 && braceDepth == 0 && strings.HasPrefix(expr[i:], token) {
      parts = append(parts, strings.TrimSpace(current.String()))
      current.Reset()
      i += len(token) - 1
      continue
    }
    current.WriteByte(expr[i])
  }
  if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
    parts = append(parts, trimmed)
  }
  return parts
}

// Mermaid converts an expression into mermaid "graph TD" markup for the
// external SVG renderer.
func Mermaid(courseCode, expression string) string {
  tree := ParseExpression(courseCode, expression)

  var nodes []string
  var edges []string
  nodeID := 0

  newNode := func(label string) string {
    id := "N" + strconv.Itoa(nodeID)
    nodeID++
    safe := strings.ReplaceAll(label, `"`, `\"`)
    nodes = append(nodes, id+`["`+safe+`"]`)
    return id
  }

  var walk func(n *Node) string
  walk = func(n *Node) string {
    id := newNode(n.Label)
    for _, child := range n.Children {
      childID := walk(child)
      edges = append(edges, id+" --> "+childID)
    }
    return id
  }
  walk(tree)

  lines := append(nodes, edges...)
  return "graph TD\n" + strings.Join(lines, "\n")
}
