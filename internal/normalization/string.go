package normalization

import (
  "strings"
)

// Email lowercases and trims an email address before storage or lookup.
func Email(input string) string {
  return strings.ToLower(strings.TrimSpace(input))
}

// Code uppercases and trims course and programme codes so lookups are
// case-insensitive without database collation tricks.
func Code(input string) string {
  return strings.ToUpper(strings.TrimSpace(input))
}

func Trim(input string) string {
  return strings.TrimSpace(input)
}
