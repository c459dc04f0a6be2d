package requestdata

import (
  "context"
  "strings"
)

var requestDataKey = struct{}{}

type RequestData struct {
  TokenString string
  UserID      int64
  Email       string
  Roles       []string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
    return rd
  }
  return nil
}

func (rd *RequestData) HasRole(role string) bool {
  for _, r := range rd.Roles {
    if strings.EqualFold(r, role) {
      return true
    }
  }
  return false
}
