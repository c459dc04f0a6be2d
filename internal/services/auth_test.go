package services

import (
  "context"
  "testing"
  "time"

  "github.com/stretchr/testify/require"

  "github.com/Teahana/user-enrollment/internal/repos"
  "github.com/Teahana/user-enrollment/internal/requestdata"
  "github.com/Teahana/user-enrollment/internal/types"
)

func newAuthService(t *testing.T) AuthService {
  t.Helper()
  gormDB := newTestDB(t)
  log := newTestLogger(t)
  userRepo := repos.NewUserRepo(gormDB, log)
  return NewAuthService(gormDB, log, userRepo, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
  svc := newAuthService(t)
  ctx := context.Background()

  user := &types.User{Email: "Admin@Example.COM", Password: "hunter22", Roles: types.RoleAdmin}
  require.NoError(t, svc.RegisterUser(ctx, user))

  // Email is normalized on registration.
  token, err := svc.LoginUser(ctx, "admin@example.com", "hunter22")
  require.NoError(t, err)
  require.NotEmpty(t, token)

  _, err = svc.LoginUser(ctx, "admin@example.com", "wrong")
  require.Error(t, err)
  _, err = svc.LoginUser(ctx, "nobody@example.com", "hunter22")
  require.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
  svc := newAuthService(t)
  ctx := context.Background()

  first := &types.User{Email: "dup@example.com", Password: "pw123456"}
  require.NoError(t, svc.RegisterUser(ctx, first))
  second := &types.User{Email: "dup@example.com", Password: "pw123456"}
  require.Error(t, svc.RegisterUser(ctx, second))
}

func TestSetContextFromToken(t *testing.T) {
  svc := newAuthService(t)
  ctx := context.Background()

  user := &types.User{Email: "admin@example.com", Password: "hunter22", Roles: types.RoleAdmin}
  require.NoError(t, svc.RegisterUser(ctx, user))
  token, err := svc.LoginUser(ctx, "admin@example.com", "hunter22")
  require.NoError(t, err)

  authed, err := svc.SetContextFromToken(ctx, token)
  require.NoError(t, err)
  rd := requestdata.GetRequestData(authed)
  require.NotNil(t, rd)
  require.Equal(t, "admin@example.com", rd.Email)
  require.NotZero(t, rd.UserID)
  require.True(t, rd.HasRole(types.RoleAdmin))

  _, err = svc.SetContextFromToken(ctx, "not-a-token")
  require.Error(t, err)
}
