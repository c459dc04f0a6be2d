package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/normalization"
  "github.com/Teahana/user-enrollment/internal/repos"
  "github.com/Teahana/user-enrollment/internal/requestdata"
  "github.com/Teahana/user-enrollment/internal/types"
)

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) error
  LoginUser(ctx context.Context, email, password string) (string, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
) AuthService {
  return &authService{
    db:           db,
    log:          log.With("service", "AuthService"),
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
  user.Email = normalization.Email(user.Email)
  if user.Email == "" || user.Password == "" {
    return fmt.Errorf("email and password are required")
  }
  exists, exErr := as.userRepo.EmailExists(ctx, nil, user.Email)
  if exErr != nil {
    return fmt.Errorf("failed to check existing email: %w", exErr)
  }
  if exists {
    return fmt.Errorf("email already registered")
  }
  hashed, hErr := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if hErr != nil {
    return fmt.Errorf("failed to hash password: %w", hErr)
  }
  user.Password = string(hashed)
  if user.Roles == "" {
    user.Roles = types.RoleStudent
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := as.userRepo.Create(ctx, tx, user); cErr != nil {
      return fmt.Errorf("failed to create user: %w", cErr)
    }
    return nil
  })
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
  email = normalization.Email(email)

  user, uErr := as.userRepo.GetByEmail(ctx, nil, email)
  if uErr != nil {
    return "", fmt.Errorf("invalid email or password")
  }
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return "", fmt.Errorf("invalid email or password")
  }

  token, gErr := as.generateAccessToken(user)
  if gErr != nil {
    as.log.Warn("Generate access token error", "error", gErr)
    return "", fmt.Errorf("failed to generate access token: %w", gErr)
  }
  return token, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  now := time.Now()
  claims := jwt.MapClaims{
    "sub":   user.ID,
    "email": user.Email,
    "roles": strings.Split(user.Roles, ","),
    "jti":   uuid.NewString(),
    "iat":   now.Unix(),
    "exp":   now.Add(as.accessTTL).Unix(),
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken verifies the token and stashes its identity on the
// context for handlers and middleware downstream.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  token, pErr := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if pErr != nil || !token.Valid {
    return ctx, fmt.Errorf("invalid token")
  }
  claims, ok := token.Claims.(jwt.MapClaims)
  if !ok {
    return ctx, fmt.Errorf("invalid token claims")
  }

  rd := &requestdata.RequestData{TokenString: tokenString}
  if sub, ok := claims["sub"].(float64); ok {
    rd.UserID = int64(sub)
  }
  if email, ok := claims["email"].(string); ok {
    rd.Email = email
  }
  if rawRoles, ok := claims["roles"].([]any); ok {
    for _, r := range rawRoles {
      if role, ok := r.(string); ok {
        rd.Roles = append(rd.Roles, strings.TrimSpace(role))
      }
    }
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
