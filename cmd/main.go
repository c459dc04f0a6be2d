package main

import (
  "context"
  "fmt"
  "os"
  "time"

  "github.com/Teahana/user-enrollment/internal/clients/mermaid"
  redisclient "github.com/Teahana/user-enrollment/internal/clients/redis"
  "github.com/Teahana/user-enrollment/internal/db"
  "github.com/Teahana/user-enrollment/internal/handlers"
  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/middleware"
  "github.com/Teahana/user-enrollment/internal/repos"
  "github.com/Teahana/user-enrollment/internal/server"
  "github.com/Teahana/user-enrollment/internal/services"
  "github.com/Teahana/user-enrollment/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  seedFile := utils.GetEnv("SEED_FILE", "seed.yaml", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  if _, statErr := os.Stat(seedFile); statErr == nil {
    if err := db.Seed(thePG, log, seedFile); err != nil {
      log.Warn("Seeding failed", "error", err)
    }
  } else {
    log.Debug("No seed file found, skipping seed", "path", seedFile)
  }

  // Clients
  log.Info("Setting up clients from main...")
  cache, cacheErr := redisclient.NewCache(log)
  if cacheErr != nil {
    log.Warn("Redis cache unavailable, caching disabled", "error", cacheErr)
    cache = nil
  }
  mermaidClient := mermaid.NewClient(log)
  startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
  if err := mermaidClient.Start(startCtx); err != nil {
    log.Warn("Mermaid sidecar unavailable, diagrams will use placeholder", "error", err)
  }
  cancelStart()
  defer mermaidClient.Stop()

  // Repos
  log.Info("Setting up repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  courseRepo := repos.NewCourseRepo(thePG, log)
  programmeRepo := repos.NewProgrammeRepo(thePG, log)
  prereqRepo := repos.NewPrerequisiteRepo(thePG, log)
  studentRepo := repos.NewStudentRepo(thePG, log)
  holdRepo := repos.NewHoldRepo(thePG, log)

  // Services
  log.Info("Setting up services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  courseService := services.NewCourseService(thePG, log, courseRepo, prereqRepo, cache)
  programmeService := services.NewProgrammeService(thePG, log, programmeRepo, cache)
  prereqService := services.NewPrerequisiteService(thePG, log, prereqRepo, courseRepo, programmeRepo, cache, mermaidClient)
  studentService := services.NewStudentService(thePG, log, studentRepo, programmeRepo)
  holdService := services.NewHoldService(thePG, log, holdRepo, studentRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  courseHandler := handlers.NewCourseHandler(courseService)
  programmeHandler := handlers.NewProgrammeHandler(programmeService)
  prereqHandler := handlers.NewPrerequisiteHandler(prereqService)
  studentHandler := handlers.NewStudentHandler(studentService)
  holdHandler := handlers.NewHoldHandler(holdService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:         authHandler,
    AuthMiddleware:      authMiddleware,
    CourseHandler:       courseHandler,
    ProgrammeHandler:    programmeHandler,
    PrerequisiteHandler: prereqHandler,
    StudentHandler:      studentHandler,
    HoldHandler:         holdHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
