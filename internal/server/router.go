package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/Teahana/user-enrollment/internal/handlers"
  "github.com/Teahana/user-enrollment/internal/middleware"
)

type RouterConfig struct {
  AuthHandler         *handlers.AuthHandler
  AuthMiddleware      *middleware.AuthMiddleware
  CourseHandler       *handlers.CourseHandler
  ProgrammeHandler    *handlers.ProgrammeHandler
  PrerequisiteHandler *handlers.PrerequisiteHandler
  StudentHandler      *handlers.StudentHandler
  HoldHandler         *handlers.HoldHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:8080",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.Healthcheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
  }

  // ===============
  // || Admin     ||
  // ===============
  admin := router.Group("/api/admin")
  admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
  // Courses
  admin.GET("/getAllCourses", cfg.CourseHandler.GetAllCourses)
  admin.GET("/getCourse/:id", cfg.CourseHandler.GetCourse)
  admin.GET("/getCoursesExcept/:id", cfg.CourseHandler.GetCoursesExcept)
  admin.POST("/addCourse", cfg.CourseHandler.AddCourse)
  admin.PUT("/updateCourse/:id", cfg.CourseHandler.UpdateCourse)
  admin.DELETE("/deleteCourse/:id", cfg.CourseHandler.DeleteCourse)
  // Programmes
  admin.GET("/getAllProgrammes", cfg.ProgrammeHandler.GetAllProgrammes)
  admin.POST("/addProgramme", cfg.ProgrammeHandler.AddProgramme)
  admin.DELETE("/deleteProgramme/:id", cfg.ProgrammeHandler.DeleteProgramme)
  // Prerequisites
  admin.GET("/getSpecialTypes", cfg.PrerequisiteHandler.GetSpecialTypes)
  admin.GET("/getPreReqs/:courseId", cfg.PrerequisiteHandler.GetPrerequisites)
  admin.POST("/addPreReqs", cfg.PrerequisiteHandler.AddPrerequisites)
  admin.POST("/updatePreReqs", cfg.PrerequisiteHandler.UpdatePrerequisites)
  admin.DELETE("/deletePreReqs/:courseId", cfg.PrerequisiteHandler.DeletePrerequisites)
  admin.GET("/getPreReqExpression/:courseId", cfg.PrerequisiteHandler.GetExpression)
  admin.GET("/getPreReqTree/:courseId", cfg.PrerequisiteHandler.GetPrerequisiteTree)
  admin.GET("/generateSvg/:courseId", cfg.PrerequisiteHandler.GenerateSVG)
  admin.GET("/getPreReqEditorData/:courseId", cfg.PrerequisiteHandler.GetEditorData)
  // Students
  admin.GET("/getAllStudents", cfg.StudentHandler.GetAllStudents)
  admin.GET("/getStudent/:id", cfg.StudentHandler.GetStudent)
  admin.POST("/addStudent", cfg.StudentHandler.AddStudent)
  admin.POST("/admitStudent/:id", cfg.StudentHandler.AdmitToProgramme)
  admin.GET("/getStudentProgrammes/:id", cfg.StudentHandler.GetAdmittedProgrammes)
  // Holds
  admin.POST("/placeHold/:id", cfg.HoldHandler.PlaceHold)
  admin.POST("/removeHold/:id", cfg.HoldHandler.RemoveHold)
  admin.GET("/getHolds/:id", cfg.HoldHandler.GetActiveHolds)
  admin.GET("/getHoldHistory/:id", cfg.HoldHandler.GetHoldHistory)

  return router
}
