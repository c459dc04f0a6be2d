package db

import (
  "fmt"
  "os"
  "strings"

  "golang.org/x/crypto/bcrypt"
  "gopkg.in/yaml.v3"
  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/types"
)

// SeedFile is the YAML shape consumed by Seed. Programmes are looked up
// by code when linking courses, so the file never hardcodes IDs.
type SeedFile struct {
  Users []struct {
    Email     string `yaml:"email"`
    Password  string `yaml:"password"`
    FirstName string `yaml:"firstName"`
    LastName  string `yaml:"lastName"`
    Roles     string `yaml:"roles"`
  } `yaml:"users"`
  Programmes []struct {
    Name          string `yaml:"name"`
    ProgrammeCode string `yaml:"programmeCode"`
    Faculty       string `yaml:"faculty"`
  } `yaml:"programmes"`
  Courses []struct {
    CourseCode   string   `yaml:"courseCode"`
    Title        string   `yaml:"title"`
    Description  string   `yaml:"description"`
    CreditPoints int16    `yaml:"creditPoints"`
    Level        int16    `yaml:"level"`
    Cost         float64  `yaml:"cost"`
    OfferedSem1  bool     `yaml:"offeredSem1"`
    OfferedSem2  bool     `yaml:"offeredSem2"`
    Programmes   []string `yaml:"programmes"`
  } `yaml:"courses"`
}

// Seed loads the YAML file at path and inserts any user, programme, or
// course not already present. It is safe to run on every startup.
func Seed(gormDB *gorm.DB, log *logger.Logger, path string) error {
  seedLog := log.With("service", "Seed")

  raw, err := os.ReadFile(path)
  if err != nil {
    return fmt.Errorf("failed to read seed file %s: %w", path, err)
  }
  var seed SeedFile
  if err := yaml.Unmarshal(raw, &seed); err != nil {
    return fmt.Errorf("failed to parse seed file %s: %w", path, err)
  }

  return gormDB.Transaction(func(tx *gorm.DB) error {
    for _, u := range seed.Users {
      email := strings.ToLower(strings.TrimSpace(u.Email))
      var count int64
      if err := tx.Model(&types.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
        return err
      }
      if count > 0 {
        continue
      }
      hashed, hErr := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
      if hErr != nil {
        return fmt.Errorf("failed to hash seed password for %s: %w", email, hErr)
      }
      user := types.User{
        Email:     email,
        Password:  string(hashed),
        FirstName: u.FirstName,
        LastName:  u.LastName,
        Roles:     u.Roles,
      }
      if err := tx.Create(&user).Error; err != nil {
        return fmt.Errorf("failed to seed user %s: %w", email, err)
      }
      seedLog.Info("Seeded user", "email", email)
    }

    programmeIDs := map[string]int64{}
    for _, p := range seed.Programmes {
      code := strings.ToUpper(strings.TrimSpace(p.ProgrammeCode))
      var existing types.Programme
      err := tx.Where("programme_code = ?", code).First(&existing).Error
      if err == nil {
        programmeIDs[code] = existing.ID
        continue
      }
      if err != gorm.ErrRecordNotFound {
        return err
      }
      programme := types.Programme{Name: p.Name, ProgrammeCode: code, Faculty: p.Faculty}
      if err := tx.Create(&programme).Error; err != nil {
        return fmt.Errorf("failed to seed programme %s: %w", code, err)
      }
      programmeIDs[code] = programme.ID
      seedLog.Info("Seeded programme", "code", code)
    }

    for _, c := range seed.Courses {
      code := strings.ToUpper(strings.TrimSpace(c.CourseCode))
      var count int64
      if err := tx.Model(&types.Course{}).Where("course_code = ?", code).Count(&count).Error; err != nil {
        return err
      }
      if count > 0 {
        continue
      }
      course := types.Course{
        CourseCode:   code,
        Title:        c.Title,
        Description:  c.Description,
        CreditPoints: c.CreditPoints,
        Level:        c.Level,
        Cost:         c.Cost,
        OfferedSem1:  c.OfferedSem1,
        OfferedSem2:  c.OfferedSem2,
      }
      if err := tx.Create(&course).Error; err != nil {
        return fmt.Errorf("failed to seed course %s: %w", code, err)
      }
      for _, pCode := range c.Programmes {
        pid, ok := programmeIDs[strings.ToUpper(strings.TrimSpace(pCode))]
        if !ok {
          return fmt.Errorf("seed course %s references unknown programme %s", code, pCode)
        }
        link := types.CourseProgramme{CourseID: course.ID, ProgrammeID: pid}
        if err := tx.Create(&link).Error; err != nil {
          return fmt.Errorf("failed to link seed course %s to %s: %w", code, pCode, err)
        }
      }
      seedLog.Info("Seeded course", "code", code)
    }
    return nil
  })
}
