package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/normalization"
  "github.com/Teahana/user-enrollment/internal/repos"
  "github.com/Teahana/user-enrollment/internal/types"
)

type StudentService interface {
  CreateStudent(ctx context.Context, student *types.Student, programmeIDs []int64) (*types.Student, error)
  GetAllStudents(ctx context.Context) ([]*types.Student, error)
  GetStudent(ctx context.Context, id int64) (*types.Student, error)
  GetStudentByNumber(ctx context.Context, studentID string) (*types.Student, error)
  UpdateStudent(ctx context.Context, student *types.Student) error
  AdmitToProgramme(ctx context.Context, studentID, programmeID int64) error
  GetAdmittedProgrammes(ctx context.Context, studentID int64) ([]*types.Programme, error)
}

type studentService struct {
  db            *gorm.DB
  log           *logger.Logger
  studentRepo   repos.StudentRepo
  programmeRepo repos.ProgrammeRepo
}

func NewStudentService(
  db *gorm.DB,
  log *logger.Logger,
  studentRepo repos.StudentRepo,
  programmeRepo repos.ProgrammeRepo,
) StudentService {
  return &studentService{
    db:            db,
    log:           log.With("service", "StudentService"),
    studentRepo:   studentRepo,
    programmeRepo: programmeRepo,
  }
}

func (ss *studentService) CreateStudent(ctx context.Context, student *types.Student, programmeIDs []int64) (*types.Student, error) {
  student.Email = normalization.Email(student.Email)
  student.StudentID = normalization.Trim(student.StudentID)
  if student.StudentID == "" || student.Email == "" {
    return nil, fmt.Errorf("student number and email are required")
  }

  if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := ss.studentRepo.Create(ctx, tx, student); cErr != nil {
      return fmt.Errorf("failed to create student: %w", cErr)
    }
    for _, pid := range programmeIDs {
      link := &types.StudentProgramme{StudentID: student.ID, ProgrammeID: pid}
      if lErr := ss.studentRepo.LinkProgramme(ctx, tx, link); lErr != nil {
        return fmt.Errorf("failed to admit student into programme %d: %w", pid, lErr)
      }
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return student, nil
}

func (ss *studentService) GetAllStudents(ctx context.Context) ([]*types.Student, error) {
  return ss.studentRepo.GetAll(ctx, nil)
}

func (ss *studentService) GetStudent(ctx context.Context, id int64) (*types.Student, error) {
  return ss.studentRepo.GetByID(ctx, nil, id)
}

func (ss *studentService) GetStudentByNumber(ctx context.Context, studentID string) (*types.Student, error) {
  return ss.studentRepo.GetByStudentID(ctx, nil, normalization.Trim(studentID))
}

func (ss *studentService) UpdateStudent(ctx context.Context, student *types.Student) error {
  student.Email = normalization.Email(student.Email)
  return ss.studentRepo.Update(ctx, nil, student)
}

func (ss *studentService) AdmitToProgramme(ctx context.Context, studentID, programmeID int64) error {
  if _, sErr := ss.studentRepo.GetByID(ctx, nil, studentID); sErr != nil {
    return fmt.Errorf("student %d not found", studentID)
  }
  link := &types.StudentProgramme{StudentID: studentID, ProgrammeID: programmeID}
  return ss.studentRepo.LinkProgramme(ctx, nil, link)
}

func (ss *studentService) GetAdmittedProgrammes(ctx context.Context, studentID int64) ([]*types.Programme, error) {
  links, lErr := ss.studentRepo.GetProgrammeLinks(ctx, nil, studentID)
  if lErr != nil {
    return nil, fmt.Errorf("failed to load programme links: %w", lErr)
  }
  ids := make([]int64, 0, len(links))
  for _, link := range links {
    ids = append(ids, link.ProgrammeID)
  }
  return ss.programmeRepo.GetByIDs(ctx, nil, ids)
}
