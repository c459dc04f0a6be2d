package services

import (
  "context"
  "testing"

  "github.com/stretchr/testify/require"
  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/repos"
  "github.com/Teahana/user-enrollment/internal/types"
)

func newStudentFixture(t *testing.T) (StudentService, *gorm.DB) {
  t.Helper()
  gormDB := newTestDB(t)
  log := newTestLogger(t)
  studentRepo := repos.NewStudentRepo(gormDB, log)
  programmeRepo := repos.NewProgrammeRepo(gormDB, log)
  return NewStudentService(gormDB, log, studentRepo, programmeRepo), gormDB
}

func TestCreateStudentWithAdmission(t *testing.T) {
  svc, gormDB := newStudentFixture(t)
  ctx := context.Background()

  bse := &types.Programme{Name: "Software Engineering", ProgrammeCode: "BSE"}
  require.NoError(t, gormDB.Create(bse).Error)

  student := &types.Student{StudentID: "S11001122", FirstName: "Eta", LastName: "Waqa", Email: "S11001122@Student.USP.ac.fj"}
  created, err := svc.CreateStudent(ctx, student, []int64{bse.ID})
  require.NoError(t, err)
  require.Equal(t, "s11001122@student.usp.ac.fj", created.Email)

  programmes, err := svc.GetAdmittedProgrammes(ctx, created.ID)
  require.NoError(t, err)
  require.Len(t, programmes, 1)
  require.Equal(t, "BSE", programmes[0].ProgrammeCode)
}

func TestCreateStudentRequiresNumberAndEmail(t *testing.T) {
  svc, _ := newStudentFixture(t)
  _, err := svc.CreateStudent(context.Background(), &types.Student{StudentID: "S123"}, nil)
  require.Error(t, err)
}

func TestAdmitToProgramme(t *testing.T) {
  svc, gormDB := newStudentFixture(t)
  ctx := context.Background()

  bns := &types.Programme{Name: "Networks and Security", ProgrammeCode: "BNS"}
  require.NoError(t, gormDB.Create(bns).Error)

  student, err := svc.CreateStudent(ctx, &types.Student{StudentID: "S22003344", Email: "s22003344@student.usp.ac.fj"}, nil)
  require.NoError(t, err)

  require.NoError(t, svc.AdmitToProgramme(ctx, student.ID, bns.ID))
  require.Error(t, svc.AdmitToProgramme(ctx, 9999, bns.ID))

  programmes, err := svc.GetAdmittedProgrammes(ctx, student.ID)
  require.NoError(t, err)
  require.Len(t, programmes, 1)
}

func TestGetStudentByNumber(t *testing.T) {
  svc, _ := newStudentFixture(t)
  ctx := context.Background()

  _, err := svc.CreateStudent(ctx, &types.Student{StudentID: "S33004455", Email: "s33004455@student.usp.ac.fj"}, nil)
  require.NoError(t, err)

  found, err := svc.GetStudentByNumber(ctx, " S33004455 ")
  require.NoError(t, err)
  require.Equal(t, "S33004455", found.StudentID)

  _, err = svc.GetStudentByNumber(ctx, "S99999999")
  require.Error(t, err)
}
