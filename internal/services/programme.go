package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  redisclient "github.com/Teahana/user-enrollment/internal/clients/redis"
  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/normalization"
  "github.com/Teahana/user-enrollment/internal/repos"
  "github.com/Teahana/user-enrollment/internal/types"
)

type ProgrammeService interface {
  CreateProgramme(ctx context.Context, programme *types.Programme) (*types.Programme, error)
  GetAllProgrammes(ctx context.Context) ([]*types.Programme, error)
  UpdateProgramme(ctx context.Context, programme *types.Programme) error
  DeleteProgramme(ctx context.Context, id int64) error
}

type programmeService struct {
  db            *gorm.DB
  log           *logger.Logger
  programmeRepo repos.ProgrammeRepo
  cache         redisclient.Cache
}

func NewProgrammeService(
  db *gorm.DB,
  log *logger.Logger,
  programmeRepo repos.ProgrammeRepo,
  cache redisclient.Cache,
) ProgrammeService {
  return &programmeService{
    db:            db,
    log:           log.With("service", "ProgrammeService"),
    programmeRepo: programmeRepo,
    cache:         cache,
  }
}

func (ps *programmeService) CreateProgramme(ctx context.Context, programme *types.Programme) (*types.Programme, error) {
  programme.ProgrammeCode = normalization.Code(programme.ProgrammeCode)
  if programme.ProgrammeCode == "" || programme.Name == "" {
    return nil, fmt.Errorf("programme code and name are required")
  }
  if _, err := ps.programmeRepo.GetByCode(ctx, nil, programme.ProgrammeCode); err == nil {
    return nil, fmt.Errorf("programme code %s already exists", programme.ProgrammeCode)
  }
  if _, err := ps.programmeRepo.Create(ctx, nil, []*types.Programme{programme}); err != nil {
    return nil, fmt.Errorf("failed to create programme: %w", err)
  }
  InvalidateReferenceData(ctx, ps.cache, ps.log)
  return programme, nil
}

func (ps *programmeService) GetAllProgrammes(ctx context.Context) ([]*types.Programme, error) {
  return ps.programmeRepo.GetAll(ctx, nil)
}

func (ps *programmeService) UpdateProgramme(ctx context.Context, programme *types.Programme) error {
  programme.ProgrammeCode = normalization.Code(programme.ProgrammeCode)
  if err := ps.programmeRepo.Update(ctx, nil, programme); err != nil {
    return err
  }
  InvalidateReferenceData(ctx, ps.cache, ps.log)
  return nil
}

func (ps *programmeService) DeleteProgramme(ctx context.Context, id int64) error {
  if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return ps.programmeRepo.Delete(ctx, tx, id)
  }); err != nil {
    return err
  }
  InvalidateReferenceData(ctx, ps.cache, ps.log)
  return nil
}
