package services

import (
  "context"
  "fmt"
  "time"

  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/Teahana/user-enrollment/internal/clients/mermaid"
  redisclient "github.com/Teahana/user-enrollment/internal/clients/redis"
  "github.com/Teahana/user-enrollment/internal/logger"
  "github.com/Teahana/user-enrollment/internal/prereq"
  "github.com/Teahana/user-enrollment/internal/repos"
  "github.com/Teahana/user-enrollment/internal/types"
)

const (
  cacheKeyCourses    = "refdata:courses"
  cacheKeyProgrammes = "refdata:programmes"
  refDataTTL         = 5 * time.Minute
)

// EditorData is everything the prerequisite edit screen needs in one
// response: the candidate courses, the programme list, the supported
// special requirement types, and the course's current flat rows.
type EditorData struct {
  Courses      []*types.Course             `json:"courses"`
  Programmes   []*types.Programme          `json:"programmes"`
  SpecialTypes []types.SpecialPrerequisiteType `json:"specialTypes"`
  Rows         []types.CoursePrerequisite  `json:"prerequisites"`
}

type PrerequisiteService interface {
  GetPrerequisites(ctx context.Context, courseID int64) ([]types.CoursePrerequisite, error)
  AddPrerequisites(ctx context.Context, req *types.FlatPrerequisiteRequest) error
  UpdatePrerequisites(ctx context.Context, req *types.FlatPrerequisiteRequest) error
  DeletePrerequisites(ctx context.Context, courseID int64) error
  Expression(ctx context.Context, courseID int64) (string, error)
  PrerequisiteTree(ctx context.Context, courseID int64) (*prereq.Node, error)
  DiagramSVG(ctx context.Context, courseID int64) (string, error)
  EditorData(ctx context.Context, courseID int64) (*EditorData, error)
}

type prerequisiteService struct {
  db            *gorm.DB
  log           *logger.Logger
  prereqRepo    repos.PrerequisiteRepo
  courseRepo    repos.CourseRepo
  programmeRepo repos.ProgrammeRepo
  cache         redisclient.Cache
  mermaidClient mermaid.Client
}

func NewPrerequisiteService(
  db *gorm.DB,
  log *logger.Logger,
  prereqRepo repos.PrerequisiteRepo,
  courseRepo repos.CourseRepo,
  programmeRepo repos.ProgrammeRepo,
  cache redisclient.Cache,
  mermaidClient mermaid.Client,
) PrerequisiteService {
  return &prerequisiteService{
    db:            db,
    log:           log.With("service", "PrerequisiteService"),
    prereqRepo:    prereqRepo,
    courseRepo:    courseRepo,
    programmeRepo: programmeRepo,
    cache:         cache,
    mermaidClient: mermaidClient,
  }
}

func (ps *prerequisiteService) GetPrerequisites(ctx context.Context, courseID int64) ([]types.CoursePrerequisite, error) {
  return ps.prereqRepo.GetByCourseID(ctx, nil, courseID)
}

func (ps *prerequisiteService) AddPrerequisites(ctx context.Context, req *types.FlatPrerequisiteRequest) error {
  has, hErr := ps.prereqRepo.HasPrerequisites(ctx, nil, req.CourseID)
  if hErr != nil {
    return fmt.Errorf("failed to check existing prerequisites: %w", hErr)
  }
  if has {
    return fmt.Errorf("course already has prerequisites, use update instead")
  }
  return ps.savePrerequisites(ctx, req)
}

func (ps *prerequisiteService) UpdatePrerequisites(ctx context.Context, req *types.FlatPrerequisiteRequest) error {
  return ps.savePrerequisites(ctx, req)
}

// savePrerequisites rebuilds the tree from the submitted rows, prunes
// empty groups, and rejects the save if any remaining group is still
// empty. The stored rows are always the re-flattened form of the pruned
// tree, so reads never see hollow structure.
func (ps *prerequisiteService) savePrerequisites(ctx context.Context, req *types.FlatPrerequisiteRequest) error {
  if req == nil || req.CourseID == 0 {
    return fmt.Errorf("course id is required")
  }
  if _, cErr := ps.courseRepo.GetByID(ctx, nil, req.CourseID); cErr != nil {
    return fmt.Errorf("course %d not found", req.CourseID)
  }

  forest := prereq.Unflatten(req.Prerequisites)
  forest = prereq.PruneForest(forest)
  if !prereq.ValidateForest(forest) {
    return fmt.Errorf("prerequisite groups must not be empty")
  }
  rows := prereq.Flatten(req.CourseID, forest)

  return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return ps.prereqRepo.ReplaceForCourse(ctx, tx, req.CourseID, rows)
  })
}

func (ps *prerequisiteService) DeletePrerequisites(ctx context.Context, courseID int64) error {
  return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return ps.prereqRepo.DeleteByCourseID(ctx, tx, courseID)
  })
}

// Expression renders the course's stored rules as a boolean expression
// string, e.g. "(CS101(Any) AND CS102(Any))".
func (ps *prerequisiteService) Expression(ctx context.Context, courseID int64) (string, error) {
  rows, rErr := ps.prereqRepo.GetByCourseID(ctx, nil, courseID)
  if rErr != nil {
    return "", fmt.Errorf("failed to load prerequisite rows: %w", rErr)
  }
  forest := prereq.Unflatten(rows)

  lookup, lErr := ps.buildLookup(ctx, rows)
  if lErr != nil {
    return "", lErr
  }
  return prereq.RenderForest(forest, lookup), nil
}

// buildLookup resolves every course and programme ID referenced by the
// rows to its code, so rendering never goes back to the database.
func (ps *prerequisiteService) buildLookup(ctx context.Context, rows []types.CoursePrerequisite) (prereq.CodeLookup, error) {
  courseIDSet := map[int64]struct{}{}
  programmeIDSet := map[int64]struct{}{}
  for _, row := range rows {
    if row.PrerequisiteID != nil {
      courseIDSet[*row.PrerequisiteID] = struct{}{}
    }
    if row.ProgrammeID != nil {
      programmeIDSet[*row.ProgrammeID] = struct{}{}
    }
  }

  lookup := prereq.CodeLookup{
    Courses:    map[int64]string{},
    Programmes: map[int64]string{},
  }
  courseIDs := make([]int64, 0, len(courseIDSet))
  for id := range courseIDSet {
    courseIDs = append(courseIDs, id)
  }
  programmeIDs := make([]int64, 0, len(programmeIDSet))
  for id := range programmeIDSet {
    programmeIDs = append(programmeIDs, id)
  }

  courses, cErr := ps.courseRepo.GetByIDs(ctx, nil, courseIDs)
  if cErr != nil {
    return lookup, fmt.Errorf("failed to load prerequisite courses: %w", cErr)
  }
  for _, c := range courses {
    lookup.Courses[c.ID] = c.CourseCode
  }
  programmes, pErr := ps.programmeRepo.GetByIDs(ctx, nil, programmeIDs)
  if pErr != nil {
    return lookup, fmt.Errorf("failed to load prerequisite programmes: %w", pErr)
  }
  for _, p := range programmes {
    lookup.Programmes[p.ID] = p.ProgrammeCode
  }
  return lookup, nil
}

func (ps *prerequisiteService) PrerequisiteTree(ctx context.Context, courseID int64) (*prereq.Node, error) {
  course, cErr := ps.courseRepo.GetByID(ctx, nil, courseID)
  if cErr != nil {
    return nil, fmt.Errorf("course %d not found", courseID)
  }
  expr, eErr := ps.Expression(ctx, courseID)
  if eErr != nil {
    return nil, eErr
  }
  return prereq.ParseExpression(course.CourseCode, expr), nil
}

func (ps *prerequisiteService) DiagramSVG(ctx context.Context, courseID int64) (string, error) {
  course, cErr := ps.courseRepo.GetByID(ctx, nil, courseID)
  if cErr != nil {
    return "", fmt.Errorf("course %d not found", courseID)
  }
  expr, eErr := ps.Expression(ctx, courseID)
  if eErr != nil {
    return "", eErr
  }
  code := prereq.Mermaid(course.CourseCode, expr)
  if ps.mermaidClient == nil {
    return mermaid.PlaceholderSVG, nil
  }
  return ps.mermaidClient.GenerateSVG(ctx, code), nil
}

// EditorData fetches the three reference lists and the course's current
// rows concurrently. Course and programme lists go through the redis
// cache when one is configured.
func (ps *prerequisiteService) EditorData(ctx context.Context, courseID int64) (*EditorData, error) {
  data := &EditorData{SpecialTypes: types.SpecialPrerequisiteTypes()}

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    courses, err := ps.cachedCourses(gctx, courseID)
    if err != nil {
      return fmt.Errorf("failed to load courses: %w", err)
    }
    data.Courses = courses
    return nil
  })
  g.Go(func() error {
    programmes, err := ps.cachedProgrammes(gctx)
    if err != nil {
      return fmt.Errorf("failed to load programmes: %w", err)
    }
    data.Programmes = programmes
    return nil
  })
  g.Go(func() error {
    rows, err := ps.prereqRepo.GetByCourseID(gctx, nil, courseID)
    if err != nil {
      return fmt.Errorf("failed to load prerequisite rows: %w", err)
    }
    data.Rows = rows
    return nil
  })
  if err := g.Wait(); err != nil {
    return nil, err
  }
  return data, nil
}

func (ps *prerequisiteService) cachedCourses(ctx context.Context, exceptID int64) ([]*types.Course, error) {
  var all []*types.Course
  hit := false
  if ps.cache != nil {
    ok, err := ps.cache.GetJSON(ctx, cacheKeyCourses, &all)
    if err != nil {
      ps.log.Warn("Course cache read failed", "error", err)
    }
    hit = ok && err == nil
  }
  if !hit {
    var err error
    all, err = ps.courseRepo.GetAll(ctx, nil)
    if err != nil {
      return nil, err
    }
    if ps.cache != nil {
      if err := ps.cache.SetJSON(ctx, cacheKeyCourses, all, refDataTTL); err != nil {
        ps.log.Warn("Course cache write failed", "error", err)
      }
    }
  }

  // A course can never be its own prerequisite.
  filtered := make([]*types.Course, 0, len(all))
  for _, c := range all {
    if c.ID != exceptID {
      filtered = append(filtered, c)
    }
  }
  return filtered, nil
}

func (ps *prerequisiteService) cachedProgrammes(ctx context.Context) ([]*types.Programme, error) {
  var programmes []*types.Programme
  if ps.cache != nil {
    ok, err := ps.cache.GetJSON(ctx, cacheKeyProgrammes, &programmes)
    if err != nil {
      ps.log.Warn("Programme cache read failed", "error", err)
    } else if ok {
      return programmes, nil
    }
  }
  programmes, err := ps.programmeRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, err
  }
  if ps.cache != nil {
    if err := ps.cache.SetJSON(ctx, cacheKeyProgrammes, programmes, refDataTTL); err != nil {
      ps.log.Warn("Programme cache write failed", "error", err)
    }
  }
  return programmes, nil
}

// InvalidateReferenceData drops the cached course/programme lists, called
// after any course or programme mutation.
func InvalidateReferenceData(ctx context.Context, cache redisclient.Cache, log *logger.Logger) {
  if cache == nil {
    return
  }
  if err := cache.Delete(ctx, cacheKeyCourses, cacheKeyProgrammes); err != nil && log != nil {
    log.Warn("Reference data cache invalidation failed", "error", err)
  }
}
