package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/data/repos"
	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/apperr"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// SlugCache is an optional read-through cache for showcase slug lookups.
// A nil cache disables caching; misses always fall through to the table.
type SlugCache interface {
	GetID(ctx context.Context, slug string) (uuid.UUID, bool, error)
	SetID(ctx context.Context, slug string, id uuid.UUID) error
	Invalidate(ctx context.Context, slug string) error
}

// ShowcaseService composes showcases from existing personas, scenarios,
// and credential definitions. A showcase references at least one persona
// and one scenario at all times; every referenced id is validated before
// the write transaction opens.
type ShowcaseService interface {
	Create(ctx context.Context, input *types.Showcase) (*types.Showcase, error)
	Update(ctx context.Context, id uuid.UUID, input *types.Showcase) (*types.Showcase, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Showcase, error)
	GetIDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
	List(ctx context.Context) ([]*types.Showcase, error)
	ListUnapproved(ctx context.Context) ([]*types.Showcase, error)
	Approve(ctx context.Context, id, approverID uuid.UUID) (*types.Showcase, error)
}

type showcaseService struct {
	db              *gorm.DB
	log             *logger.Logger
	showcaseRepo    repos.ShowcaseRepo
	personaJoinRepo repos.ShowcasePersonaRepo
	scenarioJoinRepo repos.ShowcaseScenarioRepo
	defJoinRepo     repos.ShowcaseCredentialDefinitionRepo
	personaRepo     repos.PersonaRepo
	scenarioRepo    repos.ScenarioRepo
	defRepo         repos.CredentialDefinitionRepo
	assetRepo       repos.AssetRepo
	userRepo        repos.UserRepo
	tenantRepo      repos.TenantRepo
	slugService     SlugService
	graph           *GraphAssembler
	slugCache       SlugCache
}

func NewShowcaseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	showcaseRepo repos.ShowcaseRepo,
	personaJoinRepo repos.ShowcasePersonaRepo,
	scenarioJoinRepo repos.ShowcaseScenarioRepo,
	defJoinRepo repos.ShowcaseCredentialDefinitionRepo,
	personaRepo repos.PersonaRepo,
	scenarioRepo repos.ScenarioRepo,
	defRepo repos.CredentialDefinitionRepo,
	assetRepo repos.AssetRepo,
	userRepo repos.UserRepo,
	tenantRepo repos.TenantRepo,
	slugService SlugService,
	graph *GraphAssembler,
	slugCache SlugCache,
) ShowcaseService {
	serviceLog := baseLog.With("service", "ShowcaseService")
	return &showcaseService{
		db:              db,
		log:             serviceLog,
		showcaseRepo:    showcaseRepo,
		personaJoinRepo: personaJoinRepo,
		scenarioJoinRepo: scenarioJoinRepo,
		defJoinRepo:     defJoinRepo,
		personaRepo:     personaRepo,
		scenarioRepo:    scenarioRepo,
		defRepo:         defRepo,
		assetRepo:       assetRepo,
		userRepo:        userRepo,
		tenantRepo:      tenantRepo,
		slugService:     slugService,
		graph:           graph,
		slugCache:       slugCache,
	}
}

func (s *showcaseService) validate(ctx context.Context, op string, input *types.Showcase) error {
	if input == nil || input.Name == "" {
		return apperr.Validation(op, "name is required")
	}
	if len(input.Personas) == 0 {
		return apperr.Validation(op, "a showcase requires at least one persona")
	}
	if len(input.Scenarios) == 0 {
		return apperr.Validation(op, "a showcase requires at least one scenario")
	}
	switch input.Status {
	case types.ShowcaseStatusActive, types.ShowcaseStatusPending, types.ShowcaseStatusArchived:
	default:
		return apperr.Validation(op, "unknown showcase status: "+input.Status)
	}

	tenants, err := s.tenantRepo.GetByIDs(ctx, nil, []uuid.UUID{input.TenantID})
	if err != nil {
		return apperr.FromDB(op, err)
	}
	if len(tenants) == 0 {
		return apperr.NotFound(op, "tenant", input.TenantID)
	}

	if input.BannerImageID != nil {
		assets, err := s.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{*input.BannerImageID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(assets) == 0 {
			return apperr.NotFound(op, "asset", *input.BannerImageID)
		}
	}
	for _, userID := range []*uuid.UUID{input.CreatedByID, input.ApprovedByID} {
		if userID == nil {
			continue
		}
		users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{*userID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(users) == 0 {
			return apperr.NotFound(op, "user", *userID)
		}
	}
	for _, persona := range input.Personas {
		found, err := s.personaRepo.GetByIDs(ctx, nil, []uuid.UUID{persona.ID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(found) == 0 {
			return apperr.NotFound(op, "persona", persona.ID)
		}
	}
	for _, scenario := range input.Scenarios {
		found, err := s.scenarioRepo.GetByIDs(ctx, nil, []uuid.UUID{scenario.ID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(found) == 0 {
			return apperr.NotFound(op, "scenario", scenario.ID)
		}
	}
	for _, def := range input.CredentialDefinitions {
		found, err := s.defRepo.GetByIDs(ctx, nil, []uuid.UUID{def.ID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(found) == 0 {
			return apperr.NotFound(op, "credential definition", def.ID)
		}
	}
	return nil
}

func (s *showcaseService) insertJoins(ctx context.Context, tx *gorm.DB, showcaseID uuid.UUID, input *types.Showcase) error {
	personaJoins := make([]*types.ShowcasePersona, 0, len(input.Personas))
	for _, persona := range input.Personas {
		personaJoins = append(personaJoins, &types.ShowcasePersona{
			ID:         uuid.New(),
			ShowcaseID: showcaseID,
			PersonaID:  persona.ID,
		})
	}
	if _, err := s.personaJoinRepo.Create(ctx, tx, personaJoins); err != nil {
		return err
	}

	scenarioJoins := make([]*types.ShowcaseScenario, 0, len(input.Scenarios))
	for _, scenario := range input.Scenarios {
		scenarioJoins = append(scenarioJoins, &types.ShowcaseScenario{
			ID:         uuid.New(),
			ShowcaseID: showcaseID,
			ScenarioID: scenario.ID,
		})
	}
	if _, err := s.scenarioJoinRepo.Create(ctx, tx, scenarioJoins); err != nil {
		return err
	}

	defJoins := make([]*types.ShowcaseCredentialDefinition, 0, len(input.CredentialDefinitions))
	for _, def := range input.CredentialDefinitions {
		defJoins = append(defJoins, &types.ShowcaseCredentialDefinition{
			ID:                     uuid.New(),
			ShowcaseID:             showcaseID,
			CredentialDefinitionID: def.ID,
		})
	}
	_, err := s.defJoinRepo.Create(ctx, tx, defJoins)
	return err
}

func (s *showcaseService) deleteJoins(ctx context.Context, tx *gorm.DB, showcaseID uuid.UUID) error {
	if err := s.personaJoinRepo.DeleteByShowcaseIDs(ctx, tx, []uuid.UUID{showcaseID}); err != nil {
		return err
	}
	if err := s.scenarioJoinRepo.DeleteByShowcaseIDs(ctx, tx, []uuid.UUID{showcaseID}); err != nil {
		return err
	}
	return s.defJoinRepo.DeleteByShowcaseIDs(ctx, tx, []uuid.UUID{showcaseID})
}

// expand composes the full nested graph for a batch of showcases. The three
// join tables are read in parallel, keyed by the showcase-id set, then the
// referenced entities are fetched and grouped in memory. Never called
// inside a write transaction.
func (s *showcaseService) expand(ctx context.Context, showcases []*types.Showcase) error {
	if len(showcases) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(showcases))
	for _, showcase := range showcases {
		ids = append(ids, showcase.ID)
	}

	var (
		personaJoins  []*types.ShowcasePersona
		scenarioJoins []*types.ShowcaseScenario
		defJoins      []*types.ShowcaseCredentialDefinition
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		personaJoins, err = s.personaJoinRepo.GetByShowcaseIDs(gctx, nil, ids)
		return err
	})
	g.Go(func() error {
		var err error
		scenarioJoins, err = s.scenarioJoinRepo.GetByShowcaseIDs(gctx, nil, ids)
		return err
	})
	g.Go(func() error {
		var err error
		defJoins, err = s.defJoinRepo.GetByShowcaseIDs(gctx, nil, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	personaIDSet := make(map[uuid.UUID]struct{})
	for _, join := range personaJoins {
		personaIDSet[join.PersonaID] = struct{}{}
	}
	personas, err := s.personaRepo.GetByIDs(ctx, nil, keys(personaIDSet))
	if err != nil {
		return err
	}
	if err := s.graph.ExpandPersonas(ctx, nil, personas); err != nil {
		return err
	}
	personaByID := make(map[uuid.UUID]*types.Persona, len(personas))
	for _, persona := range personas {
		personaByID[persona.ID] = persona
	}

	scenarioIDSet := make(map[uuid.UUID]struct{})
	for _, join := range scenarioJoins {
		scenarioIDSet[join.ScenarioID] = struct{}{}
	}
	scenarios, err := s.scenarioRepo.GetByIDs(ctx, nil, keys(scenarioIDSet))
	if err != nil {
		return err
	}
	if err := s.graph.AssembleScenarios(ctx, nil, scenarios); err != nil {
		return err
	}
	scenarioByID := make(map[uuid.UUID]*types.Scenario, len(scenarios))
	for _, scenario := range scenarios {
		scenarioByID[scenario.ID] = scenario
	}

	defIDSet := make(map[uuid.UUID]struct{})
	for _, join := range defJoins {
		defIDSet[join.CredentialDefinitionID] = struct{}{}
	}
	defs, err := s.defRepo.GetByIDs(ctx, nil, keys(defIDSet))
	if err != nil {
		return err
	}
	if err := s.graph.ExpandDefinitions(ctx, nil, defs); err != nil {
		return err
	}
	defByID := make(map[uuid.UUID]*types.CredentialDefinition, len(defs))
	for _, def := range defs {
		defByID[def.ID] = def
	}

	var bannerIDs []uuid.UUID
	userIDSet := make(map[uuid.UUID]struct{})
	for _, showcase := range showcases {
		if showcase.BannerImageID != nil {
			bannerIDs = append(bannerIDs, *showcase.BannerImageID)
		}
		if showcase.CreatedByID != nil {
			userIDSet[*showcase.CreatedByID] = struct{}{}
		}
		if showcase.ApprovedByID != nil {
			userIDSet[*showcase.ApprovedByID] = struct{}{}
		}
	}
	banners, err := s.assetRepo.GetByIDs(ctx, nil, bannerIDs)
	if err != nil {
		return err
	}
	bannerByID := make(map[uuid.UUID]*types.Asset, len(banners))
	for _, banner := range banners {
		bannerByID[banner.ID] = banner
	}
	users, err := s.userRepo.GetByIDs(ctx, nil, keys(userIDSet))
	if err != nil {
		return err
	}
	userByID := make(map[uuid.UUID]*types.User, len(users))
	for _, user := range users {
		userByID[user.ID] = user
	}

	personasByShowcase := make(map[uuid.UUID][]*types.Persona)
	for _, join := range personaJoins {
		if persona := personaByID[join.PersonaID]; persona != nil {
			personasByShowcase[join.ShowcaseID] = append(personasByShowcase[join.ShowcaseID], persona)
		}
	}
	scenariosByShowcase := make(map[uuid.UUID][]*types.Scenario)
	for _, join := range scenarioJoins {
		if scenario := scenarioByID[join.ScenarioID]; scenario != nil {
			scenariosByShowcase[join.ShowcaseID] = append(scenariosByShowcase[join.ShowcaseID], scenario)
		}
	}
	defsByShowcase := make(map[uuid.UUID][]*types.CredentialDefinition)
	for _, join := range defJoins {
		if def := defByID[join.CredentialDefinitionID]; def != nil {
			defsByShowcase[join.ShowcaseID] = append(defsByShowcase[join.ShowcaseID], def)
		}
	}

	for _, showcase := range showcases {
		showcase.Personas = personasByShowcase[showcase.ID]
		if showcase.Personas == nil {
			showcase.Personas = []*types.Persona{}
		}
		showcase.Scenarios = scenariosByShowcase[showcase.ID]
		if showcase.Scenarios == nil {
			showcase.Scenarios = []*types.Scenario{}
		}
		showcase.CredentialDefinitions = defsByShowcase[showcase.ID]
		if showcase.CredentialDefinitions == nil {
			showcase.CredentialDefinitions = []*types.CredentialDefinition{}
		}
		if showcase.BannerImageID != nil {
			showcase.BannerImage = bannerByID[*showcase.BannerImageID]
		}
		if showcase.CreatedByID != nil {
			showcase.CreatedBy = userByID[*showcase.CreatedByID]
		}
		if showcase.ApprovedByID != nil {
			showcase.ApprovedBy = userByID[*showcase.ApprovedByID]
		}
	}
	return nil
}

func (s *showcaseService) Create(ctx context.Context, input *types.Showcase) (*types.Showcase, error) {
	const op = "ShowcaseService.Create"

	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	showcaseID := uuid.New()
	slug, err := s.slugService.Assign(ctx, nil, (types.Showcase{}).TableName(), input.Name, nil)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *input
		row.ID = showcaseID
		row.Slug = slug
		row.Personas = nil
		row.Scenarios = nil
		row.CredentialDefinitions = nil
		row.BannerImage = nil
		row.Tenant = nil
		row.CreatedBy = nil
		row.ApprovedBy = nil
		if _, err := s.showcaseRepo.Create(ctx, tx, []*types.Showcase{&row}); err != nil {
			return err
		}
		return s.insertJoins(ctx, tx, showcaseID, input)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return s.GetByID(ctx, showcaseID)
}

func (s *showcaseService) Update(ctx context.Context, id uuid.UUID, input *types.Showcase) (*types.Showcase, error) {
	const op = "ShowcaseService.Update"

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	slug, err := s.slugService.Assign(ctx, nil, (types.Showcase{}).TableName(), input.Name, &id)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *input
		row.ID = id
		row.Slug = slug
		row.CreatedAt = existing.CreatedAt
		row.Personas = nil
		row.Scenarios = nil
		row.CredentialDefinitions = nil
		row.BannerImage = nil
		row.Tenant = nil
		row.CreatedBy = nil
		row.ApprovedBy = nil
		if _, err := s.showcaseRepo.Update(ctx, tx, []*types.Showcase{&row}); err != nil {
			return err
		}
		if err := s.deleteJoins(ctx, tx, id); err != nil {
			return err
		}
		return s.insertJoins(ctx, tx, id, input)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}

	s.invalidateSlug(ctx, existing.Slug)
	if slug != existing.Slug {
		s.invalidateSlug(ctx, slug)
	}
	return s.GetByID(ctx, id)
}

func (s *showcaseService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "ShowcaseService.Delete"

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.deleteJoins(ctx, tx, id); err != nil {
			return err
		}
		return s.showcaseRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{id})
	})
	if err != nil {
		return apperr.FromDB(op, err)
	}
	s.invalidateSlug(ctx, existing.Slug)
	return nil
}

func (s *showcaseService) GetByID(ctx context.Context, id uuid.UUID) (*types.Showcase, error) {
	const op = "ShowcaseService.GetByID"

	showcases, err := s.showcaseRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(showcases) == 0 {
		return nil, apperr.NotFound(op, "showcase", id)
	}
	if err := s.expand(ctx, showcases); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return showcases[0], nil
}

func (s *showcaseService) GetIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	const op = "ShowcaseService.GetIDBySlug"

	if s.slugCache != nil {
		id, ok, err := s.slugCache.GetID(ctx, slug)
		if err != nil {
			s.log.Warn("slug cache read failed", "slug", slug, "error", err)
		} else if ok {
			return id, nil
		}
	}

	showcase, err := s.showcaseRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return uuid.Nil, apperr.FromDB(op, err)
	}
	if showcase == nil {
		return uuid.Nil, apperr.New(apperr.CodeNotFound, op, "showcase not found: "+slug, nil)
	}

	if s.slugCache != nil {
		if err := s.slugCache.SetID(ctx, slug, showcase.ID); err != nil {
			s.log.Warn("slug cache write failed", "slug", slug, "error", err)
		}
	}
	return showcase.ID, nil
}

func (s *showcaseService) List(ctx context.Context) ([]*types.Showcase, error) {
	const op = "ShowcaseService.List"

	showcases, err := s.showcaseRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.expand(ctx, showcases); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return showcases, nil
}

func (s *showcaseService) ListUnapproved(ctx context.Context) ([]*types.Showcase, error) {
	const op = "ShowcaseService.ListUnapproved"

	showcases, err := s.showcaseRepo.ListUnapproved(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.expand(ctx, showcases); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return showcases, nil
}

func (s *showcaseService) Approve(ctx context.Context, id, approverID uuid.UUID) (*types.Showcase, error) {
	const op = "ShowcaseService.Approve"

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	approvers, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{approverID})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(approvers) == 0 {
		return nil, apperr.NotFound(op, "user", approverID)
	}

	if err := s.showcaseRepo.SetApproval(ctx, nil, id, approverID, time.Now().UTC()); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return s.GetByID(ctx, id)
}

func (s *showcaseService) invalidateSlug(ctx context.Context, slug string) {
	if s.slugCache == nil || slug == "" {
		return
	}
	if err := s.slugCache.Invalidate(ctx, slug); err != nil {
		s.log.Warn("slug cache invalidation failed", "slug", slug, "error", err)
	}
}
