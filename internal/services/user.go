package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/data/repos"
	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/apperr"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// UserService mirrors identities owned by the account system. Rows here
// are referenced as creators and approvers, never authenticated against.
type UserService interface {
	Create(ctx context.Context, input *types.User) (*types.User, error)
	Update(ctx context.Context, id uuid.UUID, input *types.User) (*types.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
}

type userService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	tenantRepo repos.TenantRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, tenantRepo repos.TenantRepo) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, tenantRepo: tenantRepo}
}

func (s *userService) validate(ctx context.Context, op string, input *types.User) error {
	if input == nil || input.Email == "" {
		return apperr.Validation(op, "email is required")
	}
	if input.TenantID != nil {
		tenants, err := s.tenantRepo.GetByIDs(ctx, nil, []uuid.UUID{*input.TenantID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(tenants) == 0 {
			return apperr.NotFound(op, "tenant", *input.TenantID)
		}
	}
	return nil
}

func (s *userService) Create(ctx context.Context, input *types.User) (*types.User, error) {
	const op = "UserService.Create"

	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	user := *input
	user.ID = uuid.New()
	user.Tenant = nil
	if _, err := s.userRepo.Create(ctx, nil, []*types.User{&user}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return &user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input *types.User) (*types.User, error) {
	const op = "UserService.Update"

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	user := *input
	user.ID = id
	user.CreatedAt = existing.CreatedAt
	user.Tenant = nil
	if _, err := s.userRepo.Update(ctx, nil, []*types.User{&user}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return &user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "UserService.Delete"

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return apperr.FromDB(op, err)
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	const op = "UserService.GetByID"

	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(users) == 0 {
		return nil, apperr.NotFound(op, "user", id)
	}
	return users[0], nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	const op = "UserService.GetByEmail"

	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if user == nil {
		return nil, apperr.New(apperr.CodeNotFound, op, "user not found: "+email, nil)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*types.User, error) {
	const op = "UserService.List"

	users, err := s.userRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return users, nil
}
