package services

import (
	"context"

	types "github.com/openvp/showcase-backend/internal/domain"
)

// Session resolves the acting user for operations that record a creator or
// approver. The account system owns authentication; this core only asks
// "who is acting right now".
type Session interface {
	CurrentUser(ctx context.Context) (*types.User, error)
}

// StaticSession pins the acting user to a fixed record. Used by the
// bootstrap binary and tests, where no request-scoped identity exists.
type StaticSession struct {
	User *types.User
}

func (s *StaticSession) CurrentUser(ctx context.Context) (*types.User, error) {
	return s.User, nil
}

// EmailSession resolves the acting user by email on every call, so the
// record can be created after wiring (e.g. by the seeder).
type EmailSession struct {
	Email string
	Users UserService
}

func (s *EmailSession) CurrentUser(ctx context.Context) (*types.User, error) {
	if s.Email == "" {
		return nil, nil
	}
	return s.Users.GetByEmail(ctx, s.Email)
}
