package user

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/mind-engage/eduhub/internal/validate"
)

type Registration struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	DisplayName string `json:"displayName" validate:"required,min=2,max=80"`
}

type PasswordChange struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// Service holds the account rules on top of a Store.
type Service struct {
	store Store
}

func NewService(s Store) *Service { return &Service{store: s} }

func (s *Service) Register(ctx context.Context, in Registration) (User, error) {
	in.Email = NormalizeEmail(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := validate.Struct(in); err != nil {
		return User{}, err
	}
	u := User{Email: in.Email, DisplayName: in.DisplayName, Role: RoleStudent}
	if err := u.SetPassword(in.Password); err != nil {
		return User{}, err
	}
	return s.store.Create(ctx, u)
}

// Authenticate never reveals whether the email exists.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.store.ByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if !u.CheckPassword(password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, id string, in PasswordChange) error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	u, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.CheckPassword(in.OldPassword) {
		return ErrInvalidCredentials
	}
	if err := u.SetPassword(in.NewPassword); err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, id, u.PasswordHash)
}

func (s *Service) Profile(ctx context.Context, id string) (User, error) {
	return s.store.ByID(ctx, id)
}
