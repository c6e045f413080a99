package services

import (
	"context"
	"errors"
	"strings"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/repositories"
	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/pkg/auth"
	"github.com/xcursi322/prakt/pkg/logger"
	"github.com/xcursi322/prakt/pkg/rbac"
)

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Username             string `json:"username"              validate:"required,alpha_dash,min=3,max=150"`
	Email                string `json:"email"                 validate:"required,email,max=254"`
	FirstName            string `json:"first_name"            validate:"nullable,max=100"`
	LastName             string `json:"last_name"             validate:"nullable,max=100"`
	Password             string `json:"password"              validate:"required,min=8,max=128"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
}

func (in *RegisterInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
}

// LoginInput is the login form, shared by the web and API logins.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is the profile form.
type ProfileInput struct {
	FirstName  string `json:"first_name"  validate:"nullable,max=100"`
	LastName   string `json:"last_name"   validate:"nullable,max=100"`
	Email      string `json:"email"       validate:"required,email,max=254"`
	Phone      string `json:"phone"       validate:"nullable,max=32"`
	Address    string `json:"address"     validate:"nullable,max=255"`
	City       string `json:"city"        validate:"nullable,max=100"`
	PostalCode string `json:"postal_code" validate:"nullable,max=20"`
}

func (in *ProfileInput) Normalize() {
	for _, f := range []*string{&in.FirstName, &in.LastName, &in.Phone, &in.Address, &in.City, &in.PostalCode} {
		*f = strings.TrimSpace(*f)
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// AuthService handles customer registration, login and profile updates.
type AuthService struct {
	customers *repositories.CustomerRepository
}

func NewAuthService() *AuthService {
	return &AuthService{customers: repositories.NewCustomerRepository()}
}

// Register creates an active, non-admin customer.
func (s *AuthService) Register(in RegisterInput) (models.Customer, error) {
	errs := FieldErrors{}
	taken, err := s.customers.UsernameTaken(in.Username)
	if err != nil {
		return models.Customer{}, err
	}
	if taken {
		errs["username"] = "A user with that username already exists."
	}
	taken, err = s.customers.EmailTaken(in.Email, 0)
	if err != nil {
		return models.Customer{}, err
	}
	if taken {
		errs["email"] = "A user with that email already exists."
	}
	if len(errs) > 0 {
		return models.Customer{}, errs
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.Customer{}, err
	}

	c := models.Customer{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
	}
	if err := s.customers.Create(&c); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

// Authenticate checks the credentials. A password stored in a legacy form
// is replaced by a bcrypt hash as soon as it matches.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.Customer, error) {
	c, err := s.customers.FindByUsername(strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return models.Customer{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Customer{}, err
	}

	switch auth.VerifyPassword(c.Password, password, config.LegacyPasswordUpgrade()) {
	case auth.PasswordMismatch:
		return models.Customer{}, ErrInvalidCredentials
	case auth.PasswordNeedsRehash:
		hash, err := auth.HashPassword(password)
		if err != nil {
			return models.Customer{}, err
		}
		if err := s.customers.UpdatePassword(c.ID, hash); err != nil {
			return models.Customer{}, err
		}
		c.Password = hash
		logger.WithCtx(ctx).Info("legacy password upgraded", "customer_id", c.ID)
	}

	if !c.IsActive {
		return models.Customer{}, ErrInactive
	}
	return c, nil
}

// IssueToken authenticates and returns an API token.
func (s *AuthService) IssueToken(ctx context.Context, in LoginInput) (string, models.Customer, error) {
	c, err := s.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return "", models.Customer{}, err
	}
	token, err := auth.GenerateToken(c.ID, rbac.RoleFor(c.IsAdmin))
	return token, c, err
}

// Customer loads an active customer.
func (s *AuthService) Customer(id uint) (models.Customer, error) {
	c, err := s.customers.FindByID(id)
	if err != nil {
		return models.Customer{}, err
	}
	if !c.IsActive {
		return models.Customer{}, ErrInactive
	}
	return c, nil
}

// UpdateProfile saves the profile form. The email must stay unique.
func (s *AuthService) UpdateProfile(id uint, in ProfileInput) (models.Customer, error) {
	taken, err := s.customers.EmailTaken(in.Email, id)
	if err != nil {
		return models.Customer{}, err
	}
	if taken {
		return models.Customer{}, FieldErrors{"email": "A user with that email already exists."}
	}

	err = s.customers.Update(id, map[string]interface{}{
		"first_name":  in.FirstName,
		"last_name":   in.LastName,
		"email":       in.Email,
		"phone":       in.Phone,
		"address":     in.Address,
		"city":        in.City,
		"postal_code": in.PostalCode,
	})
	if err != nil {
		return models.Customer{}, err
	}
	return s.customers.FindByID(id)
}
