package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yusufkecer/momentum-backend/internal/clock"
	"github.com/yusufkecer/momentum-backend/internal/domain"
)

const (
	minPasswordLength = 6
	// floors for a first-time profile; later updates only need positive values
	minProfileHeightCm = 50
	minProfileWeightKg = 20
)

type UserService struct {
	users UserStore
	clock clock.Clock
}

func NewUserService(users UserStore, clk clock.Clock) *UserService {
	return &UserService{users: users, clock: clk}
}

// Register creates an account with an incomplete profile.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, domain.InvalidInput("name is required")
	}
	if email == "" || password == "" {
		return nil, domain.InvalidInput("email and password are required")
	}
	if !validEmail(email) {
		return nil, domain.InvalidInput("invalid email format")
	}
	if len(password) < minPasswordLength {
		return nil, domain.InvalidInput("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.InvalidInput("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return requireUser(ctx, s.users, userID)
}

// CompleteProfile sets the physical attributes and marks the profile complete.
// Calling it again overwrites the attributes.
func (s *UserService) CompleteProfile(ctx context.Context, userID int64, gender domain.Gender, heightCm, weightKg int) (*domain.User, error) {
	if !gender.Valid() {
		return nil, domain.InvalidInput("gender must be MALE or FEMALE")
	}
	if heightCm < minProfileHeightCm {
		return nil, domain.InvalidInput("height must be at least %d cm", minProfileHeightCm)
	}
	if weightKg < minProfileWeightKg {
		return nil, domain.InvalidInput("weight must be at least %d kg", minProfileWeightKg)
	}
	user, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	user.Gender = gender
	user.HeightCm = heightCm
	user.WeightKg = weightKg
	user.ProfileCompleted = true
	user.UpdatedAt = s.clock.Now()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, heightCm, weightKg int) (*domain.User, error) {
	if err := validateBody(heightCm, weightKg); err != nil {
		return nil, err
	}
	user, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	user.HeightCm = heightCm
	user.WeightKg = weightKg
	user.UpdatedAt = s.clock.Now()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func validateBody(heightCm, weightKg int) error {
	if heightCm <= 0 {
		return domain.InvalidInput("height must be positive")
	}
	if weightKg <= 0 {
		return domain.InvalidInput("weight must be positive")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}
