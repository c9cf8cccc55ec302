package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/RahulRajeev-0/employee-management-system/internal/common"
	"github.com/RahulRajeev-0/employee-management-system/internal/models"
	"github.com/RahulRajeev-0/employee-management-system/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// SignupInput is the user registration payload.
type SignupInput struct {
	Email     string  `json:"email"`
	Username  *string `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
}

// ProfileUpdateInput carries the partial account update. Nil pointers mean
// "leave unchanged". Picture is an already-uploaded object name.
type ProfileUpdateInput struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
	Picture   *string
}

// SignupValidation aggregates one human-readable message per failing field.
type SignupValidation struct {
	Messages []string
}

func (e *SignupValidation) Error() string {
	return strings.Join(e.Messages, "; ")
}

// AccountService implements signup, login, profile and password operations.
type AccountService interface {
	Signup(ctx context.Context, input SignupInput) error
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, *models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdateInput) (*models.User, *models.Profile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

type accountService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	authSvc     AuthService
	logger      *log.Logger
}

func NewAccountService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, authSvc AuthService, logger *log.Logger) AccountService {
	return &accountService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		authSvc:     authSvc,
		logger:      logger,
	}
}

// Signup validates the registration payload, creates the user with a hashed
// password and seeds the default profile row. Validation failures are
// reported together as a SignupValidation error.
func (s *accountService) Signup(ctx context.Context, input SignupInput) error {
	var messages []string

	if err := common.ValidateEmailFormat(input.Email); err != nil {
		messages = append(messages, fmt.Sprintf("Email: %s", err.Error()))
	} else if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		messages = append(messages, "Email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("email lookup failed: %w", err)
	}

	attributes := map[string]string{
		"email":      input.Email,
		"first name": input.FirstName,
		"last name":  input.LastName,
	}
	if input.Username != nil {
		attributes["username"] = *input.Username
	}
	messages = append(messages, common.ValidatePassword(input.Password, attributes)...)

	if len(messages) > 0 {
		return &SignupValidation{Messages: messages}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hashed),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A unique violation here means the row appeared between validation
		// and insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ConflictError("User with this information already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	profile := &models.Profile{
		ID:      uuid.New(),
		UserID:  user.ID,
		Picture: models.DefaultProfilePicture,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// The profile is recreated lazily on first fetch, so the signup
		// itself still succeeds.
		s.logger.Printf("failed to create profile for user %s: %v", user.ID, err)
	}

	return nil
}

// Authenticate verifies the credentials and returns the matching user.
func (s *accountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, common.ValidationError("", "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ValidationError("email", "invalid email address")
		}
		return nil, fmt.Errorf("email lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ValidationError("password", "invalid password")
	}

	return user, nil
}

// Login authenticates the user and issues a token pair.
func (s *accountService) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	pair, err := s.authSvc.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &models.LoginResult{
		Refresh: pair.Refresh,
		Access:  pair.Access,
		User: models.PublicUser{
			Email:    user.Email,
			Username: user.Username,
		},
	}, nil
}

// GetProfile returns the user and its profile row, creating the profile with
// the default picture if it does not exist yet.
func (s *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, common.NotFoundError("user not found")
		}
		return nil, nil, err
	}

	profile, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return user, profile, nil
}

// UpdateProfile applies the partial update. The picture, when present, is
// saved immediately; the account fields are checked for uniqueness and then
// written in a single statement so a conflict never persists a partial
// change.
func (s *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdateInput) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, common.NotFoundError("user not found")
		}
		return nil, nil, err
	}

	profile, err := s.ensureProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if input.Picture != nil {
		if err := s.profileRepo.UpdatePicture(ctx, userID, *input.Picture); err != nil {
			return nil, nil, fmt.Errorf("failed to save profile picture: %w", err)
		}
		profile.Picture = *input.Picture
	}

	if input.Username != nil && *input.Username != "" {
		taken, err := s.userRepo.UsernameTaken(ctx, *input.Username, userID)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			return nil, nil, common.ValidationError("username", "username already taken")
		}
		user.Username = input.Username
	}

	if input.Email != nil && *input.Email != "" {
		taken, err := s.userRepo.EmailTaken(ctx, *input.Email, userID)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			return nil, nil, common.ValidationError("email", "email already registered")
		}
		user.Email = *input.Email
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, profile, nil
}

// ChangePassword verifies the current password and stores the new hash.
// Previously issued tokens are not revoked.
func (s *accountService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return common.ValidationError("", "current_password and new_password are required")
	}
	if len(newPassword) < common.MinPasswordLength {
		return common.ValidationError("new_password", fmt.Sprintf("New password must be at least %d characters long", common.MinPasswordLength))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NotFoundError("user not found")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return common.ValidationError("current_password", "current password incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

func (s *accountService) ensureProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	profile = &models.Profile{
		ID:      uuid.New(),
		UserID:  userID,
		Picture: models.DefaultProfilePicture,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}
