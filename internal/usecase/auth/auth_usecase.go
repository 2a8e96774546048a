package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/repository"
)

// SessionStore tracks issued session IDs so tokens can be revoked.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (uuid.UUID, error)
	Delete(ctx context.Context, sessionID string) error
}

type AuthUseCase struct {
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	sessions     SessionStore
	jwtSecret    string
	accessExpiry time.Duration
	log          *logrus.Logger
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sessions SessionStore,
	jwtSecret string,
	accessExpiry time.Duration,
	log *logrus.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		sessions:     sessions,
		jwtSecret:    jwtSecret,
		accessExpiry: accessExpiry,
		log:          log,
	}
}

// SignupRequest registers a new account through one of the two login surfaces.
type SignupRequest struct {
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	Surface  domain.Surface `json:"surface" binding:"required"`
}

type LoginRequest struct {
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required"`
	Surface  domain.Surface `json:"surface" binding:"required"`
}

// AuthResponse carries the issued session and the resolved profile.
type AuthResponse struct {
	Token        string          `json:"token"`
	ExpiresAt    time.Time       `json:"expires_at"`
	User         *domain.User    `json:"user"`
	Profile      *domain.Profile `json:"profile"`
	IsNewProfile bool            `json:"is_new_profile"`
}

func (uc *AuthUseCase) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	if !req.Surface.Valid() {
		return nil, domain.ErrInvalidSurface
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.establishSession(ctx, user, req.Surface)
}

func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if !req.Surface.Valid() {
		return nil, domain.ErrInvalidSurface
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.establishSession(ctx, user, req.Surface)
}

// establishSession resolves the profile first so that a role mismatch or a
// failed profile bootstrap never leaves a live session behind.
func (uc *AuthUseCase) establishSession(ctx context.Context, user *domain.User, surface domain.Surface) (*AuthResponse, error) {
	profile, created, err := uc.GetOrCreateProfile(ctx, user, surface)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := uc.issueToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	uc.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    profile.Role,
		"new":     created,
	}).Info("session established")

	return &AuthResponse{
		Token:        token,
		ExpiresAt:    expiresAt,
		User:         user,
		Profile:      profile,
		IsNewProfile: created,
	}, nil
}

// GetOrCreateProfile returns the user's profile, creating it lazily with the
// role implied by the login surface. An existing profile with a different
// role is a hard rejection, never a silent role override.
func (uc *AuthUseCase) GetOrCreateProfile(ctx context.Context, user *domain.User, surface domain.Surface) (*domain.Profile, bool, error) {
	expected := surface.Role()

	profile, err := uc.profileRepo.GetByUserID(ctx, user.ID)
	if err == nil {
		if profile.Role != expected {
			return nil, false, domain.ErrRoleMismatch
		}
		return profile, false, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, false, fmt.Errorf("failed to look up profile: %w", err)
	}

	created := &domain.Profile{
		ID:       uuid.New(),
		UserID:   user.ID,
		Email:    user.Email,
		Username: domain.UsernameFromEmail(user.Email),
		Role:     expected,
		Points:   0,
	}
	if err := uc.profileRepo.Create(ctx, created); err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			// Lost the create race to another session; the winner's row
			// decides the role.
			winner, getErr := uc.profileRepo.GetByUserID(ctx, user.ID)
			if getErr != nil {
				return nil, false, fmt.Errorf("%w: %v", domain.ErrProfileCreation, getErr)
			}
			if winner.Role != expected {
				return nil, false, domain.ErrRoleMismatch
			}
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", domain.ErrProfileCreation, err)
	}

	return created, true, nil
}

func (uc *AuthUseCase) issueToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	sessionID := uuid.NewString()
	now := time.Now()
	expiresAt := now.Add(uc.accessExpiry)

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"jti": sessionID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := uc.sessions.Save(ctx, sessionID, userID, time.Until(expiresAt)); err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ValidateToken checks the signature and that the session was not revoked.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := uc.parseClaims(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return uuid.Nil, fmt.Errorf("token has no session id")
	}

	userID, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return uuid.Nil, err
	}

	if sub, _ := claims["sub"].(string); sub != userID.String() {
		return uuid.Nil, fmt.Errorf("token subject does not match session")
	}

	return userID, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	claims, err := uc.parseClaims(tokenString)
	if err != nil {
		return err
	}
	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return fmt.Errorf("token has no session id")
	}
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *AuthUseCase) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// MeResponse is the authenticated account plus its profile.
type MeResponse struct {
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

func (uc *AuthUseCase) Me(ctx context.Context, userID uuid.UUID) (*MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MeResponse{User: user, Profile: profile}, nil
}
