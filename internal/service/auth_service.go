package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/config"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is the fixed lifetime of a session token.
const SessionTTL = 24 * time.Hour

// Claims extends JWT standard claims with the identity and its role at
// issue time. The role is informational; authorization re-reads the store.
type Claims struct {
	jwt.RegisteredClaims
	UserID string     `json:"user_id"`
	Role   model.Role `json:"role"`
}

// AuthService handles password hashing, registration, login and session tokens.
type AuthService struct {
	users      UserStore
	secret     []byte
	bcryptCost int
	dummyHash  []byte
	now        func() time.Time
	log        zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, users UserStore, log zerolog.Logger) *AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Compared against when the email is unknown so both login failures
	// cost one bcrypt round.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare dummy password hash")
	}
	return &AuthService{
		users:      users,
		secret:     []byte(cfg.JWTSecret),
		bcryptCost: cost,
		dummyHash:  dummy,
		now:        time.Now,
		log:        log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Register stores a new identity. Moderators must carry at least one grant;
// admins never keep any.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" || req.Role == "" {
		return nil, ErrMissingFields
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	grants, err := normalizeGrants(req.Permissions)
	if err != nil {
		return nil, err
	}
	grants, err = grantsForRole(req.Role, grants)
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		Permissions:  grants,
		ProfileImage: strings.TrimSpace(req.ProfileImage),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("identity registered")
	return user, nil
}

// Bootstrap creates the first admin. It refuses once any identity exists.
func (s *AuthService) Bootstrap(ctx context.Context, name, email, password string) (*model.User, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil, ErrAlreadyBootstrapped
	}
	return s.Register(ctx, model.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     model.RoleAdmin,
	})
}

// Login verifies credentials and returns a signed session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.CheckPassword(user.PasswordHash, password); err != nil {
		return "", nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GenerateToken signs a session token for the user, valid for SessionTTL.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		UserID: user.ID,
		Role:   user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Authenticate resolves a presented token to the identity as currently
// stored. A token whose identity was deleted is rejected even while its
// signature and expiry are still valid.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*model.User, *Claims, error) {
	if tokenStr == "" {
		return nil, nil, ErrTokenMissing
	}

	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrTokenInvalid
		}
		return nil, nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeGrants validates each grant and drops duplicates, keeping order.
func normalizeGrants(grants []model.Grant) ([]model.Grant, error) {
	seen := make(map[model.Grant]bool, len(grants))
	out := make([]model.Grant, 0, len(grants))
	for _, g := range grants {
		if !g.Resource.Valid() || !g.Access.Valid() {
			return nil, fmt.Errorf("%w: %s/%s", ErrInvalidGrant, g.Resource, g.Access)
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out, nil
}

// grantsForRole applies the role/permission co-requirement.
func grantsForRole(role model.Role, grants []model.Grant) ([]model.Grant, error) {
	switch role {
	case model.RoleAdmin:
		return nil, nil
	case model.RoleModerator:
		if len(grants) == 0 {
			return nil, ErrPermissionsRequired
		}
		return grants, nil
	default:
		return nil, ErrInvalidRole
	}
}
