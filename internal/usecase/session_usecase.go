package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"employee-portal/internal/kv"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionKeyPrefix = "session:"

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// Claims is the payload of a session token.
type Claims struct {
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string         `json:"token"`
	User      model.Identity `json:"user"`
	ExpiresAt time.Time      `json:"expires_at"`
}

type SessionUsecase struct {
	store
	users    repository.UserRepository
	sessions kv.Store
	cfg      SessionConfig
}

func NewSessionUsecase(users repository.UserRepository, sessions kv.Store, cfg SessionConfig, opts Options) *SessionUsecase {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &SessionUsecase{
		store:    store{opts: opts.withDefaults()},
		users:    users,
		sessions: sessions,
		cfg:      cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *SessionUsecase) Login(ctx context.Context, email, password string) (*Session, error) {
	done := u.begin()
	defer done()

	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	user, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u.issue(ctx, user.Identity())
}

// Register adds a user to the registry and logs them in.
func (u *SessionUsecase) Register(ctx context.Context, email, password string, role model.Role) (*Session, error) {
	done := u.begin()
	defer done()

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if err := u.settle(ctx); err != nil {
		return nil, err
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: u.now(),
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u.issue(ctx, user.Identity())
}

func (u *SessionUsecase) Logout(ctx context.Context, token string) error {
	return u.sessions.Del(ctx, sessionKeyPrefix+token)
}

// Restore returns the identity bound to token.
func (u *SessionUsecase) Restore(ctx context.Context, token string) (*model.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(u.cfg.Secret), nil
	}, jwt.WithTimeFunc(u.now))
	if err != nil || !parsed.Valid {
		return nil, ErrSessionNotFound
	}

	raw, err := u.sessions.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var identity model.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if identity.ID != claims.UserID {
		return nil, ErrSessionNotFound
	}
	return &identity, nil
}

func (u *SessionUsecase) issue(ctx context.Context, identity model.Identity) (*Session, error) {
	now := u.now()
	expires := now.Add(u.cfg.TTL)
	claims := &Claims{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(u.cfg.Secret))
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		return nil, err
	}
	if err := u.sessions.Set(ctx, sessionKeyPrefix+token, string(payload), u.cfg.TTL); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &Session{Token: token, User: identity, ExpiresAt: expires}, nil
}

// Users lists the registry.
func (u *SessionUsecase) Users(ctx context.Context) ([]model.User, error) {
	return u.users.List(ctx)
}
