package auth

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	autherrors "leavehub/internal/auth/errors"
	"leavehub/internal/shared/apperror"
	"leavehub/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultTokenTTLMinutes = 60

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
}

type service struct {
	repo   Repository
	users  user.Service
	logger *zap.Logger
}

func NewService(repo Repository, users user.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, users: users, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, apperror.Store(err)
	}

	externalID := req.ExternalID
	if externalID == "" {
		externalID = req.Email
	}

	u, err := s.users.GetOrProvision(ctx, externalID, req.DisplayName)
	if err != nil {
		return AuthResponse{}, err
	}

	userID, err := uuid.Parse(u.ID)
	if err != nil {
		return AuthResponse{}, apperror.Store(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("register hash failed", zap.Error(err))
		return AuthResponse{}, apperror.Store(err)
	}

	cred := &Credential{
		ID:           uuid.New(),
		UserID:       userID,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, cred); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return AuthResponse{}, apperror.Store(err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID),
		zap.String("external_id", u.ExternalID),
	)
	return s.issueToken(ctx, u)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	cred, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return AuthResponse{}, apperror.Store(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login rejected: bad password", zap.String("email", req.Email))
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	u, err := s.users.GetByID(ctx, cred.UserID.String())
	if err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("user logged in", zap.String("user_id", u.ID))
	return s.issueToken(ctx, u)
}

// issueToken signs an HS256 access token carrying the identity and the role
// the RBAC layer enforces against.
func (s *service) issueToken(ctx context.Context, u user.UserResponse) (AuthResponse, error) {
	role, err := s.users.ResolveRole(ctx, u.ID)
	if err != nil {
		return AuthResponse{}, err
	}

	ttl := tokenTTL()
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":     u.ID,
		"external_id": u.ExternalID,
		"role":        role,
		"is_admin":    u.IsAdmin,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return AuthResponse{}, apperror.Store(err)
	}

	return AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
		Role:        role,
		User:        u,
	}, nil
}

func tokenTTL() time.Duration {
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultTokenTTLMinutes * time.Minute
}
