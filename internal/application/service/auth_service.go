package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sangkips/billing-console/pkg/apperror"
	"github.com/sangkips/billing-console/pkg/auth"
	"github.com/sangkips/billing-console/pkg/logger"
)

// AuthService handles operator sign-in
type AuthService struct {
	pinHash string
	tokens  *auth.TokenManager
	log     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(pinHash string, tokens *auth.TokenManager, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		pinHash: pinHash,
		tokens:  tokens,
		log:     log,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Operator string
	PIN      string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Operator    string
	AccessToken string
	ExpiresAt   time.Time
}

// Login verifies the operator PIN and issues a session token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	operator := strings.TrimSpace(input.Operator)
	if operator == "" {
		return nil, apperror.NewFieldValidationError([]apperror.FieldError{
			{Field: "operator", Message: "operator is required"},
		})
	}

	if err := auth.VerifyPIN(s.pinHash, input.PIN); err != nil {
		if !errors.Is(err, auth.ErrPINMismatch) {
			s.log.With(logger.Fields(ctx)...).Error("pin verification failed", zap.Error(err))
		}
		return nil, apperror.ErrInvalidPIN
	}

	token, expiresAt, err := s.tokens.Generate(operator)
	if err != nil {
		return nil, err
	}

	s.log.With(logger.Fields(ctx)...).Info("operator signed in", zap.String("operator", operator))
	return &LoginOutput{
		Operator:    operator,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
