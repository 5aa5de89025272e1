package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/arkenix/client-portal/internal/domain/account"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	ClientID    string    `json:"client_id"`
	Username    string    `json:"username"`
	CompanyName string    `json:"company_name,omitempty"`
}

type Login interface {
	Execute(ctx context.Context, in LoginInput) (LoginOutput, error)
}

type login struct {
	repo   domain.Repository
	tokens *TokenIssuer
}

func NewLogin(repo domain.Repository, tokens *TokenIssuer) Login {
	return &login{repo: repo, tokens: tokens}
}

func (uc *login) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return LoginOutput{}, ErrInvalidCredentials
	}

	acc, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return LoginOutput{}, ErrInvalidCredentials
		}
		return LoginOutput{}, fmt.Errorf("%w: %v", ErrLogin, err)
	}
	if !passwordMatches(acc.Password, in.Password) {
		return LoginOutput{}, ErrInvalidCredentials
	}

	session := domain.Session{ClientID: acc.ClientID, Username: acc.Username}
	token, expiresAt, err := uc.tokens.Sign(session)
	if err != nil {
		return LoginOutput{}, fmt.Errorf("%w: %v", ErrLogin, err)
	}

	return LoginOutput{
		Token:       token,
		ExpiresAt:   expiresAt,
		ClientID:    acc.ClientID,
		Username:    acc.Username,
		CompanyName: acc.CompanyName,
	}, nil
}
