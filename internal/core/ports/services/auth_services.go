package services

import (
	"context"

	"github.com/digibank/backend/internal/dto"
)

// AuthSvcFacade issues bearer tokens for operator credentials. Everything
// past the login endpoint trusts the token; the core itself performs no
// identity checks.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
