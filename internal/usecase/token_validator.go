package usecase

import (
	"table-reservation/internal/domain/user"
	"table-reservation/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Identity is the authenticated caller behind a bearer token. Guests have none.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

// TokenValidator resolves bearer tokens issued by the identity provider.
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

func (v *jwtTokenValidator) ValidateToken(tokenString string) (Identity, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.UserID, Role: role}, nil
}
