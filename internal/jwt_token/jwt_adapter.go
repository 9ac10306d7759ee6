package jwttoken

import (
	authmw "assetgate/pkg/platform/middleware/auth"
)

// middlewareValidator narrows JWTService to the claims RequireAuth needs.
type middlewareValidator struct {
	service *JWTService
}

// Middleware returns the validator RequireAuth authenticates admin calls with.
func (s *JWTService) Middleware() authmw.JWTValidator {
	return middlewareValidator{service: s}
}

func (v middlewareValidator) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{Caller: claims.Subject, JTI: claims.ID}, nil
}
