package auth

import (
	"fmt"

	"timehair/internal/domain"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthorized)
)
