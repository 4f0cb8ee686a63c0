package seat

import (
	"fmt"

	"timehair/internal/domain"
)

var (
	ErrSeatOccupied    = fmt.Errorf("%w: seat is occupied", domain.ErrConflict)
	ErrNoActiveSession = fmt.Errorf("%w: no active session on seat", domain.ErrNotFound)
)
