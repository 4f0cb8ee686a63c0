package member

import (
	"fmt"

	"timehair/internal/domain"
)

var ErrDuplicatePhone = fmt.Errorf("%w: phone number is already registered", domain.ErrValidation)
