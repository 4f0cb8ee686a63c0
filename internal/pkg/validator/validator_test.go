package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"timehair/internal/domain"
)

type sample struct {
	Name     string                   `json:"name" validate:"required"`
	Services []domain.SelectedService `json:"services" validate:"min=1,dive"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	fields := Validate(sample{Services: []domain.SelectedService{{Name: "", Price: -1}}})

	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "required", fields["services[0].name"])
	assert.Equal(t, "gte", fields["services[0].price"])
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(sample{Name: "x", Services: []domain.SelectedService{{Name: "cut", Price: 0}}}))

	err := Check(sample{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "services min")
}
