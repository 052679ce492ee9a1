package insurance_test

import (
	"testing"

	"farmadelivery/internal/core/domain/model/insurance"
	"farmadelivery/internal/core/domain/model/kernel"
	"farmadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	t.Run("should create plan", func(t *testing.T) {
		p, err := insurance.NewPlan(kernel.NewUUID(), " OSDE ", "310", "OSDE-310")

		require.NoError(t, err)
		assert.Equal(t, "OSDE", p.Name())
		assert.Equal(t, "310", p.Variant())
		assert.Equal(t, "OSDE-310", p.MemberNumber())
		assert.NoError(t, p.Validate())
	})

	t.Run("should require id, name and member number", func(t *testing.T) {
		_, err := insurance.NewPlan(kernel.UUID{}, "", "", " ")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "member number")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p *insurance.Plan

		assert.Equal(t, insurance.ErrPlanIsNotConstructed, p.Validate())
	})
}
