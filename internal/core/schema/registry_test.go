package schema

import (
	"errors"
	"testing"

	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversEveryConstrainedVariant(t *testing.T) {
	reg := Default()
	for _, rt := range model.RelationshipTypes {
		_, ok := reg.Allowed(rt)
		if rt == model.RelRelatedTo {
			assert.False(t, ok, "RELATED_TO is open")
			continue
		}
		assert.True(t, ok, "missing constraint for %s", rt)
	}
}

func TestDefault_OnlyDeclaresKnownVariants(t *testing.T) {
	reg := Default()
	for _, rt := range reg.Types() {
		require.True(t, rt.Valid(), rt)
		c, _ := reg.Allowed(rt)
		for _, et := range append(c.Sources, c.Targets...) {
			assert.True(t, et.Valid(), "%s references unknown entity type %s", rt, et)
		}
	}
}

func TestValidate(t *testing.T) {
	reg := Default()

	assert.NoError(t, reg.Validate(model.RelWorksIn, model.EntityPerson, model.EntityDepartment))
	assert.NoError(t, reg.Validate(model.RelManages, model.EntityPerson, model.EntityTeam))

	err := reg.Validate(model.RelWorksIn, model.EntitySystem, model.EntityDepartment)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrViolation))

	var v *Violation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, SideSource, v.Side)
	assert.Equal(t, model.EntitySystem, v.Got)
	assert.Equal(t, []model.EntityType{model.EntityPerson}, v.Allowed)
	assert.Contains(t, err.Error(), "WORKS_IN source must be one of [Person], got System")

	err = reg.Validate(model.RelWorksIn, model.EntityPerson, model.EntityTeam)
	require.True(t, errors.As(err, &v))
	assert.Equal(t, SideTarget, v.Side)
	assert.Equal(t, []model.EntityType{model.EntityDepartment}, v.Allowed)
}

func TestValidate_OpenWorldDefault(t *testing.T) {
	reg := Default()
	assert.NoError(t, reg.Validate(model.RelRelatedTo, model.EntityVendor, model.EntityMarket))

	empty := New(nil)
	assert.NoError(t, empty.Validate(model.RelWorksIn, model.EntitySystem, model.EntityRisk))
}

func TestAllowed_ReturnsCopies(t *testing.T) {
	reg := Default()
	c, ok := reg.Allowed(model.RelWorksIn)
	require.True(t, ok)
	c.Sources[0] = model.EntitySystem

	again, _ := reg.Allowed(model.RelWorksIn)
	assert.Equal(t, model.EntityPerson, again.Sources[0])
}

func TestNew_CopiesTable(t *testing.T) {
	table := map[model.RelationshipType]Constraint{
		model.RelOwns: {Sources: []model.EntityType{model.EntityPerson}, Targets: []model.EntityType{model.EntitySystem}},
	}
	reg := New(table)
	table[model.RelOwns].Sources[0] = model.EntityVendor

	assert.NoError(t, reg.Validate(model.RelOwns, model.EntityPerson, model.EntitySystem))
}
