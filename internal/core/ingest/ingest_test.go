package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/core/schema"
)

func person(id, name string) model.Entity {
	return model.Entity{
		ID:   id,
		Type: model.EntityPerson,
		Name: name,
		Attributes: model.Attributes{
			"employee_id":            model.String("E" + id),
			model.AttrEmploymentType: model.String(model.Employee),
		},
	}
}

func department(id string) model.Entity {
	return model.Entity{
		ID:         id,
		Type:       model.EntityDepartment,
		Name:       "Department " + id,
		Attributes: model.Attributes{"code": model.String("D-" + id)},
	}
}

func worksIn(id, src, tgt string) model.Relationship {
	return model.Relationship{ID: id, Type: model.RelWorksIn, SourceID: src, TargetID: tgt, Weight: 1, Confidence: 1}
}

func cleanDoc() model.Document {
	return model.Document{
		Entities:      []model.Entity{person("p1", "Ada"), department("d1")},
		Relationships: []model.Relationship{worksIn("r1", "p1", "d1")},
	}
}

func errorFor(t *testing.T, rep Report, field string) *ValidationError {
	t.Helper()
	for _, e := range rep.Errors {
		if e.Field == field {
			return e
		}
	}
	t.Fatalf("no error on %s in %v", field, rep.Errors)
	return nil
}

func TestCommit_CleanDocument(t *testing.T) {
	s := graph.New(schema.Default())
	rep, err := Commit(cleanDoc(), s, Policy{})
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Equal(t, 2, rep.Entities)
	assert.Equal(t, 1, rep.Relationships)
	assert.Equal(t, 2, s.EntityCount())
	assert.Equal(t, 1, s.RelationshipCount())
}

func TestCommit_AllOrNothing(t *testing.T) {
	s := graph.New(schema.Default())
	doc := cleanDoc()
	doc.Relationships = append(doc.Relationships, worksIn("r2", "p1", "ghost"))

	rep, err := Commit(doc, s, Policy{})
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrNotFound)
	assert.False(t, rep.OK())
	assert.Zero(t, s.EntityCount(), "nothing may be written after a failed validation")
	assert.Zero(t, s.RelationshipCount())

	ve := errorFor(t, rep, "target_id")
	assert.Equal(t, 1, ve.Index)
	assert.Equal(t, "relationship", ve.Kind)
}

func TestValidate_EndpointInStore(t *testing.T) {
	s := graph.New(schema.Default())
	_, err := s.AddEntity(department("d9"))
	require.NoError(t, err)

	doc := model.Document{
		Entities:      []model.Entity{person("p1", "Ada")},
		Relationships: []model.Relationship{worksIn("", "p1", "d9")},
	}
	_, rep := Validate(doc, s, Policy{})
	assert.True(t, rep.OK(), "%v", rep.Err())
}

func TestValidate_Entities(t *testing.T) {
	s := graph.New(schema.Default())
	_, err := s.AddEntity(department("taken"))
	require.NoError(t, err)

	noCode := department("d2")
	noCode.Attributes = nil

	doc := model.Document{Entities: []model.Entity{
		{ID: "x", Type: "Spaceship", Name: "Enterprise"},
		person("p1", "  "),
		person("p1", "Twin"),
		department("taken"),
		noCode,
	}}
	_, rep := Validate(doc, s, Policy{})
	require.Len(t, rep.Errors, 5)

	assert.ErrorIs(t, rep.Errors[0], graph.ErrInvalid)
	assert.Equal(t, "entity_type", rep.Errors[0].Field)
	assert.ErrorIs(t, rep.Errors[1], ErrValidation)
	assert.Equal(t, "name", rep.Errors[1].Field)
	assert.ErrorIs(t, rep.Errors[2], graph.ErrConflict)
	assert.Equal(t, 2, rep.Errors[2].Index)
	assert.ErrorIs(t, rep.Errors[3], graph.ErrConflict)
	assert.Contains(t, rep.Errors[3].Reason, "store")
	assert.Equal(t, "attributes.code", rep.Errors[4].Field)
}

func TestValidate_Relationships(t *testing.T) {
	s := graph.New(schema.Default())
	doc := cleanDoc()
	doc.Entities = append(doc.Entities, person("p2", "Grace"))
	doc.Relationships = []model.Relationship{
		{ID: "a", Type: "LIKES", SourceID: "p1", TargetID: "d1"},
		worksIn("b", "p1", "p1"),
		{ID: "c", Type: model.RelWorksIn, SourceID: "p1", TargetID: "d1", Weight: 1.5, Confidence: -0.1},
		worksIn("d", "p1", "p2"),
		worksIn("d", "p2", "d1"),
		{ID: "e", Type: model.RelRelatedTo, SourceID: "d1", TargetID: "p2", Weight: 0.5, Confidence: 0.5},
	}

	_, rep := Validate(doc, s, Policy{})
	var fields []string
	for _, e := range rep.Errors {
		fields = append(fields, e.ID+":"+e.Field)
	}
	assert.Equal(t, []string{
		"a:relationship_type",
		"b:target_id",
		"c:weight",
		"c:confidence",
		"d:relationship_type",
		"d:id",
	}, fields)

	var v *schema.Violation
	require.True(t, errors.As(rep.Errors[4], &v))
	assert.Equal(t, schema.SideTarget, v.Side)
	assert.ErrorIs(t, rep.Errors[4], graph.ErrSchemaViolation)
	assert.ErrorIs(t, rep.Errors[5], graph.ErrConflict)
}

func TestValidate_QuarantinesUnknownKeys(t *testing.T) {
	doc := cleanDoc()
	doc.Entities[0].Attributes["shoe_size"] = model.Int(44)
	doc.Entities[0].Attributes["favourite_color"] = model.String("teal")

	clean, rep := Validate(doc, graph.New(schema.Default()), Policy{})
	require.True(t, rep.OK())
	require.Len(t, rep.Quarantined, 2)
	assert.Equal(t, "favourite_color", rep.Quarantined[0].Key)
	assert.Equal(t, "shoe_size", rep.Quarantined[1].Key)
	assert.Equal(t, "p1", rep.Quarantined[1].EntityID)

	assert.False(t, clean.Entities[0].Attributes.Has("shoe_size"))
	assert.True(t, clean.Entities[0].Attributes.Has("employee_id"))
	assert.True(t, doc.Entities[0].Attributes.Has("shoe_size"), "input document must not be modified")

	s := graph.New(schema.Default())
	_, err := Commit(doc, s, Policy{})
	require.NoError(t, err)
	stored, err := s.GetEntity("p1")
	require.NoError(t, err)
	assert.False(t, stored.Attributes.Has("shoe_size"))
}

func TestValidate_StrictKeys(t *testing.T) {
	doc := cleanDoc()
	doc.Entities[1].Attributes["vibe"] = model.String("calm")

	_, rep := Validate(doc, graph.New(schema.Default()), Policy{StrictKeys: true})
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, "attributes.vibe", rep.Errors[0].Field)
	assert.Empty(t, rep.Quarantined)
	assert.Contains(t, rep.Err().Error(), "entity 1 (d1)")
}
