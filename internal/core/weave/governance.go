package weave

import (
	"github.com/agenthands/orggraph/internal/core/model"
)

// ownership gives every system, data asset, policy and risk a personal
// owner, every control an owning team and every process its department.
func (w *Weaver) ownership() error {
	persons := w.entities(model.EntityPerson)
	if len(persons) > 0 {
		for _, t := range []model.EntityType{model.EntitySystem, model.EntityDataAsset, model.EntityPolicy, model.EntityRisk} {
			err := each(w.entities(t), func(e model.Entity) error {
				owner := persons[w.gen.IntN(len(persons))]
				return w.sampled(model.RelOwns, owner.ID, e.ID, nil)
			})
			if err != nil {
				return err
			}
		}
	}

	owners := w.entities(model.EntityTeam)
	if len(owners) == 0 {
		owners = persons
	}
	if len(owners) > 0 {
		err := each(w.entities(model.EntityControl), func(c model.Entity) error {
			return w.sampled(model.RelOwns, owners[w.gen.IntN(len(owners))].ID, c.ID, nil)
		})
		if err != nil {
			return err
		}
	}

	return each(w.entities(model.EntityProcess), func(p model.Entity) error {
		return w.backRef(model.RelOwns, p, model.AttrDepartmentID, model.EntityDepartment)
	})
}

func (w *Weaver) governance() error {
	policies := w.entities(model.EntityPolicy)
	controls := w.entities(model.EntityControl)

	for i, c := range controls {
		if len(policies) > 0 {
			p := policies[i%len(policies)]
			if err := w.sampled(model.RelImplements, c.ID, p.ID, nil); err != nil {
				return err
			}
		}
		for _, r := range w.pick(model.EntityRegulation, 0, 2) {
			if err := w.sampled(model.RelSatisfies, c.ID, r.ID, nil); err != nil {
				return err
			}
		}
	}

	for _, p := range policies {
		for _, t := range w.pickAcross(w.gen.Between(1, 3), model.EntitySystem, model.EntityDataAsset, model.EntityProcess, model.EntityDepartment) {
			if err := w.sampled(model.RelGoverns, p.ID, t.ID, nil); err != nil {
				return err
			}
		}
	}

	for _, r := range w.entities(model.EntityRegulation) {
		for _, t := range w.pickAcross(w.gen.Between(2, 4), model.EntityDepartment, model.EntityProcess, model.EntityDataAsset) {
			if err := w.sampled(model.RelAppliesTo, r.ID, t.ID, nil); err != nil {
				return err
			}
		}
	}

	for _, r := range w.entities(model.EntityRisk) {
		for _, c := range w.pick(model.EntityControl, 1, 3) {
			eff := c.Attributes.Str(model.AttrEffectiveness)
			weight, ok := model.EffectivenessWeight[eff]
			if !ok {
				weight = model.EffectivenessWeight[model.PartiallyEffective]
			}
			if err := w.weighted(model.RelMitigatedBy, r.ID, c.ID, weight, model.Attributes{
				model.AttrEffectiveness: model.String(eff),
			}); err != nil {
				return err
			}
		}
		for _, t := range w.pickAcross(w.gen.Between(1, 2), model.EntityBusinessCapability, model.EntityProcess, model.EntitySystem) {
			if err := w.sampled(model.RelImpacts, r.ID, t.ID, nil); err != nil {
				return err
			}
		}
	}

	return each(w.entities(model.EntityAudit), func(a model.Entity) error {
		for _, t := range w.pickAcross(w.gen.Between(2, 5), model.EntityControl, model.EntityDepartment, model.EntitySystem) {
			if err := w.sampled(model.RelAudits, a.ID, t.ID, nil); err != nil {
				return err
			}
		}
		return nil
	})
}
