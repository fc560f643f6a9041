package weave

import (
	"github.com/agenthands/orggraph/internal/core/model"
)

func (w *Weaver) business() error {
	for _, p := range w.entities(model.EntityProcess) {
		if err := w.backRef(model.RelPerforms, p, model.AttrDepartmentID, model.EntityDepartment); err != nil {
			return err
		}
		for _, s := range w.pick(model.EntitySystem, 1, 3) {
			if err := w.sampled(model.RelUses, p.ID, s.ID, nil); err != nil {
				return err
			}
		}
	}

	for _, bc := range w.entities(model.EntityBusinessCapability) {
		for _, p := range w.pick(model.EntityProcess, 1, 2) {
			if err := w.sampled(model.RelEnables, bc.ID, p.ID, nil); err != nil {
				return err
			}
		}
	}

	for _, m := range w.entities(model.EntityMarket) {
		if err := w.ref(model.RelInRegion, m, model.AttrGeographyID, model.EntityGeography); err != nil {
			return err
		}
	}
	for _, c := range w.entities(model.EntityCustomer) {
		if err := w.ref(model.RelSegmentOf, c, model.AttrMarketID, model.EntityMarket); err != nil {
			return err
		}
	}

	for _, p := range w.entities(model.EntityProduct) {
		for _, m := range w.pick(model.EntityMarket, 1, 2) {
			if err := w.sampled(model.RelOfferedIn, p.ID, m.ID, nil); err != nil {
				return err
			}
		}
		for _, c := range w.pick(model.EntityCustomer, 1, 3) {
			if err := w.sampled(model.RelServes, p.ID, c.ID, nil); err != nil {
				return err
			}
		}
		for _, s := range w.pick(model.EntitySystem, 1, 2) {
			if err := w.sampled(model.RelBuiltOn, p.ID, s.ID, nil); err != nil {
				return err
			}
		}
	}

	if err := w.projects(); err != nil {
		return err
	}

	for _, in := range w.entities(model.EntityInitiative) {
		if len(w.heads) > 0 {
			sponsor := w.heads[w.gen.IntN(len(w.heads))]
			if err := w.sampled(model.RelSponsors, sponsor, in.ID, nil); err != nil {
				return err
			}
		}
		for _, bc := range w.pick(model.EntityBusinessCapability, 1, 2) {
			if err := w.sampled(model.RelAdvances, in.ID, bc.ID, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Weaver) projects() error {
	return each(w.entities(model.EntityProject), func(p model.Entity) error {
		if err := w.backRef(model.RelIncludes, p, model.AttrInitiativeID, model.EntityInitiative); err != nil {
			return err
		}
		if err := w.ref(model.RelFundedBy, p, model.AttrCostCenterID, model.EntityCostCenter); err != nil {
			return err
		}
		for _, t := range w.pickAcross(1, model.EntityProduct, model.EntitySystem) {
			if err := w.sampled(model.RelDelivers, p.ID, t.ID, nil); err != nil {
				return err
			}
		}
		if len(w.heads) > 0 && w.gen.Chance(0.3) {
			if err := w.sampled(model.RelSponsors, w.heads[w.gen.IntN(len(w.heads))], p.ID, nil); err != nil {
				return err
			}
		}
		for _, person := range w.pick(model.EntityPerson, 2, 6) {
			if err := w.sampled(model.RelWorksOn, person.ID, p.ID, nil); err != nil {
				return err
			}
		}
		return nil
	})
}
