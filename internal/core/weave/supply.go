package weave

import (
	"github.com/agenthands/orggraph/internal/core/model"
)

// supply links vendors to what they supply, their contracts and the risks
// they pose. Contracts cover systems their vendor supplies when there are
// any.
func (w *Weaver) supply() error {
	supplied := map[string][]string{}
	for _, v := range w.entities(model.EntityVendor) {
		for _, t := range w.pickAcross(w.gen.Between(1, 2), model.EntitySystem, model.EntityProduct) {
			if err := w.sampled(model.RelSupplies, v.ID, t.ID, nil); err != nil {
				return err
			}
			if t.Type == model.EntitySystem {
				supplied[v.ID] = append(supplied[v.ID], t.ID)
			}
		}

		rating := v.Attributes.Str(model.AttrVendorRisk)
		if model.LevelRank(rating) >= model.LevelRank(model.LevelHigh) || w.gen.Chance(0.2) {
			if r, ok := w.gen.Pick(model.EntityRisk); ok {
				if err := w.sampled(model.RelPoses, v.ID, r.ID, model.Attributes{
					model.AttrVendorRisk: model.String(rating),
				}); err != nil {
					return err
				}
			}
		}
	}

	persons := w.entities(model.EntityPerson)
	return each(w.entities(model.EntityContract), func(c model.Entity) error {
		if err := w.backRef(model.RelHasContract, c, model.AttrVendorID, model.EntityVendor); err != nil {
			return err
		}
		if ids := supplied[c.Attributes.Str(model.AttrVendorID)]; len(ids) > 0 {
			if err := w.sampled(model.RelCovers, c.ID, ids[w.gen.IntN(len(ids))], nil); err != nil {
				return err
			}
		} else if s, ok := w.gen.Pick(model.EntitySystem); ok {
			if err := w.sampled(model.RelCovers, c.ID, s.ID, nil); err != nil {
				return err
			}
		}
		if len(persons) > 0 {
			return w.sampled(model.RelManagesContract, persons[w.gen.IntN(len(persons))].ID, c.ID, nil)
		}
		return nil
	})
}
