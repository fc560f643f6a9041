package weave

import (
	"github.com/agenthands/orggraph/internal/core/model"
)

func (w *Weaver) security() error {
	for _, v := range w.entities(model.EntityVulnerability) {
		severity := v.Attributes.Str(model.AttrSeverity)
		weight, ok := model.SeverityWeight[severity]
		if !ok {
			weight = model.SeverityWeight[model.LevelMedium]
		}
		for _, s := range w.pick(model.EntitySystem, 1, 3) {
			if err := w.weighted(model.RelAffects, v.ID, s.ID, weight, model.Attributes{
				model.AttrSeverity: model.String(severity),
				model.AttrStatus:   model.String(v.Attributes.Str(model.AttrStatus)),
			}); err != nil {
				return err
			}
		}
	}

	for _, t := range w.entities(model.EntityThreat) {
		for _, target := range w.pickAcross(w.gen.Between(1, 3), model.EntitySystem, model.EntityDataAsset, model.EntitySite) {
			if err := w.sampled(model.RelThreatens, t.ID, target.ID, nil); err != nil {
				return err
			}
		}
		for _, v := range w.pick(model.EntityVulnerability, 1, 2) {
			if err := w.sampled(model.RelExploits, t.ID, v.ID, nil); err != nil {
				return err
			}
		}
		if r, ok := w.gen.Pick(model.EntityRisk); ok {
			if err := w.sampled(model.RelLeadsTo, t.ID, r.ID, nil); err != nil {
				return err
			}
		}
	}

	responders := filter(w.entities(model.EntityTeam), func(t model.Entity) bool {
		tt := t.Attributes.Str(model.AttrTeamType)
		return tt == "Security" || tt == "Incident Response"
	})
	if len(responders) == 0 {
		responders = w.entities(model.EntityTeam)
	}
	return each(w.entities(model.EntityIncident), func(in model.Entity) error {
		for _, s := range w.pick(model.EntitySystem, 1, 2) {
			if err := w.sampled(model.RelDisrupted, in.ID, s.ID, nil); err != nil {
				return err
			}
		}
		for _, cause := range w.pickAcross(1, model.EntityVulnerability, model.EntityThreat) {
			if err := w.sampled(model.RelCausedBy, in.ID, cause.ID, nil); err != nil {
				return err
			}
		}
		if len(responders) > 0 {
			team := responders[w.gen.IntN(len(responders))]
			return w.sampled(model.RelHandledBy, in.ID, team.ID, nil)
		}
		return nil
	})
}
