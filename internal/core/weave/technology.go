package weave

import (
	"github.com/agenthands/orggraph/internal/core/model"
)

const maxDependencies = 3

func (w *Weaver) technology() error {
	systems := w.entities(model.EntitySystem)
	if len(systems) == 0 {
		return nil
	}
	networks := w.entities(model.EntityNetwork)
	dataCenters := filter(w.entities(model.EntitySite), func(s model.Entity) bool {
		return s.Attributes.Str(model.AttrSiteType) == model.SiteDataCenter
	})
	if len(dataCenters) == 0 {
		dataCenters = w.entities(model.EntitySite)
	}

	for i, s := range systems {
		// Dependencies only point at earlier systems, so DEPENDS_ON is a DAG.
		for _, j := range w.gen.Sample(i, w.gen.Between(0, min(i, maxDependencies))) {
			dep := systems[j]
			if err := w.sampled(model.RelDependsOn, s.ID, dep.ID, model.Attributes{
				model.AttrCriticality: model.String(dep.Attributes.Str(model.AttrCriticality)),
			}); err != nil {
				return err
			}
		}
		if len(networks) > 0 {
			for _, n := range w.pick(model.EntityNetwork, 1, 2) {
				if err := w.sampled(model.RelConnectsTo, s.ID, n.ID, nil); err != nil {
					return err
				}
			}
		}
		if hosting := s.Attributes.Str(model.AttrHosting); len(dataCenters) > 0 && (hosting == "On-Premises" || hosting == "Hybrid") {
			dc := dataCenters[w.gen.IntN(len(dataCenters))]
			if err := w.sampled(model.RelHostedAt, s.ID, dc.ID, nil); err != nil {
				return err
			}
		}
		for _, bc := range w.pick(model.EntityBusinessCapability, 1, 2) {
			if err := w.sampled(model.RelSupports, s.ID, bc.ID, nil); err != nil {
				return err
			}
		}
	}

	for _, in := range w.entities(model.EntityIntegration) {
		for _, end := range []struct{ key, direction string }{
			{model.AttrSourceSystemID, "source"},
			{model.AttrTargetSystemID, "target"},
		} {
			id := in.Attributes.Str(end.key)
			if t, ok := w.gen.TypeOf(id); !ok || t != model.EntitySystem {
				continue
			}
			if err := w.derived(model.RelIntegrates, in.ID, id, model.Attributes{
				"direction": model.String(end.direction),
			}); err != nil {
				return err
			}
		}
	}

	// Each data asset lives in exactly one system, databases first.
	stores := filter(systems, func(s model.Entity) bool {
		return s.Attributes.Str(model.AttrSystemType) == "Database"
	})
	if len(stores) == 0 {
		stores = systems
	}
	return each(w.entities(model.EntityDataAsset), func(a model.Entity) error {
		s := stores[w.gen.IntN(len(stores))]
		return w.sampled(model.RelStores, s.ID, a.ID, nil)
	})
}

// data links data flows to the systems and asset recorded on them and files
// assets and flows under their domain.
func (w *Weaver) data() error {
	for _, f := range w.entities(model.EntityDataFlow) {
		if err := w.ref(model.RelFlowsFrom, f, model.AttrSourceSystemID, model.EntitySystem); err != nil {
			return err
		}
		if err := w.ref(model.RelFlowsTo, f, model.AttrTargetSystemID, model.EntitySystem); err != nil {
			return err
		}
		if err := w.ref(model.RelCarries, f, model.AttrDataAssetID, model.EntityDataAsset); err != nil {
			return err
		}
		if err := w.ref(model.RelInDomain, f, model.AttrDomainID, model.EntityDataDomain); err != nil {
			return err
		}
	}
	return each(w.entities(model.EntityDataAsset), func(a model.Entity) error {
		return w.ref(model.RelInDomain, a, model.AttrDomainID, model.EntityDataDomain)
	})
}
