package weave

import (
	"github.com/agenthands/orggraph/internal/core/model"
)

// mirrorState accumulates back-references from the relationships emitted by
// the earlier passes.
type mirrorState struct {
	filledBy   map[string][]string // role -> persons
	holds      map[string][]string // person -> roles
	locatedAt  map[string]string   // person -> site
	occupants  map[string]int      // site -> persons
	deptOf     map[string]string   // person -> department
	headcount  map[string]int      // department -> persons
	managerOf  map[string]string   // person -> manager
	headOf     map[string]string   // department -> head
	vulns      map[string][]string // system -> vulnerabilities
	openVulns  map[string]int      // system -> open vulnerabilities
	mitigates  map[string][]string // control -> risks
	vulnState  map[string]string   // vulnerability -> status
	deptTarget map[string]bool
}

func (w *Weaver) collectMirror() *mirrorState {
	m := &mirrorState{
		filledBy:   map[string][]string{},
		holds:      map[string][]string{},
		locatedAt:  map[string]string{},
		occupants:  map[string]int{},
		deptOf:     map[string]string{},
		headcount:  map[string]int{},
		managerOf:  map[string]string{},
		headOf:     map[string]string{},
		vulns:      map[string][]string{},
		openVulns:  map[string]int{},
		mitigates:  map[string][]string{},
		vulnState:  map[string]string{},
		deptTarget: map[string]bool{},
	}
	for _, v := range w.entities(model.EntityVulnerability) {
		m.vulnState[v.ID] = v.Attributes.Str(model.AttrStatus)
	}
	for _, d := range w.entities(model.EntityDepartment) {
		m.deptTarget[d.ID] = true
	}

	for _, r := range w.created {
		switch r.Type {
		case model.RelHasRole:
			m.filledBy[r.TargetID] = append(m.filledBy[r.TargetID], r.SourceID)
			m.holds[r.SourceID] = append(m.holds[r.SourceID], r.TargetID)
		case model.RelLocatedAt:
			m.locatedAt[r.SourceID] = r.TargetID
			m.occupants[r.TargetID]++
		case model.RelWorksIn:
			m.deptOf[r.SourceID] = r.TargetID
			m.headcount[r.TargetID]++
		case model.RelReportsTo:
			m.managerOf[r.SourceID] = r.TargetID
		case model.RelManages:
			if m.deptTarget[r.TargetID] {
				m.headOf[r.TargetID] = r.SourceID
			}
		case model.RelAffects:
			m.vulns[r.TargetID] = append(m.vulns[r.TargetID], r.SourceID)
			if model.OpenVulnerability(m.vulnState[r.SourceID]) {
				m.openVulns[r.TargetID]++
			}
		case model.RelMitigatedBy:
			m.mitigates[r.TargetID] = append(m.mitigates[r.TargetID], r.SourceID)
		}
	}
	return m
}

// mirror writes the denormalized back-references onto the stored entities.
// Every entity of a mirrored variant is patched, so counts read zero rather
// than absent when nothing points at it.
func (w *Weaver) mirror() error {
	m := w.collectMirror()

	patches := []struct {
		t     model.EntityType
		patch func(id string) model.Attributes
	}{
		{model.EntityRole, func(id string) model.Attributes {
			filled := m.filledBy[id]
			return model.Attributes{
				model.AttrFilledByPersons: model.Strings(filled...),
				model.AttrHeadcountFilled: model.Int(len(filled)),
			}
		}},
		{model.EntityPerson, func(id string) model.Attributes {
			attrs := model.Attributes{model.AttrHoldsRoles: model.Strings(m.holds[id]...)}
			setID(attrs, model.AttrLocatedAt, m.locatedAt[id])
			setID(attrs, model.AttrDepartmentID, m.deptOf[id])
			setID(attrs, model.AttrManagerID, m.managerOf[id])
			return attrs
		}},
		{model.EntityDepartment, func(id string) model.Attributes {
			attrs := model.Attributes{model.AttrHeadcount: model.Int(m.headcount[id])}
			setID(attrs, "head_id", m.headOf[id])
			return attrs
		}},
		{model.EntitySite, func(id string) model.Attributes {
			return model.Attributes{model.AttrOccupantCount: model.Int(m.occupants[id])}
		}},
		{model.EntitySystem, func(id string) model.Attributes {
			return model.Attributes{
				model.AttrVulnerabilityIDs:  model.Strings(m.vulns[id]...),
				model.AttrOpenVulnerability: model.Int(m.openVulns[id]),
			}
		}},
		{model.EntityControl, func(id string) model.Attributes {
			return model.Attributes{model.AttrMitigatesRisks: model.Strings(m.mitigates[id]...)}
		}},
	}

	for _, p := range patches {
		for _, e := range w.entities(p.t) {
			if _, err := w.store.UpdateEntity(e.ID, model.EntityPatch{Attributes: p.patch(e.ID)}); err != nil {
				return err
			}
		}
	}
	return nil
}

func setID(attrs model.Attributes, key, id string) {
	if id != "" {
		attrs[key] = model.String(id)
	}
}
