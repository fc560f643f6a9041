package weave

import (
	"github.com/agenthands/orggraph/internal/core/model"
)

// organization places every person in exactly one department, one role of
// that department, one of its teams and its site, then links the static
// structure (teams, roles, departments, sites) read off stored attributes.
func (w *Weaver) organization() error {
	depts := w.entities(model.EntityDepartment)
	sites := w.entities(model.EntitySite)
	persons := w.entities(model.EntityPerson)

	if err := w.housing(depts, sites); err != nil {
		return err
	}
	if err := w.structure(depts); err != nil {
		return err
	}
	if len(depts) == 0 {
		return nil
	}

	deptIndex := make(map[string]int, len(depts))
	weights := make([]float64, len(depts))
	perFunction := map[string]int{}
	for _, d := range depts {
		perFunction[d.Attributes.Str("function")]++
	}
	for i, d := range depts {
		deptIndex[d.ID] = i
		fn := d.Attributes.Str("function")
		weights[i] = w.gen.Profile.DepartmentWeight(fn) / float64(perFunction[fn])
	}

	roles := groupBy(w.entities(model.EntityRole), model.AttrDepartmentID)
	teams := groupBy(w.entities(model.EntityTeam), model.AttrDepartmentID)
	w.members = make([][]string, len(depts))

	for i, p := range persons {
		// The first people seed one department each so every department
		// has a head when headcount allows.
		di := i
		if i >= len(depts) {
			di = w.gen.Weighted(weights)
		}
		d := depts[di]
		head := len(w.members[di]) == 0
		w.deptOf[p.ID] = di
		w.members[di] = append(w.members[di], p.ID)

		if err := w.derived(model.RelWorksIn, p.ID, d.ID, model.Attributes{
			model.AttrEmploymentType: model.String(p.Attributes.Str(model.AttrEmploymentType)),
		}); err != nil {
			return err
		}
		if role, ok := w.roleFor(roles[d.ID], head); ok {
			if err := w.derived(model.RelHasRole, p.ID, role.ID, nil); err != nil {
				return err
			}
		}
		if list := teams[d.ID]; len(list) > 0 {
			t := list[w.gen.IntN(len(list))]
			if err := w.sampled(model.RelMemberOf, p.ID, t.ID, nil); err != nil {
				return err
			}
		}
		if si := w.siteOf[di]; si >= 0 {
			if err := w.derived(model.RelLocatedAt, p.ID, sites[si].ID, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// roleFor picks a role of the department; heads take a management role when
// the department has one.
func (w *Weaver) roleFor(roles []model.Entity, head bool) (model.Entity, bool) {
	if len(roles) == 0 {
		return model.Entity{}, false
	}
	if head {
		for _, r := range roles {
			if m, _ := r.Attributes.Flag(model.AttrIsManagement); m {
				return r, true
			}
		}
	}
	return roles[w.gen.IntN(len(roles))], true
}

// housing assigns each department to a site. The first department sits at
// headquarters; data centers house no departments unless nothing else
// exists.
func (w *Weaver) housing(depts, sites []model.Entity) error {
	w.siteOf = make([]int, len(depts))
	var offices []int
	for i, s := range sites {
		if s.Attributes.Str(model.AttrSiteType) != model.SiteDataCenter {
			offices = append(offices, i)
		}
	}
	if len(offices) == 0 {
		for i := range sites {
			offices = append(offices, i)
		}
	}
	for i, d := range depts {
		if len(offices) == 0 {
			w.siteOf[i] = -1
			continue
		}
		si := offices[0]
		if i > 0 {
			si = offices[w.gen.IntN(len(offices))]
		}
		w.siteOf[i] = si
		if err := w.derived(model.RelHousedAt, d.ID, sites[si].ID, nil); err != nil {
			return err
		}
	}
	return nil
}

func (w *Weaver) structure(depts []model.Entity) error {
	for _, t := range w.entities(model.EntityTeam) {
		if err := w.ref(model.RelPartOf, t, model.AttrDepartmentID, model.EntityDepartment); err != nil {
			return err
		}
	}
	for _, r := range w.entities(model.EntityRole) {
		if err := w.ref(model.RelRoleIn, r, model.AttrDepartmentID, model.EntityDepartment); err != nil {
			return err
		}
	}
	for _, s := range w.entities(model.EntitySite) {
		if err := w.ref(model.RelInRegion, s, model.AttrGeographyID, model.EntityGeography); err != nil {
			return err
		}
	}
	for _, d := range depts {
		if err := w.ref(model.RelFundedBy, d, model.AttrCostCenterID, model.EntityCostCenter); err != nil {
			return err
		}
	}
	return nil
}

// management links each department's first member to the rest of its
// members and to the department. Department heads report to the chief
// executive, the head of the first staffed department. Reports therefore
// point one level up a tree of depth at most two and cannot form a cycle.
func (w *Weaver) management() error {
	depts := w.entities(model.EntityDepartment)
	var ceo string
	w.heads = w.heads[:0]
	for di, members := range w.members {
		if len(members) == 0 {
			continue
		}
		head := members[0]
		w.heads = append(w.heads, head)
		if ceo == "" {
			ceo = head
		} else if err := w.derived(model.RelReportsTo, head, ceo, nil); err != nil {
			return err
		}
		if err := w.derived(model.RelManages, head, depts[di].ID, nil); err != nil {
			return err
		}
		for _, p := range members[1:] {
			if err := w.derived(model.RelReportsTo, p, head, nil); err != nil {
				return err
			}
		}
	}
	return w.teamLeads()
}

// teamLeads makes the first member of each team its manager.
func (w *Weaver) teamLeads() error {
	led := map[string]bool{}
	for _, r := range w.created {
		if r.Type != model.RelMemberOf || led[r.TargetID] {
			continue
		}
		led[r.TargetID] = true
		if err := w.derived(model.RelManages, r.SourceID, r.TargetID, nil); err != nil {
			return err
		}
	}
	return nil
}
