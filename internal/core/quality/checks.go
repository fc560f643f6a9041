package quality

import (
	"regexp"
	"strings"

	"github.com/agenthands/orggraph/internal/core/model"
)

// minDescriptionLength is the shortest description accepted as real prose.
const minDescriptionLength = 20

var placeholderText = regexp.MustCompile(`(?i)\b(lorem|ipsum|dolor sit|placeholder|tbd|todo|fixme|sample text|description here|n/a)\b|^(test|description|none|null|xxx+)\.?$`)

func riskMath(t *tally, e model.Entity) {
	if e.Type != model.EntityRisk {
		return
	}
	l, okL := e.Attributes.Num(model.AttrInherentLikelihood)
	i, okI := e.Attributes.Num(model.AttrInherentImpact)
	if !okL || !okI {
		return
	}
	want, ok := model.RiskMatrix(int(l), int(i))
	if !ok {
		t.fail(e, "likelihood %v and impact %v are off the 1-5 matrix", l, i)
		return
	}
	got := e.Attributes.Str(model.AttrInherentRiskLevel)
	t.expect(got == want, e, "inherent level %q, matrix gives %q for likelihood %v impact %v", got, want, l, i)
}

func descriptions(t *tally, e model.Entity) {
	d := strings.TrimSpace(e.Description)
	switch {
	case len(d) < minDescriptionLength:
		t.fail(e, "description %q is shorter than %d characters", d, minDescriptionLength)
	case strings.EqualFold(d, strings.TrimSpace(e.Name)):
		t.fail(e, "description repeats the name")
	case placeholderText.MatchString(d):
		t.fail(e, "description %q looks like placeholder text", d)
	default:
		t.pass()
	}
}

// coherence applies the single-entity sanity rules of each variant.
func coherence(t *tally, e model.Entity) {
	a := e.Attributes
	switch e.Type {
	case model.EntitySystem:
		if a.Str(model.AttrSystemType) != model.SystemAppliance {
			return
		}
		techs, _ := a.Get(model.AttrTechnologies).AsStrings()
		var web []string
		for _, tech := range techs {
			if model.IsWebFramework(tech) {
				web = append(web, tech)
			}
		}
		t.expect(len(web) == 0, e, "appliance carries web frameworks %s", strings.Join(web, ", "))

	case model.EntityRole:
		if !a.Has(model.AttrHeadcountFilled) && !a.Has(model.AttrFilledByPersons) {
			return
		}
		filled, _ := a.Get(model.AttrFilledByPersons).AsStrings()
		n, _ := a.Num(model.AttrHeadcountFilled)
		t.expect(int(n) == len(filled), e, "headcount_filled %v but %d persons listed", n, len(filled))

	case model.EntityAudit:
		if !a.Has(model.AttrAuditRating) {
			return
		}
		n, _ := a.Num(model.AttrFindingsCount)
		want := model.AuditRatingFor(int(n))
		got := a.Str(model.AttrAuditRating)
		t.expect(got == want, e, "rating %q with %v findings, expected %q", got, n, want)

	case model.EntityContract:
		start, end := a.Str(model.AttrStartDate), a.Str(model.AttrEndDate)
		if start == "" || end == "" {
			return
		}
		t.expect(start < end, e, "ends %s before it starts %s", end, start)

	case model.EntityVulnerability:
		cvss, ok := a.Num(model.AttrCVSS)
		if !ok {
			return
		}
		want := model.SeverityForCVSS(cvss)
		got := a.Str(model.AttrSeverity)
		t.expect(got == want, e, "severity %q for CVSS %.1f, expected %q", got, cvss, want)

	case model.EntityDataAsset:
		pii, _ := a.Flag(model.AttrContainsPII)
		if !pii {
			return
		}
		class := a.Str(model.AttrClassification)
		t.expect(model.Sensitive(class), e, "holds personal data but is classified %q", class)
	}
}

// crossField checks rules spanning two attributes of one entity.
func crossField(t *tally, e model.Entity) {
	a := e.Attributes
	switch e.Type {
	case model.EntityRisk:
		inherent, residual := a.Str(model.AttrInherentRiskLevel), a.Str(model.AttrResidualRiskLevel)
		if inherent == "" || residual == "" {
			return
		}
		t.expect(model.LevelRank(residual) <= model.LevelRank(inherent), e,
			"residual level %s exceeds inherent %s", residual, inherent)

	case model.EntitySite:
		if a.Str(model.AttrSiteType) != model.SiteDataCenter {
			return
		}
		tier := a.Str(model.AttrSecurityTier)
		t.expect(tier == model.TierRestricted, e, "data center has %q security tier, expected %s", tier, model.TierRestricted)

	case model.EntityVulnerability:
		patch, ok := a.Flag(model.AttrPatchAvailable)
		if !ok {
			return
		}
		status := a.Str(model.AttrStatus)
		t.expect(patch || status != model.StatusPatched, e, "status %s without an available patch", status)
	}
}

func encryption(t *tally, e model.Entity) {
	if e.Type != model.EntityDataFlow {
		return
	}
	class := e.Attributes.Str(model.AttrClassification)
	if !model.Sensitive(class) {
		return
	}
	enc, _ := e.Attributes.Flag(model.AttrEncryptedInTransit)
	t.expect(enc, e, "%s flow is not encrypted in transit", class)
}
