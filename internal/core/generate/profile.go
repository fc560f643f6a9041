package generate

import (
	"errors"
	"fmt"
	"time"
)

// Industries with a dedicated regulation set.
const (
	IndustryFinancial     = "financial_services"
	IndustryHealthcare    = "healthcare"
	IndustryTechnology    = "technology"
	IndustryManufacturing = "manufacturing"
	IndustryRetail        = "retail"
)

// DefaultAsOf is the fixed reference date of generated timestamps.
var DefaultAsOf = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Profile configures a generation run. It is read-only once a Context has
// been built from it.
type Profile struct {
	// Scale is the organization headcount.
	Scale    int    `toml:"scale" json:"scale"`
	Seed     uint64 `toml:"seed" json:"seed"`
	Industry string `toml:"industry" json:"industry"`
	// ContractorFraction is the share of people hired as contractors.
	ContractorFraction float64 `toml:"contractor_fraction" json:"contractor_fraction"`
	// DepartmentFractions weights headcount per department function.
	// Functions not listed get defaultDepartmentWeight.
	DepartmentFractions map[string]float64 `toml:"department_fractions" json:"department_fractions,omitempty"`
	AsOf                time.Time          `toml:"as_of" json:"as_of"`
}

// DefaultProfile returns a technology-company profile at the given scale.
func DefaultProfile(scale int, seed uint64) Profile {
	return Profile{
		Scale:              scale,
		Seed:               seed,
		Industry:           IndustryTechnology,
		ContractorFraction: 0.15,
		DepartmentFractions: map[string]float64{
			"Engineering":      0.30,
			"Operations":       0.12,
			"Sales":            0.12,
			"Customer Support": 0.10,
			"Finance":          0.06,
			"Human Resources":  0.04,
			"Legal":            0.03,
			"Security":         0.05,
			"Marketing":        0.06,
			"Product":          0.06,
			"Data":             0.06,
		},
		AsOf: DefaultAsOf,
	}
}

// Validate reports profile values no run can use.
func (p Profile) Validate() error {
	var errs []error
	if p.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale must be at least 1, got %d", p.Scale))
	}
	if p.ContractorFraction < 0 || p.ContractorFraction > 1 {
		errs = append(errs, fmt.Errorf("contractor_fraction must be in [0,1], got %v", p.ContractorFraction))
	}
	if _, ok := regulationsByIndustry[p.industry()]; !ok {
		errs = append(errs, fmt.Errorf("unknown industry %q", p.Industry))
	}
	for fn, w := range p.DepartmentFractions {
		if w < 0 {
			errs = append(errs, fmt.Errorf("department fraction for %q is negative", fn))
		}
	}
	return errors.Join(errs...)
}

func (p Profile) industry() string {
	if p.Industry == "" {
		return IndustryTechnology
	}
	return p.Industry
}

func (p Profile) asOf() time.Time {
	if p.AsOf.IsZero() {
		return DefaultAsOf
	}
	return p.AsOf.UTC()
}

const defaultDepartmentWeight = 0.05

// DepartmentWeight returns the headcount weight of a department function.
func (p Profile) DepartmentWeight(function string) float64 {
	if w, ok := p.DepartmentFractions[function]; ok {
		return w
	}
	return defaultDepartmentWeight
}

// fingerprint feeds the profile into the second PCG seed word so two
// profiles sharing a seed still diverge.
func (p Profile) fingerprint() string {
	return fmt.Sprintf("%d|%s|%.6f|%s", p.Scale, p.industry(), p.ContractorFraction, p.asOf().Format(time.RFC3339))
}
