package scenario

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mipractice/internal/domain"
)

// ValidateCatalog checks a Catalog for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateCatalog(c *Catalog) []error {
	var errs []error

	if len(c.Templates) == 0 {
		errs = append(errs, fmt.Errorf("at least one template is required"))
	}
	if len(c.Names) == 0 {
		errs = append(errs, fmt.Errorf("at least one name is required"))
	}
	if len(c.Sexes) == 0 {
		errs = append(errs, fmt.Errorf("at least one sex is required"))
	}

	for i, name := range c.Names {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("names[%d]: empty name", i))
		}
	}
	for i, s := range c.Sexes {
		if s != domain.SexMale && s != domain.SexFemale {
			errs = append(errs, fmt.Errorf("sexes[%d]: unknown sex %q", i, s))
		}
	}

	for i, t := range c.Templates {
		if strings.TrimSpace(t.Topic) == "" {
			errs = append(errs, fmt.Errorf("template[%d]: topic is required", i))
		}
		if strings.TrimSpace(t.PresentingProblem) == "" {
			errs = append(errs, fmt.Errorf("template[%d]: presenting_problem is required", i))
		}
		if strings.TrimSpace(t.ChiefComplaint) == "" {
			errs = append(errs, fmt.Errorf("template[%d]: chief_complaint is required", i))
		}
		if !strings.Contains(t.Background, domain.AgePlaceholder) {
			errs = append(errs, fmt.Errorf("template[%d]: background must contain %s", i, domain.AgePlaceholder))
		}
		if t.AgeRange.Min < 0 {
			errs = append(errs, fmt.Errorf("template[%d]: age_range.min must be non-negative", i))
		}
		if t.AgeRange.Min > t.AgeRange.Max {
			errs = append(errs, fmt.Errorf("template[%d]: age_range.min %d exceeds max %d", i, t.AgeRange.Min, t.AgeRange.Max))
		}
	}

	return errs
}
