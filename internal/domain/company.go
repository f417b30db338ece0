package domain

import "strings"

// CompanyDescriptor identifies one company to analyze. The name is the
// unique key within a job; the homepage is optional and may be empty.
type CompanyDescriptor struct {
	Name     string
	Homepage string
}

// Validate rejects descriptors that cannot become tasks.
func (c CompanyDescriptor) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidInput
	}
	return nil
}

// RunID builds the persistence key for one company's analysis on a given
// date: lowercase name with spaces replaced by underscores, suffixed with
// the as-of date. Unique per company per day.
func (c CompanyDescriptor) RunID(asOfDate string) string {
	name := strings.ToLower(strings.TrimSpace(c.Name))
	name = strings.ReplaceAll(name, " ", "_")
	return name + "_" + asOfDate
}
