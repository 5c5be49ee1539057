// Package sanitize restricts post bodies to the small inline HTML subset the
// blog renders: b, strong, i, em, u and br.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var AllowedTags = []string{"b", "strong", "i", "em", "u", "br"}

type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(AllowedTags...)

	return &Sanitizer{policy: policy}
}

// Content strips every tag and attribute outside the allowed subset.
func (s *Sanitizer) Content(html string) string {
	return s.policy.Sanitize(html)
}
