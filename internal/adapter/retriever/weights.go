package retriever

import "strings"

// SourceWeights maps source identifiers to an authority multiplier. Canonical
// specification sources sit above 1.0, secondary material below. Unknown
// sources are neutral.
type SourceWeights map[string]float64

// Weight returns the multiplier for source, defaulting to 1.0.
func (w SourceWeights) Weight(source string) float64 {
	if v, ok := w[source]; ok && v > 0 {
		return v
	}
	return 1.0
}

// HeadingRule boosts chunks whose heading matches a query's detected intent.
// A rule fires when the query contains any of QueryKeywords and the heading
// contains any of HeadingKeywords, both case-insensitive substring checks.
type HeadingRule struct {
	Name            string   `yaml:"name"`
	QueryKeywords   []string `yaml:"query_keywords"`
	HeadingKeywords []string `yaml:"heading_keywords"`
	Boost           float64  `yaml:"boost"`
}

// HeadingRules is an ordered rule table. Only the first rule that fully
// matches supplies the multiplier; later matches are ignored.
type HeadingRules []HeadingRule

// Weight returns the first matching rule's boost, or 1.0 when no rule fires.
func (rules HeadingRules) Weight(heading, query string) float64 {
	h := strings.ToLower(heading)
	q := strings.ToLower(query)
	for _, r := range rules {
		if r.Boost <= 0 {
			continue
		}
		if containsAny(q, r.QueryKeywords) && containsAny(h, r.HeadingKeywords) {
			return r.Boost
		}
	}
	return 1.0
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
