package retriever

import "testing"

func TestSourceWeightDefaults(t *testing.T) {
	w := SourceWeights{
		"api-spec.md": 1.15,
		"faq.md":      0.95,
	}

	if got := w.Weight("api-spec.md"); got != 1.15 {
		t.Errorf("api-spec.md = %v, want 1.15", got)
	}
	if got := w.Weight("faq.md"); got != 0.95 {
		t.Errorf("faq.md = %v, want 0.95", got)
	}
	if got := w.Weight("unknown.md"); got != 1.0 {
		t.Errorf("unknown source = %v, want neutral 1.0", got)
	}
}

func TestHeadingRulesFirstMatchWins(t *testing.T) {
	rules := HeadingRules{
		{Name: "retries", QueryKeywords: []string{"retry"}, HeadingKeywords: []string{"retry"}, Boost: 1.3},
		{Name: "auth", QueryKeywords: []string{"auth"}, HeadingKeywords: []string{"auth"}, Boost: 1.2},
	}

	// Query matches both families; heading matches both. Only the first
	// rule in list order applies.
	got := rules.Weight("Retry and Auth Semantics", "how do retry and auth interact")
	if got != 1.3 {
		t.Errorf("first-match weight = %v, want 1.3", got)
	}
}

func TestHeadingRulesQueryAndHeadingMustBothMatch(t *testing.T) {
	rules := HeadingRules{
		{Name: "retries", QueryKeywords: []string{"retry"}, HeadingKeywords: []string{"retry"}, Boost: 1.3},
	}

	if got := rules.Weight("Authentication", "retry policy"); got != 1.0 {
		t.Errorf("heading without keyword = %v, want 1.0", got)
	}
	if got := rules.Weight("Retry Policy", "webhooks"); got != 1.0 {
		t.Errorf("query without keyword = %v, want 1.0", got)
	}
}

func TestHeadingRulesCaseInsensitive(t *testing.T) {
	rules := HeadingRules{
		{Name: "rate", QueryKeywords: []string{"rate limit"}, HeadingKeywords: []string{"rate"}, Boost: 1.25},
	}

	if got := rules.Weight("RATE LIMITS", "What is the Rate Limit?"); got != 1.25 {
		t.Errorf("case-insensitive match = %v, want 1.25", got)
	}
}

func TestHeadingRulesOutOfVocabulary(t *testing.T) {
	rules := HeadingRules{
		{Name: "retries", QueryKeywords: []string{"retry"}, HeadingKeywords: []string{"retry"}, Boost: 1.3},
	}

	if got := rules.Weight("Retry Policy", "completely unrelated question"); got != 1.0 {
		t.Errorf("out-of-vocabulary query = %v, want neutral 1.0", got)
	}
}
