// Package normalize canonicalizes loosely-typed caller payloads into the
// strict call shapes the retrieval core consumes. Remote tool invokers vary
// in how they wrap arguments, so the contract is maximal tolerance on shape
// and zero tolerance on missing semantic content: an absent, empty, or
// non-string query/id is always rejected, never defaulted.
package normalize

import (
	"encoding/json"
	"math"
	"strings"

	"docrag/internal/domain"
)

const (
	DefaultTopK = 8
	MinTopK     = 1
	MaxTopK     = 20
)

// Envelope keys are tried in order at each unwrapping level.
var envelopeKeys = []string{"arguments", "input"}

// shape is a predicate+extractor pair. Shapes are tried in sequence; the
// first one that matches supplies the value.
type shape struct {
	name    string
	extract func(payload any) (string, bool)
}

var searchShapes = []shape{
	{"bare string", bareString},
	{"query field", stringField("query")},
	{"q field", stringField("q")},
}

var fetchShapes = []shape{
	{"bare string", bareString},
	{"id field", stringField("id")},
}

// Search reduces rawPayload to a canonical search call, or rejects it with
// an invalid_query error when no query text can be located.
func Search(rawPayload any) (domain.SearchCall, error) {
	payload := unwrap(rawPayload)

	query, ok := firstMatch(searchShapes, payload)
	if !ok || strings.TrimSpace(query) == "" {
		return domain.SearchCall{}, domain.Taggedf(domain.CodeInvalidQuery, "no query text in payload")
	}

	return domain.SearchCall{Query: query, TopK: topK(payload)}, nil
}

// Fetch reduces rawPayload to a canonical fetch call, or rejects it with an
// invalid_id error.
func Fetch(rawPayload any) (domain.FetchCall, error) {
	payload := unwrap(rawPayload)

	id, ok := firstMatch(fetchShapes, payload)
	if !ok || strings.TrimSpace(id) == "" {
		return domain.FetchCall{}, domain.Taggedf(domain.CodeInvalidID, "no chunk id in payload")
	}

	return domain.FetchCall{ID: id}, nil
}

// unwrap peels known envelope keys until the payload is no longer an object
// carrying one of them.
func unwrap(payload any) any {
	for {
		obj, ok := payload.(map[string]any)
		if !ok {
			return payload
		}
		peeled := false
		for _, key := range envelopeKeys {
			if inner, present := obj[key]; present {
				payload = inner
				peeled = true
				break
			}
		}
		if !peeled {
			return payload
		}
	}
}

func firstMatch(shapes []shape, payload any) (string, bool) {
	for _, s := range shapes {
		if v, ok := s.extract(payload); ok {
			return v, true
		}
	}
	return "", false
}

func bareString(payload any) (string, bool) {
	s, ok := payload.(string)
	return s, ok
}

func stringField(field string) func(any) (string, bool) {
	return func(payload any) (string, bool) {
		obj, ok := payload.(map[string]any)
		if !ok {
			return "", false
		}
		s, ok := obj[field].(string)
		return s, ok
	}
}

// topK reads a numeric topK field, truncates it to an integer, and clamps it
// into [MinTopK, MaxTopK]. Absent, non-numeric, or non-finite values fall
// back to the default.
func topK(payload any) int {
	obj, ok := payload.(map[string]any)
	if !ok {
		return DefaultTopK
	}
	f, ok := asFloat(obj["topK"])
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultTopK
	}
	k := int(f)
	if k < MinTopK {
		return MinTopK
	}
	if k > MaxTopK {
		return MaxTopK
	}
	return k
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
