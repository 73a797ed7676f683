package calorieapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/calories/backend/internal/domain"
)

// lookupResponse mirrors the service body. Fields stay raw because the
// service is loose about types and presence.
type lookupResponse struct {
	Results json.RawMessage `json:"results"`
}

// parseLookupResponse extracts the first result of a lookup body.
// A missing name falls back to query, a missing calorie value to zero.
func parseLookupResponse(query string, body []byte) (*domain.CalorieMatch, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w for %q: body is not JSON", domain.ErrMalformedResponse, query)
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// valid JSON that is not an object carries no results
		return nil, fmt.Errorf("%w for %q", domain.ErrLookupNotFound, query)
	}

	results := bytes.TrimSpace(resp.Results)
	if len(results) == 0 || results[0] != '[' {
		return nil, fmt.Errorf("%w for %q", domain.ErrLookupNotFound, query)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(results, &items); err != nil {
		return nil, fmt.Errorf("%w for %q: %v", domain.ErrMalformedResponse, query, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w for %q", domain.ErrLookupNotFound, query)
	}

	// only the first result is read; a non-object one has no fields
	var first map[string]json.RawMessage
	if err := json.Unmarshal(items[0], &first); err != nil {
		first = nil
	}
	name, err := nameOf(query, first["text"])
	if err != nil {
		return nil, err
	}

	return &domain.CalorieMatch{
		Name:            name,
		CaloriesPer100g: caloriesOf(first["cal"]),
	}, nil
}

func nameOf(query string, raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return query, nil
	}

	trimmed := bytes.TrimSpace(raw)
	var name string
	switch {
	case trimmed[0] == '{' || trimmed[0] == '[':
		// objects and arrays carry no name
	case json.Unmarshal(trimmed, &name) != nil:
		// numbers and booleans are used verbatim
		name = string(trimmed)
	}
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: calorie service returned an empty product name for %q", domain.ErrBadInput, query)
	}
	return name, nil
}

// caloriesOf reads an integer from a number or numeric string; anything else is zero
func caloriesOf(raw json.RawMessage) int {
	if isAbsent(raw) {
		return 0
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0
		}
		n = json.Number(strings.TrimSpace(s))
	}

	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return clampInt(i)
	}
	if f, err := strconv.ParseFloat(n.String(), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return clampInt(int64(f))
	}
	return 0
}

func clampInt(i int64) int {
	if i > math.MaxInt32 {
		return math.MaxInt32
	}
	if i < math.MinInt32 {
		return math.MinInt32
	}
	return int(i)
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isKind(err, kind error) bool {
	return errors.Is(err, kind)
}
