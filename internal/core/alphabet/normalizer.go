package alphabet

import (
	"fmt"
	"sort"

	"docCrackerBackend/internal/core/domain"
)

// Spec describes the candidate symbols for one password position. Accepted
// dynamic forms:
//
//	rune                 single symbol
//	string               one symbol per rune, in string order
//	[]rune               one symbol per element
//	[]string             one (possibly multi-rune) symbol per element
//	map[rune]struct{}    unordered set, normalized into sorted order
//	map[string]struct{}  unordered set, normalized into sorted order
//
// Anything else is a caller contract violation.
type Spec interface{}

// CandidateList holds one Spec per password position. Its length is the
// password length. It is fixed for the duration of one search.
type CandidateList []Spec

// Normalize collapses a Spec into its canonical ordered symbol sequence.
// Ordered inputs keep their iteration order, unordered inputs get a sorted
// order so that enumeration stays deterministic across runs. Duplicates are
// preserved; they merely produce redundant candidates. An empty collection
// normalizes to an empty sequence.
func Normalize(spec Spec) ([]string, error) {
	switch v := spec.(type) {
	case rune:
		return []string{string(v)}, nil
	case string:
		symbols := make([]string, 0, len(v))
		for _, r := range v {
			symbols = append(symbols, string(r))
		}
		return symbols, nil
	case []rune:
		symbols := make([]string, len(v))
		for i, r := range v {
			symbols[i] = string(r)
		}
		return symbols, nil
	case []string:
		symbols := make([]string, len(v))
		copy(symbols, v)
		return symbols, nil
	case map[rune]struct{}:
		symbols := make([]string, 0, len(v))
		for r := range v {
			symbols = append(symbols, string(r))
		}
		sort.Strings(symbols)
		return symbols, nil
	case map[string]struct{}:
		symbols := make([]string, 0, len(v))
		for s := range v {
			symbols = append(symbols, s)
		}
		sort.Strings(symbols)
		return symbols, nil
	default:
		return nil, fmt.Errorf("%w: unsupported alphabet type %T", domain.ErrInvalidAlphabet, spec)
	}
}

// Normalize converts every position of the list. It fails on the first
// malformed Spec without touching the rest.
func (c CandidateList) Normalize() ([][]string, error) {
	normalized := make([][]string, len(c))
	for i, spec := range c {
		symbols, err := Normalize(spec)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		normalized[i] = symbols
	}
	return normalized, nil
}
