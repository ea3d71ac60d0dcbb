// Package resolver maps a user-typed program name onto exactly one registry key.
//
// Resolution runs in three stages, each short-circuiting on success: an exact
// case-insensitive match, prefix narrowing, and finally a similarity match
// scored with a sequence matcher. The package never prints or exits; callers
// decide what to do with an Ambiguous or NoMatch result.
package resolver

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum similarity ratio a candidate needs to be
// considered a match when no other cutoff is configured.
const DefaultCutoff = 0.75

// Kind tags the outcome of a resolution.
type Kind int

const (
	// NoMatch means no candidate was close enough to the query.
	NoMatch Kind = iota
	// Resolved means Result.Name holds the single entry the user meant.
	Resolved
	// Ambiguous means the query is a prefix of several candidates and none of
	// them could be singled out. Result.Candidates lists them.
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no match"
	}
}

// Result represents the outcome of resolving a query.
type Result struct {
	Kind Kind

	// Name is the resolved entry name (only set when Kind is Resolved).
	Name string

	// Candidates holds the competing names when Kind is Ambiguous.
	Candidates []string

	// Assumed is true when Name was inferred from a prefix or a similarity
	// match rather than typed exactly (ignoring case).
	Assumed bool

	// Score is the similarity ratio of the chosen name against the (possibly
	// narrowed) query. Exact and unique-prefix matches report 1.
	Score float64
}

// Match pairs a candidate with its similarity ratio.
type Match struct {
	Name  string
	Score float64
}

// Resolve determines which of candidates the query refers to.
//
// Candidate order matters: equally scored similarity matches are broken in
// favour of the candidate that appears first.
func Resolve(query string, candidates []string, cutoff float64) Result {
	lowerQuery := strings.ToLower(query)

	// Stage 1: exact match, ignoring case.
	for _, name := range candidates {
		if strings.ToLower(name) == lowerQuery {
			return Result{Kind: Resolved, Name: name, Score: 1}
		}
	}

	// Stage 2: prefix narrowing.
	var prefixed []string
	for _, name := range candidates {
		if strings.HasPrefix(strings.ToLower(name), lowerQuery) {
			prefixed = append(prefixed, name)
		}
	}

	pool := candidates
	switch len(prefixed) {
	case 0:
		// Nothing starts with the query; score it against everything.
	case 1:
		return Result{Kind: Resolved, Name: prefixed[0], Assumed: true, Score: 1}
	default:
		pool = prefixed
		lowered := make([]string, len(prefixed))
		for i, name := range prefixed {
			lowered[i] = strings.ToLower(name)
		}
		lowerQuery = MaxCommonPrefix(lowered)
	}

	// Stage 3: similarity.
	matches := CloseMatches(lowerQuery, pool, cutoff)
	if len(matches) > 0 {
		return Result{Kind: Resolved, Name: matches[0].Name, Assumed: true, Score: matches[0].Score}
	}
	if len(prefixed) > 1 {
		return Result{Kind: Ambiguous, Candidates: prefixed}
	}
	return Result{Kind: NoMatch}
}

// CloseMatches scores query against every candidate (case-insensitively) and
// returns those whose ratio is at least cutoff, best first. Ties keep the
// order in which candidates were given.
func CloseMatches(query string, candidates []string, cutoff float64) []Match {
	q := chars(strings.ToLower(query))

	var matches []Match
	for _, name := range candidates {
		m := difflib.NewMatcher(chars(strings.ToLower(name)), q)
		// The quick ratios are upper bounds of Ratio, so they only skip work.
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if score := m.Ratio(); score >= cutoff {
			matches = append(matches, Match{Name: name, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Similarity returns the sequence-matcher ratio between a and b, ignoring
// case. The result is in [0, 1]; identical strings score 1.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(chars(strings.ToLower(a)), chars(strings.ToLower(b))).Ratio()
}

// MaxCommonPrefix returns the longest string that is a prefix of every member
// of strs, compared rune by rune. An empty slice yields "".
func MaxCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}

	prefix := []rune(strs[0])
	for _, s := range strs[1:] {
		r := []rune(s)
		n := 0
		for n < len(prefix) && n < len(r) && prefix[n] == r[n] {
			n++
		}
		prefix = prefix[:n]
		if n == 0 {
			break
		}
	}
	return string(prefix)
}

// chars splits s into one element per rune, the sequence shape the matcher
// compares.
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
