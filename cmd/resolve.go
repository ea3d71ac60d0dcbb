package cmd

import (
	"fmt"
	"strings"

	"jarvis/internal/display"
	"jarvis/internal/logger"
	"jarvis/internal/registry"
	"jarvis/internal/resolver"
)

// ambiguousError reports a query that prefixes several entries.
type ambiguousError struct {
	query      string
	candidates []string
}

func (e *ambiguousError) Error() string {
	return fmt.Sprintf("Could not unambiguously determine what \"%s\" means.\nDid you mean one of the following:\n%s",
		e.query, strings.Join(e.candidates, "\n"))
}

// noMatchError reports a query nothing in the database resembles.
type noMatchError struct {
	query string
}

func (e *noMatchError) Error() string {
	return fmt.Sprintf("\"%s\" did not match anything in the database. "+
		"Verify that it is installed and spelled correctly with \"jarvis list\"", e.query)
}

// resolveEntry maps the user's query onto an entry name, telling the user
// when the name had to be guessed.
func resolveEntry(p *display.Printer, st *registry.Store, query string, cutoff float64) (string, error) {
	res := resolver.Resolve(query, st.Names(), cutoff)
	logger.Debug("[DEBUG] Resolved %q: %s %q (score %.3f)\n", query, res.Kind, res.Name, res.Score)

	switch res.Kind {
	case resolver.Resolved:
		if res.Assumed {
			p.Wrap(fmt.Sprintf("Assuming \"%s\" meant \"%s\"", query, res.Name), "", "")
			p.Line("")
		}
		return res.Name, nil
	case resolver.Ambiguous:
		return "", &ambiguousError{query: query, candidates: res.Candidates}
	default:
		if name, score := closestEntry(query, st.Names()); name != "" {
			logger.Debug("[DEBUG] Closest entry to %q is %q (score %.3f, cutoff %.2f)\n", query, name, score, cutoff)
		}
		return "", &noMatchError{query: query}
	}
}

// closestEntry returns the best scoring name regardless of any cutoff. Ties
// go to the earlier name.
func closestEntry(query string, names []string) (string, float64) {
	var best string
	bestScore := -1.0
	for _, name := range names {
		if score := resolver.Similarity(query, name); score > bestScore {
			best, bestScore = name, score
		}
	}
	return best, bestScore
}
