/* teamnames.go
 * Contains the logic for resolving operator-entered team names against the
 * roster. Names arrive from chat commands and dialogs, so matching is fuzzy
 * and case insensitive
 */

package logic

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ResolveTeamNames resolves user input against the roster and reports which
// entries could not be matched.
// Preconditions: receives two string slices; one containing the user's input
// and another that is the list of rostered team names
// Postconditions: returns two string slices, a slice of resolved roster names
// and a slice containing the inputs that matched nothing
func ResolveTeamNames(input []string, roster []string) ([]string, []string) {
	var resolved []string
	var unmatched []string

	// Lowercase the roster for better matching, keeping a lookup back to the
	// original casing
	lookup := make(map[string]string)
	var rosterLower []string
	for _, name := range roster {
		lower := strings.ToLower(name)
		lookup[lower] = name
		rosterLower = append(rosterLower, lower)
	}

	for _, name := range input {
		lowerName := strings.ToLower(strings.TrimSpace(name))
		results := fuzzy.RankFind(lowerName, rosterLower)
		if len(results) == 0 {
			unmatched = append(unmatched, name)
			continue
		}

		// Prefer an exact match when the fuzzy search is ambiguous
		best := ""
		for i := range results {
			if results[i].Target == lowerName {
				best = results[i].Target
			}
		}
		if best == "" {
			best = results[0].Target
		}
		resolved = append(resolved, lookup[best])
	}
	return resolved, unmatched
}

// ResolveTeamName resolves a single user-entered name against the roster
func ResolveTeamName(name string, roster []string) (string, bool) {
	resolved, unmatched := ResolveTeamNames([]string{name}, roster)
	if len(unmatched) > 0 || len(resolved) == 0 {
		return "", false
	}
	return resolved[0], true
}
