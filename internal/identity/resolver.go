package identity

import (
	"sort"
	"sync"

	"github.com/sajari/fuzzy"
)

// Mapping is the configured identity mapping: canonical contributor name to
// the raw author/blame aliases that belong to it.
type Mapping map[string][]string

// Resolver maps raw author identities to canonical contributor names.
// Lookup is exact-match and case-sensitive on the full raw string. The
// mapping is frozen at construction; only the unmapped ledger mutates during
// a run, guarded for concurrent blame workers.
type Resolver struct {
	aliases map[string]string
	roster  []string

	mu       sync.Mutex
	unmapped map[string]int

	model *fuzzy.Model
}

// NewResolver inverts the configured mapping into an alias index. Each
// canonical name is registered as its own alias unless another contributor's
// alias list already claims that string.
func NewResolver(mapping Mapping) *Resolver {
	aliases := make(map[string]string)
	roster := make([]string, 0, len(mapping))

	for canonical, raws := range mapping {
		roster = append(roster, canonical)
		for _, raw := range raws {
			aliases[raw] = canonical
		}
	}
	for canonical := range mapping {
		if _, taken := aliases[canonical]; !taken {
			aliases[canonical] = canonical
		}
	}
	sort.Strings(roster)

	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.Train(roster)

	return &Resolver{
		aliases:  aliases,
		roster:   roster,
		unmapped: make(map[string]int),
		model:    model,
	}
}

// Resolve maps a raw identity to its canonical contributor. Unresolved
// identities are tallied so they can be surfaced as diagnostics instead of
// silently corrupting percentage totals.
func (r *Resolver) Resolve(raw string) (string, bool) {
	if canonical, ok := r.aliases[raw]; ok {
		return canonical, true
	}

	r.mu.Lock()
	r.unmapped[raw]++
	r.mu.Unlock()
	return "", false
}

// Lookup maps a raw identity without recording a miss. Passes that revisit
// a stream already tallied by Resolve use it, so the unmapped ledger keeps
// counting commits, not passes.
func (r *Resolver) Lookup(raw string) (string, bool) {
	canonical, ok := r.aliases[raw]
	return canonical, ok
}

// Roster returns the sorted canonical contributor names. Downstream tables
// are initialized from the roster so missing activity shows as zero.
func (r *Resolver) Roster() []string {
	out := make([]string, len(r.roster))
	copy(out, r.roster)
	return out
}

// Unmapped returns the raw identities that failed to resolve, with their
// occurrence counts.
func (r *Resolver) Unmapped() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int, len(r.unmapped))
	for raw, n := range r.unmapped {
		out[raw] = n
	}
	return out
}

// Suggestion pairs an unmapped raw identity with the closest canonical name,
// when the spellcheck model finds one. Advisory only: resolution never uses
// fuzzy matches.
type Suggestion struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
	Count     int    `json:"count"`
}

// Suggestions proposes likely mapping entries for the unmapped identities,
// sorted by descending occurrence count then raw string.
func (r *Resolver) Suggestions() []Suggestion {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Suggestion
	for raw, n := range r.unmapped {
		guesses := r.model.Suggestions(raw, false)
		if len(guesses) == 0 {
			continue
		}
		out = append(out, Suggestion{Raw: raw, Canonical: guesses[0], Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Raw < out[j].Raw
	})
	return out
}
