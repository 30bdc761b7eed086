package invoice

import (
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// phraseMatcher finds which of a fixed list of literal phrases occur in a
// text, in one pass. Indexes refer to the list the matcher was built from.
type phraseMatcher struct {
	matcher *ahocorasick.Matcher
	// index maps matcher dictionary positions back to the caller's list
	index []int
	// Match updates counters inside the automaton
	mu sync.Mutex
}

func newPhraseMatcher(phrases []string) *phraseMatcher {
	seen := make(map[string]struct{}, len(phrases))
	dict := make([]string, 0, len(phrases))
	index := make([]int, 0, len(phrases))
	for i, p := range phrases {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		dict = append(dict, p)
		index = append(index, i)
	}

	pm := &phraseMatcher{index: index}
	if len(dict) > 0 {
		pm.matcher = ahocorasick.NewStringMatcher(dict)
	}
	return pm
}

func (p *phraseMatcher) matches(text string) []int {
	if p.matcher == nil || text == "" {
		return nil
	}
	p.mu.Lock()
	hits := p.matcher.Match([]byte(text))
	p.mu.Unlock()
	return hits
}

// contains reports whether any phrase occurs in text
func (p *phraseMatcher) contains(text string) bool {
	return len(p.matches(text)) > 0
}

// first returns the lowest list index of the phrases occurring in text, so
// list order acts as the priority order
func (p *phraseMatcher) first(text string) (int, bool) {
	best := -1
	for _, hit := range p.matches(text) {
		if idx := p.index[hit]; best == -1 || idx < best {
			best = idx
		}
	}
	return best, best >= 0
}
