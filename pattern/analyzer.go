package pattern

import (
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Config holds the analyzer's read-only-once-set tuning knobs.
type Config struct {
	SimilarityThreshold float32
	MaxPatternAge       int64
	MaxPatterns         int
	VariableRules       []VariableRule
	CategoryRules       []CategoryRule
}

// DefaultConfig returns the analyzer's baseline tuning.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.85,
		MaxPatternAge:       86400,
		MaxPatterns:         1000,
	}
}

// Analyzer mines recurring patterns out of a stream of log messages. A
// single mutex serialises every operation, including the full similarity
// search a cache-miss analyze call performs.
type Analyzer struct {
	mu     sync.Mutex
	cfg    Config
	store  *lru.Cache[uint64, *Pattern]
	hashes []uint64 // insertion-ordered, mirrors store keys for deterministic sweep
}

// NewAnalyzer constructs an Analyzer. The LRU cache is sized generously
// above MaxPatterns so the analyzer's own age/count eviction — not the
// LRU's recency eviction — is what actually governs pattern lifetime;
// the LRU only guards against unbounded growth between eviction sweeps.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	capacity := cfg.MaxPatterns * 2
	if capacity <= 0 {
		capacity = 2000
	}
	store, err := lru.New[uint64, *Pattern](capacity)
	if err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg, store: store}, nil
}

// Analyze implements the full hash -> similarity -> new-pattern pipeline.
func (a *Analyzer) Analyze(message string) (*Pattern, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h := xxhash.Sum64String(message)
	ts := now()

	if p, ok := a.store.Get(h); ok {
		p.Metadata.Frequency++
		p.Metadata.LastSeen = ts
		a.evictLocked(ts)
		return p, nil
	}

	if best, sim := a.mostSimilarLocked(message); best != nil && sim > a.cfg.SimilarityThreshold {
		best.Metadata.Frequency++
		best.Metadata.LastSeen = ts
		a.evictLocked(ts)
		return best, nil
	}

	p := &Pattern{
		Template:  message,
		Type:      classifyType(message),
		Hash:      h,
		Variables: extractVariables(message, a.cfg.VariableRules),
		Category:  assignCategory(message, a.cfg.CategoryRules),
		Metadata: Metadata{
			FirstSeen:  ts,
			LastSeen:   ts,
			Frequency:  1,
			Confidence: 1.0,
		},
	}
	a.store.Add(h, p)
	a.hashes = append(a.hashes, h)

	a.evictLocked(ts)
	return p, nil
}

// GetPatternCount reports how many patterns are currently stored.
func (a *Analyzer) GetPatternCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Len()
}

func (a *Analyzer) mostSimilarLocked(message string) (*Pattern, float32) {
	var best *Pattern
	var bestSim float32 = -1

	for _, h := range a.store.Keys() {
		p, ok := a.store.Peek(h)
		if !ok {
			continue
		}
		sim := jaccardSimilarity(message, p.Template)
		if sim > bestSim {
			bestSim = sim
			best = p
		}
	}
	return best, bestSim
}

// jaccardSimilarity treats each message as the set of distinct bytes it
// contains: |A ∩ B| / |A ∪ B|. Both-empty returns 1.0.
func jaccardSimilarity(a, b string) float32 {
	setA := byteSet(a)
	setB := byteSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	inter := 0
	union := len(setB)
	for c := range setA {
		if setB[c] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 1.0
	}
	return float32(inter) / float32(union)
}

func byteSet(s string) map[byte]bool {
	set := make(map[byte]bool)
	for i := 0; i < len(s); i++ {
		set[s[i]] = true
	}
	return set
}

// classifyType applies the first-match-wins keyword scan.
func classifyType(message string) Type {
	switch {
	case strings.HasPrefix(message, "CUSTOM_TYPE:"):
		return TypeCustom
	case strings.Contains(message, "error") || strings.Contains(message, "fail"):
		return TypeErr
	case strings.Contains(message, "metric") || strings.Contains(message, "measure"):
		return TypeMetric
	case strings.Contains(message, "event"):
		return TypeEvent
	default:
		return TypeMessage
	}
}

// extractVariables splits message on ASCII spaces and classifies each
// token, rules first then heuristic, preserving token order.
func extractVariables(message string, rules []VariableRule) []Variable {
	tokens := strings.Split(message, " ")
	var vars []Variable

	for i, tok := range tokens {
		if tok == "" {
			continue
		}

		matched := false
		for _, r := range rules {
			if matchRegexKey(r.RegexKey, tok) {
				vars = append(vars, Variable{
					Position:   i,
					VarType:    r.VarType,
					SeenValues: []string{tok},
				})
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if vt, ok := heuristicVarType(tok); ok {
			vars = append(vars, Variable{
				Position:   i,
				VarType:    vt,
				SeenValues: []string{tok},
			})
		}
	}
	return vars
}

// assignCategory scores each CategoryRule by distinct cleaned-token
// matches and picks the highest scorer meeting its threshold, ties going
// to the earliest rule. Falls back to "error"/"uncategorized".
func assignCategory(message string, rules []CategoryRule) string {
	tokens := strings.Split(message, " ")
	cleaned := make(map[string]struct{})
	for _, t := range tokens {
		c := cleanToken(t)
		if c != "" {
			cleaned[c] = struct{}{}
		}
	}

	bestIdx := -1
	bestScore := 0
	for i, rule := range rules {
		score := 0
		for tok := range cleaned {
			if _, ok := rule.Keywords[tok]; ok {
				score++
			}
		}
		if score >= rule.Threshold && score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx >= 0 {
		return rules[bestIdx].Category
	}

	if strings.Contains(message, "error") || strings.Contains(message, "fail") {
		return "error"
	}
	return "uncategorized"
}

// evictLocked applies the age sweep then the count-based trim, called
// under a.mu after every insert or repeat sighting.
func (a *Analyzer) evictLocked(nowTs int64) {
	var survivors []uint64
	for _, h := range a.hashes {
		p, ok := a.store.Peek(h)
		if !ok {
			continue
		}
		if nowTs-p.Metadata.LastSeen > a.cfg.MaxPatternAge {
			a.store.Remove(h)
			continue
		}
		survivors = append(survivors, h)
	}
	a.hashes = survivors

	if a.cfg.MaxPatterns <= 0 || len(a.hashes) <= a.cfg.MaxPatterns {
		return
	}

	type aged struct {
		hash     uint64
		lastSeen int64
	}
	ordered := make([]aged, 0, len(a.hashes))
	for _, h := range a.hashes {
		if p, ok := a.store.Peek(h); ok {
			ordered = append(ordered, aged{h, p.Metadata.LastSeen})
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].lastSeen < ordered[j].lastSeen })

	excess := len(ordered) - a.cfg.MaxPatterns
	toRemove := make(map[uint64]bool, excess)
	for i := 0; i < excess; i++ {
		toRemove[ordered[i].hash] = true
		a.store.Remove(ordered[i].hash)
	}

	remaining := make([]uint64, 0, len(a.hashes)-excess)
	for _, h := range a.hashes {
		if !toRemove[h] {
			remaining = append(remaining, h)
		}
	}
	a.hashes = remaining
}
