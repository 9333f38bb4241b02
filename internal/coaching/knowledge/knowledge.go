// Package knowledge holds the static coaching content keyed by skill axis and rank tier.
package knowledge

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	apperrors "advice-service/internal/common/errors"
	"advice-service/internal/models"
)

//go:embed knowledge.yaml
var embeddedTable []byte

// Base is read-only after Load and safe for concurrent lookups.
type Base struct {
	entries map[models.Axis]map[models.RankTier]models.KnowledgeEntry
}

var (
	defaultOnce sync.Once
	defaultBase *Base
)

// Default returns the embedded knowledge base. It panics if the embedded
// table is incomplete, which makes a defective build fail at startup.
func Default() *Base {
	defaultOnce.Do(func() {
		b, err := Load(embeddedTable)
		if err != nil {
			panic(fmt.Sprintf("embedded knowledge base is invalid: %v", err))
		}
		defaultBase = b
	})
	return defaultBase
}

// Load parses a YAML table and verifies it covers every axis and rank tier.
func Load(data []byte) (*Base, error) {
	var raw map[string]map[string]models.KnowledgeEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse knowledge table: %w", err)
	}

	b := &Base{entries: make(map[models.Axis]map[models.RankTier]models.KnowledgeEntry, len(raw))}
	var problems []string

	for axisKey, ranks := range raw {
		axis := models.Axis(axisKey)
		if !axis.Valid() {
			problems = append(problems, fmt.Sprintf("unknown axis %q", axisKey))
			continue
		}
		cells := make(map[models.RankTier]models.KnowledgeEntry, len(ranks))
		for rankKey, entry := range ranks {
			rank, ok := models.ParseRankTier(rankKey)
			if !ok {
				problems = append(problems, fmt.Sprintf("%s: unknown rank %q", axisKey, rankKey))
				continue
			}
			cells[rank] = entry
		}
		b.entries[axis] = cells
	}

	problems = append(problems, b.missing()...)
	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("knowledge table incomplete: %s", strings.Join(problems, "; "))
	}

	return b, nil
}

// missing lists every (axis, rank) cell that is absent or has an empty field.
func (b *Base) missing() []string {
	var out []string
	for _, axis := range models.AllAxes {
		for _, rank := range models.AllRankTiers {
			entry, ok := b.entries[axis][rank]
			switch {
			case !ok:
				out = append(out, fmt.Sprintf("%s/%s: missing", axis, rank))
			case !entry.Complete():
				out = append(out, fmt.Sprintf("%s/%s: empty field", axis, rank))
			}
		}
	}
	return out
}

// Lookup returns the entry for (axis, rank).
func (b *Base) Lookup(axis models.Axis, rank models.RankTier) (models.KnowledgeEntry, error) {
	cells, ok := b.entries[axis]
	if !ok {
		return models.KnowledgeEntry{}, apperrors.NewUnknownAxisError(string(axis))
	}
	entry, ok := cells[rank]
	if !ok {
		return models.KnowledgeEntry{}, apperrors.NewUnknownRankTierError(string(rank))
	}
	return entry, nil
}

// ForRank returns the six entries of one rank tier, keyed by axis.
func (b *Base) ForRank(rank models.RankTier) (map[models.Axis]models.KnowledgeEntry, error) {
	out := make(map[models.Axis]models.KnowledgeEntry, len(models.AllAxes))
	for _, axis := range models.AllAxes {
		entry, err := b.Lookup(axis, rank)
		if err != nil {
			return nil, err
		}
		out[axis] = entry
	}
	return out, nil
}

// Size returns the number of populated cells.
func (b *Base) Size() int {
	n := 0
	for _, cells := range b.entries {
		n += len(cells)
	}
	return n
}
