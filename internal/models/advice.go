// internal/models/advice.go
package models

// Band is the qualitative tier a score falls into. Bands are ordered.
type Band int

const (
	BandNovice Band = iota
	BandIntermediate
	BandAdvanced
	BandExpert
)

// AllBands lists the bands in ascending order.
var AllBands = []Band{BandNovice, BandIntermediate, BandAdvanced, BandExpert}

func (b Band) String() string {
	switch b {
	case BandNovice:
		return "novice"
	case BandIntermediate:
		return "intermediate"
	case BandAdvanced:
		return "advanced"
	case BandExpert:
		return "expert"
	}
	return "unknown"
}

// TierDescriptor is the classification of one axis score.
type TierDescriptor struct {
	Axis        Axis   `json:"axis"`
	Score       int    `json:"score"`
	Band        Band   `json:"band"`
	Description string `json:"description"`
}

// KnowledgeEntry is the coaching content for one (axis, rank) cell.
type KnowledgeEntry struct {
	TypicalIssues   string `json:"typicalIssues" yaml:"typical_issues"`
	Challenges      string `json:"challenges" yaml:"challenges"`
	PracticeMethods string `json:"practiceMethods" yaml:"practice_methods"`
}

// Complete reports whether every field carries text.
func (e KnowledgeEntry) Complete() bool {
	return e.TypicalIssues != "" && e.Challenges != "" && e.PracticeMethods != ""
}

// AdviceResponse is the success body returned to callers.
type AdviceResponse struct {
	Advice string `json:"advice"`
}
