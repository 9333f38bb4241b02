// internal/models/assessment.go
package models

import "strings"

// Axis identifies one of the six assessed skills. Values double as the JSON score keys.
type Axis string

const (
	AxisPatternRecognition Axis = "patternRecognition"
	AxisPrediction         Axis = "prediction"
	AxisReactionSpeed      Axis = "reactionSpeed"
	AxisMultiLayerReading  Axis = "multiLayerReading"
	AxisOptionDiversity    Axis = "diversityOfOptions"
	AxisMentalResilience   Axis = "mentalResilience"
)

// AllAxes is the fixed axis order used for prompts and reports.
var AllAxes = []Axis{
	AxisPatternRecognition,
	AxisPrediction,
	AxisReactionSpeed,
	AxisMultiLayerReading,
	AxisOptionDiversity,
	AxisMentalResilience,
}

var axisLabels = map[Axis]string{
	AxisPatternRecognition: "Pattern Recognition",
	AxisPrediction:         "Prediction",
	AxisReactionSpeed:      "Reaction Speed",
	AxisMultiLayerReading:  "Multi-Layer Reading",
	AxisOptionDiversity:    "Diversity of Options",
	AxisMentalResilience:   "Mental Resilience",
}

func (a Axis) Valid() bool {
	_, ok := axisLabels[a]
	return ok
}

// Label returns the human-readable axis name.
func (a Axis) Label() string {
	if label, ok := axisLabels[a]; ok {
		return label
	}
	return string(a)
}

// RankTier is the player's ranked-match league.
type RankTier string

const (
	RankRookie   RankTier = "Rookie"
	RankIron     RankTier = "Iron"
	RankBronze   RankTier = "Bronze"
	RankSilver   RankTier = "Silver"
	RankGold     RankTier = "Gold"
	RankPlatinum RankTier = "Platinum"
	RankDiamond  RankTier = "Diamond"
	RankMaster   RankTier = "Master"
)

// AllRankTiers lists the tiers from lowest to highest.
var AllRankTiers = []RankTier{
	RankRookie,
	RankIron,
	RankBronze,
	RankSilver,
	RankGold,
	RankPlatinum,
	RankDiamond,
	RankMaster,
}

// ParseRankTier matches s against the tier names, ignoring case and surrounding space.
func ParseRankTier(s string) (RankTier, bool) {
	s = strings.TrimSpace(s)
	for _, r := range AllRankTiers {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// Ordinal returns the tier's position in AllRankTiers, or -1.
func (r RankTier) Ordinal() int {
	for i, t := range AllRankTiers {
		if t == r {
			return i
		}
	}
	return -1
}

func (r RankTier) Valid() bool {
	return r.Ordinal() >= 0
}

// AdviceLevel selects the tone of the generated advice. Unknown values are allowed.
type AdviceLevel string

const (
	AdviceLevelHighLevel AdviceLevel = "high-level"
	AdviceLevelGamer     AdviceLevel = "gamer"
	AdviceLevelEnjoy     AdviceLevel = "enjoy"
	AdviceLevelKid       AdviceLevel = "kid"
	AdviceLevelDefault   AdviceLevel = "default"
)

// Scores holds the six 0-10 sub-scores.
type Scores struct {
	PatternRecognition int `json:"patternRecognition"`
	Prediction         int `json:"prediction"`
	ReactionSpeed      int `json:"reactionSpeed"`
	MultiLayerReading  int `json:"multiLayerReading"`
	DiversityOfOptions int `json:"diversityOfOptions"`
	MentalResilience   int `json:"mentalResilience"`
}

// Value returns the score recorded for axis.
func (s Scores) Value(axis Axis) (int, bool) {
	switch axis {
	case AxisPatternRecognition:
		return s.PatternRecognition, true
	case AxisPrediction:
		return s.Prediction, true
	case AxisReactionSpeed:
		return s.ReactionSpeed, true
	case AxisMultiLayerReading:
		return s.MultiLayerReading, true
	case AxisOptionDiversity:
		return s.DiversityOfOptions, true
	case AxisMentalResilience:
		return s.MentalResilience, true
	}
	return 0, false
}

// SkillAssessment is one validated advice request.
type SkillAssessment struct {
	Scores       Scores      `json:"scores"`
	AdviceLevel  AdviceLevel `json:"adviceLevel"`
	PlayerRank   RankTier    `json:"playerRank"`
	UserFreeText string      `json:"userFreeText,omitempty"`
}
