// Package classifier maps axis scores onto the four skill bands.
package classifier

import (
	apperrors "advice-service/internal/common/errors"
	"advice-service/internal/models"
)

const (
	MinScore = 0
	MaxScore = 10
)

// Upper bound of each band, inclusive. The last band takes everything above.
var bandCeilings = [...]int{2, 5, 8}

// descriptions holds one sentence per band, indexed by models.Band.
var descriptions = map[models.Axis][4]string{
	models.AxisPatternRecognition: {
		"struggles to recognise even basic opponent habits such as frequent jumping or repeated rush-in moves",
		"sometimes notices the opponent's main patterns and habits, like how a string ends or how meter is spent",
		"reads complex set-ups, psychological habits and the opponent's resource management in depth",
		"picks up subtle patterns, attention allocation and character-specific timing habits quickly and answers them cleanly",
	},
	models.AxisPrediction: {
		"rarely tries to anticipate the opponent and is usually a step behind",
		"attempts reads but the success rate is not yet consistent",
		"anticipates the opponent's main options (jumps, pokes, throws) and lands rewarding counters and whiff punishes",
		"reads the opponent's habits and mindset deeply and picks the best pre-emptive option out of several with high accuracy",
	},
	models.AxisReactionSpeed: {
		"rarely manages to punish or anti-air on reaction",
		"reacts correctly about half the time, but not reliably",
		"reacts to specific actions such as Drive Impact, Drive Rush or jump-ins with high accuracy",
		"consistently answers any action on reaction with the fastest appropriate punish or defence",
	},
	models.AxisMultiLayerReading: {
		"rarely notices being read and keeps repeating the same patterns",
		"is starting to think about what the opponent intends but finds it hard to counter their read",
		"deliberately beats the opponent's read with layered options such as shimmies, delayed throws or blocking reversals",
		"wins several consecutive layers of mind games through a deep read of the opponent's psychology",
	},
	models.AxisOptionDiversity: {
		"has few tools and repeats the same offence and defence",
		"has a reasonable set of options but does not yet choose the best one for the situation",
		"switches between footsies, mix-ups, defence and resource use to make the player hard to counter",
		"uses every tool the character has and adapts freely to control the match",
	},
	models.AxisMentalResilience: {
		"panics after unexpected damage or long combos and stops thinking clearly",
		"tries to regroup when behind but is still swayed by emotion",
		"stays calm through deficits and mistakes and keeps choosing the best action",
		"remains composed under pressure or against stronger opponents and turns mistakes into adjustments for the next round",
	},
}

// Classifier is immutable and safe for concurrent use.
type Classifier struct {
	table map[models.Axis][4]string
}

// New returns a classifier over the built-in description table.
func New() *Classifier {
	return &Classifier{table: descriptions}
}

// BandFor maps a score to its band.
func BandFor(score int) (models.Band, bool) {
	if score < MinScore || score > MaxScore {
		return 0, false
	}
	for i, ceiling := range bandCeilings {
		if score <= ceiling {
			return models.Band(i), true
		}
	}
	return models.BandExpert, true
}

// Classify returns the tier descriptor for score on axis.
func (c *Classifier) Classify(axis models.Axis, score int) (models.TierDescriptor, error) {
	texts, ok := c.table[axis]
	if !ok {
		return models.TierDescriptor{}, apperrors.NewUnknownAxisError(string(axis))
	}

	band, ok := BandFor(score)
	if !ok {
		return models.TierDescriptor{}, apperrors.NewInvalidScoreError(string(axis), score)
	}

	return models.TierDescriptor{
		Axis:        axis,
		Score:       score,
		Band:        band,
		Description: texts[band],
	}, nil
}

// ClassifyAll classifies every axis of scores, failing on the first invalid one.
func (c *Classifier) ClassifyAll(scores models.Scores) (map[models.Axis]models.TierDescriptor, error) {
	out := make(map[models.Axis]models.TierDescriptor, len(models.AllAxes))
	for _, axis := range models.AllAxes {
		score, _ := scores.Value(axis)
		td, err := c.Classify(axis, score)
		if err != nil {
			return nil, err
		}
		out[axis] = td
	}
	return out, nil
}

// Descriptions returns the four texts for axis, for tooling and audits.
func (c *Classifier) Descriptions(axis models.Axis) ([4]string, bool) {
	texts, ok := c.table[axis]
	return texts, ok
}
