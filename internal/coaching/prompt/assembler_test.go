package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advice-service/internal/coaching/classifier"
	"advice-service/internal/coaching/knowledge"
	apperrors "advice-service/internal/common/errors"
	"advice-service/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createAssessment(note string) models.SkillAssessment {
	return models.SkillAssessment{
		Scores: models.Scores{
			PatternRecognition: 1,
			Prediction:         4,
			ReactionSpeed:      7,
			MultiLayerReading:  9,
			DiversityOfOptions: 5,
			MentalResilience:   10,
		},
		AdviceLevel:  models.AdviceLevelGamer,
		PlayerRank:   models.RankGold,
		UserFreeText: note,
	}
}

func assemble(t *testing.T, a *Assembler, assessment models.SkillAssessment) Payload {
	t.Helper()

	classes, err := classifier.New().ClassifyAll(assessment.Scores)
	require.NoError(t, err)
	entries, err := knowledge.Default().ForRank(assessment.PlayerRank)
	require.NoError(t, err)

	payload, err := a.Assemble(assessment, classes, entries)
	require.NoError(t, err)
	return payload
}

// ==========================
// Free Text
// ==========================

func TestAssemble_FreeTextInstruction(t *testing.T) {
	tests := []struct {
		name        string
		note        string
		wantPresent bool
		wantText    string
	}{
		{name: "absent", note: "", wantPresent: false},
		{name: "whitespace only", note: " \t\n  ", wantPresent: false},
		{name: "plain note", note: "I lose to jump-ins", wantPresent: true, wantText: "I lose to jump-ins"},
		{name: "padded note is trimmed", note: "   I panic when cornered \n", wantPresent: true, wantText: "I panic when cornered"},
		{name: "japanese note", note: "対空が出ない", wantPresent: true, wantText: "対空が出ない"},
		{name: "quotes kept verbatim", note: `my friend says "just block"`, wantPresent: true, wantText: `my friend says "just block"`},
	}

	a := NewAssembler(Options{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := assemble(t, a, createAssessment(tt.note)).Text()

			if !tt.wantPresent {
				assert.NotContains(t, text, FreeTextLead)
				return
			}
			assert.Contains(t, text, FreeTextLead)
			assert.Contains(t, text, FreeTextLead+"\n"+tt.wantText+"\n")
		})
	}
}

// ==========================
// Content
// ==========================

func TestAssemble_PerAxisLines(t *testing.T) {
	text := assemble(t, NewAssembler(Options{}), createAssessment("")).Text()

	c := classifier.New()
	assessment := createAssessment("")
	for _, axis := range models.AllAxes {
		score, _ := assessment.Scores.Value(axis)
		td, err := c.Classify(axis, score)
		require.NoError(t, err)

		assert.Contains(t, text, axis.Label())
		assert.Contains(t, text, td.Description)
	}
	assert.Contains(t, text, "- Pattern Recognition: 1/10 (novice)")
	assert.Contains(t, text, "- Mental Resilience: 10/10 (expert)")
	assert.Contains(t, text, "current rank is Gold")
}

func TestAssemble_KnowledgeContextForRank(t *testing.T) {
	text := assemble(t, NewAssembler(Options{}), createAssessment("")).Text()

	entry, err := knowledge.Default().Lookup(models.AxisReactionSpeed, models.RankGold)
	require.NoError(t, err)
	assert.Contains(t, text, entry.PracticeMethods)
	assert.Contains(t, text, `"typicalIssues"`)
	assert.Contains(t, text, `"rank": "Gold"`)

	other, err := knowledge.Default().Lookup(models.AxisReactionSpeed, models.RankRookie)
	require.NoError(t, err)
	assert.NotContains(t, text, other.PracticeMethods)
}

func TestAssemble_ToneSelection(t *testing.T) {
	a := NewAssembler(Options{})

	tests := []struct {
		level models.AdviceLevel
	}{
		{models.AdviceLevelHighLevel},
		{models.AdviceLevelGamer},
		{models.AdviceLevelEnjoy},
		{models.AdviceLevelKid},
		{models.AdviceLevel("")},
		{models.AdviceLevel("hardcore")},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assessment := createAssessment("")
			assessment.AdviceLevel = tt.level

			text := assemble(t, a, assessment).Text()
			assert.Contains(t, text, ToneInstruction(tt.level, models.RankGold))
		})
	}

	assert.Equal(t,
		ToneInstruction(models.AdviceLevel("hardcore"), models.RankGold),
		ToneInstruction(models.AdviceLevel(""), models.RankGold))
	assert.NotEqual(t,
		ToneInstruction(models.AdviceLevelKid, models.RankGold),
		ToneInstruction(models.AdviceLevel(""), models.RankGold))
	assert.True(t, KnownTone(models.AdviceLevelKid))
	assert.False(t, KnownTone(models.AdviceLevel("hardcore")))
}

func TestAssemble_StructuralConstraints(t *testing.T) {
	text := assemble(t, NewAssembler(Options{SectionCharLimit: 150, ResponseLanguage: "English"}), createAssessment("")).Text()

	assert.Contains(t, text, "[Strengths], [Growth Areas], [Practice Plan]")
	assert.Contains(t, text, "one blank line")
	assert.Contains(t, text, "under 150 characters")
	assert.Contains(t, text, "Answer in English.")
	assert.Contains(t, text, "Do not invent specific move or technique names")
}

func TestAssemble_Defaults(t *testing.T) {
	text := assemble(t, NewAssembler(Options{}), createAssessment("")).Text()

	assert.Contains(t, text, "under 200 characters")
	assert.Contains(t, text, "Answer in Japanese.")
}

func TestAssemble_Deterministic(t *testing.T) {
	a := NewAssembler(Options{})
	first := assemble(t, a, createAssessment("note"))
	second := assemble(t, a, createAssessment("note"))
	assert.Equal(t, first.Text(), second.Text())
	assert.Equal(t, first.Len(), len(first.Text()))
}

// ==========================
// Error Cases
// ==========================

func TestAssemble_MissingInputs(t *testing.T) {
	a := NewAssembler(Options{})
	assessment := createAssessment("")

	classes, err := classifier.New().ClassifyAll(assessment.Scores)
	require.NoError(t, err)
	entries, err := knowledge.Default().ForRank(assessment.PlayerRank)
	require.NoError(t, err)

	t.Run("missing classification", func(t *testing.T) {
		partial := make(map[models.Axis]models.TierDescriptor)
		for k, v := range classes {
			partial[k] = v
		}
		delete(partial, models.AxisPrediction)

		_, err := a.Assemble(assessment, partial, entries)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInputValidationFailed))
		assert.True(t, strings.Contains(apperrors.AsStandardError(err).Details, "prediction"))
	})

	t.Run("missing knowledge entry", func(t *testing.T) {
		_, err := a.Assemble(assessment, classes, map[models.Axis]models.KnowledgeEntry{})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInputValidationFailed))
	})

	t.Run("unknown rank", func(t *testing.T) {
		bad := assessment
		bad.PlayerRank = models.RankTier("Legend")
		_, err := a.Assemble(bad, classes, entries)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownRankTier))
	})
}

func TestKnownTone_TrimsLikeToneInstruction(t *testing.T) {
	assert.True(t, KnownTone(" kid "))
	assert.True(t, KnownTone(models.AdviceLevelGamer))
	assert.False(t, KnownTone("pro"))
	assert.Equal(t, ToneInstruction(models.AdviceLevelKid, models.RankGold), ToneInstruction(" kid ", models.RankGold))
}
