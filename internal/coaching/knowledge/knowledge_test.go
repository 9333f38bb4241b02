package knowledge

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "advice-service/internal/common/errors"
	"advice-service/internal/models"
)

func TestDefault_CoversFullCrossProduct(t *testing.T) {
	base := Default()
	require.NotNil(t, base)

	for _, axis := range models.AllAxes {
		for _, rank := range models.AllRankTiers {
			entry, err := base.Lookup(axis, rank)
			require.NoError(t, err, "%s/%s", axis, rank)
			assert.NotEmpty(t, entry.TypicalIssues, "%s/%s typical issues", axis, rank)
			assert.NotEmpty(t, entry.Challenges, "%s/%s challenges", axis, rank)
			assert.NotEmpty(t, entry.PracticeMethods, "%s/%s practice methods", axis, rank)
		}
	}

	assert.Equal(t, len(models.AllAxes)*len(models.AllRankTiers), base.Size())
}

func TestLookup_UnknownKeys(t *testing.T) {
	base := Default()

	_, err := base.Lookup(models.Axis("footsies"), models.RankGold)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownAxis))

	_, err = base.Lookup(models.AxisPrediction, models.RankTier("Legend"))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownRankTier))
}

func TestForRank(t *testing.T) {
	base := Default()

	entries, err := base.ForRank(models.RankGold)
	require.NoError(t, err)
	assert.Len(t, entries, len(models.AllAxes))

	_, err = base.ForRank(models.RankTier("Legend"))
	assert.Error(t, err)
}

func TestLoad_RejectsGaps(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name:    "missing axes",
			yaml:    "prediction:\n  Gold:\n    typical_issues: a\n    challenges: b\n    practice_methods: c\n",
			wantMsg: "patternRecognition/Rookie: missing",
		},
		{
			name:    "unknown axis",
			yaml:    "footsies:\n  Gold:\n    typical_issues: a\n",
			wantMsg: `unknown axis "footsies"`,
		},
		{
			name:    "unknown rank",
			yaml:    "prediction:\n  Legend:\n    typical_issues: a\n",
			wantMsg: `prediction: unknown rank "Legend"`,
		},
		{
			name:    "empty field",
			yaml:    "prediction:\n  Gold:\n    typical_issues: a\n    challenges: b\n",
			wantMsg: "prediction/Gold: empty field",
		},
		{
			name:    "not yaml",
			yaml:    "prediction: [",
			wantMsg: "parse knowledge table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.Nil(t, base)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_RankKeysAreCaseInsensitive(t *testing.T) {
	var sb strings.Builder
	for _, axis := range models.AllAxes {
		sb.WriteString(string(axis) + ":\n")
		for _, rank := range models.AllRankTiers {
			sb.WriteString("  " + strings.ToLower(string(rank)) + ":\n")
			sb.WriteString("    typical_issues: i\n    challenges: c\n    practice_methods: p\n")
		}
	}

	base, err := Load([]byte(sb.String()))
	require.NoError(t, err)

	entry, err := base.Lookup(models.AxisMentalResilience, models.RankMaster)
	require.NoError(t, err)
	assert.Equal(t, "p", entry.PracticeMethods)
}

func TestLookup_ConcurrentReads(t *testing.T) {
	base := Default()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, axis := range models.AllAxes {
				for _, rank := range models.AllRankTiers {
					_, err := base.Lookup(axis, rank)
					assert.NoError(t, err)
				}
			}
		}()
	}
	wg.Wait()
}
