package prompt

import (
	"fmt"
	"strings"

	"advice-service/internal/models"
)

// toneInstructions maps each advice level to its instruction. %s is the rank tier.
var toneInstructions = map[models.AdviceLevel]string{
	models.AdviceLevelHighLevel: "Speak as a professional Street Fighter 6 coach. Give a %s player deeper, higher-level strategy and practice ideas for the mind games they should aim for next. Be concise, concrete and practical.",
	models.AdviceLevelGamer:     "Speak to a dedicated gamer. Give a %s player practical advice they can apply immediately in ranked matches and lobbies, including concrete training-mode drills. Be concise, concrete and practical.",
	models.AdviceLevelEnjoy:     "Speak to someone who plays for fun. Give a %s player tips that keep them motivated to continue playing, with easy practice ideas they can try casually. Be concise, concrete and practical.",
	models.AdviceLevelKid:       "Speak to a child. Explain things to a %s player kindly and simply, using short sentences and comparisons to characters and their movements. Be concise, concrete and practical.",
}

const defaultToneInstruction = "Give a %s player practical advice about the mind games of Street Fighter 6, with concrete practice examples. Be concise, concrete and practical."

// ToneInstruction returns the instruction for level. Unknown levels get the default instruction.
func ToneInstruction(level models.AdviceLevel, rank models.RankTier) string {
	tmpl, ok := toneInstructions[models.AdviceLevel(strings.TrimSpace(string(level)))]
	if !ok {
		tmpl = defaultToneInstruction
	}
	return fmt.Sprintf(tmpl, rank)
}

// KnownTone reports whether level has a dedicated instruction.
func KnownTone(level models.AdviceLevel) bool {
	_, ok := toneInstructions[models.AdviceLevel(strings.TrimSpace(string(level)))]
	return ok
}
