// Package prompt builds the single text payload sent to the generative model.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "advice-service/internal/common/errors"
	"advice-service/internal/models"
)

// Section headings, in the order the model must emit them.
var Sections = []string{"Strengths", "Growth Areas", "Practice Plan"}

// FreeTextLead opens the instruction that quotes the player's own note.
const FreeTextLead = "The player added the following note. Your advice must address it directly:"

const (
	DefaultSectionCharLimit = 200
	DefaultResponseLanguage = "Japanese"
)

// Options tunes the fixed instructions.
type Options struct {
	SectionCharLimit int
	ResponseLanguage string
}

// Payload is an assembled prompt. It cannot be modified after assembly.
type Payload struct {
	text string
}

func (p Payload) Text() string { return p.text }

func (p Payload) Len() int { return len(p.text) }

// Assembler is stateless apart from its options.
type Assembler struct {
	opts Options
}

func NewAssembler(opts Options) *Assembler {
	if opts.SectionCharLimit <= 0 {
		opts.SectionCharLimit = DefaultSectionCharLimit
	}
	if strings.TrimSpace(opts.ResponseLanguage) == "" {
		opts.ResponseLanguage = DefaultResponseLanguage
	}
	return &Assembler{opts: opts}
}

type knowledgeContext struct {
	Axis string `json:"axis"`
	Rank string `json:"rank"`
	models.KnowledgeEntry
}

// Assemble renders the prompt. It fails when any axis lacks a classification or a knowledge entry.
func (a *Assembler) Assemble(
	assessment models.SkillAssessment,
	classifications map[models.Axis]models.TierDescriptor,
	entries map[models.Axis]models.KnowledgeEntry,
) (Payload, error) {
	rank := assessment.PlayerRank
	if !rank.Valid() {
		return Payload{}, apperrors.NewUnknownRankTierError(string(rank))
	}

	var parts []string

	parts = append(parts, fmt.Sprintf("In Street Fighter 6 the player's current rank is %s.", rank))
	parts = append(parts, "Generate coaching advice from the following mind-game skill assessment (each score is out of 10):")

	contextRows := make([]knowledgeContext, 0, len(models.AllAxes))
	for _, axis := range models.AllAxes {
		td, ok := classifications[axis]
		if !ok {
			return Payload{}, apperrors.NewInputValidationError(fmt.Sprintf("missing classification for axis %s", axis))
		}
		entry, ok := entries[axis]
		if !ok {
			return Payload{}, apperrors.NewInputValidationError(fmt.Sprintf("missing knowledge entry for axis %s", axis))
		}

		parts = append(parts, fmt.Sprintf("- %s: %d/10 (%s). For a %s player this means the player %s.",
			axis.Label(), td.Score, td.Band, rank, td.Description))

		contextRows = append(contextRows, knowledgeContext{
			Axis:           axis.Label(),
			Rank:           string(rank),
			KnowledgeEntry: entry,
		})
	}

	if note := strings.TrimSpace(assessment.UserFreeText); note != "" {
		parts = append(parts, "\n"+FreeTextLead)
		parts = append(parts, note)
	}

	knowledgeJSON, err := json.MarshalIndent(contextRows, "", "  ")
	if err != nil {
		return Payload{}, apperrors.NewInternalError(fmt.Errorf("encode knowledge context: %w", err))
	}
	parts = append(parts, fmt.Sprintf("\nCoaching reference for %s players (ground your advice in it):", rank))
	parts = append(parts, string(knowledgeJSON))

	parts = append(parts, "\nTaking the scores and the rank together:")
	parts = append(parts, ToneInstruction(assessment.AdviceLevel, rank))

	parts = append(parts, "\nFormat:")
	parts = append(parts, fmt.Sprintf("- Answer in %s.", a.opts.ResponseLanguage))
	parts = append(parts, fmt.Sprintf("- Write exactly three sections in this order, each starting with its label on its own line: %s.",
		labelList()))
	parts = append(parts, "- Separate sections with one blank line.")
	parts = append(parts, fmt.Sprintf("- Keep each section under %d characters.", a.opts.SectionCharLimit))
	parts = append(parts, "- Do not invent specific move or technique names. Refer only to general categories such as anti-airs, throws, Drive Rush or combos.")

	return Payload{text: strings.Join(parts, "\n")}, nil
}

func labelList() string {
	labels := make([]string, len(Sections))
	for i, s := range Sections {
		labels[i] = "[" + s + "]"
	}
	return strings.Join(labels, ", ")
}
