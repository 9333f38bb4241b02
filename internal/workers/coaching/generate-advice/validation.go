package generateadvice

import (
	"advice-service/internal/common/validation"
	"advice-service/internal/models"
)

const maxFreeTextLength = 2000

func GetInputSchema() validation.JSONSchema {
	scoreProps := make(map[string]validation.Property, len(models.AllAxes))
	required := make([]string, 0, len(models.AllAxes))
	for _, axis := range models.AllAxes {
		scoreProps[string(axis)] = validation.Property{
			Type:        "integer",
			Description: axis.Label() + " score, 0-10",
		}
		required = append(required, string(axis))
	}

	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"scores", "playerRank"},
		Properties: map[string]validation.Property{
			"scores": {
				Type:                 "object",
				Description:          "The six skill-axis scores",
				Properties:           scoreProps,
				Required:             required,
				AdditionalProperties: &validation.Property{Type: "integer"},
			},
			"adviceLevel": {
				Type:        "string",
				Description: "Advice tone: high-level, gamer, enjoy or kid; anything else uses the default tone",
				MaxLength:   validation.IntPtr(64),
			},
			"playerRank": {
				Type:        "string",
				Description: "Ranked-match league, Rookie through Master",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(32),
			},
			"userFreeText": {
				Type:        "string",
				Description: "Optional note the advice must address",
				MaxLength:   validation.IntPtr(maxFreeTextLength),
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"advice"},
		Properties: map[string]validation.Property{
			"advice": {
				Type:        "string",
				Description: "Generated coaching advice, returned verbatim from the model",
				MinLength:   validation.IntPtr(1),
			},
		},
		AdditionalProperties: false,
	}
}
