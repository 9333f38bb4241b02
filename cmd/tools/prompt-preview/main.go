// cmd/tools/prompt-preview/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"advice-service/internal/coaching/classifier"
	"advice-service/internal/coaching/knowledge"
	"advice-service/internal/coaching/prompt"
	"advice-service/internal/models"
	ga "advice-service/internal/workers/coaching/generate-advice"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	renderCmd := flag.NewFlagSet("render", flag.ExitOnError)
	schemaCmd := flag.NewFlagSet("schema", flag.ExitOnError)

	// Validate command flags
	kbPath := validateCmd.String("path", "", "Knowledge base YAML to check (default: the embedded one)")

	// Render command flags
	scores := renderCmd.String("scores", "", "Comma separated axis=score pairs; missing axes default to 5")
	rank := renderCmd.String("rank", "Gold", "Player rank tier")
	level := renderCmd.String("level", "", "Advice level (high-level, gamer, enjoy, kid)")
	note := renderCmd.String("note", "", "Free-text note from the player")
	language := renderCmd.String("language", prompt.DefaultResponseLanguage, "Response language")
	limit := renderCmd.Int("limit", prompt.DefaultSectionCharLimit, "Per-section character ceiling")

	// Schema command flags
	output := schemaCmd.Bool("output", false, "Print the response schema instead of the request schema")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		base, err := loadBase(*kbPath)
		if err != nil {
			fmt.Printf("Knowledge base validation failed: %v\n", err)
			os.Exit(1)
		}
		printMatrix(os.Stdout, base)
		fmt.Printf("Knowledge base validation passed (%d entries).\n", base.Size())

	case "render":
		renderCmd.Parse(os.Args[2:])
		assessment, err := buildAssessment(*scores, *rank, *level, *note)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			renderCmd.Usage()
			os.Exit(1)
		}
		text, err := render(assessment, prompt.Options{SectionCharLimit: *limit, ResponseLanguage: *language})
		if err != nil {
			fmt.Printf("Error rendering prompt: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(text)

	case "schema":
		schemaCmd.Parse(os.Args[2:])
		schema := ga.GetInputSchema()
		if *output {
			schema = ga.GetOutputSchema()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(schema); err != nil {
			fmt.Printf("Error encoding schema: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func loadBase(path string) (*knowledge.Base, error) {
	if path == "" {
		return knowledge.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return knowledge.Load(data)
}

// printMatrix prints one row per rank with a mark per populated axis.
func printMatrix(w io.Writer, base *knowledge.Base) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"RANK"}
	for _, axis := range models.AllAxes {
		header = append(header, axis.Label())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, rank := range models.AllRankTiers {
		row := []string{string(rank)}
		for _, axis := range models.AllAxes {
			mark := "-"
			if _, err := base.Lookup(axis, rank); err == nil {
				mark = "ok"
			}
			row = append(row, mark)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func buildAssessment(scoreSpec, rankName, level, note string) (*models.SkillAssessment, error) {
	values := make(map[models.Axis]int, len(models.AllAxes))
	for _, axis := range models.AllAxes {
		values[axis] = 5
	}

	for _, pair := range strings.Split(scoreSpec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("score %q is not axis=value", pair)
		}
		axis := models.Axis(strings.TrimSpace(key))
		if !axis.Valid() {
			return nil, fmt.Errorf("unknown axis %q", key)
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("score for %s: %w", axis, err)
		}
		values[axis] = n
	}

	rank, ok := models.ParseRankTier(rankName)
	if !ok {
		return nil, fmt.Errorf("unknown rank %q", rankName)
	}

	return &models.SkillAssessment{
		Scores: models.Scores{
			PatternRecognition: values[models.AxisPatternRecognition],
			Prediction:         values[models.AxisPrediction],
			ReactionSpeed:      values[models.AxisReactionSpeed],
			MultiLayerReading:  values[models.AxisMultiLayerReading],
			DiversityOfOptions: values[models.AxisOptionDiversity],
			MentalResilience:   values[models.AxisMentalResilience],
		},
		AdviceLevel:  models.AdviceLevel(level),
		PlayerRank:   rank,
		UserFreeText: note,
	}, nil
}

func render(assessment *models.SkillAssessment, opts prompt.Options) (string, error) {
	classifications, err := classifier.New().ClassifyAll(assessment.Scores)
	if err != nil {
		return "", err
	}
	entries, err := knowledge.Default().ForRank(assessment.PlayerRank)
	if err != nil {
		return "", err
	}
	payload, err := prompt.NewAssembler(opts).Assemble(*assessment, classifications, entries)
	if err != nil {
		return "", err
	}
	return payload.Text(), nil
}

func help() {
	fmt.Println("Usage: prompt-preview <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  validate  Check that the knowledge base covers every axis and rank")
	fmt.Println("  render    Print the prompt that would be sent for an assessment")
	fmt.Println("  schema    Print the request (or -output response) JSON schema")
	fmt.Println("  help      Show this help message")
}
