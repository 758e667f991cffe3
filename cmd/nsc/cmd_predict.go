package main

import (
	"fmt"
	"io"
	"time"

	"github.com/neuroscanhq/neuroscan/internal/classifier"
	"github.com/neuroscanhq/neuroscan/internal/history"
	"github.com/neuroscanhq/neuroscan/internal/picker"
	"github.com/neuroscanhq/neuroscan/internal/style"
	"github.com/spf13/cobra"
)

func newPredictCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <image>",
		Short: "Classify one MRI image and record the result",
		Long: `Classify a single MRI image against the remote service.

The predicted class and the full probability distribution are printed,
and the result is appended to the prediction history (newest first,
capped at 10 entries). Add a note afterwards with 'nsc history note'.

Examples:
  nsc predict scan.jpg
  nsc predict --resolution 512 --grayscale scan.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, stdout, stderr, args[0])
		},
	}
	addConfigFlags(cmd)
	return cmd
}

func runPredict(cmd *cobra.Command, stdout, stderr io.Writer, ref string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	image, err := picker.Open(ref)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	client := resolveClient(cmd)
	ctx := cmd.Context()

	modelName, err := client.CurrentModel(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", style.Warning.Render("warning: could not fetch model name: "+err.Error()))
		modelName = "unknown"
	}

	sp := style.StartSpinner(stderr, "Classifying "+ref+"...")
	result, err := client.Classify(ctx, image, cfg)
	sp.Stop()
	if err != nil {
		return hintWrap(err)
	}

	rec := history.SinglePredictionRecord{
		Label:          result.Label,
		Probabilities:  result.Probabilities,
		ImageRef:       ref,
		ModelName:      modelName,
		PreprocessFunc: preprocessDesc(cfg),
		CreatedAt:      time.Now(),
	}
	if _, err := openHistory().RecordSingle(rec); err != nil {
		return fmt.Errorf("recording prediction: %w", err)
	}

	renderPrediction(stdout, ref, result)
	return nil
}

// preprocessDesc describes the preprocessing the service was asked for.
func preprocessDesc(cfg classifier.Config) string {
	desc := fmt.Sprintf("resize %dx%d", cfg.Resolution, cfg.Resolution)
	if cfg.Grayscale {
		desc += ", grayscale"
	}
	return desc
}

func renderPrediction(w io.Writer, ref string, result classifier.ClassificationResult) {
	fmt.Fprintf(w, "%s\n\n", style.Bold.Render(ref))
	fmt.Fprintf(w, "  Predicted: %s (%.2f%%)\n\n",
		style.Success.Render(result.Label.DisplayName()), result.MaxProbability()*100)
	for i, class := range classifier.Classes() {
		line := fmt.Sprintf("  %-12s %6.2f%%", class.DisplayName(), result.Probabilities[i]*100)
		if class == result.Label {
			line = style.Bold.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}
