package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/models"
	"github.com/nguyentantai21042004/digest-flow/internal/output"
)

func newSummarizeCmd() *cobra.Command {
	var (
		configPath  string
		apiURL      string
		model       string
		provider    string
		format      string
		temperature float64
		maxTokens   int
	)

	cmd := &cobra.Command{
		Use:   "summarize INPUT OUTPUT",
		Short: "Rewrite one transcript JSON into meeting minutes",
		Long: `summarize reads an input artifact {"text", "segments"} and writes
{"summary", "markdown", "original_text", "segments"} to OUTPUT. LLM failures fall
back to a stride-sampled summary and still exit 0; an unreadable or malformed input
writes {"error", "status": "failed"} and exits 1.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, outputPath := args[0], args[1]

			cfg, err := loadConfig(configPath, true)
			if err != nil {
				return err
			}
			cfg.Summarizer.Mode = config.ModeLLM

			flags := cmd.Flags()
			if flags.Changed("api-url") {
				cfg.LLM.APIURL = apiURL
			}
			if flags.Changed("model") {
				cfg.LLM.Model = model
				cfg.Gemini.Model = model
			}
			if flags.Changed("provider") {
				cfg.LLM.Provider = provider
			}
			if flags.Changed("format") {
				cfg.LLM.Format = format
			}
			if flags.Changed("temperature") {
				cfg.LLM.Temperature = temperature
			}
			if flags.Changed("max-tokens") {
				cfg.LLM.MaxTokens = maxTokens
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(cfg, cmd.ErrOrStderr())
			ctx := cmd.Context()

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fail(outputPath, fmt.Errorf("read input: %w", err))
			}
			transcript, err := models.ParseTranscript(data)
			if err != nil {
				return fail(outputPath, err)
			}

			chain, err := newChain(cfg, log)
			if err != nil {
				return err
			}

			log.Info(ctx, "Summarizing %s (%d chars)", inputPath, len([]rune(transcript.Text)))
			res, err := chain.Summarize(ctx, transcript)
			if err != nil {
				return fail(outputPath, err)
			}

			if err := output.WriteJSON(outputPath, res); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			log.Info(ctx, "Saved %s", outputPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "optional config file")
	flags.StringVar(&apiURL, "api-url", "", "generation endpoint URL")
	flags.StringVar(&model, "model", "", "model identifier")
	flags.StringVar(&provider, "provider", "", "generation backend (ollama|gemini)")
	flags.StringVar(&format, "format", "", "prompt format (minutes|bullet|executive)")
	flags.Float64Var(&temperature, "temperature", 0.3, "sampling temperature")
	flags.IntVar(&maxTokens, "max-tokens", 2048, "generation token budget")
	return cmd
}

// fail writes the failure artifact for err and returns err so the process exits 1.
func fail(outputPath string, err error) error {
	if werr := output.WriteJSON(outputPath, models.NewFailure(err)); werr != nil {
		return fmt.Errorf("%w (failure artifact not written: %v)", err, werr)
	}
	return err
}
