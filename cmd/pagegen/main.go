package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pagegen/internal/agent"
	"pagegen/internal/answers"
	"pagegen/internal/config"
	"pagegen/internal/logging"
	"pagegen/internal/pipeline"
	"pagegen/internal/questions"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "pagegen",
		Short:         "Generate FAQ, product and comparison pages from a product record",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}

			logger, err := logging.New(cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			res, err := run(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			for _, f := range res.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", f)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report %s (questions: %s)\n", res.ReportPath, res.QuestionSource)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file (optional)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

// run wires the configured agent into the question generator and, when
// enabled, the answerer, then executes one pipeline pass.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pipeline.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var gen agent.Generator
	if cfg.AgentEnabled() {
		g, err := agent.NewGenerator(ctx, agent.Options{
			Provider: cfg.AI.Provider,
			APIKey:   cfg.AI.APIKey,
			Model:    cfg.AI.Model,
			BaseURL:  cfg.AI.BaseURL,
			Timeout:  cfg.AI.Timeout,
		})
		if err != nil {
			// A misconfigured agent degrades to the deterministic path.
			logger.Warn("agent unavailable, continuing without it", zap.String("provider", cfg.AI.Provider), zap.Error(err))
		} else {
			gen = g
		}
	}

	deps := pipeline.Deps{
		Questions: questions.NewGenerator(gen, questions.Options{
			MinTotal: cfg.Questions.MinTotal,
			Timeout:  cfg.AI.Timeout,
		}, logger),
		Logger: logger,
	}
	if gen != nil && cfg.Answers.UseAgent {
		deps.Answerer = answers.NewAgentAnswerer(gen, answers.NewSynthesizer(), cfg.AI.Timeout, logger)
	}

	return pipeline.New(pipeline.Options{
		ProductPath:    cfg.Input.ProductPath,
		ComparisonPath: cfg.Input.ComparisonPath,
		OutputDir:      cfg.Output.Dir,
	}, deps).Run(ctx)
}
