package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wolfman30/gtm-followup/internal/audit"
	appconfig "github.com/wolfman30/gtm-followup/internal/config"
	"github.com/wolfman30/gtm-followup/internal/followup"
	"github.com/wolfman30/gtm-followup/internal/leads"
	"github.com/wolfman30/gtm-followup/internal/llm"
	"github.com/wolfman30/gtm-followup/internal/messaging"
	"github.com/wolfman30/gtm-followup/internal/observability/metrics"
	"github.com/wolfman30/gtm-followup/pkg/logging"
)

type runFlags struct {
	crmPath       string
	logPath       string
	thresholdDays int
	dryRun        bool
}

// providers builds the external collaborators. Tests swap them for fakes.
type providers struct {
	generator func(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (llm.Generator, func(), error)
	channel   func(cfg *appconfig.Config, logger *logging.Logger) (messaging.Channel, error)
	now       func() time.Time
}

func defaultProviders() providers {
	return providers{
		generator: buildGenerator,
		channel: func(cfg *appconfig.Config, logger *logging.Logger) (messaging.Channel, error) {
			return messaging.NewTwilioWhatsApp(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom, logger)
		},
		now: time.Now,
	}
}

func main() {
	if err := newRootCmd(defaultProviders()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(p providers) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "followup",
		Short: "Send AI-drafted WhatsApp follow-ups to stale CRM leads",
		Long: `followup reads a CRM export, decides which leads have gone quiet for longer
than the threshold, drafts a short message for each with an LLM, delivers it
over WhatsApp, and appends one audit row per lead to the log file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, flags, p)
		},
	}
	cmd.Flags().StringVar(&flags.crmPath, "crm-path", "", "CSV export of CRM leads")
	cmd.Flags().StringVar(&flags.logPath, "log-path", "output_log.csv", "audit log CSV to append to")
	cmd.Flags().IntVar(&flags.thresholdDays, "days-threshold", 3, "follow up when more than this many days have passed")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "draft and log messages without sending them")
	_ = cmd.MarkFlagRequired("crm-path")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, flags *runFlags, p providers) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// A missing .env is normal; the process environment still applies.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.NewWithOptions(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	}).With("run_id", uuid.NewString())

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	in, err := leads.ReadFile(flags.crmPath)
	if err != nil {
		logger.Error("failed to read leads", "path", flags.crmPath, "error", err)
		return err
	}
	logger.Info("leads loaded", "path", flags.crmPath, "count", len(in))

	generator, closeGenerator, err := p.generator(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize generator", "error", err)
		return err
	}
	if closeGenerator != nil {
		defer closeGenerator()
	}

	channel, err := p.channel(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize delivery channel", "error", err)
		return err
	}

	recorder, err := audit.OpenCSV(flags.logPath)
	if err != nil {
		logger.Error("failed to open audit log", "path", flags.logPath, "error", err)
		return err
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Warn("failed to close audit log", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	runMetrics := metrics.NewFollowupMetrics(registry)
	if cfg.MetricsAddr != "" {
		srv := metrics.StartServer(cfg.MetricsAddr, registry, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	orch, err := followup.New(generator, channel, recorder, followup.Options{
		ThresholdDays:     flags.thresholdDays,
		DryRun:            flags.dryRun,
		Retry:             retryPolicy(cfg),
		GenerationTimeout: cfg.LLMTimeout,
	}, logger)
	if err != nil {
		return err
	}
	orch.WithMetrics(runMetrics)

	today := p.now().UTC()
	logger.Info("follow-up run starting",
		"threshold_days", flags.thresholdDays, "dry_run", flags.dryRun, "log_path", recorder.Path())

	summary, err := orch.Run(ctx, today, in)
	if err != nil {
		logger.Error("follow-up run aborted", "error", err)
		return err
	}
	logger.Info("follow-up run complete",
		"total", summary.Total,
		"invalid", summary.Invalid,
		"skipped", summary.Skipped,
		"followed_up", summary.FollowedUp,
		"delivered", summary.Delivered,
		"failed", summary.Failed,
		"dry_run", summary.DryRun,
		"generation_fallbacks", summary.GenerationFallbacks,
	)
	return nil
}

func retryPolicy(cfg *appconfig.Config) followup.RetryPolicy {
	backoff := followup.LinearBackoff(cfg.RetryStep)
	if cfg.RetryBackoff == "exponential" {
		backoff = followup.ExponentialBackoff(cfg.RetryStep)
	}
	return followup.RetryPolicy{MaxAttempts: cfg.RetryMaxAttempts, Backoff: backoff}
}

// buildGenerator returns Gemini, chained to Bedrock when a Bedrock model is configured.
func buildGenerator(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (llm.Generator, func(), error) {
	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = gemini.Close() }

	if !cfg.BedrockEnabled() {
		return gemini, closeFn, nil
	}

	awsCfg, err := llm.LoadAWSConfig(ctx, llm.AWSOptions{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	bedrock, err := llm.NewBedrockClientFromConfig(awsCfg, cfg.BedrockModelID, cfg.AWSEndpointOverride)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logger.Info("bedrock fallback generator enabled", "model", cfg.BedrockModelID)
	return llm.NewFallbackGenerator(gemini, bedrock, logger), closeFn, nil
}
