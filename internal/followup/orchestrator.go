package followup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/gtm-followup/internal/audit"
	"github.com/wolfman30/gtm-followup/internal/leads"
	"github.com/wolfman30/gtm-followup/internal/llm"
	"github.com/wolfman30/gtm-followup/internal/messaging"
	"github.com/wolfman30/gtm-followup/internal/observability/metrics"
	"github.com/wolfman30/gtm-followup/pkg/logging"
)

// Options configures a run.
type Options struct {
	ThresholdDays     int
	DryRun            bool
	Retry             RetryPolicy
	GenerationTimeout time.Duration
}

// Summary tallies what a run did.
type Summary struct {
	Total               int
	Invalid             int
	Skipped             int
	FollowedUp          int
	Delivered           int
	Failed              int
	DryRun              int
	GenerationFallbacks int
}

// Logged is the number of audit records the run produced.
func (s Summary) Logged() int {
	return s.Skipped + s.FollowedUp
}

// Orchestrator walks leads one at a time: decide, generate, deliver, record.
type Orchestrator struct {
	generator llm.Generator
	channel   messaging.Channel
	recorder  audit.Logger
	logger    *logging.Logger
	metrics   *metrics.FollowupMetrics
	opts      Options
	sleep     SleepFunc
	now       func() time.Time
}

// New builds an orchestrator. Generator, channel and recorder are required.
func New(generator llm.Generator, channel messaging.Channel, recorder audit.Logger, opts Options, logger *logging.Logger) (*Orchestrator, error) {
	if generator == nil {
		return nil, errors.New("followup: generator is required")
	}
	if channel == nil {
		return nil, errors.New("followup: channel is required")
	}
	if recorder == nil {
		return nil, errors.New("followup: audit logger is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Retry.MaxAttempts == 0 && opts.Retry.Backoff == nil {
		opts.Retry = DefaultRetryPolicy()
	}
	return &Orchestrator{
		generator: generator,
		channel:   channel,
		recorder:  recorder,
		logger:    logger,
		opts:      opts,
		sleep:     sleepContext,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithMetrics attaches run metrics.
func (o *Orchestrator) WithMetrics(m *metrics.FollowupMetrics) *Orchestrator {
	o.metrics = m
	return o
}

// WithSleep replaces the pause used between delivery attempts.
func (o *Orchestrator) WithSleep(fn SleepFunc) *Orchestrator {
	if fn != nil {
		o.sleep = fn
	}
	return o
}

// WithClock replaces the clock used for record timestamps.
func (o *Orchestrator) WithClock(fn func() time.Time) *Orchestrator {
	if fn != nil {
		o.now = fn
	}
	return o
}

// Run processes every lead in input order. today is the run's reference date,
// taken once by the caller. Per-lead failures are logged and never stop the
// run; only a failure to write the audit log does.
func (o *Orchestrator) Run(ctx context.Context, today time.Time, in []leads.Lead) (Summary, error) {
	var summary Summary
	for _, lead := range in {
		summary.Total++
		if !lead.HasLastContact() {
			summary.Invalid++
			o.metrics.ObserveInvalidRow()
			o.logger.Warn("skipping lead: last contact date invalid",
				"name", lead.DisplayName(), "row", lead.Row, "value", lead.RawLastContact)
			continue
		}

		rec := o.process(ctx, today, lead, &summary)
		if err := o.recorder.Log(ctx, rec); err != nil {
			return summary, fmt.Errorf("followup: record lead %s (row %d): %w", lead.DisplayName(), lead.Row, err)
		}
	}
	return summary, nil
}

func (o *Orchestrator) process(ctx context.Context, today time.Time, lead leads.Lead, summary *Summary) audit.Record {
	days := DaysSince(today, *lead.LastContact)
	decision := Decide(days, o.opts.ThresholdDays)
	o.metrics.ObserveDecision(decision.String())

	rec := audit.Record{
		Name:     lead.Name,
		Phone:    lead.Phone,
		Channel:  o.channel.Name(),
		Decision: decision.String(),
	}

	if decision == Skip {
		summary.Skipped++
		o.logger.Info("lead skipped: contacted recently", "name", lead.DisplayName(), "days_since", days)
		rec.ProviderStatus = messaging.StatusSkipped
		rec.Timestamp = o.now()
		return rec
	}

	summary.FollowedUp++
	msg := o.compose(ctx, lead, days, summary)
	rec.LLMPrompt = msg.Prompt
	rec.LLMOutput = msg.Text

	var result messaging.DeliveryResult
	switch {
	case o.opts.DryRun:
		summary.DryRun++
		result = messaging.DeliveryResult{ProviderID: messaging.DryRunProviderID, Status: messaging.StatusDryRun}
		o.logger.Info("dry run: delivery suppressed", "name", lead.DisplayName())
	default:
		result = o.deliver(ctx, lead, msg.Text)
		if result.Status == messaging.StatusFailed {
			summary.Failed++
		} else {
			summary.Delivered++
		}
	}
	o.metrics.ObserveDelivery(result.Status)

	rec.ProviderMessageSID = result.ProviderID
	rec.ProviderStatus = result.Status
	rec.Timestamp = o.now()
	return rec
}

// compose builds the prompt and asks the generator for text, substituting the
// fallback message on any failure.
func (o *Orchestrator) compose(ctx context.Context, lead leads.Lead, days int, summary *Summary) OutboundMessage {
	prompt := BuildPrompt(lead, days)

	genCtx := ctx
	if o.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, o.opts.GenerationTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := o.generator.Generate(genCtx, prompt)
	o.metrics.ObserveGenerationLatency(time.Since(start).Seconds())
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		summary.GenerationFallbacks++
		o.metrics.ObserveGenerationFailure()
		o.logger.Error("generation failed, using fallback message", "name", lead.DisplayName(), "error", err)
		text = FallbackMessage(lead.Name)
	}

	o.logger.Info("message drafted", "name", lead.DisplayName(), "text", text)
	return OutboundMessage{Prompt: prompt, Text: text}
}

// deliver tries the channel up to the policy's attempt budget. The first
// success wins; exhausting the budget yields a failed result.
func (o *Orchestrator) deliver(ctx context.Context, lead leads.Lead, body string) messaging.DeliveryResult {
	attempts := o.opts.Retry.attempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		o.metrics.ObserveDeliveryAttempt()
		res, err := o.channel.Send(ctx, lead.Phone, body)
		if err == nil {
			if res.Status == "" {
				res.Status = "sent"
			}
			o.logger.Info("message sent", "name", lead.DisplayName(), "sid", res.ProviderID, "attempt", attempt)
			return res
		}

		o.logger.Warn("delivery attempt failed",
			"name", lead.DisplayName(), "attempt", attempt, "max_attempts", attempts, "error", err)
		if attempt == attempts {
			break
		}
		if err := o.sleep(ctx, o.opts.Retry.delay(attempt)); err != nil {
			o.logger.Warn("delivery retries abandoned", "name", lead.DisplayName(), "error", err)
			break
		}
	}
	return messaging.DeliveryResult{Status: messaging.StatusFailed}
}
