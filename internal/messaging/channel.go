package messaging

import (
	"context"
	"fmt"
)

// Delivery statuses recorded alongside provider-reported ones.
const (
	StatusFailed  = "failed"
	StatusDryRun  = "dry_run"
	StatusSkipped = "Skipped"

	// DryRunProviderID stands in for a provider id when nothing was sent.
	DryRunProviderID = "dryrun"
)

// DeliveryResult is the provider's answer for one outbound message.
type DeliveryResult struct {
	ProviderID string
	Status     string
}

// Channel hands a message body to an external provider.
type Channel interface {
	Name() string
	Send(ctx context.Context, to, body string) (DeliveryResult, error)
}

// DeliveryError reports a rejected or failed provider call.
type DeliveryError struct {
	To     string
	Code   int
	Status int
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("messaging: delivery to %s failed (status %d code %d): %v", e.To, e.Status, e.Code, e.Err)
	}
	return fmt.Sprintf("messaging: delivery to %s failed: %v", e.To, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
