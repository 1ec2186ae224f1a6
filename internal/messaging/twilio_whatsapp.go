package messaging

import (
	"context"
	"errors"
	"strings"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/gtm-followup/pkg/logging"
)

// ChannelWhatsApp is the channel label written to the audit log.
const ChannelWhatsApp = "WhatsApp"

var twilioTracer = otel.Tracer("gtm-followup.internal.messaging.twilio")

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioWhatsApp sends WhatsApp messages through Twilio's Messages API.
type TwilioWhatsApp struct {
	api    messageCreator
	from   string
	logger *logging.Logger
}

// NewTwilioWhatsApp builds a WhatsApp sender. All three credentials are required.
func NewTwilioWhatsApp(accountSID, authToken, from string, logger *logging.Logger) (*TwilioWhatsApp, error) {
	var missing []string
	if strings.TrimSpace(accountSID) == "" {
		missing = append(missing, "account sid")
	}
	if strings.TrimSpace(authToken) == "" {
		missing = append(missing, "auth token")
	}
	if strings.TrimSpace(from) == "" {
		missing = append(missing, "from number")
	}
	if len(missing) > 0 {
		return nil, errors.New("messaging: twilio credentials missing: " + strings.Join(missing, ", "))
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return newTwilioWhatsApp(client.Api, from, logger), nil
}

func newTwilioWhatsApp(api messageCreator, from string, logger *logging.Logger) *TwilioWhatsApp {
	if logger == nil {
		logger = logging.Default()
	}
	return &TwilioWhatsApp{
		api:    api,
		from:   whatsAppSender(from),
		logger: logger,
	}
}

var _ Channel = (*TwilioWhatsApp)(nil)

// Name returns the channel label.
func (s *TwilioWhatsApp) Name() string {
	return ChannelWhatsApp
}

// Send makes a single delivery attempt. Retries belong to the caller.
func (s *TwilioWhatsApp) Send(ctx context.Context, to, body string) (DeliveryResult, error) {
	dest := NormalizeWhatsApp(to)

	_, span := twilioTracer.Start(ctx, "messaging.twilio.whatsapp.send")
	defer span.End()
	span.SetAttributes(attribute.String("followup.to", dest))

	if err := ctx.Err(); err != nil {
		return DeliveryResult{}, &DeliveryError{To: dest, Err: err}
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(dest)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		span.RecordError(err)
		derr := &DeliveryError{To: dest, Err: err}
		var restErr *twilioclient.TwilioRestError
		if errors.As(err, &restErr) {
			derr.Code = restErr.Code
			derr.Status = restErr.Status
		}
		return DeliveryResult{}, derr
	}
	if resp == nil {
		return DeliveryResult{}, &DeliveryError{To: dest, Err: errors.New("empty provider response")}
	}

	result := DeliveryResult{Status: "sent"}
	if resp.Sid != nil {
		result.ProviderID = *resp.Sid
	}
	if resp.Status != nil && *resp.Status != "" {
		result.Status = *resp.Status
	}
	s.logger.Info("twilio whatsapp sent", "to", dest, "sid", result.ProviderID, "status", result.Status)
	return result, nil
}
