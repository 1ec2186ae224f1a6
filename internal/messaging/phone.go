package messaging

import (
	"regexp"
	"strings"
)

// WhatsAppPrefix marks a Twilio address as a WhatsApp destination.
const WhatsAppPrefix = "whatsapp:"

var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizeE164 ensures the value begins with + and only contains digits afterward.
func NormalizeE164(value string) string {
	digits := sanitizePhone(value)
	if digits == "" {
		return ""
	}
	return "+" + digits
}

// NormalizeWhatsApp strips every non-digit and prefixes the WhatsApp scheme.
// It never rejects input; malformed numbers are left for the provider to refuse.
func NormalizeWhatsApp(value string) string {
	return WhatsAppPrefix + "+" + sanitizePhone(value)
}

// whatsAppSender returns the configured sender as a WhatsApp address.
func whatsAppSender(from string) string {
	from = strings.TrimSpace(from)
	if strings.HasPrefix(strings.ToLower(from), WhatsAppPrefix) {
		return WhatsAppPrefix + from[len(WhatsAppPrefix):]
	}
	return NormalizeWhatsApp(from)
}

func sanitizePhone(value string) string {
	return nonDigitRe.ReplaceAllString(value, "")
}
