package messaging

import "testing"

func TestNormalizeWhatsApp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+1 (555) 123-4567", "whatsapp:+15551234567"},
		{"15551234567", "whatsapp:+15551234567"},
		{" 0044 20-7946.0958 ", "whatsapp:+00442079460958"},
		{"", "whatsapp:+"},
		{"call me", "whatsapp:+"},
	}
	for _, tt := range tests {
		if got := NormalizeWhatsApp(tt.in); got != tt.want {
			t.Fatalf("NormalizeWhatsApp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeE164(t *testing.T) {
	if got := NormalizeE164(" +1 (555) 123-4567 "); got != "+15551234567" {
		t.Fatalf("unexpected normalized phone %q", got)
	}
	if got := NormalizeE164("n/a"); got != "" {
		t.Fatalf("expected empty for non-numeric input, got %q", got)
	}
}

func TestWhatsAppSender(t *testing.T) {
	if got := whatsAppSender("whatsapp:+14155238886"); got != "whatsapp:+14155238886" {
		t.Fatalf("expected prefixed sender untouched, got %q", got)
	}
	if got := whatsAppSender("WhatsApp:+14155238886"); got != "whatsapp:+14155238886" {
		t.Fatalf("expected prefix lowercased, got %q", got)
	}
	if got := whatsAppSender("+1 415 523 8886"); got != "whatsapp:+14155238886" {
		t.Fatalf("expected bare number normalized, got %q", got)
	}
}
