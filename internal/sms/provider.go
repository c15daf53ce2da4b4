// Package sms is the outbound SMS boundary. It is currently a logging stub:
// messages are written to the server log and reported as sent, which keeps
// OTP login working locally without a provider account. Wiring a real
// gateway means implementing Send against the provider's API.
package sms

import (
	"log"

	"dairyline-backend/internal/config"
)

type Provider struct {
	apiKey string
	sender string
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{apiKey: cfg.SMSAPIKey, sender: cfg.SMSSender}
}

// Configured reports whether a real gateway credential is present.
func (p *Provider) Configured() bool {
	return p.apiKey != ""
}

func (p *Provider) Send(mobile, message string) error {
	log.Printf("[sms] to=%s from=%s message=%q (configured=%t)", mobile, p.sender, message, p.Configured())
	return nil
}
