package payment

import (
	"fmt"
	"net/http"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/config"
	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/logger"
)

// NewGateway returns the gateway selected by cfg.Provider.
func NewGateway(cfg config.PaymentConfig, httpClient *http.Client, log *logger.Logger) (Gateway, error) {
	switch cfg.Provider {
	case config.ProviderRazorpay, "":
		if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
			log.Error("PAYMENT", "RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET not set")
			return nil, ErrRazorpayClientInitFailed
		}
		return NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL, httpClient, log), nil
	case config.ProviderStripe:
		return NewStripe(cfg.StripeSecretKey, cfg.StripePublishableKey, nil, log)
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}
