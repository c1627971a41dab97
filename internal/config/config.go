package config

import "os"

type Config struct {
	Port                 string
	FrontendURL          string
	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string
	JWTSecret            []byte
	UsersFile            string
}

// Load reads configuration from the environment. STRIPE_SECRET_KEY has no
// default; main treats its absence as fatal.
func Load() Config {
	return Config{
		Port:                 envOr("PORT", "4242"),
		FrontendURL:          envOr("FRONTEND_URL", "http://localhost:4200"),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		JWTSecret:            []byte(envOr("JWT_SECRET", "fallback_secret_key")),
		UsersFile:            envOr("USERS_FILE", "users.json"),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
