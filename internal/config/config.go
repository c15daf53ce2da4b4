package config

import (
	"log"
	"os"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=dairyline port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	UploadDir   string // where generated/uploaded bill PDFs are stored
	OTPDemo     bool   // expose the OTP in send-otp responses (local/demo only)
	SMSAPIKey   string // empty means the SMS provider runs in demo mode
	SMSSender   string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		OTPDemo:     getEnv("OTP_DEMO", "") == "true" || getEnv("OTP_DEMO", "") == "1",
		SMSAPIKey:   getEnv("SMS_API_KEY", ""),
		SMSSender:   getEnv("SMS_SENDER", "DAIRYLINE"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set; it is required.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters.")
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default value; set your own Postgres connection for production.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value; set your own domain for production.")
	}
	if cfg.SMSAPIKey == "" {
		log.Println("[WARN] SMS_API_KEY not set; OTP messages will only be logged (demo mode).")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
