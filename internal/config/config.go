package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort       string
	DBDSN         string
	JWTSecret     string
	JWTExpiresMin int

	RedisAddr     string
	RedisPassword string

	SMTPAddr string // host:port, empty disables real mail
	SMTPFrom string

	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string

	WorkerCount         int
	ReminderIntervalMin int
	ExportDir           string
	UploadDir           string
	CategoryCacheTTLSec int
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "10080"))
	workers, _ := strconv.Atoi(get("WORKER_COUNT", "4"))
	reminder, _ := strconv.Atoi(get("REMINDER_INTERVAL_MIN", "1440"))
	cacheTTL, _ := strconv.Atoi(get("CATEGORY_CACHE_TTL_SEC", "300"))
	return Config{
		AppPort:       get("APP_PORT", "8080"),
		DBDSN:         must("DB_DSN"),
		JWTSecret:     must("JWT_SECRET"),
		JWTExpiresMin: expires,

		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),

		SMTPAddr: get("SMTP_ADDR", ""),
		SMTPFrom: get("SMTP_FROM", "noreply@homecare.local"),

		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),

		WorkerCount:         workers,
		ReminderIntervalMin: reminder,
		ExportDir:           get("EXPORT_DIR", "./exports"),
		UploadDir:           get("UPLOAD_DIR", "./uploads"),
		CategoryCacheTTLSec: cacheTTL,
	}
}

// AdminSeedEmail and AdminSeedPassword are read lazily because they only
// matter on first boot against an empty database.
func AdminSeedEmail() string    { return get("ADMIN_EMAIL", "admin@homecare.local") }
func AdminSeedPassword() string { return get("ADMIN_PASSWORD", "changeme-admin") }

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
