// AngelaMos | 2026
// env.go

package config

// envKeys maps the environment variables operators set to koanf paths.
// Anything not listed is ignored.
var envKeys = map[string]string{
	"ENVIRONMENT": "app.environment",

	"HOST": "server.host",
	"PORT": "server.port",

	"DATABASE_URL":          "database.url",
	"DATABASE_AUTO_MIGRATE": "database.auto_migrate",
	"REDIS_URL":             "redis.url",

	"JWT_PRIVATE_KEY_PATH":     "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":      "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE":  "jwt.access_token_expire",
	"JWT_REFRESH_TOKEN_EXPIRE": "jwt.refresh_token_expire",
	"JWT_ISSUER":               "jwt.issuer",
	"JWT_AUDIENCE":             "jwt.audience",

	"SESSION_COOKIE_NAME":    "session.cookie_name",
	"SESSION_COOKIE_DOMAIN":  "session.domain",
	"SESSION_COOKIE_SECURE":  "session.secure",
	"TOKEN_CLEANUP_SCHEDULE": "auth.token_cleanup_schedule",

	"S3_ENDPOINT":          "storage.endpoint",
	"S3_REGION":            "storage.region",
	"S3_BUCKET":            "storage.bucket",
	"S3_ACCESS_KEY_ID":     "storage.access_key_id",
	"S3_SECRET_ACCESS_KEY": "storage.secret_access_key",
	"S3_USE_PATH_STYLE":    "storage.use_path_style",
	"S3_PUBLIC_BASE_URL":   "storage.public_base_url",

	"RATE_LIMIT_REQUESTS":      "rate_limit.requests",
	"RATE_LIMIT_WINDOW":        "rate_limit.window",
	"RATE_LIMIT_BURST":         "rate_limit.burst",
	"RATE_LIMIT_FAIL_OPEN":     "rate_limit.fail_open",
	"RATE_LIMIT_USER_REQUESTS": "rate_limit.user_requests",

	"LOG_LEVEL":  "log.level",
	"LOG_FORMAT": "log.format",

	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",

	"METRICS_ENABLED": "metrics.enabled",
	"WEB_DIR":         "web.dir",
}

// envKey returns "" for unknown variables, which koanf skips.
func envKey(name string) string {
	return envKeys[name]
}
