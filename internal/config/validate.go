// AngelaMos | 2026
// validate.go

package config

import (
	"errors"
	"slices"
)

// validate reports every problem at once.
func (c *Config) validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	check(c.Database.URL != "", "DATABASE_URL is required")
	check(c.Redis.URL != "", "REDIS_URL is required")
	check(c.JWT.PrivateKeyPath != "", "JWT_PRIVATE_KEY_PATH is required")
	check(c.JWT.PublicKeyPath != "", "JWT_PUBLIC_KEY_PATH is required")
	check(c.Storage.Bucket != "", "S3_BUCKET is required")
	check(c.Storage.MaxFileSize > 0, "storage.max_file_size must be positive")
	check(c.Session.CookieName != "", "session.cookie_name is required")
	check(c.Auth.MinPasswordLength >= 1, "auth.min_password_length must be positive")
	check(c.Server.ReadTimeout > 0, "server.read_timeout must be positive")
	check(c.Server.WriteTimeout > 0, "server.write_timeout must be positive")
	check(c.RateLimit.Requests > 0 && c.RateLimit.Window > 0,
		"rate_limit.requests and rate_limit.window must be positive")
	check(c.RateLimit.UserRequests > 0,
		"rate_limit.user_requests must be positive")

	check(!c.CORS.AllowCredentials || !slices.Contains(c.CORS.AllowedOrigins, "*"),
		"CORS wildcard '*' cannot be used with allow_credentials")

	if c.IsProduction() {
		check(!c.Otel.Enabled || !c.Otel.Insecure, "OTEL_INSECURE must be false in production")
		check(c.Session.Secure, "SESSION_COOKIE_SECURE must be true in production")
	}

	return errors.Join(errs...)
}
