package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// JWTSecret verifies the HS256 tokens of the identity provider.
	JWTSecret string

	// An empty SMTPHost logs mail instead of sending it.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// An empty RedisAddr keeps verification codes in process memory.
	RedisAddr     string
	RedisPassword string

	VerificationCodeTTL   time.Duration
	NotificationRetention time.Duration

	// LogFormat is "json" or "text".
	LogFormat string
}
