package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	MySQLDSN  string
	RedisURL  string
	JWTSecret string
	Port      string

	// Identity provider (hosted OAuth + user management)
	IdentityAPIKey       string
	IdentityClientID     string
	IdentityBaseURL      string
	AllowedRedirectURIs  []string

	// Object storage
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
	S3BaseURL          string

	// CORS
	AllowedOrigins []string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func getlist(key, def string) []string {
	raw := getenv(key, def)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() Config {
	return Config{
		MySQLDSN:  getenv("MYSQL_DSN", "tryrack:tryrack@tcp(127.0.0.1:3306)/tryrack?parseTime=true"),
		RedisURL:  getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret: getenv("JWT_SECRET", ""),
		Port:      getenv("PORT", "8080"),

		IdentityAPIKey:      getenv("IDENTITY_API_KEY", ""),
		IdentityClientID:    getenv("IDENTITY_CLIENT_ID", ""),
		IdentityBaseURL:     getenv("IDENTITY_BASE_URL", "https://api.workos.com/user_management"),
		AllowedRedirectURIs: getlist("ALLOWED_REDIRECT_URIS", "http://localhost:3000/callback"),

		AWSAccessKeyID:     getenv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY", ""),
		AWSRegion:          getenv("AWS_REGION", "us-east-1"),
		S3Bucket:           getenv("AWS_S3_BUCKET_NAME", ""),
		S3BaseURL:          os.Getenv("AWS_S3_BASE_URL"),

		AllowedOrigins: getlist("ALLOWED_ORIGINS", "http://localhost:3000"),
	}
}
