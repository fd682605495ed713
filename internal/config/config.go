package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress string
	MongoURI      string
	MongoDB       string

	JWTSecret     string
	JWTExpiration time.Duration
	AdminKey      string

	FirebaseProjectID       string
	FirebaseCredentialsJSON string

	// Scam-intelligence provider; empty disables the external check.
	ReputationEndpoint string
	ReputationAPIKey   string
}

func Load() *Config {
	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "scamwatch"),

		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration: 24 * time.Hour,
		AdminKey:      getEnv("ADMIN_KEY", ""),

		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),

		ReputationEndpoint: getEnv("REPUTATION_ENDPOINT", ""),
		ReputationAPIKey:   getEnv("REPUTATION_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
