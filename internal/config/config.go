package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config carries everything the server needs from the environment.
type Config struct {
	Port      int
	MongoURI  string
	MongoDB   string
	JWTSecret string
	JWTExpiry string

	// ImageKit asset store credentials.
	ImageKitPrivateKey  string
	ImageKitUploadURL   string
	ImageKitURLEndpoint string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}

	return Config{
		Port:      getEnvInt("PORT", 8080),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "carrental"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: getEnv("JWT_EXPIRY", ""),

		ImageKitPrivateKey:  getEnv("IMAGEKIT_PRIVATE_KEY", ""),
		ImageKitUploadURL:   getEnv("IMAGEKIT_UPLOAD_URL", "https://upload.imagekit.io/api/v1/files/upload"),
		ImageKitURLEndpoint: getEnv("IMAGEKIT_URL_ENDPOINT", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			log.WithField("key", key).WithError(err).Warn("invalid integer env value, using fallback")
			return fallback
		}
		return num
	}
	return fallback
}
