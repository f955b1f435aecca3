package config

import (
	"log"

	"github.com/caarlos0/env/v11"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                int    `env:"PORT" envDefault:"8080"`
	Dsn                 string `env:"DSN"`
	JwtSecret           string `env:"JWT_SECRET"`
	JwtExpires          string `env:"JWT_EXPIRES" envDefault:"12h"`
	AdminEmail          string `env:"ADMIN_EMAIL"`
	AdminPasswordHash   string `env:"ADMIN_PASSWORD_HASH"`
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	NominatimBaseURL    string `env:"NOMINATIM_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GoogleClientID      string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string `env:"GOOGLE_CLIENT_SECRET"`
}

func New() *Config {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		log.Printf("[Env]: unable to load .env file %v", loadErr)
	}

	var cfg Config

	if parseErr := env.Parse(&cfg); parseErr != nil {
		log.Printf("[Env]: failed to parse environment variables: %v", parseErr)
	}

	return &cfg
}

// MustValidate kills the process when a credential the API cannot run
// without is missing. The store DSN and blob-store keys have no usable
// defaults.
func (cfg *Config) MustValidate() {
	if cfg.Dsn == "" {
		log.Fatalln("[Env]: DSN is required")
	}
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		log.Fatalln("[Env]: Cloudinary credentials are required")
	}
	if cfg.JwtSecret == "" {
		log.Fatalln("[Env]: JWT_SECRET is required")
	}
}
