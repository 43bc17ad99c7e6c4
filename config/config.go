package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Document store.
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`

	// Firebase / Google Cloud.
	CredentialsFile       string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseProjectID     string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseStorageBucket string `mapstructure:"FIREBASE_STORAGE_BUCKET"`
	AuthEnabled           bool   `mapstructure:"AUTH_ENABLED"`

	// Blob storage.
	StorageProvider string `mapstructure:"STORAGE_PROVIDER"`
	CloudinaryURL   string `mapstructure:"CLOUDINARY_URL"`

	// Pricing.
	DefaultWorkshopPrice   float64 `mapstructure:"DEFAULT_WORKSHOP_PRICE"`
	DefaultPizzaPartyPrice float64 `mapstructure:"DEFAULT_PIZZA_PARTY_PRICE"`

	// SMTP.
	EmailServer   string `mapstructure:"EMAIL_SERVER"`
	EmailPort     int    `mapstructure:"EMAIL_PORT"`
	EmailUsername string `mapstructure:"EMAIL_USERNAME"`
	EmailPassword string `mapstructure:"EMAIL_PASSWORD"`
	EmailFrom     string `mapstructure:"EMAIL_FROM"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`

	// Twilio WhatsApp.
	TwilioAccountSID      string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken       string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom    string `mapstructure:"TWILIO_WHATSAPP_FROM"`
	AdminWhatsAppNumber   string `mapstructure:"ADMIN_WHATSAPP_NUMBER"`
	PartnerWhatsAppNumber string `mapstructure:"PARTNER_WHATSAPP_NUMBER"`
	AdminFCMTopic         string `mapstructure:"ADMIN_FCM_TOPIC"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Notification dispatch.
	NotifyAsync       bool   `mapstructure:"NOTIFY_ASYNC"`
	NotifyMaxRetry    int    `mapstructure:"NOTIFY_MAX_RETRY"`
	DailyReminderCron string `mapstructure:"DAILY_REMINDER_CRON"`

	ReportCacheTTL    time.Duration `mapstructure:"REPORT_CACHE_TTL"`
	ChatTokenSecret   string        `mapstructure:"CHAT_TOKEN_SECRET"`
	ChatTokenTTL      time.Duration `mapstructure:"CHAT_TOKEN_TTL"`
	EventDateFallback string        `mapstructure:"EVENT_DATE_FALLBACK"`
	ReviewURL         string        `mapstructure:"REVIEW_URL"`
}

var AppConfig Config

func LoadConfig() {
	// .env.production is only read when the process is told it runs in production.
	envFile := ".env"
	if os.Getenv("ENVIRONMENT") == "production" {
		envFile = ".env.production"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file loaded: %v", envFile, err)
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers every recognised key so that AutomaticEnv can bind it on Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "https://pablospizza.web.app,https://pablospizza.firebaseapp.com,http://localhost:3000,http://localhost:5173")

	v.SetDefault("DATABASE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "pizzeria")

	v.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "ServiceAccount.json")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_STORAGE_BUCKET", "pablospizza-d84bf.appspot.com")
	v.SetDefault("AUTH_ENABLED", false)

	v.SetDefault("STORAGE_PROVIDER", "firebase")
	v.SetDefault("CLOUDINARY_URL", "")

	v.SetDefault("DEFAULT_WORKSHOP_PRICE", 13500)
	v.SetDefault("DEFAULT_PIZZA_PARTY_PRICE", 11990)

	v.SetDefault("EMAIL_SERVER", "smtp.gmail.com")
	v.SetDefault("EMAIL_PORT", 587)
	v.SetDefault("EMAIL_USERNAME", "")
	v.SetDefault("EMAIL_PASSWORD", "")
	v.SetDefault("EMAIL_FROM", "")
	v.SetDefault("ADMIN_EMAIL", "")

	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886")
	v.SetDefault("ADMIN_WHATSAPP_NUMBER", "")
	v.SetDefault("PARTNER_WHATSAPP_NUMBER", "")
	v.SetDefault("ADMIN_FCM_TOPIC", "admins")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)

	v.SetDefault("NOTIFY_ASYNC", false)
	v.SetDefault("NOTIFY_MAX_RETRY", 5)
	v.SetDefault("DAILY_REMINDER_CRON", "0 10 * * *")

	v.SetDefault("REPORT_CACHE_TTL", 5*time.Minute)
	v.SetDefault("CHAT_TOKEN_SECRET", "change-me")
	v.SetDefault("CHAT_TOKEN_TTL", 24*time.Hour)
	v.SetDefault("EVENT_DATE_FALLBACK", "now")
	v.SetDefault("REVIEW_URL", "https://pablospizza.web.app/reviews")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
