package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Storage StorageConfig
	Mail    MailConfig
	Admin   AdminConfig
	Site    SiteConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	DSN string
}

// StorageConfig points at an S3-compatible bucket for product images.
// When Bucket or the keys are empty the local media dir is used instead.
type StorageConfig struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
	MediaDir      string
}

type MailConfig struct {
	APIKey     string
	From       string
	AdminEmail string
}

type AdminConfig struct {
	Password     string
	PasswordHash string // bcrypt; preferred over the plain secret when set
}

type SiteConfig struct {
	BaseURL string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_DSN", "brocante.db")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_USE_PATH_STYLE", true)
	viper.SetDefault("MEDIA_DIR", "./web/media")
	viper.SetDefault("MAIL_FROM", "orders@lestudiobrocante.com")
	viper.SetDefault("SITE_BASE_URL", "http://localhost:8080")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		DB: DBConfig{
			DSN: viper.GetString("DB_DSN"),
		},
		Storage: StorageConfig{
			Endpoint:      viper.GetString("STORAGE_ENDPOINT"),
			Region:        viper.GetString("STORAGE_REGION"),
			Bucket:        viper.GetString("STORAGE_BUCKET"),
			AccessKey:     viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:     viper.GetString("STORAGE_SECRET_KEY"),
			PublicBaseURL: viper.GetString("STORAGE_PUBLIC_BASE_URL"),
			UsePathStyle:  viper.GetBool("STORAGE_USE_PATH_STYLE"),
			MediaDir:      viper.GetString("MEDIA_DIR"),
		},
		Mail: MailConfig{
			APIKey:     viper.GetString("RESEND_API_KEY"),
			From:       viper.GetString("MAIL_FROM"),
			AdminEmail: viper.GetString("ADMIN_EMAIL"),
		},
		Admin: AdminConfig{
			Password:     viper.GetString("ADMIN_PASSWORD"),
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
		},
		Site: SiteConfig{
			BaseURL: viper.GetString("SITE_BASE_URL"),
		},
	}
}
