package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	AllowOrigins           string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	EventSubjectPrefix     string
	JWTSecret              string
	JWTRefreshSecret       string
	AccessTokenTTL         time.Duration
	RefreshTokenTTL        time.Duration
	UploadsDir             string
	UploadsPublicPath      string
	UploadMaxSizeMB        int
	StorageDriver          string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	DashboardCacheTTL      time.Duration
	SeedAdminEmail         string
	SeedAdminPassword      string
	SeedAdminName          string
	SeedDemoStudentEmail   string
	StudentDefaultPassword string
	LoginRateLimit         int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	v := newViper()

	accessTTL, err := parseDuration(v, "jwt.access_ttl")
	if err != nil {
		return Config{}, err
	}

	refreshTTL, err := parseDuration(v, "jwt.refresh_ttl")
	if err != nil {
		return Config{}, err
	}

	cacheTTL, err := parseDuration(v, "dashboard.cache_ttl")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		AllowOrigins:           v.GetString("http.allow_origins"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		EventSubjectPrefix:     v.GetString("events.subject_prefix"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTRefreshSecret:       v.GetString("jwt.refresh_secret"),
		AccessTokenTTL:         accessTTL,
		RefreshTokenTTL:        refreshTTL,
		UploadsDir:             v.GetString("uploads.dir"),
		UploadsPublicPath:      v.GetString("uploads.public_path"),
		UploadMaxSizeMB:        v.GetInt("uploads.max_size_mb"),
		StorageDriver:          strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		DashboardCacheTTL:      cacheTTL,
		SeedAdminEmail:         v.GetString("seed.admin_email"),
		SeedAdminPassword:      v.GetString("seed.admin_password"),
		SeedAdminName:          v.GetString("seed.admin_name"),
		SeedDemoStudentEmail:   v.GetString("seed.demo_student_email"),
		StudentDefaultPassword: v.GetString("auth.student_default_password"),
		LoginRateLimit:         v.GetInt("auth.login_rate_limit"),
	}

	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		return Config{}, fmt.Errorf("jwt secrets must be provided")
	}

	if cfg.AccessTokenTTL <= 0 {
		return Config{}, fmt.Errorf("jwt access ttl must be positive")
	}

	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = 168 * time.Hour
	}

	if cfg.UploadMaxSizeMB <= 0 {
		cfg.UploadMaxSizeMB = 20
	}

	if cfg.LoginRateLimit <= 0 {
		cfg.LoginRateLimit = 10
	}

	switch cfg.StorageDriver {
	case "", "local":
		cfg.StorageDriver = "local"
	case "cloudinary":
	default:
		return Config{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return value, nil
}

// DatabaseURL resolves only the database DSN, with the same .env and default
// handling as Load but without requiring the API secrets.
func DatabaseURL() string {
	return newViper().GetString("database.url")
}

func newViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TUTOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Tutoring API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3001")
	v.SetDefault("http.allow_origins", "*")
	v.SetDefault("database.url", "file:tutoring.db")
	v.SetDefault("events.subject_prefix", "tutoring")
	v.SetDefault("jwt.access_ttl", "1h")
	v.SetDefault("jwt.refresh_ttl", "168h")
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.public_path", "/uploads")
	v.SetDefault("uploads.max_size_mb", 20)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("cloudinary.folder", "tutoring/resources")
	v.SetDefault("dashboard.cache_ttl", "30s")
	v.SetDefault("seed.admin_email", "admin@arabicteacher.com")
	v.SetDefault("seed.admin_password", "admin123")
	v.SetDefault("seed.admin_name", "Arabic Teacher")
	v.SetDefault("seed.demo_student_email", "student@example.com")
	v.SetDefault("auth.student_default_password", "student123")
	v.SetDefault("auth.login_rate_limit", 10)

	return v
}
