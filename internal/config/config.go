package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Live feed configuration
	Feed FeedConfig

	// Fallback content used when the store has nothing to show
	Content ContentConfig

	// Hero section settings
	Hero HeroConfig

	// Static assets
	Assets AssetsConfig

	// Allowed CORS origins
	CORS CORSConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds document store connection settings
type DatabaseConfig struct {
	Driver         string // "postgres" or "sqlite"
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	Path           string // sqlite file
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// FeedConfig holds change bus settings and the store path of each section
type FeedConfig struct {
	RedisAddr     string // empty selects the in-process bus
	RedisPassword string
	RedisChannel  string
	ReadTimeout   time.Duration // one store read
	Paths         FeedPaths
}

// FeedPaths names the document store path each section subscribes to
type FeedPaths struct {
	About      string
	Education  string
	Skills     string
	SkillIcons string
	Projects   string
	Homepage   string
	Contact    string
}

// ContentConfig holds the defaults substituted for missing fields
type ContentConfig struct {
	OwnerName        string
	Profession       string
	AboutDescription string
	ProfileImage     string
	HeroDescription  string
	HeroSkills       []string
	HeroPlaceholder  string
	ProjectImage     string
}

// HeroConfig holds hero image rotation settings
type HeroConfig struct {
	RotateInterval time.Duration
}

// AssetsConfig holds static asset locations
type AssetsConfig struct {
	ResumePath string
}

// CORSConfig holds allowed origins
type CORSConfig struct {
	AllowOrigins []string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; real env wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 0),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "portfolio"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			Path:           getEnv("DB_PATH", "./data/portfolio.db"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 2),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Feed: FeedConfig{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisChannel:  getEnv("REDIS_CHANNEL", "portfolio:changes"),
			ReadTimeout:   getDurationEnv("FEED_READ_TIMEOUT", 10*time.Second),
			Paths: FeedPaths{
				About:      getEnv("FEED_PATH_ABOUT", "Aboutspage"),
				Education:  getEnv("FEED_PATH_EDUCATION", "education"),
				Skills:     getEnv("FEED_PATH_SKILLS", "skills"),
				SkillIcons: getEnv("FEED_PATH_SKILL_ICONS", "skillIcons"),
				Projects:   getEnv("FEED_PATH_PROJECTS", "projects"),
				Homepage:   getEnv("FEED_PATH_HOMEPAGE", "Homepage"),
				Contact:    getEnv("FEED_PATH_CONTACT", "contact"),
			},
		},
		Content: ContentConfig{
			OwnerName:        getEnv("SITE_OWNER_NAME", "Portfolio Owner"),
			Profession:       getEnv("SITE_PROFESSION", "Developer"),
			AboutDescription: getEnv("SITE_ABOUT_DESCRIPTION", "Default description"),
			ProfileImage:     getEnv("SITE_PROFILE_IMAGE", "/profile-silhouette.jpg"),
			HeroDescription:  getEnv("SITE_HERO_DESCRIPTION", "Welcome to my portfolio, where innovation meets web development. Explore my projects and skills."),
			HeroSkills:       getListEnv("SITE_HERO_SKILLS", []string{"JavaScript", "React", "Node.js"}),
			HeroPlaceholder:  getEnv("SITE_HERO_PLACEHOLDER", "/hero-placeholder.jpg"),
			ProjectImage:     getEnv("SITE_PROJECT_IMAGE", "/project-placeholder.jpg"),
		},
		Hero: HeroConfig{
			RotateInterval: getDurationEnv("HERO_ROTATE_INTERVAL", 5*time.Second),
		},
		Assets: AssetsConfig{
			ResumePath: getEnv("RESUME_PATH", "./assets/resume.jpg"),
		},
		CORS: CORSConfig{
			AllowOrigins: getListEnv("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be one of: postgres, sqlite (got %q)", c.Database.Driver)
	}
	if c.Feed.ReadTimeout <= 0 {
		return fmt.Errorf("FEED_READ_TIMEOUT must be positive")
	}
	if c.Hero.RotateInterval <= 0 {
		return fmt.Errorf("HERO_ROTATE_INTERVAL must be positive")
	}
	return nil
}

// GetDSN returns the connection string for the configured driver
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
