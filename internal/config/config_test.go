package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("HERO_ROTATE_INTERVAL", "")
	t.Setenv("FEED_READ_TIMEOUT", "")
	t.Setenv("SITE_HERO_SKILLS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Driver != "postgres" {
		t.Errorf("Expected postgres driver by default, got %s", cfg.Database.Driver)
	}
	if cfg.Hero.RotateInterval != 5*time.Second {
		t.Errorf("Expected 5s rotation, got %v", cfg.Hero.RotateInterval)
	}
	if cfg.Feed.ReadTimeout != 10*time.Second {
		t.Errorf("Expected 10s feed read timeout, got %v", cfg.Feed.ReadTimeout)
	}
	if cfg.Feed.Paths.About != "Aboutspage" || cfg.Feed.Paths.Homepage != "Homepage" {
		t.Errorf("Unexpected feed paths: %+v", cfg.Feed.Paths)
	}
	if len(cfg.Content.HeroSkills) != 3 {
		t.Errorf("Expected 3 default hero skills, got %v", cfg.Content.HeroSkills)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/portfolio-test.db")
	t.Setenv("HERO_ROTATE_INTERVAL", "2s")
	t.Setenv("FEED_READ_TIMEOUT", "750ms")
	t.Setenv("SITE_HERO_SKILLS", "Go, Postgres , ,Redis")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.GetDSN() != "/tmp/portfolio-test.db" {
		t.Errorf("Expected sqlite DSN to be the file path, got %s", cfg.Database.GetDSN())
	}
	if cfg.Hero.RotateInterval != 2*time.Second {
		t.Errorf("Expected 2s rotation, got %v", cfg.Hero.RotateInterval)
	}
	if cfg.Feed.ReadTimeout != 750*time.Millisecond {
		t.Errorf("Expected 750ms feed read timeout, got %v", cfg.Feed.ReadTimeout)
	}
	if got := strings.Join(cfg.Content.HeroSkills, "|"); got != "Go|Postgres|Redis" {
		t.Errorf("Expected trimmed skill list, got %s", got)
	}
	if len(cfg.CORS.AllowOrigins) != 1 || cfg.CORS.AllowOrigins[0] != "https://example.com" {
		t.Errorf("Unexpected CORS origins: %v", cfg.CORS.AllowOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "postgres ok",
			cfg: Config{
				Database: DatabaseConfig{Driver: "postgres", Host: "db", Name: "portfolio"},
				Feed:     FeedConfig{ReadTimeout: time.Second},
				Hero:     HeroConfig{RotateInterval: time.Second},
			},
		},
		{
			name: "postgres missing host",
			cfg: Config{
				Database: DatabaseConfig{Driver: "postgres", Name: "portfolio"},
				Feed:     FeedConfig{ReadTimeout: time.Second},
				Hero:     HeroConfig{RotateInterval: time.Second},
			},
			wantErr: "DB_HOST",
		},
		{
			name: "sqlite missing path",
			cfg: Config{
				Database: DatabaseConfig{Driver: "sqlite"},
				Feed:     FeedConfig{ReadTimeout: time.Second},
				Hero:     HeroConfig{RotateInterval: time.Second},
			},
			wantErr: "DB_PATH",
		},
		{
			name: "unknown driver",
			cfg: Config{
				Database: DatabaseConfig{Driver: "mysql"},
				Feed:     FeedConfig{ReadTimeout: time.Second},
				Hero:     HeroConfig{RotateInterval: time.Second},
			},
			wantErr: "DB_DRIVER",
		},
		{
			name: "zero feed read timeout",
			cfg: Config{
				Database: DatabaseConfig{Driver: "sqlite", Path: "x.db"},
				Hero:     HeroConfig{RotateInterval: time.Second},
			},
			wantErr: "FEED_READ_TIMEOUT",
		},
		{
			name: "zero rotation",
			cfg: Config{
				Database: DatabaseConfig{Driver: "sqlite", Path: "x.db"},
				Feed:     FeedConfig{ReadTimeout: time.Second},
			},
			wantErr: "HERO_ROTATE_INTERVAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
