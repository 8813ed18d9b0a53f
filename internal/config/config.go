package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/focusnova/internal/model"
	"github.com/sandeepkv93/focusnova/internal/storage"
)

type Config struct {
	UserName             string `yaml:"user_name"`
	DurationMinutes      int    `yaml:"duration_minutes"`
	Backend              string `yaml:"backend"`
	DBPath               string `yaml:"db_path"`
	LogFile              string `yaml:"log_file"`
	Verbose              bool   `yaml:"verbose"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	SchedulerBuffer      int    `yaml:"scheduler_buffer"`
	MentorReplyDelayMS   int    `yaml:"mentor_reply_delay_ms"`
	Theme                string `yaml:"theme"`
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

func Default() Config {
	return Config{
		UserName:             model.DefaultUserName,
		DurationMinutes:      model.DefaultDurationMinutes,
		Backend:              storage.BackendSQLite,
		DBPath:               filepath.Join(DataDir(), "focusnova.db"),
		DesktopNotifications: false,
		SchedulerBuffer:      64,
		MentorReplyDelayMS:   800,
		Theme:                ThemeDark,
	}
}

// DataDir is where the database and the default config file live.
func DataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "focusnova")
	}
	return ".focusnova"
}

func DefaultPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// LoadFile overlays the YAML file at path on base. A missing file leaves
// base untouched.
func LoadFile(base Config, path string) (Config, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func ApplyEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("FOCUSNOVA_USER_NAME"); ok {
		cfg.UserName = v
	}
	if v, ok := getEnvInt("FOCUSNOVA_DURATION_MINUTES"); ok && v > 0 {
		cfg.DurationMinutes = v
	}
	if v, ok := getEnvString("FOCUSNOVA_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvString("FOCUSNOVA_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("FOCUSNOVA_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("FOCUSNOVA_VERBOSE"); ok {
		cfg.Verbose = v
	}
	if v, ok := getEnvBool("FOCUSNOVA_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("FOCUSNOVA_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("FOCUSNOVA_MENTOR_REPLY_DELAY_MS"); ok && v > 0 {
		cfg.MentorReplyDelayMS = v
	}
	if v, ok := getEnvString("FOCUSNOVA_THEME"); ok {
		cfg.Theme = strings.ToLower(v)
	}
	return cfg
}

// Load resolves defaults, then the file, then the environment.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(Default(), path)
	if err != nil {
		return cfg, err
	}
	cfg = ApplyEnv(cfg)
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case storage.BackendSQLite, storage.BackendFile, storage.BackendMemory:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Backend != storage.BackendMemory && strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is required")
	}
	if err := model.ValidateDuration(c.DurationMinutes); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("config: scheduler_buffer must be positive, got %d", c.SchedulerBuffer)
	}
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("config: unknown theme %q", c.Theme)
	}
	return nil
}

func (c Config) MentorReplyDelay() time.Duration {
	return time.Duration(c.MentorReplyDelayMS) * time.Millisecond
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
