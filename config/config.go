package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lyanh238/VNASelf/pkg/productivity"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Backing calendar store
	GoogleCalendar GoogleCalendarConfig

	// Scheduling engine knobs
	Scheduler SchedulerConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
	Timezone        string // IANA name sent to the Calendar API, e.g. "Asia/Ho_Chi_Minh"
	UTCOffsetMin    int    // fixed deployment offset in minutes, e.g. 420 for +07:00
}

// SchedulerConfig tunes the conflict/suggestion engine.
type SchedulerConfig struct {
	HorizonDays        int           // default forward search horizon
	MaxSuggestions     int           // cap on suggested slots per request
	WorkdayStartMin    int           // minutes from midnight, e.g. 480 for 08:00
	WorkdayEndMin      int           // minutes from midnight, e.g. 1200 for 20:00
	BackingTimeout     time.Duration // per backing-store call
	ReadRetryAttempts  int           // bounded retries for read operations only
	ReadRetryBaseDelay time.Duration // first backoff step, doubled per attempt
	QueryPadding       time.Duration // defensive widening of conflict query windows

	ActivityProfiles []productivity.Profile // empty means built-in defaults
}

// Location returns the deployment's fixed-offset location.
func (g GoogleCalendarConfig) Location() *time.Location {
	sign := "+"
	off := g.UTCOffsetMin
	if off < 0 {
		sign = "-"
		off = -off
	}
	name := fmt.Sprintf("%s%02d:%02d", sign, off/60, off%60)
	return time.FixedZone(name, g.UTCOffsetMin*60)
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Backing calendar store
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.Timezone = viper.GetString("google_calendar.timezone")
	cfg.GoogleCalendar.UTCOffsetMin = viper.GetInt("google_calendar.utc_offset_minutes")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// Scheduler
	cfg.Scheduler.HorizonDays = viper.GetInt("scheduler.horizon_days")
	cfg.Scheduler.MaxSuggestions = viper.GetInt("scheduler.max_suggestions")
	cfg.Scheduler.ReadRetryAttempts = viper.GetInt("scheduler.read_retry_attempts")
	cfg.Scheduler.BackingTimeout = viper.GetDuration("scheduler.backing_timeout")
	cfg.Scheduler.ReadRetryBaseDelay = viper.GetDuration("scheduler.read_retry_base_delay")
	cfg.Scheduler.QueryPadding = viper.GetDuration("scheduler.query_padding")

	var err error
	if cfg.Scheduler.WorkdayStartMin, err = parseClock(viper.GetString("scheduler.workday_start")); err != nil {
		return nil, fmt.Errorf("scheduler.workday_start: %w", err)
	}
	if cfg.Scheduler.WorkdayEndMin, err = parseClock(viper.GetString("scheduler.workday_end")); err != nil {
		return nil, fmt.Errorf("scheduler.workday_end: %w", err)
	}
	if cfg.Scheduler.WorkdayStartMin >= cfg.Scheduler.WorkdayEndMin {
		return nil, fmt.Errorf("scheduler workday start must precede workday end")
	}

	// Activity profile overrides (optional; built-in defaults otherwise)
	profiles, err := loadActivityProfiles()
	if err != nil {
		return nil, err
	}
	cfg.Scheduler.ActivityProfiles = profiles

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("google_calendar.timezone", "Asia/Ho_Chi_Minh")
	viper.SetDefault("google_calendar.utc_offset_minutes", 420)

	viper.SetDefault("scheduler.horizon_days", 7)
	viper.SetDefault("scheduler.max_suggestions", 5)
	viper.SetDefault("scheduler.workday_start", "08:00")
	viper.SetDefault("scheduler.workday_end", "20:00")
	viper.SetDefault("scheduler.backing_timeout", "12s")
	viper.SetDefault("scheduler.read_retry_attempts", 3)
	viper.SetDefault("scheduler.read_retry_base_delay", "500ms")
	viper.SetDefault("scheduler.query_padding", "30m")
}

// loadActivityProfiles parses the optional scheduler.activity_profiles list.
// Each entry: {type, base_score, off_rationale, windows: [{range: "10:00-11:30", rationale: "..."}]}
func loadActivityProfiles() ([]productivity.Profile, error) {
	if !viper.IsSet("scheduler.activity_profiles") {
		return nil, nil
	}

	raw := viper.Get("scheduler.activity_profiles")
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("scheduler.activity_profiles must be a list")
	}

	var profiles []productivity.Profile
	for i, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("scheduler.activity_profiles[%d]: expected a map", i)
		}

		p := productivity.Profile{
			Type:         getStringFromMap(m, "type"),
			BaseScore:    getIntFromMap(m, "base_score"),
			OffRationale: getStringFromMap(m, "off_rationale"),
		}
		if p.Type == "" {
			return nil, fmt.Errorf("scheduler.activity_profiles[%d]: type is required", i)
		}
		if p.BaseScore < 1 || p.BaseScore > 10 {
			return nil, fmt.Errorf("activity profile %s: base_score must be in 1..10", p.Type)
		}

		windowsRaw, _ := m["windows"].([]interface{})
		for j, w := range windowsRaw {
			wm, ok := w.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("activity profile %s: windows[%d] must be a map", p.Type, j)
			}
			window, err := parseWindow(getStringFromMap(wm, "range"))
			if err != nil {
				return nil, fmt.Errorf("activity profile %s: windows[%d]: %w", p.Type, j, err)
			}
			window.Rationale = getStringFromMap(wm, "rationale")
			if window.Rationale == "" {
				window.Rationale = fmt.Sprintf("Preferred window for %s", p.Type)
			}
			p.Windows = append(p.Windows, window)
		}
		if len(p.Windows) == 0 {
			return nil, fmt.Errorf("activity profile %s: at least one window is required", p.Type)
		}

		profiles = append(profiles, p)
	}

	return profiles, nil
}

// parseWindow parses "HH:MM-HH:MM" into a Window.
func parseWindow(s string) (productivity.Window, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return productivity.Window{}, fmt.Errorf("invalid window range %q, want HH:MM-HH:MM", s)
	}
	start, err := parseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return productivity.Window{}, err
	}
	end, err := parseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return productivity.Window{}, err
	}
	if start >= end {
		return productivity.Window{}, fmt.Errorf("window start %q must precede end %q", parts[0], parts[1])
	}
	return productivity.Window{StartMinute: start, EndMinute: end}, nil
}

// parseClock parses "HH:MM" into minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q, want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
