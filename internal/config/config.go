package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by Load.
const (
	EnvAccount          = "MAILOPS_ACCOUNT"
	EnvCredentialsDir   = "MAILOPS_CREDENTIALS_DIR"
	EnvCachePath        = "MAILOPS_CACHE_PATH"
	EnvAdminCalendar    = "MAILOPS_ADMIN_CALENDAR"
	EnvMainCalendar     = "MAILOPS_MAIN_CALENDAR"
	EnvTimeZone         = "MAILOPS_TIMEZONE"
	EnvProvisionalColor = "MAILOPS_PROVISIONAL_COLOR"
	EnvDesignerName     = "MAILOPS_DESIGNER_NAME"
	EnvDesignerEmail    = "MAILOPS_DESIGNER_EMAIL"
	EnvNotifyFrom       = "MAILOPS_NOTIFY_FROM"
	EnvLogLevel         = "MAILOPS_LOG_LEVEL"
	EnvClientID         = "GOOGLE_CLIENT_ID"
	EnvClientSecret     = "GOOGLE_CLIENT_SECRET"
	EnvClientSecretFile = "GOOGLE_CREDENTIALS"
)

// Reminder is a calendar notification sent ahead of an event start.
type Reminder struct {
	Method string
	Before time.Duration
}

// Calendar holds the destinations and markers used when creating booking events.
type Calendar struct {
	// AdminID receives provisional (TBC) bookings.
	AdminID string
	// MainID receives confirmed bookings.
	MainID string
	// TimeZone is the IANA zone events are created in.
	TimeZone string
	// ProvisionalColor is the event color id applied to provisional bookings.
	ProvisionalColor string
	// ProvisionalPrefix is prepended to provisional booking titles.
	ProvisionalPrefix string
	Reminders         []Reminder
}

// Designer identifies who receives instant print booking notifications.
type Designer struct {
	Name  string
	Email string
	// From is the sender address used for notifications.
	From string
}

// OAuth holds the client used to refresh and obtain tokens.
type OAuth struct {
	ClientID     string
	ClientSecret string
	// SecretFile is a client secret JSON downloaded from the Google Cloud console.
	// It takes precedence over ClientID/ClientSecret when set.
	SecretFile string
}

// Config is the immutable process configuration handed to every component.
type Config struct {
	Account        string
	CredentialsDir string
	CachePath      string
	LogLevel       string
	Calendar       Calendar
	Designer       Designer
	OAuth          OAuth
}

// Default returns the built-in configuration.
func Default() Config {
	home := homeDir()
	return Config{
		Account:        "livemomentssg@gmail.com",
		CredentialsDir: filepath.Join(home, ".nanobot", "credentials"),
		CachePath:      filepath.Join(home, ".nanobot", "workspace", "skills", "gmail-checker-sender", "email_cache.json"),
		LogLevel:       "warn",
		Calendar: Calendar{
			AdminID:           "jml0dbb0k0pq0qfdlhdo89oql0@group.calendar.google.com",
			MainID:            "livemomentssg@gmail.com",
			TimeZone:          "Asia/Singapore",
			ProvisionalColor:  "3",
			ProvisionalPrefix: "TBC - ",
			Reminders: []Reminder{
				{Method: "email", Before: 7 * 24 * time.Hour},
				{Method: "email", Before: 3 * 24 * time.Hour},
			},
		},
		Designer: Designer{
			Name:  "Ting Ting",
			Email: "designer@livemoments.com.sg",
			From:  "hello@livemoments.com.sg",
		},
	}
}

// Load returns the default configuration overlaid with values from envFile
// (when non-empty) and the process environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := Default()
	setString(&cfg.Account, EnvAccount)
	setString(&cfg.CredentialsDir, EnvCredentialsDir)
	setString(&cfg.CachePath, EnvCachePath)
	setString(&cfg.LogLevel, EnvLogLevel)
	setString(&cfg.Calendar.AdminID, EnvAdminCalendar)
	setString(&cfg.Calendar.MainID, EnvMainCalendar)
	setString(&cfg.Calendar.TimeZone, EnvTimeZone)
	setString(&cfg.Calendar.ProvisionalColor, EnvProvisionalColor)
	setString(&cfg.Designer.Name, EnvDesignerName)
	setString(&cfg.Designer.Email, EnvDesignerEmail)
	setString(&cfg.Designer.From, EnvNotifyFrom)
	setString(&cfg.OAuth.ClientID, EnvClientID)
	setString(&cfg.OAuth.ClientSecret, EnvClientSecret)
	setString(&cfg.OAuth.SecretFile, EnvClientSecretFile)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that would fail later at a
// less helpful point.
func (c Config) Validate() error {
	var errs []error
	if c.CredentialsDir == "" {
		errs = append(errs, errors.New("credentials directory is empty"))
	}
	if c.Calendar.AdminID == "" || c.Calendar.MainID == "" {
		errs = append(errs, errors.New("admin and main calendar ids are required"))
	}
	if _, err := time.LoadLocation(c.Calendar.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("invalid time zone %q: %w", c.Calendar.TimeZone, err))
	}
	for i, r := range c.Calendar.Reminders {
		if r.Before <= 0 {
			errs = append(errs, fmt.Errorf("reminder %d: offset must be positive", i))
		}
	}
	return errors.Join(errs...)
}

// Minutes returns the reminder offset in whole minutes as the Calendar API expects.
func (r Reminder) Minutes() int64 {
	return int64(r.Before / time.Minute)
}

// String formats a reminder for previews, e.g. "email 7d".
func (r Reminder) String() string {
	days := r.Before / (24 * time.Hour)
	if days > 0 && r.Before%(24*time.Hour) == 0 {
		return r.Method + " " + strconv.FormatInt(int64(days), 10) + "d"
	}
	return r.Method + " " + r.Before.String()
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return os.Getenv("HOME")
}
