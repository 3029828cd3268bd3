package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries all runtime tunables. It is built once at startup and passed
// explicitly to every component that needs it.
type Config struct {
	Debug   bool
	AppName string
	Env     string // DEV (default), TEST, QA, PROD

	// fees
	TotalFee int

	// auth
	DefaultStudentPassword string
	MinPasswordLen         int

	// attendance
	CodeTTL          time.Duration
	LowAttendancePct float64

	// persistence
	SnapshotPath string

	// error reporting
	RollbarToken string
}

func (conf *Config) IsDebug() bool { return conf.Debug }

// NewConfig loads configuration from defaults, an optional env-specific .env
// file and environment variables (prefixed with the current ENV).
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "StudentPortal")
	v.SetDefault("totalFee", 360000)
	v.SetDefault("defaultStudentPassword", "student123")
	v.SetDefault("minPasswordLen", 4)
	v.SetDefault("codeTTL", 60*time.Second)
	v.SetDefault("lowAttendancePct", 75.0)
	v.SetDefault("snapshotPath", filepath.Join(".", "portal_snapshot.json"))
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	v.SetDefault("env", env)
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(".", "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Debug:                  v.GetBool("debug"),
		AppName:                v.GetString("appName"),
		Env:                    v.GetString("env"),
		TotalFee:               v.GetInt("totalFee"),
		DefaultStudentPassword: v.GetString("defaultStudentPassword"),
		MinPasswordLen:         v.GetInt("minPasswordLen"),
		CodeTTL:                v.GetDuration("codeTTL"),
		LowAttendancePct:       v.GetFloat64("lowAttendancePct"),
		SnapshotPath:           v.GetString("snapshotPath"),
		RollbarToken:           v.GetString("rollbarToken"),
	}
}
