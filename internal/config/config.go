package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "DEADLINETODO"

type RuntimeConfig struct {
	DatabasePath         string
	LogFile              string
	LogLevel             string
	SweepInterval        time.Duration
	SchedulerBuffer      int
	WidgetAddr           string
	DesktopNotifications bool
	HeatmapWeeks         int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:         ".deadlinetodo.db",
		LogFile:              "logs/deadlinetodo.log",
		LogLevel:             "info",
		SweepInterval:        30 * time.Second,
		SchedulerBuffer:      64,
		WidgetAddr:           "127.0.0.1:7878",
		DesktopNotifications: false,
		HeatmapWeeks:         12,
	}
}

var flagKeys = map[string]string{
	"db":                    "database.path",
	"log-file":              "log.file",
	"log-level":             "log.level",
	"sweep-interval":        "sweep.interval",
	"scheduler-buffer":      "scheduler.buffer",
	"widget-addr":           "widget.addr",
	"desktop-notifications": "notifications.desktop",
	"heatmap-weeks":         "stats.heatmap_weeks",
}

func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultRuntimeConfig()
	fs.String("config", "", "path to a YAML config file")
	fs.String("db", d.DatabasePath, "SQLite database path")
	fs.String("log-file", d.LogFile, "log file path")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.Duration("sweep-interval", d.SweepInterval, "urgency sweep interval")
	fs.Int("scheduler-buffer", d.SchedulerBuffer, "notification channel buffer")
	fs.String("widget-addr", d.WidgetAddr, "widget HTTP listen address")
	fs.Bool("desktop-notifications", d.DesktopNotifications, "send desktop notifications")
	fs.Int("heatmap-weeks", d.HeatmapWeeks, "weeks shown in the completion heat map")
}

// Load layers defaults, an optional YAML file, DEADLINETODO_* env and fs,
// lowest to highest. A missing file is not an error; fs may be nil.
func Load(fs *pflag.FlagSet) (RuntimeConfig, error) {
	v := viper.New()
	d := DefaultRuntimeConfig()
	v.SetDefault("database.path", d.DatabasePath)
	v.SetDefault("log.file", d.LogFile)
	v.SetDefault("log.level", d.LogLevel)
	v.SetDefault("sweep.interval", d.SweepInterval)
	v.SetDefault("scheduler.buffer", d.SchedulerBuffer)
	v.SetDefault("widget.addr", d.WidgetAddr)
	v.SetDefault("notifications.desktop", d.DesktopNotifications)
	v.SetDefault("stats.heatmap_weeks", d.HeatmapWeeks)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := os.Getenv(EnvPrefix + "_CONFIG")
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return RuntimeConfig{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Changed {
			path = f.Value.String()
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return RuntimeConfig{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := RuntimeConfig{
		DatabasePath:         strings.TrimSpace(v.GetString("database.path")),
		LogFile:              strings.TrimSpace(v.GetString("log.file")),
		LogLevel:             strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		SweepInterval:        v.GetDuration("sweep.interval"),
		SchedulerBuffer:      v.GetInt("scheduler.buffer"),
		WidgetAddr:           strings.TrimSpace(v.GetString("widget.addr")),
		DesktopNotifications: v.GetBool("notifications.desktop"),
		HeatmapWeeks:         v.GetInt("stats.heatmap_weeks"),
	}
	return cfg.withFallbacks(d), nil
}

func (c RuntimeConfig) withFallbacks(d RuntimeConfig) RuntimeConfig {
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = d.SweepInterval
	}
	if c.SchedulerBuffer <= 0 {
		c.SchedulerBuffer = d.SchedulerBuffer
	}
	if c.HeatmapWeeks <= 0 {
		c.HeatmapWeeks = d.HeatmapWeeks
	}
	if c.WidgetAddr == "" {
		c.WidgetAddr = d.WidgetAddr
	}
	return c
}
