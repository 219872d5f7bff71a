package config

import (
	"fmt"
	"ipv6-autoconf/internal/domain/constants"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/pkg/utils"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is a struct that holds application configuration
type Config struct {
	Log    LogConfig
	Paths  PathsConfig
	Run    RunConfig
	Verify VerifyConfig
}

// LogConfig is a struct that holds logging configuration
type LogConfig struct {
	Level  string
	Format string // text or json
}

// PathsConfig holds the directories the tool reads and writes
type PathsConfig struct {
	OSReleaseFile     string
	NetplanDir        string
	InterfacesDir     string
	NetworkScriptsDir string
	SysctlDir         string
	ProcSysDir        string
	BackupDir         string
}

// RunConfig is a struct that holds per-run behaviour
type RunConfig struct {
	CommandTimeout     time.Duration
	AssumeYes          bool
	FallbackInterfaces []string
	MetricsTextfile    string
}

// VerifyConfig is a struct that holds verifier configuration
type VerifyConfig struct {
	Timeout           time.Duration
	Interval          time.Duration // fixed at one second
	ReachabilityCheck bool
	PingTarget        string
	PingCount         int
}

// Layout returns the artifact layout derived from the configured paths
func (c *Config) Layout() entities.ArtifactLayout {
	return entities.ArtifactLayout{
		NetplanDir:        c.Paths.NetplanDir,
		InterfacesDir:     c.Paths.InterfacesDir,
		NetworkScriptsDir: c.Paths.NetworkScriptsDir,
		SysctlDir:         c.Paths.SysctlDir,
		ProcSysDir:        c.Paths.ProcSysDir,
	}
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvironmentConfigLoader is an implementation that loads configuration from environment variables
type EnvironmentConfigLoader struct{}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader
func NewEnvironmentConfigLoader() ConfigLoader {
	return &EnvironmentConfigLoader{}
}

// Load loads configuration from environment variables
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	config := &Config{
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
		},
		Paths: PathsConfig{
			OSReleaseFile:     getEnvOrDefault("OS_RELEASE_FILE", constants.OSReleaseFile),
			NetplanDir:        getEnvOrDefault("NETPLAN_DIR", constants.NetplanConfigDir),
			InterfacesDir:     getEnvOrDefault("INTERFACES_DIR", constants.InterfacesDir),
			NetworkScriptsDir: getEnvOrDefault("NETWORK_SCRIPTS_DIR", constants.RHELNetworkScriptsDir),
			SysctlDir:         getEnvOrDefault("SYSCTL_DIR", constants.SysctlConfigDir),
			ProcSysDir:        getEnvOrDefault("PROC_SYS_DIR", constants.ProcSysDir),
			BackupDir:         getEnvOrDefault("BACKUP_DIR", constants.DefaultBackupDir),
		},
		Run: RunConfig{
			CommandTimeout:     getEnvDurationOrDefault("COMMAND_TIMEOUT", constants.DefaultCommandTimeout*time.Second),
			AssumeYes:          getEnvBoolOrDefault("ASSUME_YES", false),
			FallbackInterfaces: getEnvListOrDefault("FALLBACK_INTERFACES", constants.DefaultFallbackInterfaces),
			MetricsTextfile:    getEnvOrDefault("METRICS_TEXTFILE", ""),
		},
		Verify: VerifyConfig{
			Timeout:           getEnvDurationOrDefault("VERIFY_TIMEOUT", constants.DefaultVerifyTimeout*time.Second),
			Interval:          constants.DefaultVerifyInterval * time.Second,
			ReachabilityCheck: getEnvBoolOrDefault("REACHABILITY_CHECK", false),
			PingTarget:        getEnvOrDefault("PING_TARGET", constants.DefaultPingTarget),
			PingCount:         getEnvIntOrDefault("PING_COUNT", constants.DefaultPingCount),
		},
	}

	// Validate configuration
	if err := l.validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validate validates the configuration
func (l *EnvironmentConfigLoader) validate(config *Config) error {
	// Validate log configuration
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return errors.NewValidationError(fmt.Sprintf("invalid log format %q (text or json)", config.Log.Format), nil)
	}

	// Validate paths
	paths := map[string]string{
		"OS_RELEASE_FILE":     config.Paths.OSReleaseFile,
		"NETPLAN_DIR":         config.Paths.NetplanDir,
		"INTERFACES_DIR":      config.Paths.InterfacesDir,
		"NETWORK_SCRIPTS_DIR": config.Paths.NetworkScriptsDir,
		"SYSCTL_DIR":          config.Paths.SysctlDir,
		"PROC_SYS_DIR":        config.Paths.ProcSysDir,
		"BACKUP_DIR":          config.Paths.BackupDir,
	}
	for key, value := range paths {
		if strings.TrimSpace(value) == "" {
			return errors.NewValidationError(fmt.Sprintf("%s not configured", key), nil)
		}
	}

	// Validate run configuration
	if config.Run.CommandTimeout <= 0 {
		return errors.NewValidationError("invalid command timeout", nil)
	}
	for _, name := range config.Run.FallbackInterfaces {
		if err := utils.ValidateInterfaceName(name); err != nil {
			return errors.NewValidationError("invalid fallback interface", err)
		}
	}

	// Validate verifier configuration
	minTimeout := constants.MinVerifyTimeout * time.Second
	maxTimeout := constants.MaxVerifyTimeout * time.Second
	if config.Verify.Timeout < minTimeout || config.Verify.Timeout > maxTimeout {
		return errors.NewValidationError(
			fmt.Sprintf("verify timeout %s out of range (%s-%s)", config.Verify.Timeout, minTimeout, maxTimeout), nil)
	}
	if config.Verify.Interval != constants.DefaultVerifyInterval*time.Second {
		return errors.NewValidationError(fmt.Sprintf("verify interval must be %ds", constants.DefaultVerifyInterval), nil)
	}
	if config.Verify.PingCount <= 0 {
		return errors.NewValidationError("invalid ping count", nil)
	}
	if err := utils.ValidateIPv6Address(config.Verify.PingTarget); err != nil {
		return errors.NewValidationError("invalid ping target", err)
	}

	return nil
}

// Environment variable helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}

	var items []string
	for _, item := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' }) {
		items = append(items, item)
	}
	return items
}
