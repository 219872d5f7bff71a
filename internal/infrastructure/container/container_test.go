package container

import (
	"io"
	"testing"
	"time"

	"ipv6-autoconf/internal/infrastructure/adapters"
	"ipv6-autoconf/internal/infrastructure/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		Paths: config.PathsConfig{
			OSReleaseFile:     dir + "/os-release",
			NetplanDir:        dir + "/netplan",
			InterfacesDir:     dir + "/interfaces.d",
			NetworkScriptsDir: dir + "/network-scripts",
			SysctlDir:         dir + "/sysctl.d",
			ProcSysDir:        dir + "/proc/sys",
			BackupDir:         dir + "/backups",
		},
		Run: config.RunConfig{
			CommandTimeout:     30 * time.Second,
			FallbackInterfaces: []string{"eth0"},
		},
		Verify: config.VerifyConfig{
			Timeout:    12 * time.Second,
			Interval:   time.Second,
			PingTarget: "2001:4860:4860::8888",
			PingCount:  3,
		},
	}
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name             string
		opts             Options
		assumeYesEnv     bool
		expectAutoAccept bool
	}{
		{"기본값은 터미널 확인", Options{}, false, false},
		{"-y 옵션은 자동 승인", Options{AssumeYes: true}, false, true},
		{"ASSUME_YES 설정은 자동 승인", Options{}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			cfg := testConfig(t)
			cfg.Run.AssumeYes = tt.assumeYesEnv

			c, err := NewContainer(cfg, tt.opts, logger, "test")
			require.NoError(t, err)

			assert.Same(t, cfg, c.GetConfig())
			assert.NotNil(t, c.GetEnableIPv6UseCase())
			assert.NotNil(t, c.GetReportService())

			_, autoAccept := c.confirmer.(*adapters.AutoAcceptConfirmer)
			assert.Equal(t, tt.expectAutoAccept, autoAccept)
		})
	}
}
