package network

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/constants"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SysctlAdapter는 배포판별 네트워크 설정이 없는 호스트에서 커널 파라미터만으로 IPv6를 켭니다
type SysctlAdapter struct {
	commandExecutor interfaces.CommandExecutor
	fileSystem      interfaces.FileSystem
	logger          *logrus.Logger
	commandTimeout  time.Duration
}

// NewSysctlAdapter는 새로운 SysctlAdapter를 생성합니다
func NewSysctlAdapter(
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	logger *logrus.Logger,
	commandTimeout time.Duration,
) *SysctlAdapter {
	return &SysctlAdapter{
		commandExecutor: executor,
		fileSystem:      fs,
		logger:          logger,
		commandTimeout:  commandTimeout,
	}
}

// Write는 영속화 파일을 전체 덮어쓰고 /proc/sys 실시간 값을 기록합니다
func (a *SysctlAdapter) Write(ctx context.Context, strategy entities.ConfigStrategy) (entities.WriteMode, error) {
	mode := entities.WriteCreated
	if a.fileSystem.Exists(strategy.ConfigPath) {
		mode = entities.WriteOverwritten
	}

	content := renderSysctlConf(strategy.Sysctl)
	if err := a.fileSystem.WriteFile(strategy.ConfigPath, []byte(content), constants.ConfigFilePermission); err != nil {
		return "", errors.NewSystemError("sysctl 설정 파일 저장 실패", err)
	}

	for _, setting := range strategy.Sysctl {
		if err := a.fileSystem.WriteFile(setting.LivePath, []byte(setting.Value+"\n"), constants.ConfigFilePermission); err != nil {
			return "", errors.NewSystemError(fmt.Sprintf("커널 파라미터 %s 기록 실패", setting.Key), err)
		}
		a.logger.WithFields(logrus.Fields{
			"key":   setting.Key,
			"value": setting.Value,
		}).Debug("커널 파라미터 기록")
	}

	a.logger.WithFields(logrus.Fields{
		"interface":   strategy.Interface,
		"config_path": strategy.ConfigPath,
		"write_mode":  mode,
	}).Info("sysctl 설정 기록 완료")

	return mode, nil
}

// Activate는 sysctl -p로 영속화 파일을 다시 읽어들입니다
func (a *SysctlAdapter) Activate(ctx context.Context, strategy entities.ConfigStrategy) error {
	if _, err := a.commandExecutor.ExecuteWithTimeout(ctx, a.commandTimeout, "sysctl", "-p", strategy.ConfigPath); err != nil {
		return errors.NewSystemError("sysctl 설정 적용 실패", err)
	}

	a.logger.WithField("config_path", strategy.ConfigPath).Info("sysctl 설정 적용 완료")
	return nil
}

func renderSysctlConf(settings []entities.SysctlSetting) string {
	var b strings.Builder
	b.WriteString("# Managed by ipv6-autoconf\n")
	for _, setting := range settings {
		fmt.Fprintf(&b, "%s = %s\n", setting.Key, setting.Value)
	}
	return b.String()
}
