package network

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/constants"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"strings"

	"github.com/sirupsen/logrus"
)

// InterfacesAdapter는 ifupdown interfaces.d 아래에 인터페이스별 stanza 파일을 기록합니다
type InterfacesAdapter struct {
	fileSystem        interfaces.FileSystem
	serviceController interfaces.ServiceController
	logger            *logrus.Logger
}

// NewInterfacesAdapter는 새로운 InterfacesAdapter를 생성합니다
func NewInterfacesAdapter(
	fs interfaces.FileSystem,
	services interfaces.ServiceController,
	logger *logrus.Logger,
) *InterfacesAdapter {
	return &InterfacesAdapter{
		fileSystem:        fs,
		serviceController: services,
		logger:            logger,
	}
}

// Write는 stanza 파일 전체를 덮어씁니다. 이 파일은 인터페이스 하나만 다룹니다
func (a *InterfacesAdapter) Write(ctx context.Context, strategy entities.ConfigStrategy) (entities.WriteMode, error) {
	mode := entities.WriteCreated
	if a.fileSystem.Exists(strategy.ConfigPath) {
		mode = entities.WriteOverwritten
	}

	content := renderInterfacesStanza(strategy.Interface)
	if err := a.fileSystem.WriteFile(strategy.ConfigPath, []byte(content), constants.ConfigFilePermission); err != nil {
		return "", errors.NewSystemError("interfaces 파일 저장 실패", err)
	}

	a.logger.WithFields(logrus.Fields{
		"interface":   strategy.Interface,
		"config_path": strategy.ConfigPath,
		"write_mode":  mode,
	}).Info("ifupdown 설정 파일 기록 완료")

	return mode, nil
}

// Activate는 전략에 지정된 서비스(NetworkManager 또는 networking)를 재시작합니다
func (a *InterfacesAdapter) Activate(ctx context.Context, strategy entities.ConfigStrategy) error {
	return restartService(ctx, a.serviceController, a.logger, strategy)
}

func renderInterfacesStanza(iface string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "auto %s\n", iface)
	fmt.Fprintf(&b, "iface %s inet6 auto\n", iface)
	b.WriteString("    accept_ra 2\n")
	b.WriteString("    dhcp 1\n")
	return b.String()
}

// restartService는 서비스 재시작 기반 전략이 공유하는 활성화 단계입니다
func restartService(
	ctx context.Context,
	services interfaces.ServiceController,
	logger *logrus.Logger,
	strategy entities.ConfigStrategy,
) error {
	if strategy.ActivationService == "" {
		return errors.NewValidationError("재시작할 서비스가 지정되지 않음", nil)
	}

	if err := services.Restart(ctx, strategy.ActivationService); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"interface": strategy.Interface,
		"service":   strategy.ActivationService,
	}).Info("네트워크 서비스 재시작 완료")
	return nil
}
