package network

import (
	"fmt"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"time"

	"github.com/sirupsen/logrus"
)

// ConfigWriterFactory는 전략 종류에 맞는 ConfigWriter를 생성하는 팩토리입니다
type ConfigWriterFactory struct {
	commandExecutor   interfaces.CommandExecutor
	fileSystem        interfaces.FileSystem
	serviceController interfaces.ServiceController
	logger            *logrus.Logger
	commandTimeout    time.Duration
}

// NewConfigWriterFactory는 새로운 ConfigWriterFactory를 생성합니다
func NewConfigWriterFactory(
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	services interfaces.ServiceController,
	logger *logrus.Logger,
	commandTimeout time.Duration,
) *ConfigWriterFactory {
	return &ConfigWriterFactory{
		commandExecutor:   executor,
		fileSystem:        fs,
		serviceController: services,
		logger:            logger,
		commandTimeout:    commandTimeout,
	}
}

// CreateConfigWriter는 전략 종류에 맞는 ConfigWriter를 생성합니다
func (f *ConfigWriterFactory) CreateConfigWriter(kind entities.StrategyKind) (interfaces.ConfigWriter, error) {
	f.logger.WithField("strategy", kind.String()).Debug("설정 작성기 생성")

	switch kind {
	case entities.StrategyDeclarativeMerge:
		return NewNetplanAdapter(f.commandExecutor, f.fileSystem, f.logger), nil

	case entities.StrategyLegacyInterfaceFile:
		return NewInterfacesAdapter(f.fileSystem, f.serviceController, f.logger), nil

	case entities.StrategyDistroServiceFile:
		return NewIfcfgAdapter(f.fileSystem, f.serviceController, f.logger), nil

	case entities.StrategyKernelParameterOnly:
		return NewSysctlAdapter(f.commandExecutor, f.fileSystem, f.logger, f.commandTimeout), nil

	default:
		return nil, errors.NewValidationError(fmt.Sprintf("지원하지 않는 전략: %s", kind), nil)
	}
}
