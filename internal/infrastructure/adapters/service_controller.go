package adapters

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SystemdServiceController는 systemctl을 사용하는 ServiceController 구현체입니다
type SystemdServiceController struct {
	commandExecutor interfaces.CommandExecutor
	timeout         time.Duration
	logger          *logrus.Logger
}

// NewSystemdServiceController는 새로운 SystemdServiceController를 생성합니다
func NewSystemdServiceController(executor interfaces.CommandExecutor, timeout time.Duration, logger *logrus.Logger) interfaces.ServiceController {
	return &SystemdServiceController{
		commandExecutor: executor,
		timeout:         timeout,
		logger:          logger,
	}
}

// IsActive는 서비스가 active 상태인지 조회합니다. systemctl이 없거나 실패하면 비활성으로 간주합니다
func (c *SystemdServiceController) IsActive(ctx context.Context, name string) bool {
	output, err := c.commandExecutor.ExecuteWithTimeout(ctx, c.timeout, "systemctl", "is-active", name)
	if err != nil {
		c.logger.WithError(err).WithField("service", name).Debug("서비스 상태 조회 실패, 비활성으로 간주")
		return false
	}
	return strings.TrimSpace(string(output)) == "active"
}

// Restart는 서비스를 재시작합니다
func (c *SystemdServiceController) Restart(ctx context.Context, name string) error {
	c.logger.WithField("service", name).Info("서비스 재시작")
	if _, err := c.commandExecutor.ExecuteWithTimeout(ctx, c.timeout, "systemctl", "restart", name); err != nil {
		return errors.NewSystemError(fmt.Sprintf("systemctl restart %s 실패", name), err)
	}
	return nil
}
