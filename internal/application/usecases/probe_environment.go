package usecases

import (
	"context"
	"ipv6-autoconf/internal/domain/constants"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/interfaces"
	"ipv6-autoconf/internal/domain/services"

	"github.com/sirupsen/logrus"
)

// ProbeEnvironmentUseCase는 호스트의 OS 계열, netplan 사용 여부, NetworkManager 상태를 탐지합니다
type ProbeEnvironmentUseCase struct {
	osRelease         interfaces.OSReleaseSource
	fileSystem        interfaces.FileSystem
	serviceController interfaces.ServiceController
	netplanDir        string
	logger            *logrus.Logger
}

// NewProbeEnvironmentUseCase는 새로운 ProbeEnvironmentUseCase를 생성합니다
func NewProbeEnvironmentUseCase(
	osRelease interfaces.OSReleaseSource,
	fs interfaces.FileSystem,
	services interfaces.ServiceController,
	netplanDir string,
	logger *logrus.Logger,
) *ProbeEnvironmentUseCase {
	return &ProbeEnvironmentUseCase{
		osRelease:         osRelease,
		fileSystem:        fs,
		serviceController: services,
		netplanDir:        netplanDir,
		logger:            logger,
	}
}

// Execute는 SystemProfile을 만듭니다. OS 정보를 읽지 못해도 실패하지 않고 generic 계열로 분류합니다
func (uc *ProbeEnvironmentUseCase) Execute(ctx context.Context) (entities.SystemProfile, error) {
	fields, err := uc.osRelease.Read()
	if err != nil {
		uc.logger.WithError(err).Warn("OS 식별 정보 읽기 실패, generic 계열로 진행")
		fields = map[string]string{}
	}

	id := fields["ID"]
	versionID := fields["VERSION_ID"]
	family := services.ClassifyFamily(id, fields["ID_LIKE"])

	netplanDirExists := uc.fileSystem.Exists(uc.netplanDir)
	declarative := services.SupportsDeclarativeConfig(family, netplanDirExists, versionID)

	nmActive := uc.serviceController.IsActive(ctx, constants.ServiceNetworkManager)

	profile := entities.NewSystemProfile(family, declarative, nmActive).WithIdentity(id, versionID)

	uc.logger.WithFields(logrus.Fields{
		"os_id":                  id,
		"version_id":             versionID,
		"family":                 family,
		"netplan_dir_exists":     netplanDirExists,
		"uses_declarative":       declarative,
		"network_manager_active": nmActive,
	}).Info("호스트 환경 탐지 완료")

	return profile, nil
}
