package services

import (
	"ipv6-autoconf/internal/domain/constants"
	"ipv6-autoconf/internal/domain/entities"
)

// SelectStrategy는 SystemProfile을 ConfigStrategy 하나로 매핑합니다.
// 부작용이 없는 전체 함수이며 전략 정책은 이곳에만 존재합니다
func SelectStrategy(profile entities.SystemProfile, iface string, layout entities.ArtifactLayout) entities.ConfigStrategy {
	switch profile.Family {
	case entities.FamilyDebian:
		if profile.UsesDeclarativeConfig {
			return entities.ConfigStrategy{
				Kind:       entities.StrategyDeclarativeMerge,
				Interface:  iface,
				ConfigPath: layout.NetplanPath(iface),
				Activation: entities.ActivationNetplanApply,
			}
		}
		return entities.ConfigStrategy{
			Kind:              entities.StrategyLegacyInterfaceFile,
			Interface:         iface,
			ConfigPath:        layout.InterfacesPath(iface),
			Activation:        entities.ActivationServiceRestart,
			ActivationService: restartTarget(profile, constants.ServiceNetworking),
		}

	case entities.FamilyRHEL:
		return entities.ConfigStrategy{
			Kind:              entities.StrategyDistroServiceFile,
			Interface:         iface,
			ConfigPath:        layout.IfcfgPath(iface),
			Activation:        entities.ActivationServiceRestart,
			ActivationService: restartTarget(profile, constants.ServiceNetwork),
		}

	default:
		return kernelParameterStrategy(iface, layout)
	}
}

func kernelParameterStrategy(iface string, layout entities.ArtifactLayout) entities.ConfigStrategy {
	params := []struct {
		name  string
		value string
	}{
		{entities.SysctlDisableIPv6, "0"},
		{entities.SysctlAcceptRA, "2"},
		{entities.SysctlAutoconf, "1"},
	}

	settings := make([]entities.SysctlSetting, 0, len(params))
	for _, p := range params {
		settings = append(settings, entities.SysctlSetting{
			Key:      entities.SysctlKey(iface, p.name),
			LivePath: layout.LiveSysctlPath(iface, p.name),
			Value:    p.value,
		})
	}

	return entities.ConfigStrategy{
		Kind:       entities.StrategyKernelParameterOnly,
		Interface:  iface,
		ConfigPath: layout.SysctlPath(),
		Sysctl:     settings,
		Activation: entities.ActivationSysctlReload,
	}
}

// restartTarget은 NetworkManager가 인터페이스를 소유하면 NetworkManager를, 아니면 배포판 기본 서비스를 고릅니다
func restartTarget(profile entities.SystemProfile, fallback string) string {
	if profile.NetworkManagerActive {
		return constants.ServiceNetworkManager
	}
	return fallback
}
