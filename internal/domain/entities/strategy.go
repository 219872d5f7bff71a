package entities

import (
	"fmt"
	"path/filepath"
	"strings"
)

// StrategyKind는 설정 방식의 종류입니다. 닫힌 집합이며 새 값을 추가하면 선택기와 팩토리를 함께 수정해야 합니다
type StrategyKind int

const (
	StrategyDeclarativeMerge StrategyKind = iota + 1
	StrategyLegacyInterfaceFile
	StrategyDistroServiceFile
	StrategyKernelParameterOnly
)

// String은 전략 종류의 문자열 표현을 반환합니다
func (k StrategyKind) String() string {
	switch k {
	case StrategyDeclarativeMerge:
		return "declarative-merge"
	case StrategyLegacyInterfaceFile:
		return "legacy-interface-file"
	case StrategyDistroServiceFile:
		return "distro-service-file"
	case StrategyKernelParameterOnly:
		return "kernel-parameter-only"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ActivationKind는 전략별 활성화 단계입니다
type ActivationKind string

const (
	ActivationNetplanApply   ActivationKind = "netplan-apply"
	ActivationServiceRestart ActivationKind = "service-restart"
	ActivationSysctlReload   ActivationKind = "sysctl-reload"
)

// 커널 파라미터 이름
const (
	SysctlDisableIPv6 = "disable_ipv6"
	SysctlAcceptRA    = "accept_ra"
	SysctlAutoconf    = "autoconf"
)

// SysctlSetting은 인터페이스별 IPv6 커널 파라미터 하나입니다
type SysctlSetting struct {
	Key      string // net.ipv6.conf.<iface>.<param>
	LivePath string // <procSysDir>/net/ipv6/conf/<iface>/<param>
	Value    string
}

// ConfigStrategy는 선택된 설정 방식과 그 방식이 건드리는 파일 경로, 활성화 방법을 담습니다
type ConfigStrategy struct {
	Kind       StrategyKind
	Interface  string
	ConfigPath string

	// KernelParameterOnly 전용
	Sysctl []SysctlSetting

	Activation        ActivationKind
	ActivationService string // ActivationServiceRestart일 때 재시작할 서비스
}

// Artifacts는 이 전략이 수정하는 모든 파일을 쓰기 순서대로 반환합니다
func (s ConfigStrategy) Artifacts() []string {
	artifacts := []string{s.ConfigPath}
	for _, setting := range s.Sysctl {
		artifacts = append(artifacts, setting.LivePath)
	}
	return artifacts
}

// RequiredTools는 이 전략을 실행하기 위해 필요한 명령어 목록입니다
func (s ConfigStrategy) RequiredTools() []string {
	switch s.Activation {
	case ActivationNetplanApply:
		return []string{"netplan"}
	case ActivationServiceRestart:
		return []string{"systemctl"}
	case ActivationSysctlReload:
		return []string{"sysctl"}
	default:
		return nil
	}
}

// ArtifactLayout은 전략이 사용하는 디렉토리 배치입니다. 설정에서 채워지며 테스트에서는 임시 디렉토리를 가리킵니다
type ArtifactLayout struct {
	NetplanDir        string
	InterfacesDir     string
	NetworkScriptsDir string
	SysctlDir         string
	ProcSysDir        string
}

// NetplanPath는 인터페이스별 netplan 파일 경로입니다
func (l ArtifactLayout) NetplanPath(iface string) string {
	return filepath.Join(l.NetplanDir, fmt.Sprintf("60-ipv6-%s.yaml", iface))
}

// InterfacesPath는 인터페이스별 ifupdown 파일 경로입니다
func (l ArtifactLayout) InterfacesPath(iface string) string {
	return filepath.Join(l.InterfacesDir, fmt.Sprintf("60-ipv6-%s", iface))
}

// IfcfgPath는 인터페이스별 ifcfg 파일 경로입니다
func (l ArtifactLayout) IfcfgPath(iface string) string {
	return filepath.Join(l.NetworkScriptsDir, "ifcfg-"+iface)
}

// SysctlPath는 이 도구가 단독 소유하는 sysctl 영속화 파일 경로입니다
func (l ArtifactLayout) SysctlPath() string {
	return filepath.Join(l.SysctlDir, "60-ipv6-autoconf.conf")
}

// SysctlKey는 인터페이스별 sysctl 키를 만듭니다. 인터페이스 이름의 '.'은 sysctl 규칙에 따라 '/'로 바뀝니다
func SysctlKey(iface, param string) string {
	return fmt.Sprintf("net.ipv6.conf.%s.%s", strings.ReplaceAll(iface, ".", "/"), param)
}

// LiveSysctlPath는 /proc/sys 아래 실시간 커널 파라미터 경로입니다
func (l ArtifactLayout) LiveSysctlPath(iface, param string) string {
	return filepath.Join(l.ProcSysDir, "net", "ipv6", "conf", iface, param)
}

// WriteMode는 Config Applier가 실제로 어떤 쓰기 경로를 택했는지 나타냅니다
type WriteMode string

const (
	WriteCreated     WriteMode = "created"
	WriteMerged      WriteMode = "merged"
	WriteOverwritten WriteMode = "overwritten"
	WriteAppended    WriteMode = "appended"
	WriteUnchanged   WriteMode = "unchanged"
)
