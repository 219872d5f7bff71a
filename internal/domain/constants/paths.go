package constants

// 시스템 경로 상수들
const (
	// OS 감지 관련 경로
	OSReleaseFile = "/etc/os-release"

	// Ubuntu/Netplan 관련 경로
	NetplanConfigDir = "/etc/netplan"

	// Debian ifupdown 관련 경로
	InterfacesDir = "/etc/network/interfaces.d"

	// RHEL/CentOS 관련 경로
	RHELNetworkScriptsDir = "/etc/sysconfig/network-scripts"

	// sysctl 관련 경로
	SysctlConfigDir = "/etc/sysctl.d"
	ProcSysDir      = "/proc/sys"

	// 백업 디렉토리
	DefaultBackupDir = "/var/lib/ipv6-autoconf/backups"
)

// 서비스 이름
const (
	ServiceNetworkManager = "NetworkManager"
	ServiceNetworking     = "networking"
	ServiceNetwork        = "network"
)

// 네트워크 설정 관련 상수들
const (
	// 파일 권한
	ConfigFilePermission  = 0644
	NetplanFilePermission = 0600
	BackupDirPermission   = 0755

	// 타임아웃
	DefaultCommandTimeout = 30 // seconds
	NetplanApplyTimeout   = 120 // seconds

	// 검증
	DefaultVerifyTimeout  = 12 // seconds
	MinVerifyTimeout      = 10 // seconds
	MaxVerifyTimeout      = 15 // seconds
	DefaultVerifyInterval = 1  // seconds
	DefaultPingTarget     = "2001:4860:4860::8888"
	DefaultPingCount      = 3
)

// DefaultFallbackInterfaces는 기본 라우트가 없을 때 순서대로 확인하는 관례적 인터페이스 이름입니다
var DefaultFallbackInterfaces = []string{
	"eth0", "ens3", "ens4", "ens5", "ens18", "ens33", "ens160", "ens192", "enp0s3", "enp1s0", "eno1",
}
