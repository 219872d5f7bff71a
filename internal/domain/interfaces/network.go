package interfaces

import (
	"context"
	"net"

	"ipv6-autoconf/internal/domain/entities"
)

// LinkInspector는 링크/라우트/주소를 조회하는 인터페이스입니다
type LinkInspector interface {
	// ListInterfaces는 발견 순서대로 인터페이스 이름을 반환합니다
	ListInterfaces(ctx context.Context) ([]string, error)

	// InterfaceExists는 인터페이스가 현재 존재하는지 확인합니다
	InterfaceExists(ctx context.Context, name string) (bool, error)

	// DefaultRoute는 주어진 주소 체계의 첫 번째 기본 라우트를 반환합니다. 없으면 nil입니다
	DefaultRoute(ctx context.Context, family entities.AddressFamily) (*entities.Route, error)

	// DefaultRouteFor는 특정 인터페이스의 기본 라우트를 반환합니다. 없으면 nil입니다
	DefaultRouteFor(ctx context.Context, family entities.AddressFamily, iface string) (*entities.Route, error)

	// Addresses는 인터페이스에 할당된 주소를 범위로 필터링하여 반환합니다
	Addresses(ctx context.Context, iface string, family entities.AddressFamily, scope entities.AddressScope) ([]net.IP, error)
}

// RouteManager는 IPv6 기본 라우트를 변경합니다
type RouteManager interface {
	AddDefaultRoute(ctx context.Context, iface string, gateway net.IP) error
	DeleteDefaultRoute(ctx context.Context, iface string) error
}

// ConfigWriter는 전략 하나의 설정 파일 쓰기와 활성화를 담당합니다.
// 백업은 호출자가 Write 이전에 만들어야 합니다
type ConfigWriter interface {
	// Write는 설정을 기록하고 실제로 택한 쓰기 방식을 반환합니다
	Write(ctx context.Context, strategy entities.ConfigStrategy) (entities.WriteMode, error)

	// Activate는 전략에 맞는 활성화 단계(reload, 서비스 재시작, sysctl reload)를 실행합니다
	Activate(ctx context.Context, strategy entities.ConfigStrategy) error
}

// ConfigWriterFactory는 전략 종류에 맞는 ConfigWriter를 만듭니다
type ConfigWriterFactory interface {
	CreateConfigWriter(kind entities.StrategyKind) (ConfigWriter, error)
}

// ReachabilityProber는 외부 주소로의 도달성을 제한된 횟수로 확인합니다
type ReachabilityProber interface {
	Probe(ctx context.Context, target string, count int) (bool, error)
}
