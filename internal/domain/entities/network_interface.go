package entities

import (
	"errors"
	"net"
)

// NetworkInterface는 설정 대상 네트워크 인터페이스입니다.
// 이름이 식별자이며 Exists는 조회 시점의 값이므로 사용 직전에 다시 확인해야 합니다
type NetworkInterface struct {
	Name   string
	Exists bool
}

// ResolutionSource는 인터페이스가 어떤 방법으로 결정되었는지 나타냅니다
type ResolutionSource string

const (
	SourceExplicit     ResolutionSource = "explicit"
	SourceDefaultRoute ResolutionSource = "default-route"
	SourceFallbackList ResolutionSource = "fallback-list"
	SourceUserChoice   ResolutionSource = "user-choice"
)

// ResolvedInterface는 Interface Resolver의 결과입니다
type ResolvedInterface struct {
	Interface NetworkInterface
	Source    ResolutionSource
}

var (
	ErrNoInterfaceFound     = errors.New("대상 인터페이스를 찾을 수 없음")
	ErrInterfaceNotFound    = errors.New("인터페이스가 존재하지 않음")
	ErrInvalidInterfaceName = errors.New("유효하지 않은 인터페이스 이름")
)

// AddressFamily는 라우트/주소 조회 시 사용하는 주소 체계입니다
type AddressFamily int

const (
	FamilyV4 AddressFamily = 4
	FamilyV6 AddressFamily = 6
)

// String은 주소 체계의 문자열 표현을 반환합니다
func (f AddressFamily) String() string {
	if f == FamilyV4 {
		return "inet"
	}
	return "inet6"
}

// AddressScope는 주소 범위 필터입니다
type AddressScope int

const (
	ScopeAny AddressScope = iota
	ScopeGlobal
	ScopeLink
	ScopeHost
)

// Route는 기본 라우트 한 항목입니다. Gateway는 없을 수 있습니다
type Route struct {
	Interface string
	Gateway   net.IP
}

// HasGateway는 next hop이 있는지 확인합니다
func (r Route) HasGateway() bool {
	return len(r.Gateway) > 0 && !r.Gateway.IsUnspecified()
}
