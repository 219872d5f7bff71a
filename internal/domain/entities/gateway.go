package entities

import "net"

// ExpectedNextHop은 기대하는 기본 라우트 link-local next hop입니다
var ExpectedNextHop = net.ParseIP("fe80::1")

// GatewayState는 현재 기본 IPv6 라우트 상태입니다
type GatewayState struct {
	CurrentNextHop  net.IP // 라우트가 없으면 nil
	ExpectedNextHop net.IP
	Matches         bool
}

// NewGatewayState는 현재 next hop과 기대값을 비교하여 GatewayState를 생성합니다
func NewGatewayState(current net.IP) GatewayState {
	return GatewayState{
		CurrentNextHop:  current,
		ExpectedNextHop: ExpectedNextHop,
		Matches:         current != nil && current.Equal(ExpectedNextHop),
	}
}

// HasRoute는 기본 라우트가 존재하는지 확인합니다
func (g GatewayState) HasRoute() bool {
	return g.CurrentNextHop != nil
}

// GatewayAction은 Gateway Reconciler가 수행한 동작입니다
type GatewayAction string

const (
	GatewayAlreadyCorrect GatewayAction = "already-correct"
	GatewayAdded          GatewayAction = "added"
	GatewayReplaced       GatewayAction = "replaced"
	GatewayFailed         GatewayAction = "failed"
)

// GatewayResult는 게이트웨이 보정 결과입니다
type GatewayResult struct {
	Before GatewayState
	Action GatewayAction
}
