package entities

// VerificationOutcome은 Verifier의 진단 결과입니다. 부정적 결과도 정상적인 보고 대상입니다
type VerificationOutcome struct {
	HasGlobalAddress bool
	GlobalAddresses  []string
	GatewayCorrect   bool
	Reachable        *bool // 도달성 검사를 하지 않았으면 nil
	ElapsedSeconds   float64
	LikelyCauses     []string
}

// 타임아웃 시 보고하는 추정 원인
var IncompleteCauses = []string{
	"upstream network does not provide IPv6",
	"router advertisement has not arrived yet",
	"firewall is blocking ICMPv6 or router advertisements",
}

// Complete는 전역 주소가 할당되었고 도달성 검사가 실패하지 않았는지 확인합니다
func (o VerificationOutcome) Complete() bool {
	if !o.HasGlobalAddress {
		return false
	}
	if o.Reachable != nil && !*o.Reachable {
		return false
	}
	return true
}
