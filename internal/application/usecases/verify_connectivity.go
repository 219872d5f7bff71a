package usecases

import (
	"context"
	"ipv6-autoconf/internal/application/polling"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/interfaces"
	"ipv6-autoconf/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// VerifyOptions는 Verifier의 선택적 도달성 검사 설정입니다
type VerifyOptions struct {
	ReachabilityCheck bool
	PingTarget        string
	PingCount         int
}

// VerifyConnectivityUseCase는 적용 이후 전역 IPv6 주소, 게이트웨이, 도달성을 진단합니다
type VerifyConnectivityUseCase struct {
	inspector  interfaces.LinkInspector
	prober     interfaces.ReachabilityProber
	controller *polling.PollingController
	options    VerifyOptions
	logger     *logrus.Logger
}

// NewVerifyConnectivityUseCase는 새로운 VerifyConnectivityUseCase를 생성합니다
func NewVerifyConnectivityUseCase(
	inspector interfaces.LinkInspector,
	prober interfaces.ReachabilityProber,
	controller *polling.PollingController,
	options VerifyOptions,
	logger *logrus.Logger,
) *VerifyConnectivityUseCase {
	return &VerifyConnectivityUseCase{
		inspector:  inspector,
		prober:     prober,
		controller: controller,
		options:    options,
		logger:     logger,
	}
}

// WithReachabilityCheck는 도달성 검사 여부만 바꾼 복사본을 반환합니다
func (uc *VerifyConnectivityUseCase) WithReachabilityCheck(enabled bool) *VerifyConnectivityUseCase {
	clone := *uc
	clone.options.ReachabilityCheck = enabled
	return &clone
}

// Execute는 진단 결과를 반환합니다. 부정적인 결과도 에러가 아닌 정상 결과입니다
func (uc *VerifyConnectivityUseCase) Execute(ctx context.Context, iface string) entities.VerificationOutcome {
	logger := uc.logger.WithField("interface", iface)
	logger.Info("전역 IPv6 주소 대기 중")

	var addresses []string
	result, err := uc.controller.Poll(ctx, func(ctx context.Context) (bool, error) {
		ips, err := uc.inspector.Addresses(ctx, iface, entities.FamilyV6, entities.ScopeGlobal)
		if err != nil {
			return false, err
		}
		if len(ips) == 0 {
			return false, nil
		}
		addresses = addresses[:0]
		for _, ip := range ips {
			addresses = append(addresses, ip.String())
		}
		return true, nil
	})
	if err != nil {
		logger.WithError(err).Warn("주소 대기가 중단됨")
	}

	outcome := entities.VerificationOutcome{
		HasGlobalAddress: result.Satisfied,
		GlobalAddresses:  addresses,
		GatewayCorrect:   uc.gatewayCorrect(ctx, iface),
		ElapsedSeconds:   result.Elapsed.Seconds(),
	}

	if uc.options.ReachabilityCheck && uc.prober != nil && outcome.HasGlobalAddress {
		reachable, err := uc.prober.Probe(ctx, uc.options.PingTarget, uc.options.PingCount)
		if err != nil {
			logger.WithError(err).Warn("도달성 검사 실패")
		}
		outcome.Reachable = &reachable
	}

	if !outcome.Complete() {
		outcome.LikelyCauses = append([]string(nil), entities.IncompleteCauses...)
	}

	metrics.RecordVerification(outcome.ElapsedSeconds, outcome.HasGlobalAddress)

	logger.WithFields(logrus.Fields{
		"global_addresses": outcome.GlobalAddresses,
		"gateway_correct":  outcome.GatewayCorrect,
		"elapsed_seconds":  outcome.ElapsedSeconds,
		"attempts":         result.Attempts,
	}).Info("연결 검증 완료")

	return outcome
}

func (uc *VerifyConnectivityUseCase) gatewayCorrect(ctx context.Context, iface string) bool {
	route, err := uc.inspector.DefaultRouteFor(ctx, entities.FamilyV6, iface)
	if err != nil || route == nil || !route.HasGateway() {
		return false
	}
	return entities.NewGatewayState(route.Gateway).Matches
}
