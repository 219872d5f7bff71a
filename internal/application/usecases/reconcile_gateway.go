package usecases

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"ipv6-autoconf/internal/infrastructure/metrics"
	"net"

	"github.com/sirupsen/logrus"
)

// ReconcileGatewayUseCase는 IPv6 기본 라우트의 next hop을 fe80::1로 맞춥니다
type ReconcileGatewayUseCase struct {
	inspector    interfaces.LinkInspector
	routeManager interfaces.RouteManager
	logger       *logrus.Logger
}

// NewReconcileGatewayUseCase는 새로운 ReconcileGatewayUseCase를 생성합니다
func NewReconcileGatewayUseCase(
	inspector interfaces.LinkInspector,
	routes interfaces.RouteManager,
	logger *logrus.Logger,
) *ReconcileGatewayUseCase {
	return &ReconcileGatewayUseCase{
		inspector:    inspector,
		routeManager: routes,
		logger:       logger,
	}
}

// Execute는 현재 라우트를 확인하고 필요하면 추가하거나 교체합니다.
// 실패는 ReconcileDegraded로 부분 결과와 함께 반환되며 롤백을 일으키지 않습니다.
// 컨텍스트가 이미 취소되었으면 컨텍스트 에러를 그대로 반환합니다
func (uc *ReconcileGatewayUseCase) Execute(ctx context.Context, iface string) (*entities.GatewayResult, error) {
	logger := uc.logger.WithField("interface", iface)

	// 적용 이후 중단 요청을 받았으면 라우트를 건드리지 않습니다
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	route, err := uc.inspector.DefaultRouteFor(ctx, entities.FamilyV6, iface)
	if err != nil {
		return uc.failed(entities.NewGatewayState(nil), errors.NewReconcileDegradedError("IPv6 기본 라우트 조회 실패", err))
	}

	var current net.IP
	if route != nil && route.HasGateway() {
		current = route.Gateway
	}
	state := entities.NewGatewayState(current)
	result := &entities.GatewayResult{Before: state}

	if state.Matches {
		result.Action = entities.GatewayAlreadyCorrect
		metrics.RecordGatewayAction(string(result.Action))
		logger.Info("IPv6 기본 게이트웨이가 이미 올바름")
		return result, nil
	}

	// next hop 없이 장치로만 향하는 기본 라우트도 교체 대상입니다
	if route != nil {
		logger.WithField("current_next_hop", state.CurrentNextHop.String()).Info("잘못된 IPv6 기본 게이트웨이 교체")
		if err := uc.routeManager.DeleteDefaultRoute(ctx, iface); err != nil {
			return uc.failed(state, errors.NewReconcileDegradedError("기존 IPv6 기본 라우트 삭제 실패", err))
		}
		result.Action = entities.GatewayReplaced
	} else {
		result.Action = entities.GatewayAdded
	}

	if err := uc.routeManager.AddDefaultRoute(ctx, iface, entities.ExpectedNextHop); err != nil {
		return uc.failed(state, errors.NewReconcileDegradedError(
			fmt.Sprintf("IPv6 기본 라우트 추가 실패 (via %s)", entities.ExpectedNextHop), err))
	}

	metrics.RecordGatewayAction(string(result.Action))
	logger.WithFields(logrus.Fields{
		"action":   result.Action,
		"next_hop": entities.ExpectedNextHop.String(),
	}).Info("IPv6 기본 게이트웨이 보정 완료")

	return result, nil
}

func (uc *ReconcileGatewayUseCase) failed(state entities.GatewayState, err error) (*entities.GatewayResult, error) {
	metrics.RecordGatewayAction(string(entities.GatewayFailed))
	uc.logger.WithError(err).Warn("게이트웨이 보정 실패")
	return &entities.GatewayResult{Before: state, Action: entities.GatewayFailed}, err
}
