package usecases

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"ipv6-autoconf/internal/domain/services"
	"ipv6-autoconf/internal/infrastructure/metrics"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnableIPv6Input은 오케스트레이터 입력입니다
type EnableIPv6Input struct {
	// InterfaceName이 비어있지 않으면 자동 결정을 건너뜁니다
	InterfaceName string
	// SelectInterface는 후보 목록에서 사용자가 고르게 합니다
	SelectInterface bool
	// DryRun은 전략 선택까지만 하고 아무것도 바꾸지 않습니다
	DryRun bool
}

// EnableIPv6UseCase는 탐지부터 검증까지의 전체 흐름을 순서대로 실행합니다
type EnableIPv6UseCase struct {
	privilege interfaces.PrivilegeChecker
	executor  interfaces.CommandExecutor
	confirmer interfaces.Confirmer
	probe     *ProbeEnvironmentUseCase
	resolver  *ResolveInterfaceUseCase
	apply     *ApplyConfigUseCase
	reconcile *ReconcileGatewayUseCase
	verify    *VerifyConnectivityUseCase
	layout    entities.ArtifactLayout
	logger    *logrus.Logger
}

// NewEnableIPv6UseCase는 새로운 EnableIPv6UseCase를 생성합니다
func NewEnableIPv6UseCase(
	privilege interfaces.PrivilegeChecker,
	executor interfaces.CommandExecutor,
	confirmer interfaces.Confirmer,
	probe *ProbeEnvironmentUseCase,
	resolver *ResolveInterfaceUseCase,
	apply *ApplyConfigUseCase,
	reconcile *ReconcileGatewayUseCase,
	verify *VerifyConnectivityUseCase,
	layout entities.ArtifactLayout,
	logger *logrus.Logger,
) *EnableIPv6UseCase {
	return &EnableIPv6UseCase{
		privilege: privilege,
		executor:  executor,
		confirmer: confirmer,
		probe:     probe,
		resolver:  resolver,
		apply:     apply,
		reconcile: reconcile,
		verify:    verify,
		layout:    layout,
		logger:    logger,
	}
}

// Execute는 전체 흐름을 실행합니다. 반환되는 RunReport는 항상 nil이 아니며,
// 치명적 에러가 발생하면 같은 에러가 RunReport.Fatal에도 담깁니다
func (uc *EnableIPv6UseCase) Execute(ctx context.Context, input EnableIPv6Input) (*entities.RunReport, error) {
	report := &entities.RunReport{DryRun: input.DryRun}

	// 1. 권한 확인 (dry-run은 아무것도 바꾸지 않으므로 생략)
	if !input.DryRun && !uc.privilege.IsRoot() {
		return uc.abort(report, errors.NewPreconditionError("root 권한이 필요함", nil))
	}

	// 2. 환경 탐지
	profile, err := uc.probe.Execute(ctx)
	if err != nil {
		return uc.abort(report, err)
	}
	report.Profile = &profile

	// 3. 인터페이스 결정
	resolved, err := uc.resolveInterface(ctx, input)
	if err != nil {
		return uc.abort(report, err)
	}
	report.Interface = resolved
	iface := resolved.Interface.Name

	// 4. 전략 선택
	strategy := services.SelectStrategy(profile, iface, uc.layout)
	report.Strategy = &strategy
	metrics.RecordStrategy(strategy.Kind.String())

	uc.logger.WithFields(logrus.Fields{
		"interface":  iface,
		"strategy":   strategy.Kind.String(),
		"artifacts":  strategy.Artifacts(),
		"activation": strategy.Activation,
	}).Info("설정 전략 선택 완료")

	// 5. 필수 도구 확인
	if err := uc.checkTools(strategy); err != nil {
		return uc.abort(report, err)
	}

	if input.DryRun {
		uc.logger.Info("dry-run: 변경 없이 종료")
		return report, nil
	}

	// 6. 사용자 확인
	confirmed, err := uc.confirmer.Confirm(ctx, confirmationQuestion(strategy), true)
	if err != nil {
		return uc.abort(report, errors.NewUserCancelledError(fmt.Sprintf("확인 입력 실패: %v", err)))
	}
	if !confirmed {
		return uc.abort(report, errors.NewUserCancelledError("사용자가 변경을 거부함"))
	}

	// 7. 적용 직전 재확인
	if err := uc.resolver.Revalidate(ctx, iface); err != nil {
		return uc.abort(report, err)
	}

	// 8. 적용
	applyResult, err := uc.apply.Execute(ctx, strategy)
	report.Apply = applyResult
	if err != nil {
		return uc.abort(report, err)
	}

	// 9. 게이트웨이 보정 (실패해도 계속)
	gateway, err := uc.reconcile.Execute(ctx, iface)
	report.Gateway = gateway
	if uc.recordStageError(report, err) {
		return uc.abort(report, err)
	}

	// 10. 검증
	outcome := uc.verify.Execute(ctx, iface)
	report.Verification = &outcome
	if !outcome.Complete() {
		err := errors.NewVerificationIncompleteError(incompleteMessage(outcome))
		if uc.recordStageError(report, err) {
			return uc.abort(report, err)
		}
	}

	for _, warning := range report.Warnings {
		metrics.RecordError(string(errors.TypeOf(warning)))
	}

	uc.logger.WithFields(logrus.Fields{
		"interface": iface,
		"warnings":  len(report.Warnings),
	}).Info("IPv6 자동 설정 완료")

	return report, nil
}

func (uc *EnableIPv6UseCase) resolveInterface(ctx context.Context, input EnableIPv6Input) (*entities.ResolvedInterface, error) {
	switch {
	case input.InterfaceName != "":
		return uc.resolver.ResolveExplicit(ctx, input.InterfaceName)
	case input.SelectInterface:
		return uc.resolver.ResolveByChoice(ctx)
	default:
		return uc.resolver.ResolveDefault(ctx)
	}
}

func (uc *EnableIPv6UseCase) checkTools(strategy entities.ConfigStrategy) error {
	var missing []string
	for _, tool := range strategy.RequiredTools() {
		if _, err := uc.executor.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return errors.NewPreconditionError(fmt.Sprintf("필수 도구 없음: %s", strings.Join(missing, ", ")), nil)
	}
	return nil
}

// recordStageError는 비치명적 에러를 경고로 쌓고, 실행을 중단해야 하면 true를 반환합니다
func (uc *EnableIPv6UseCase) recordStageError(report *entities.RunReport, err error) bool {
	if err == nil {
		return false
	}
	if errors.IsFatal(err) {
		return true
	}
	report.Warnings = append(report.Warnings, err)
	return false
}

func (uc *EnableIPv6UseCase) abort(report *entities.RunReport, err error) (*entities.RunReport, error) {
	report.Fatal = err
	metrics.RecordError(string(errors.TypeOf(err)))
	uc.logger.WithError(err).Error("실행 중단")
	return report, err
}

func confirmationQuestion(strategy entities.ConfigStrategy) string {
	return fmt.Sprintf("Enable IPv6 autoconfiguration on %s via %s (modifies %s)?",
		strategy.Interface, strategy.Kind, strings.Join(strategy.Artifacts(), ", "))
}

func incompleteMessage(outcome entities.VerificationOutcome) string {
	if !outcome.HasGlobalAddress {
		return fmt.Sprintf("%.0f초 안에 전역 IPv6 주소가 할당되지 않음", outcome.ElapsedSeconds)
	}
	return "전역 주소는 있으나 외부 도달성 확인 실패"
}
