package usecases

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"ipv6-autoconf/pkg/utils"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ResolveInterfaceUseCase는 설정 대상 인터페이스를 결정합니다
type ResolveInterfaceUseCase struct {
	inspector interfaces.LinkInspector
	prompter  interfaces.Prompter
	fallback  []string
	logger    *logrus.Logger
}

// NewResolveInterfaceUseCase는 새로운 ResolveInterfaceUseCase를 생성합니다
func NewResolveInterfaceUseCase(
	inspector interfaces.LinkInspector,
	prompter interfaces.Prompter,
	fallback []string,
	logger *logrus.Logger,
) *ResolveInterfaceUseCase {
	return &ResolveInterfaceUseCase{
		inspector: inspector,
		prompter:  prompter,
		fallback:  fallback,
		logger:    logger,
	}
}

// ResolveExplicit은 명령행에서 지정한 인터페이스를 검증합니다
func (uc *ResolveInterfaceUseCase) ResolveExplicit(ctx context.Context, name string) (*entities.ResolvedInterface, error) {
	if err := utils.ValidateInterfaceName(name); err != nil {
		return nil, errors.NewResolutionError(err.Error(), entities.ErrInvalidInterfaceName)
	}

	if err := uc.Revalidate(ctx, name); err != nil {
		return nil, err
	}

	return uc.resolved(name, entities.SourceExplicit), nil
}

// ResolveDefault는 IPv6, IPv4 기본 라우트 순으로 출구 인터페이스를 찾고, 없으면 관례적 이름 목록에서 첫 번째로 존재하는 것을 고릅니다
func (uc *ResolveInterfaceUseCase) ResolveDefault(ctx context.Context) (*entities.ResolvedInterface, error) {
	for _, family := range []entities.AddressFamily{entities.FamilyV6, entities.FamilyV4} {
		route, err := uc.inspector.DefaultRoute(ctx, family)
		if err != nil {
			uc.logger.WithError(err).WithField("family", family.String()).Debug("기본 라우트 조회 실패")
			continue
		}
		if route != nil && route.Interface != "" {
			return uc.resolved(route.Interface, entities.SourceDefaultRoute), nil
		}
	}

	for _, name := range uc.fallback {
		exists, err := uc.inspector.InterfaceExists(ctx, name)
		if err != nil {
			uc.logger.WithError(err).WithField("interface", name).Debug("인터페이스 존재 확인 실패")
			continue
		}
		if exists {
			return uc.resolved(name, entities.SourceFallbackList), nil
		}
	}

	return nil, errors.NewResolutionError("기본 라우트와 관례적 이름 목록에서 인터페이스를 찾지 못함", entities.ErrNoInterfaceFound)
}

// ResolveByChoice는 물리 인터페이스 후보를 보여주고 사용자가 번호로 고르게 합니다.
// 대화형 터미널이 없으면 첫 번째 후보를 고릅니다
func (uc *ResolveInterfaceUseCase) ResolveByChoice(ctx context.Context) (*entities.ResolvedInterface, error) {
	names, err := uc.inspector.ListInterfaces(ctx)
	if err != nil {
		return nil, errors.NewResolutionError("인터페이스 목록 조회 실패", err)
	}

	var candidates []string
	for _, name := range names {
		if !utils.IsVirtualInterfaceName(name) {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) == 0 {
		return nil, errors.NewResolutionError("선택 가능한 인터페이스가 없음", entities.ErrNoInterfaceFound)
	}

	if !uc.prompter.Interactive() {
		uc.logger.WithField("interface", candidates[0]).Info("대화형 터미널 없음, 첫 번째 후보 선택")
		return uc.resolved(candidates[0], entities.SourceUserChoice), nil
	}

	question := buildChoiceQuestion(candidates)
	for {
		answer, err := uc.prompter.Ask(ctx, question)
		if err != nil {
			return nil, errors.NewUserCancelledError(fmt.Sprintf("인터페이스 선택 중단: %v", err))
		}

		index, convErr := strconv.Atoi(strings.TrimSpace(answer))
		if convErr != nil || index < 1 || index > len(candidates) {
			uc.logger.WithField("answer", answer).Warn("잘못된 선택, 다시 입력")
			continue
		}

		return uc.resolved(candidates[index-1], entities.SourceUserChoice), nil
	}
}

// Revalidate는 적용 직전에 인터페이스가 아직 존재하는지 다시 확인합니다
func (uc *ResolveInterfaceUseCase) Revalidate(ctx context.Context, name string) error {
	exists, err := uc.inspector.InterfaceExists(ctx, name)
	if err != nil {
		return errors.NewResolutionError(fmt.Sprintf("인터페이스 %s 확인 실패", name), err)
	}
	if !exists {
		return errors.NewResolutionError(fmt.Sprintf("인터페이스 %s 없음", name), entities.ErrInterfaceNotFound)
	}
	return nil
}

func (uc *ResolveInterfaceUseCase) resolved(name string, source entities.ResolutionSource) *entities.ResolvedInterface {
	uc.logger.WithFields(logrus.Fields{
		"interface": name,
		"source":    source,
	}).Info("대상 인터페이스 결정")

	return &entities.ResolvedInterface{
		Interface: entities.NetworkInterface{Name: name, Exists: true},
		Source:    source,
	}
}

func buildChoiceQuestion(candidates []string) string {
	var b strings.Builder
	b.WriteString("Select the interface to enable IPv6 on:\n")
	for i, name := range candidates {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, name)
	}
	fmt.Fprintf(&b, "Enter a number [1-%d]", len(candidates))
	return b.String()
}
