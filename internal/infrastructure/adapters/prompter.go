package adapters

import (
	"context"
	"errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// TerminalPrompter는 huh 폼으로 확인과 입력을 받는 Confirmer/Prompter 구현체입니다.
// 표준 입력이 터미널이 아니면 질문하지 않고 즉시 기본값을 반환합니다
type TerminalPrompter struct {
	interactive bool
	logger      *logrus.Logger
}

// NewTerminalPrompter는 표준 입출력 기준으로 TerminalPrompter를 생성합니다
func NewTerminalPrompter(logger *logrus.Logger) *TerminalPrompter {
	return &TerminalPrompter{
		interactive: isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd()),
		logger:      logger,
	}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Interactive는 응답 가능한 터미널이 있는지 반환합니다
func (p *TerminalPrompter) Interactive() bool {
	return p.interactive
}

// Confirm은 예/아니오 질문을 합니다. Ctrl+C로 중단하면 거부로 처리합니다
func (p *TerminalPrompter) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	if !p.interactive {
		p.logger.WithFields(logrus.Fields{
			"question": question,
			"answer":   defaultYes,
		}).Info("대화형 터미널 없음, 기본값 사용")
		return defaultYes, nil
	}

	answer := defaultYes
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&answer),
	)).RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return answer, nil
}

// Ask는 한 줄 입력을 받습니다
func (p *TerminalPrompter) Ask(ctx context.Context, question string) (string, error) {
	var answer string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(question).
			Value(&answer),
	)).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// AutoAcceptConfirmer는 무인 실행(-y)용 Confirmer입니다. 모든 질문에 동의합니다
type AutoAcceptConfirmer struct {
	logger *logrus.Logger
}

// NewAutoAcceptConfirmer는 새로운 AutoAcceptConfirmer를 생성합니다
func NewAutoAcceptConfirmer(logger *logrus.Logger) interfaces.Confirmer {
	return &AutoAcceptConfirmer{logger: logger}
}

// Confirm은 항상 true를 반환합니다
func (c *AutoAcceptConfirmer) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	c.logger.WithField("question", question).Info("자동 승인")
	return true, nil
}
