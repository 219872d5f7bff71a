package interfaces

import "context"

// Confirmer는 변경 전 사용자 확인을 받습니다. 무인 환경에서는 기본값을 즉시 반환해야 합니다
type Confirmer interface {
	Confirm(ctx context.Context, question string, defaultYes bool) (bool, error)
}

// Prompter는 한 줄 입력을 받습니다
type Prompter interface {
	// Interactive는 사용자가 응답할 수 있는 터미널이 있는지 반환합니다
	Interactive() bool

	// Ask는 질문을 표시하고 사용자가 입력한 한 줄을 반환합니다
	Ask(ctx context.Context, question string) (string, error)
}
