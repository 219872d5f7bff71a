package interfaces

import (
	"context"
	"os"
	"time"
)

// CommandExecutor는 시스템 명령을 실행하는 인터페이스입니다
type CommandExecutor interface {
	// Execute는 명령을 실행하고 결과를 반환합니다
	Execute(ctx context.Context, command string, args ...string) ([]byte, error)

	// ExecuteWithTimeout은 타임아웃을 적용하여 명령을 실행합니다
	ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error)

	// LookPath는 명령이 PATH에 있는지 확인합니다
	LookPath(command string) (string, error)
}

// FileSystem은 파일 시스템 작업을 추상화하는 인터페이스입니다
type FileSystem interface {
	// ReadFile은 파일을 읽습니다
	ReadFile(path string) ([]byte, error)

	// WriteFile은 파일에 데이터를 씁니다
	WriteFile(path string, data []byte, perm os.FileMode) error

	// Exists는 파일이나 디렉토리가 존재하는지 확인합니다
	Exists(path string) bool

	// MkdirAll은 디렉토리를 재귀적으로 생성합니다
	MkdirAll(path string, perm os.FileMode) error

	// Remove는 파일이나 디렉토리를 삭제합니다
	Remove(path string) error
}

// Clock은 시간 관련 작업을 추상화하는 인터페이스입니다
type Clock interface {
	// Now는 현재 시간을 반환합니다
	Now() time.Time

	// After는 d 이후에 현재 시간을 보내는 채널을 반환합니다
	After(d time.Duration) <-chan time.Time
}

// OSReleaseSource는 os-release 형식의 OS 식별 정보를 제공합니다.
// 파일이 없으면 빈 맵을 반환하며 에러로 취급하지 않습니다
type OSReleaseSource interface {
	Read() (map[string]string, error)
}

// ServiceController는 systemd 서비스를 다룹니다
type ServiceController interface {
	// IsActive는 서비스 활성 상태를 조회합니다. 조회 실패는 비활성으로 간주되어야 합니다
	IsActive(ctx context.Context, name string) bool

	// Restart는 서비스를 재시작합니다
	Restart(ctx context.Context, name string) error
}

// PrivilegeChecker는 실행 권한을 확인합니다
type PrivilegeChecker interface {
	IsRoot() bool
}
