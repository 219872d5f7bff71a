package interfaces

import (
	"context"

	"ipv6-autoconf/internal/domain/entities"
)

// BackupJournal은 한 번의 적용 동안 만들어진 BackupRecord의 순서 있는 목록입니다
type BackupJournal interface {
	// Record는 파일을 수정하기 전에 호출되어 백업을 만듭니다
	Record(path string) (entities.BackupRecord, error)

	// Records는 생성 순서대로 기록을 반환합니다
	Records() []entities.BackupRecord

	// RollbackAll은 모든 기록을 역순으로 복원합니다
	RollbackAll(ctx context.Context) error
}

// BackupService는 새 BackupJournal을 엽니다
type BackupService interface {
	Begin(ctx context.Context) BackupJournal
}
