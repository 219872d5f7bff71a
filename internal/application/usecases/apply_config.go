package usecases

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"ipv6-autoconf/internal/infrastructure/metrics"
	"time"

	"github.com/sirupsen/logrus"
)

// ApplyConfigUseCase는 전략 하나를 백업, 쓰기, 활성화 순서로 적용하고 실패하면 되돌립니다
type ApplyConfigUseCase struct {
	writerFactory interfaces.ConfigWriterFactory
	backupService interfaces.BackupService
	clock         interfaces.Clock
	logger        *logrus.Logger
}

// NewApplyConfigUseCase는 새로운 ApplyConfigUseCase를 생성합니다
func NewApplyConfigUseCase(
	factory interfaces.ConfigWriterFactory,
	backups interfaces.BackupService,
	clock interfaces.Clock,
	logger *logrus.Logger,
) *ApplyConfigUseCase {
	return &ApplyConfigUseCase{
		writerFactory: factory,
		backupService: backups,
		clock:         clock,
		logger:        logger,
	}
}

// Execute는 전략을 적용합니다. 실패하면 모든 백업을 역순으로 복원하고 ApplyFailed를 반환합니다.
// 활성화 실패의 경우 복원된 상태로 활성화를 한 번 더 실행합니다
func (uc *ApplyConfigUseCase) Execute(ctx context.Context, strategy entities.ConfigStrategy) (*entities.ApplyResult, error) {
	start := uc.clock.Now()
	kind := strategy.Kind.String()

	writer, err := uc.writerFactory.CreateConfigWriter(strategy.Kind)
	if err != nil {
		return nil, errors.NewApplyFailedError("설정 작성기 생성 실패", err)
	}

	journal := uc.backupService.Begin(ctx)
	result := &entities.ApplyResult{Strategy: strategy}

	for _, artifact := range strategy.Artifacts() {
		if _, err := journal.Record(artifact); err != nil {
			result.Backups = journal.Records()
			rollbackErr := uc.rollback(ctx, journal, result)
			uc.recordFailure(kind, start)
			return result, errors.NewApplyFailedError(
				fmt.Sprintf("%s 백업 실패", artifact), joinRollback(err, rollbackErr))
		}
	}
	result.Backups = journal.Records()

	logger := uc.logger.WithFields(logrus.Fields{
		"interface": strategy.Interface,
		"strategy":  kind,
		"path":      strategy.ConfigPath,
	})

	mode, err := writer.Write(ctx, strategy)
	if err != nil {
		logger.WithError(err).Error("설정 쓰기 실패, 롤백 시작")
		rollbackErr := uc.rollback(ctx, journal, result)
		uc.recordFailure(kind, start)
		return result, errors.NewApplyFailedError("설정 쓰기 실패", joinRollback(err, rollbackErr))
	}
	result.Mode = mode
	metrics.RecordWriteMode(string(mode))

	if err := writer.Activate(ctx, strategy); err != nil {
		logger.WithError(err).Error("설정 활성화 실패, 롤백 시작")
		rollbackErr := uc.rollback(ctx, journal, result)

		if reactivateErr := writer.Activate(ctx, strategy); reactivateErr != nil {
			logger.WithError(reactivateErr).Warn("복원된 설정 재활성화 실패")
		}

		uc.recordFailure(kind, start)
		return result, errors.NewApplyFailedError("설정 활성화 실패", joinRollback(err, rollbackErr))
	}

	metrics.RecordApply(kind, "success", uc.clock.Now().Sub(start).Seconds())
	logger.WithField("write_mode", mode).Info("설정 적용 완료")

	return result, nil
}

func (uc *ApplyConfigUseCase) rollback(ctx context.Context, journal interfaces.BackupJournal, result *entities.ApplyResult) error {
	result.RolledBack = true
	err := journal.RollbackAll(ctx)
	metrics.RecordRollback(err == nil)
	if err != nil {
		uc.logger.WithError(err).Error("롤백 중 오류 발생")
	}
	return err
}

func (uc *ApplyConfigUseCase) recordFailure(kind string, start time.Time) {
	metrics.RecordApply(kind, "failed", uc.clock.Now().Sub(start).Seconds())
}

// joinRollback은 원인 에러에 롤백 에러를 덧붙입니다
func joinRollback(cause, rollbackErr error) error {
	if rollbackErr == nil {
		return cause
	}
	return fmt.Errorf("%w (롤백 오류: %v)", cause, rollbackErr)
}
