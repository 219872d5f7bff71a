package services

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/constants"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// BackupService는 설정 파일 백업 저널을 여는 서비스입니다
type BackupService struct {
	fileSystem interfaces.FileSystem
	clock      interfaces.Clock
	logger     *logrus.Logger
	backupDir  string
	sequence   atomic.Int64
}

// NewBackupService는 새로운 BackupService를 생성합니다
func NewBackupService(
	fs interfaces.FileSystem,
	clock interfaces.Clock,
	logger *logrus.Logger,
	backupDir string,
) *BackupService {
	return &BackupService{
		fileSystem: fs,
		clock:      clock,
		logger:     logger,
		backupDir:  backupDir,
	}
}

// Begin은 새 저널을 엽니다. 저널은 한 번의 적용 호출 동안만 사용됩니다
func (s *BackupService) Begin(ctx context.Context) interfaces.BackupJournal {
	return &backupJournal{service: s}
}

// backupJournal은 생성 순서대로 BackupRecord를 보관하고 역순으로 롤백합니다
type backupJournal struct {
	service *BackupService
	records []entities.BackupRecord
}

// Record는 원본 파일의 현재 내용을 백업 디렉토리에 복사하고 기록을 남깁니다
func (j *backupJournal) Record(path string) (entities.BackupRecord, error) {
	s := j.service

	if !s.fileSystem.Exists(path) {
		record := entities.BackupRecord{OriginalPath: path, ExistedBefore: false}
		j.records = append(j.records, record)
		s.logger.WithField("path", path).Debug("백업할 원본 없음, 롤백 시 삭제 대상으로 기록")
		return record, nil
	}

	if err := s.fileSystem.MkdirAll(s.backupDir, constants.BackupDirPermission); err != nil {
		return entities.BackupRecord{}, errors.NewSystemError("백업 디렉토리 생성 실패", err)
	}

	content, err := s.fileSystem.ReadFile(path)
	if err != nil {
		return entities.BackupRecord{}, errors.NewSystemError("설정 파일 읽기 실패", err)
	}

	backupPath := filepath.Join(s.backupDir, s.backupFileName(path))
	if err := s.fileSystem.WriteFile(backupPath, content, constants.ConfigFilePermission); err != nil {
		return entities.BackupRecord{}, errors.NewSystemError("백업 파일 저장 실패", err)
	}

	record := entities.BackupRecord{
		OriginalPath:  path,
		BackupPath:    backupPath,
		ExistedBefore: true,
	}
	j.records = append(j.records, record)

	s.logger.WithFields(logrus.Fields{
		"path":        path,
		"backup_path": backupPath,
	}).Info("설정 백업 생성 완료")

	return record, nil
}

// Records는 생성 순서대로 기록의 복사본을 반환합니다
func (j *backupJournal) Records() []entities.BackupRecord {
	out := make([]entities.BackupRecord, len(j.records))
	copy(out, j.records)
	return out
}

// RollbackAll은 기록을 역순으로 복원합니다. 존재하던 파일은 백업 바이트로 되돌리고,
// 없던 파일은 삭제합니다. 개별 실패가 있어도 나머지를 계속 복원하고 마지막에 모아서 반환합니다
func (j *backupJournal) RollbackAll(ctx context.Context) error {
	s := j.service
	var failures []string

	for i := len(j.records) - 1; i >= 0; i-- {
		record := j.records[i]
		if err := j.restore(record); err != nil {
			s.logger.WithError(err).WithField("path", record.OriginalPath).Error("롤백 실패")
			failures = append(failures, fmt.Sprintf("%s: %v", record.OriginalPath, err))
			continue
		}
		s.logger.WithFields(logrus.Fields{
			"path":           record.OriginalPath,
			"existed_before": record.ExistedBefore,
		}).Info("설정 롤백 완료")
	}

	if len(failures) > 0 {
		return errors.NewSystemError("일부 파일 롤백 실패", fmt.Errorf("%s", strings.Join(failures, "; ")))
	}
	return nil
}

func (j *backupJournal) restore(record entities.BackupRecord) error {
	s := j.service
	if !record.ExistedBefore {
		return s.fileSystem.Remove(record.OriginalPath)
	}

	content, err := s.fileSystem.ReadFile(record.BackupPath)
	if err != nil {
		return fmt.Errorf("백업 파일 읽기 실패: %w", err)
	}
	return s.fileSystem.WriteFile(record.OriginalPath, content, constants.ConfigFilePermission)
}

// backupFileName은 백업 파일명을 생성합니다 (예: 60-ipv6-eth0_20250108_150405_1.yaml).
// /proc 아래 파일은 이름이 겹치므로 경로를 평탄화합니다
func (s *BackupService) backupFileName(path string) string {
	timestamp := s.clock.Now().Format("20060102_150405")
	seq := s.sequence.Add(1)

	base := strings.Trim(strings.ReplaceAll(filepath.Clean(path), string(filepath.Separator), "_"), "_")
	ext := filepath.Ext(base)
	base = strings.TrimSuffix(base, ext)

	return fmt.Sprintf("%s_%s_%d%s", base, timestamp, seq, ext)
}
