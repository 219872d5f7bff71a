package entities

// BackupRecord는 수정 전 파일 하나의 백업 정보입니다. 롤백은 오직 이 기록만 근거로 합니다
type BackupRecord struct {
	OriginalPath  string
	BackupPath    string // ExistedBefore가 false이면 비어 있음
	ExistedBefore bool
}
