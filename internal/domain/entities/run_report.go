package entities

// ApplyResult는 설정 적용 결과입니다
type ApplyResult struct {
	Strategy   ConfigStrategy
	Mode       WriteMode
	Backups    []BackupRecord
	RolledBack bool
}

// RunReport는 한 번의 실행 결과입니다. 치명적 에러로 중단되어도 그 시점까지의 결과를 담습니다
type RunReport struct {
	Profile      *SystemProfile
	Interface    *ResolvedInterface
	Strategy     *ConfigStrategy
	Apply        *ApplyResult
	Gateway      *GatewayResult
	Verification *VerificationOutcome
	DryRun       bool

	// 비치명적 에러(ReconcileDegraded, VerificationIncomplete)
	Warnings []error
	// 실행을 중단시킨 치명적 에러
	Fatal error
}
