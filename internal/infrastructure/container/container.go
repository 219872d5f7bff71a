package container

import (
	"ipv6-autoconf/internal/application/polling"
	"ipv6-autoconf/internal/application/usecases"
	"ipv6-autoconf/internal/domain/interfaces"
	"ipv6-autoconf/internal/infrastructure/adapters"
	"ipv6-autoconf/internal/infrastructure/config"
	"ipv6-autoconf/internal/infrastructure/network"
	"ipv6-autoconf/internal/infrastructure/report"
	"ipv6-autoconf/internal/infrastructure/services"

	"github.com/sirupsen/logrus"
)

// Container는 의존성 주입을 관리하는 컨테이너입니다
type Container struct {
	config  *config.Config
	logger  *logrus.Logger
	version string

	// 인프라스트럭처 어댑터들
	fileSystem        interfaces.FileSystem
	commandExecutor   interfaces.CommandExecutor
	clock             interfaces.Clock
	osRelease         interfaces.OSReleaseSource
	serviceController interfaces.ServiceController
	privilege         interfaces.PrivilegeChecker
	netlink           *adapters.NetlinkAdapter
	prompter          *adapters.TerminalPrompter
	confirmer         interfaces.Confirmer
	prober            interfaces.ReachabilityProber

	// 서비스들
	backupService  *services.BackupService
	writerFactory  *network.ConfigWriterFactory
	pollController *polling.PollingController
	reportService  *report.ReportService

	// 유스케이스
	enableIPv6UseCase *usecases.EnableIPv6UseCase
}

// Options는 명령행에서 설정을 덮어쓰는 값입니다
type Options struct {
	// AssumeYes는 확인 질문을 모두 승인합니다
	AssumeYes bool
	// ReachabilityCheck는 검증 단계에서 ping 검사를 켭니다
	ReachabilityCheck bool
}

// NewContainer는 새로운 Container를 생성합니다
func NewContainer(cfg *config.Config, opts Options, logger *logrus.Logger, version string) (*Container, error) {
	container := &Container{
		config:  cfg,
		logger:  logger,
		version: version,
	}

	if err := container.initializeInfrastructure(opts); err != nil {
		return nil, err
	}

	if err := container.initializeServices(); err != nil {
		return nil, err
	}

	if err := container.initializeUseCases(opts); err != nil {
		return nil, err
	}

	return container, nil
}

// initializeInfrastructure는 인프라스트럭처 컴포넌트들을 초기화합니다
func (c *Container) initializeInfrastructure(opts Options) error {
	// 기본 어댑터들 초기화
	c.fileSystem = adapters.NewRealFileSystem()
	c.commandExecutor = adapters.NewRealCommandExecutor()
	c.clock = adapters.NewRealClock()
	c.osRelease = adapters.NewOSReleaseFile(c.fileSystem, c.config.Paths.OSReleaseFile)
	c.serviceController = adapters.NewSystemdServiceController(c.commandExecutor, c.config.Run.CommandTimeout, c.logger)
	c.privilege = adapters.NewProcessPrivilege()

	// 커널 라우팅 테이블 접근
	c.netlink = adapters.NewNetlinkAdapter(c.logger)

	// 사용자 입력
	c.prompter = adapters.NewTerminalPrompter(c.logger)
	if opts.AssumeYes || c.config.Run.AssumeYes {
		c.confirmer = adapters.NewAutoAcceptConfirmer(c.logger)
	} else {
		c.confirmer = c.prompter
	}

	// root로 실행되므로 raw ICMPv6 소켓 사용
	c.prober = adapters.NewPingProber(true, c.logger)

	return nil
}

// initializeServices는 서비스들을 초기화합니다
func (c *Container) initializeServices() error {
	// 백업 서비스
	c.backupService = services.NewBackupService(c.fileSystem, c.clock, c.logger, c.config.Paths.BackupDir)

	// 설정 기록기 팩토리
	c.writerFactory = network.NewConfigWriterFactory(
		c.commandExecutor,
		c.fileSystem,
		c.serviceController,
		c.logger,
		c.config.Run.CommandTimeout,
	)

	// 검증 폴링 컨트롤러
	c.pollController = polling.NewPollingController(
		polling.NewFixedIntervalStrategy(c.config.Verify.Interval),
		c.clock,
		c.config.Verify.Timeout,
		c.logger,
	)

	// 실행 보고서
	c.reportService = report.NewReportService(c.clock, c.logger, c.version)

	return nil
}

// initializeUseCases는 유스케이스들을 초기화합니다
func (c *Container) initializeUseCases(opts Options) error {
	probe := usecases.NewProbeEnvironmentUseCase(
		c.osRelease,
		c.fileSystem,
		c.serviceController,
		c.config.Paths.NetplanDir,
		c.logger,
	)

	resolver := usecases.NewResolveInterfaceUseCase(
		c.netlink,
		c.prompter,
		c.config.Run.FallbackInterfaces,
		c.logger,
	)

	apply := usecases.NewApplyConfigUseCase(
		c.writerFactory,
		c.backupService,
		c.clock,
		c.logger,
	)

	reconcile := usecases.NewReconcileGatewayUseCase(c.netlink, c.netlink, c.logger)

	verify := usecases.NewVerifyConnectivityUseCase(
		c.netlink,
		c.prober,
		c.pollController,
		usecases.VerifyOptions{
			ReachabilityCheck: c.config.Verify.ReachabilityCheck,
			PingTarget:        c.config.Verify.PingTarget,
			PingCount:         c.config.Verify.PingCount,
		},
		c.logger,
	)
	if opts.ReachabilityCheck {
		verify = verify.WithReachabilityCheck(true)
	}

	c.enableIPv6UseCase = usecases.NewEnableIPv6UseCase(
		c.privilege,
		c.commandExecutor,
		c.confirmer,
		probe,
		resolver,
		apply,
		reconcile,
		verify,
		c.config.Layout(),
		c.logger,
	)

	return nil
}

// GetConfig는 설정을 반환합니다
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetReportService는 보고서 서비스를 반환합니다
func (c *Container) GetReportService() *report.ReportService {
	return c.reportService
}

// GetEnableIPv6UseCase는 IPv6 자동 설정 유스케이스를 반환합니다
func (c *Container) GetEnableIPv6UseCase() *usecases.EnableIPv6UseCase {
	return c.enableIPv6UseCase
}
