package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ipv6-autoconf/internal/application/usecases"
	"ipv6-autoconf/internal/infrastructure/config"
	"ipv6-autoconf/internal/infrastructure/container"
	"ipv6-autoconf/internal/infrastructure/metrics"
	"ipv6-autoconf/internal/infrastructure/report"

	"github.com/sirupsen/logrus"
)

// version은 빌드 시 -ldflags "-X main.version=..."로 주입됩니다
var version = "dev"

// cliOptions는 명령행 옵션입니다
type cliOptions struct {
	assumeYes       bool
	selectInterface bool
	dryRun          bool
	jsonOutput      bool
	ping            bool
	interfaceName   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	opts, err := parseFlags(args)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	// 로거 초기화
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 설정 로드
	configLoader := config.NewEnvironmentConfigLoader()
	cfg, err := configLoader.Load()
	if err != nil {
		logger.WithError(err).Error("Failed to load configuration")
		return 1
	}
	configureLogger(logger, cfg.Log)

	// 의존성 주입 컨테이너 생성
	appContainer, err := container.NewContainer(cfg, container.Options{
		AssumeYes:         opts.assumeYes,
		ReachabilityCheck: opts.ping,
	}, logger, version)
	if err != nil {
		logger.WithError(err).Error("Failed to create dependency injection container")
		return 1
	}

	// 시그널 수신 시 진행 중인 폴링과 명령을 취소
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := NewApplication(appContainer, logger)
	return app.Run(ctx, opts, stdout)
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("ipv6-autoconf", flag.ContinueOnError)
	fs.BoolVar(&opts.assumeYes, "y", false, "answer yes to every confirmation")
	fs.BoolVar(&opts.selectInterface, "select", false, "choose the interface from a list")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "detect and print the plan without changing anything")
	fs.BoolVar(&opts.jsonOutput, "json", false, "print the run report as JSON")
	fs.BoolVar(&opts.ping, "ping", false, "check external IPv6 reachability after configuration")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [interface]\n\n", fs.Name())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.interfaceName = fs.Arg(0)
	default:
		fs.Usage()
		return opts, fmt.Errorf("at most one interface may be given, got %d", fs.NArg())
	}

	return opts, nil
}

func configureLogger(logger *logrus.Logger, cfg config.LogConfig) {
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logLevel, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", cfg.Level)
		logger.SetLevel(logrus.InfoLevel)
		return
	}
	logger.SetLevel(logLevel)
}

// Application은 메인 애플리케이션 구조체입니다
type Application struct {
	container     *container.Container
	logger        *logrus.Logger
	enableUseCase *usecases.EnableIPv6UseCase
	reportService *report.ReportService
}

// NewApplication은 새로운 Application을 생성합니다
func NewApplication(container *container.Container, logger *logrus.Logger) *Application {
	return &Application{
		container:     container,
		logger:        logger,
		enableUseCase: container.GetEnableIPv6UseCase(),
		reportService: container.GetReportService(),
	}
}

// Run은 한 번의 IPv6 자동 설정을 실행하고 종료 코드를 반환합니다
func (a *Application) Run(ctx context.Context, opts cliOptions, stdout io.Writer) int {
	runReport, err := a.enableUseCase.Execute(ctx, usecases.EnableIPv6Input{
		InterfaceName:   opts.interfaceName,
		SelectInterface: opts.selectInterface,
		DryRun:          opts.dryRun,
	})

	result := a.reportService.Build(runReport)
	a.reportService.Publish(result)

	render := report.RenderText
	if opts.jsonOutput {
		render = report.RenderJSON
	}
	if renderErr := render(stdout, result); renderErr != nil {
		a.logger.WithError(renderErr).Error("Failed to print run report")
	}

	if path := a.container.GetConfig().Run.MetricsTextfile; path != "" {
		if metricsErr := metrics.WriteTextfile(path); metricsErr != nil {
			a.logger.WithError(metricsErr).WithField("path", path).Warn("Failed to write metrics textfile")
		}
	}

	if err != nil {
		return 1
	}
	return 0
}
