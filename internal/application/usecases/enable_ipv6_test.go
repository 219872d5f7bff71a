package usecases

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ipv6-autoconf/internal/application/polling"
	"ipv6-autoconf/internal/domain/entities"
	domainErrors "ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/infrastructure/adapters"
	"ipv6-autoconf/internal/infrastructure/network"
	infraServices "ipv6-autoconf/internal/infrastructure/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const netplanTimeout = 120 * time.Second

// harness는 실제 파일 시스템(임시 디렉토리)과 설정 작성기를 쓰고, 커널/서비스/터미널만 목으로 대체합니다
type harness struct {
	layout    entities.ArtifactLayout
	backupDir string

	osRelease *MockOSReleaseSource
	services  *MockServiceController
	executor  *MockCommandExecutor
	inspector *MockLinkInspector
	routes    *MockRouteManager
	prompter  *MockPrompter
	confirmer *MockConfirmer
	privilege *MockPrivilegeChecker
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()
	layout := entities.ArtifactLayout{
		NetplanDir:        filepath.Join(root, "etc", "netplan"),
		InterfacesDir:     filepath.Join(root, "etc", "network", "interfaces.d"),
		NetworkScriptsDir: filepath.Join(root, "etc", "sysconfig", "network-scripts"),
		SysctlDir:         filepath.Join(root, "etc", "sysctl.d"),
		ProcSysDir:        filepath.Join(root, "proc", "sys"),
	}
	for _, dir := range []string{layout.InterfacesDir, layout.NetworkScriptsDir, layout.SysctlDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	h := &harness{
		layout:    layout,
		backupDir: filepath.Join(root, "backups"),
		osRelease: new(MockOSReleaseSource),
		services:  new(MockServiceController),
		executor:  new(MockCommandExecutor),
		inspector: new(MockLinkInspector),
		routes:    new(MockRouteManager),
		prompter:  new(MockPrompter),
		confirmer: new(MockConfirmer),
		privilege: new(MockPrivilegeChecker),
	}
	h.privilege.On("IsRoot").Return(true).Maybe()
	h.executor.On("LookPath", mock.Anything).Return("/usr/bin/tool", nil).Maybe()
	return h
}

func (h *harness) useCase() *EnableIPv6UseCase {
	logger := newTestLogger()
	clock := newFakeClock()
	fs := adapters.NewRealFileSystem()

	factory := network.NewConfigWriterFactory(h.executor, fs, h.services, logger, 30*time.Second)
	backups := infraServices.NewBackupService(fs, clock, logger, h.backupDir)
	controller := polling.NewPollingController(polling.NewFixedIntervalStrategy(time.Second), clock, 12*time.Second, logger)

	return NewEnableIPv6UseCase(
		h.privilege,
		h.executor,
		h.confirmer,
		NewProbeEnvironmentUseCase(h.osRelease, fs, h.services, h.layout.NetplanDir, logger),
		NewResolveInterfaceUseCase(h.inspector, h.prompter, []string{"eth0", "ens3"}, logger),
		NewApplyConfigUseCase(factory, backups, clock, logger),
		NewReconcileGatewayUseCase(h.inspector, h.routes, logger),
		NewVerifyConnectivityUseCase(h.inspector, nil, controller, VerifyOptions{}, logger),
		h.layout,
		logger,
	)
}

func (h *harness) ubuntu(t *testing.T) {
	t.Helper()
	require.NoError(t, os.MkdirAll(h.layout.NetplanDir, 0755))
	h.osRelease.On("Read").Return(map[string]string{"ID": "ubuntu", "VERSION_ID": "22.04", "ID_LIKE": "debian"}, nil)
	h.services.On("IsActive", mock.Anything, "NetworkManager").Return(false)
}

func (h *harness) defaultRouteVia(iface string) {
	h.inspector.On("DefaultRoute", mock.Anything, entities.FamilyV6).Return(nil, nil)
	h.inspector.On("DefaultRoute", mock.Anything, entities.FamilyV4).
		Return(&entities.Route{Interface: iface, Gateway: net.ParseIP("10.0.0.1")}, nil)
	h.inspector.On("InterfaceExists", mock.Anything, iface).Return(true, nil)
}

func (h *harness) healthyNetwork(iface string) {
	h.inspector.On("DefaultRouteFor", mock.Anything, entities.FamilyV6, iface).Return(nil, nil).Once()
	h.routes.On("AddDefaultRoute", mock.Anything, iface, entities.ExpectedNextHop).Return(nil).Once()
	h.inspector.On("DefaultRouteFor", mock.Anything, entities.FamilyV6, iface).
		Return(&entities.Route{Interface: iface, Gateway: net.ParseIP("fe80::1")}, nil)
	h.inspector.On("Addresses", mock.Anything, iface, entities.FamilyV6, entities.ScopeGlobal).
		Return([]net.IP{net.ParseIP("2001:db8::10")}, nil)
}

// 시나리오 A: Ubuntu 22.04, 기본 라우트 eth0, netplan 파일 없음
func TestEnableIPv6_ScenarioA_DeclarativeMerge(t *testing.T) {
	h := newHarness(t)
	h.ubuntu(t)
	h.defaultRouteVia("eth0")
	h.confirmer.On("Confirm", mock.Anything, mock.Anything, true).Return(true, nil).Once()
	h.executor.On("ExecuteWithTimeout", mock.Anything, netplanTimeout, "netplan", []string{"generate"}).Return([]byte(""), nil).Once()
	h.executor.On("ExecuteWithTimeout", mock.Anything, netplanTimeout, "netplan", []string{"apply"}).Return([]byte(""), nil).Once()
	h.healthyNetwork("eth0")

	report, err := h.useCase().Execute(context.Background(), EnableIPv6Input{})

	require.NoError(t, err)
	assert.Equal(t, entities.StrategyDeclarativeMerge, report.Strategy.Kind)
	assert.Equal(t, entities.SourceDefaultRoute, report.Interface.Source)
	assert.Equal(t, entities.WriteCreated, report.Apply.Mode)
	require.Len(t, report.Apply.Backups, 1)
	assert.False(t, report.Apply.Backups[0].ExistedBefore)
	assert.Equal(t, entities.GatewayAdded, report.Gateway.Action)
	assert.True(t, report.Verification.HasGlobalAddress)
	assert.Empty(t, report.Warnings)
	assert.Nil(t, report.Fatal)

	content, err := os.ReadFile(filepath.Join(h.layout.NetplanDir, "60-ipv6-eth0.yaml"))
	require.NoError(t, err)
	var doc map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal(content, &doc))
	eth0 := doc["network"]["ethernets"].(map[string]interface{})["eth0"].(map[string]interface{})
	assert.Equal(t, true, eth0["dhcp6"])
	assert.Equal(t, 2, eth0["accept-ra"])

	h.executor.AssertExpectations(t)
	h.routes.AssertExpectations(t)
}

// 시나리오 B: RHEL, 명시한 eth1, IPv6 키가 없는 기존 ifcfg
func TestEnableIPv6_ScenarioB_DistroServiceFile(t *testing.T) {
	for _, tc := range []struct {
		name        string
		nmActive    bool
		wantRestart string
	}{
		{"NetworkManager 활성", true, "NetworkManager"},
		{"NetworkManager 비활성", false, "network"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.osRelease.On("Read").Return(map[string]string{"ID": "rocky", "VERSION_ID": "9.3", "ID_LIKE": "rhel centos fedora"}, nil)
			h.services.On("IsActive", mock.Anything, "NetworkManager").Return(tc.nmActive)
			h.services.On("Restart", mock.Anything, tc.wantRestart).Return(nil).Once()
			h.inspector.On("InterfaceExists", mock.Anything, "eth1").Return(true, nil)
			h.confirmer.On("Confirm", mock.Anything, mock.Anything, true).Return(true, nil).Once()
			h.healthyNetwork("eth1")

			ifcfgPath := filepath.Join(h.layout.NetworkScriptsDir, "ifcfg-eth1")
			original := "DEVICE=eth1\nBOOTPROTO=dhcp\nONBOOT=yes\n"
			require.NoError(t, os.WriteFile(ifcfgPath, []byte(original), 0644))

			report, err := h.useCase().Execute(context.Background(), EnableIPv6Input{InterfaceName: "eth1"})

			require.NoError(t, err)
			assert.Equal(t, entities.StrategyDistroServiceFile, report.Strategy.Kind)
			assert.Equal(t, entities.WriteAppended, report.Apply.Mode)

			content, err := os.ReadFile(ifcfgPath)
			require.NoError(t, err)
			for _, line := range []string{"IPV6INIT=yes", "IPV6_AUTOCONF=yes", "DHCPV6C=yes"} {
				assert.Equal(t, 1, strings.Count(string(content), line), line)
			}
			assert.True(t, strings.HasPrefix(string(content), original))

			require.Len(t, report.Apply.Backups, 1)
			assert.True(t, report.Apply.Backups[0].ExistedBefore)
			backup, err := os.ReadFile(report.Apply.Backups[0].BackupPath)
			require.NoError(t, err)
			assert.Equal(t, original, string(backup))

			h.services.AssertExpectations(t)
		})
	}
}

// 시나리오 C: 시나리오 A에서 활성화 실패
func TestEnableIPv6_ScenarioC_ActivationFailureRollsBack(t *testing.T) {
	for _, tc := range []struct {
		name     string
		existing string
	}{
		{"기존 파일 없음 - 삭제", ""},
		{"기존 파일 있음 - 원본 복원", "network:\n  version: 2\n  renderer: networkd\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.ubuntu(t)
			h.defaultRouteVia("eth0")
			h.confirmer.On("Confirm", mock.Anything, mock.Anything, true).Return(true, nil).Once()
			h.executor.On("ExecuteWithTimeout", mock.Anything, netplanTimeout, "netplan", []string{"generate"}).Return([]byte(""), nil)
			h.executor.On("ExecuteWithTimeout", mock.Anything, netplanTimeout, "netplan", []string{"apply"}).
				Return([]byte(""), errors.New("exit status 1")).Once()
			h.executor.On("ExecuteWithTimeout", mock.Anything, netplanTimeout, "netplan", []string{"apply"}).Return([]byte(""), nil).Once()

			path := filepath.Join(h.layout.NetplanDir, "60-ipv6-eth0.yaml")
			if tc.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tc.existing), 0600))
			}

			report, err := h.useCase().Execute(context.Background(), EnableIPv6Input{})

			require.Error(t, err)
			assert.True(t, domainErrors.IsApplyFailedError(err))
			assert.Equal(t, err, report.Fatal)
			assert.True(t, report.Apply.RolledBack)
			assert.Nil(t, report.Gateway)
			assert.Nil(t, report.Verification)

			if tc.existing == "" {
				_, statErr := os.Stat(path)
				assert.True(t, os.IsNotExist(statErr))
			} else {
				content, readErr := os.ReadFile(path)
				require.NoError(t, readErr)
				assert.Equal(t, tc.existing, string(content))
			}

			h.inspector.AssertNotCalled(t, "DefaultRouteFor", mock.Anything, mock.Anything, mock.Anything)
			h.inspector.AssertNotCalled(t, "Addresses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			h.routes.AssertNotCalled(t, "AddDefaultRoute", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// 시나리오 D: 기본 라우트도 관례적 이름도 없음
func TestEnableIPv6_ScenarioD_NoInterface(t *testing.T) {
	h := newHarness(t)
	h.ubuntu(t)
	h.inspector.On("DefaultRoute", mock.Anything, mock.Anything).Return(nil, nil)
	h.inspector.On("InterfaceExists", mock.Anything, mock.Anything).Return(false, nil)

	report, err := h.useCase().Execute(context.Background(), EnableIPv6Input{})

	require.Error(t, err)
	assert.True(t, domainErrors.IsResolutionError(err))
	assert.Nil(t, report.Strategy)
	h.confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)

	entries, readErr := os.ReadDir(h.layout.NetplanDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestEnableIPv6_GatesBeforeMutation(t *testing.T) {
	t.Run("사용자 거부", func(t *testing.T) {
		h := newHarness(t)
		h.ubuntu(t)
		h.defaultRouteVia("eth0")
		h.confirmer.On("Confirm", mock.Anything, mock.Anything, true).Return(false, nil).Once()

		report, err := h.useCase().Execute(context.Background(), EnableIPv6Input{})

		assert.True(t, domainErrors.IsUserCancelledError(err))
		assert.Nil(t, report.Apply)
		assert.NoFileExists(t, filepath.Join(h.layout.NetplanDir, "60-ipv6-eth0.yaml"))
		h.executor.AssertNotCalled(t, "ExecuteWithTimeout", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("root 아님", func(t *testing.T) {
		h := newHarness(t)
		h.privilege = new(MockPrivilegeChecker)
		h.privilege.On("IsRoot").Return(false)

		_, err := h.useCase().Execute(context.Background(), EnableIPv6Input{})

		assert.True(t, domainErrors.IsPreconditionError(err))
		h.osRelease.AssertNotCalled(t, "Read")
	})

	t.Run("필수 도구 없음", func(t *testing.T) {
		h := newHarness(t)
		h.executor = new(MockCommandExecutor)
		h.executor.On("LookPath", "netplan").Return("", errors.New("executable file not found"))
		h.ubuntu(t)
		h.defaultRouteVia("eth0")

		_, err := h.useCase().Execute(context.Background(), EnableIPv6Input{})

		require.Error(t, err)
		assert.True(t, domainErrors.IsPreconditionError(err))
		assert.Contains(t, err.Error(), "netplan")
		h.confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("적용 직전 인터페이스 사라짐", func(t *testing.T) {
		h := newHarness(t)
		h.ubuntu(t)
		h.inspector.On("InterfaceExists", mock.Anything, "eth0").Return(true, nil).Once()
		h.inspector.On("InterfaceExists", mock.Anything, "eth0").Return(false, nil).Once()
		h.confirmer.On("Confirm", mock.Anything, mock.Anything, true).Return(true, nil).Once()

		report, err := h.useCase().Execute(context.Background(), EnableIPv6Input{InterfaceName: "eth0"})

		assert.ErrorIs(t, err, entities.ErrInterfaceNotFound)
		assert.Nil(t, report.Apply)
	})
}

func TestEnableIPv6_DryRun(t *testing.T) {
	h := newHarness(t)
	h.privilege = new(MockPrivilegeChecker)
	h.ubuntu(t)
	h.defaultRouteVia("eth0")

	report, err := h.useCase().Execute(context.Background(), EnableIPv6Input{DryRun: true})

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, entities.StrategyDeclarativeMerge, report.Strategy.Kind)
	assert.Nil(t, report.Apply)
	h.privilege.AssertNotCalled(t, "IsRoot")
	h.confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
	assert.NoFileExists(t, filepath.Join(h.layout.NetplanDir, "60-ipv6-eth0.yaml"))
}

func TestEnableIPv6_NonFatalWarnings(t *testing.T) {
	h := newHarness(t)
	h.osRelease.On("Read").Return(map[string]string{}, nil)
	h.services.On("IsActive", mock.Anything, "NetworkManager").Return(false)
	h.defaultRouteVia("eth0")
	h.confirmer.On("Confirm", mock.Anything, mock.Anything, true).Return(true, nil).Once()
	h.executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "sysctl", []string{"-p", h.layout.SysctlPath()}).
		Return([]byte(""), nil).Once()
	h.inspector.On("DefaultRouteFor", mock.Anything, entities.FamilyV6, "eth0").Return(nil, nil)
	h.routes.On("AddDefaultRoute", mock.Anything, "eth0", entities.ExpectedNextHop).Return(errors.New("network unreachable"))
	h.inspector.On("Addresses", mock.Anything, "eth0", entities.FamilyV6, entities.ScopeGlobal).Return([]net.IP{}, nil)

	report, err := h.useCase().Execute(context.Background(), EnableIPv6Input{})

	require.NoError(t, err)
	assert.Equal(t, entities.StrategyKernelParameterOnly, report.Strategy.Kind)
	assert.Equal(t, entities.GatewayFailed, report.Gateway.Action)
	require.Len(t, report.Warnings, 2)
	assert.True(t, domainErrors.IsReconcileDegradedError(report.Warnings[0]))
	assert.True(t, domainErrors.IsVerificationIncompleteError(report.Warnings[1]))
	assert.Nil(t, report.Fatal)

	live, readErr := os.ReadFile(h.layout.LiveSysctlPath("eth0", entities.SysctlAcceptRA))
	require.NoError(t, readErr)
	assert.Equal(t, "2\n", string(live))
}

// 적용 이후 중단 요청을 받으면 경고로 넘기지 않고 실행을 중단합니다
func TestEnableIPv6_InterruptedAfterApply(t *testing.T) {
	h := newHarness(t)
	h.osRelease.On("Read").Return(map[string]string{}, nil)
	h.services.On("IsActive", mock.Anything, "NetworkManager").Return(false)
	h.defaultRouteVia("eth0")
	h.confirmer.On("Confirm", mock.Anything, mock.Anything, true).Return(true, nil).Once()
	h.executor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "sysctl", []string{"-p", h.layout.SysctlPath()}).
		Return([]byte(""), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := h.useCase().Execute(ctx, EnableIPv6Input{})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, err, report.Fatal)
	require.NotNil(t, report.Apply)
	assert.False(t, report.Apply.RolledBack)
	assert.Nil(t, report.Gateway)
	assert.Nil(t, report.Verification)
	assert.Empty(t, report.Warnings)
	h.routes.AssertNotCalled(t, "AddDefaultRoute", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnableIPv6UseCase_RecordStageError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantAbort    bool
		wantWarnings int
	}{
		{
			name: "에러 없음",
			err:  nil,
		},
		{
			name:         "게이트웨이 보정 실패는 경고",
			err:          domainErrors.NewReconcileDegradedError("route add 실패", errors.New("file exists")),
			wantWarnings: 1,
		},
		{
			name:         "검증 미완료는 경고",
			err:          domainErrors.NewVerificationIncompleteError("전역 주소 없음"),
			wantWarnings: 1,
		},
		{
			name:      "도메인 에러가 아닌 에러는 중단",
			err:       context.Canceled,
			wantAbort: true,
		},
		{
			name:      "치명적 도메인 에러는 중단",
			err:       domainErrors.NewApplyFailedError("netplan apply 실패", nil),
			wantAbort: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newHarness(t).useCase()
			report := &entities.RunReport{}

			abort := uc.recordStageError(report, tt.err)

			assert.Equal(t, tt.wantAbort, abort)
			assert.Len(t, report.Warnings, tt.wantWarnings)
		})
	}
}
