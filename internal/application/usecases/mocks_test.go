package usecases

import (
	"context"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// Mock 구현체들

type MockOSReleaseSource struct {
	mock.Mock
}

func (m *MockOSReleaseSource) Read() (map[string]string, error) {
	args := m.Called()
	return args.Get(0).(map[string]string), args.Error(1)
}

type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	args := m.Called(path, data, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Exists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

type MockServiceController struct {
	mock.Mock
}

func (m *MockServiceController) IsActive(ctx context.Context, name string) bool {
	args := m.Called(ctx, name)
	return args.Bool(0)
}

func (m *MockServiceController) Restart(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockCommandExecutor는 CommandExecutor 인터페이스의 목 구현체입니다
type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, error) {
	mockArgs := m.Called(ctx, command, args)
	return mockArgs.Get(0).([]byte), mockArgs.Error(1)
}

func (m *MockCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error) {
	mockArgs := m.Called(ctx, timeout, command, args)
	return mockArgs.Get(0).([]byte), mockArgs.Error(1)
}

func (m *MockCommandExecutor) LookPath(command string) (string, error) {
	args := m.Called(command)
	return args.String(0), args.Error(1)
}

type MockLinkInspector struct {
	mock.Mock
}

func (m *MockLinkInspector) ListInterfaces(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLinkInspector) InterfaceExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockLinkInspector) DefaultRoute(ctx context.Context, family entities.AddressFamily) (*entities.Route, error) {
	args := m.Called(ctx, family)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Route), args.Error(1)
}

func (m *MockLinkInspector) DefaultRouteFor(ctx context.Context, family entities.AddressFamily, iface string) (*entities.Route, error) {
	args := m.Called(ctx, family, iface)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Route), args.Error(1)
}

func (m *MockLinkInspector) Addresses(ctx context.Context, iface string, family entities.AddressFamily, scope entities.AddressScope) ([]net.IP, error) {
	args := m.Called(ctx, iface, family, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]net.IP), args.Error(1)
}

type MockRouteManager struct {
	mock.Mock
}

func (m *MockRouteManager) AddDefaultRoute(ctx context.Context, iface string, gateway net.IP) error {
	args := m.Called(ctx, iface, gateway)
	return args.Error(0)
}

func (m *MockRouteManager) DeleteDefaultRoute(ctx context.Context, iface string) error {
	args := m.Called(ctx, iface)
	return args.Error(0)
}

type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Interactive() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockPrompter) Ask(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, question string, defaultYes bool) (bool, error) {
	args := m.Called(ctx, question, defaultYes)
	return args.Bool(0), args.Error(1)
}

type MockConfigWriterFactory struct {
	mock.Mock
}

func (m *MockConfigWriterFactory) CreateConfigWriter(kind entities.StrategyKind) (interfaces.ConfigWriter, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(interfaces.ConfigWriter), args.Error(1)
}

type MockConfigWriter struct {
	mock.Mock
}

func (m *MockConfigWriter) Write(ctx context.Context, strategy entities.ConfigStrategy) (entities.WriteMode, error) {
	args := m.Called(ctx, strategy)
	return args.Get(0).(entities.WriteMode), args.Error(1)
}

func (m *MockConfigWriter) Activate(ctx context.Context, strategy entities.ConfigStrategy) error {
	args := m.Called(ctx, strategy)
	return args.Error(0)
}

type MockReachabilityProber struct {
	mock.Mock
}

func (m *MockReachabilityProber) Probe(ctx context.Context, target string, count int) (bool, error) {
	args := m.Called(ctx, target, count)
	return args.Bool(0), args.Error(1)
}

type MockPrivilegeChecker struct {
	mock.Mock
}

func (m *MockPrivilegeChecker) IsRoot() bool {
	args := m.Called()
	return args.Bool(0)
}

// fakeClock은 After 호출 시 즉시 시간을 진행시키는 테스트용 시계입니다
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 8, 15, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
