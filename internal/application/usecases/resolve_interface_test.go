package usecases

import (
	"context"
	"errors"
	"net"
	"testing"

	"ipv6-autoconf/internal/domain/entities"
	domainErrors "ipv6-autoconf/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testFallback = []string{"eth0", "ens3", "enp0s3"}

func TestResolveInterfaceUseCase_ResolveDefault(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockLinkInspector)
		wantName   string
		wantSource entities.ResolutionSource
		wantErr    bool
	}{
		{
			name: "IPv6 기본 라우트 우선",
			setupMocks: func(m *MockLinkInspector) {
				m.On("DefaultRoute", mock.Anything, entities.FamilyV6).
					Return(&entities.Route{Interface: "ens5", Gateway: net.ParseIP("fe80::1")}, nil)
			},
			wantName:   "ens5",
			wantSource: entities.SourceDefaultRoute,
		},
		{
			name: "IPv6 라우트가 없으면 IPv4",
			setupMocks: func(m *MockLinkInspector) {
				m.On("DefaultRoute", mock.Anything, entities.FamilyV6).Return(nil, nil)
				m.On("DefaultRoute", mock.Anything, entities.FamilyV4).
					Return(&entities.Route{Interface: "enp1s0", Gateway: net.ParseIP("10.0.0.1")}, nil)
			},
			wantName:   "enp1s0",
			wantSource: entities.SourceDefaultRoute,
		},
		{
			name: "라우트 조회 실패 시 관례적 이름 목록",
			setupMocks: func(m *MockLinkInspector) {
				m.On("DefaultRoute", mock.Anything, entities.FamilyV6).Return(nil, errors.New("netlink error"))
				m.On("DefaultRoute", mock.Anything, entities.FamilyV4).Return(nil, nil)
				m.On("InterfaceExists", mock.Anything, "eth0").Return(false, nil)
				m.On("InterfaceExists", mock.Anything, "ens3").Return(true, nil)
			},
			wantName:   "ens3",
			wantSource: entities.SourceFallbackList,
		},
		{
			name: "아무것도 없으면 ResolutionFailed",
			setupMocks: func(m *MockLinkInspector) {
				m.On("DefaultRoute", mock.Anything, mock.Anything).Return(nil, nil)
				m.On("InterfaceExists", mock.Anything, mock.Anything).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := new(MockLinkInspector)
			tt.setupMocks(inspector)

			uc := NewResolveInterfaceUseCase(inspector, new(MockPrompter), testFallback, newTestLogger())
			resolved, err := uc.ResolveDefault(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domainErrors.IsResolutionError(err))
				assert.ErrorIs(t, err, entities.ErrNoInterfaceFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, resolved.Interface.Name)
			assert.Equal(t, tt.wantSource, resolved.Source)
		})
	}
}

func TestResolveInterfaceUseCase_ResolveExplicit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		exists   bool
		checkErr error
		wantErr  error
	}{
		{name: "존재하는 인터페이스", input: "eth1", exists: true},
		{name: "존재하지 않는 인터페이스", input: "eth9", exists: false, wantErr: entities.ErrInterfaceNotFound},
		{name: "잘못된 이름", input: "eth0:1", wantErr: entities.ErrInvalidInterfaceName},
		{name: "너무 긴 이름", input: "averyveryverylongname", wantErr: entities.ErrInvalidInterfaceName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := new(MockLinkInspector)
			inspector.On("InterfaceExists", mock.Anything, tt.input).Return(tt.exists, tt.checkErr)

			uc := NewResolveInterfaceUseCase(inspector, new(MockPrompter), testFallback, newTestLogger())
			resolved, err := uc.ResolveExplicit(context.Background(), tt.input)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, domainErrors.IsResolutionError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, resolved.Interface.Name)
			assert.Equal(t, entities.SourceExplicit, resolved.Source)
		})
	}
}

func TestResolveInterfaceUseCase_ResolveByChoice(t *testing.T) {
	interfaces := []string{"lo", "eth0", "docker0", "veth12ab", "ens4", "br-1f2e"}

	t.Run("비대화형이면 첫 번째 물리 후보", func(t *testing.T) {
		inspector := new(MockLinkInspector)
		prompter := new(MockPrompter)
		inspector.On("ListInterfaces", mock.Anything).Return(interfaces, nil)
		prompter.On("Interactive").Return(false)

		uc := NewResolveInterfaceUseCase(inspector, prompter, testFallback, newTestLogger())
		resolved, err := uc.ResolveByChoice(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "eth0", resolved.Interface.Name)
		assert.Equal(t, entities.SourceUserChoice, resolved.Source)
		prompter.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything)
	})

	t.Run("잘못된 입력은 다시 묻는다", func(t *testing.T) {
		inspector := new(MockLinkInspector)
		prompter := new(MockPrompter)
		inspector.On("ListInterfaces", mock.Anything).Return(interfaces, nil)
		prompter.On("Interactive").Return(true)
		prompter.On("Ask", mock.Anything, mock.Anything).Return("abc", nil).Once()
		prompter.On("Ask", mock.Anything, mock.Anything).Return("0", nil).Once()
		prompter.On("Ask", mock.Anything, mock.Anything).Return("3", nil).Once()
		prompter.On("Ask", mock.Anything, mock.Anything).Return(" 2 ", nil).Once()

		uc := NewResolveInterfaceUseCase(inspector, prompter, testFallback, newTestLogger())
		resolved, err := uc.ResolveByChoice(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ens4", resolved.Interface.Name)
		prompter.AssertNumberOfCalls(t, "Ask", 4)
	})

	t.Run("입력 중단은 사용자 취소", func(t *testing.T) {
		inspector := new(MockLinkInspector)
		prompter := new(MockPrompter)
		inspector.On("ListInterfaces", mock.Anything).Return(interfaces, nil)
		prompter.On("Interactive").Return(true)
		prompter.On("Ask", mock.Anything, mock.Anything).Return("", errors.New("user aborted"))

		uc := NewResolveInterfaceUseCase(inspector, prompter, testFallback, newTestLogger())
		_, err := uc.ResolveByChoice(context.Background())

		assert.True(t, domainErrors.IsUserCancelledError(err))
	})

	t.Run("후보가 없으면 ResolutionFailed", func(t *testing.T) {
		inspector := new(MockLinkInspector)
		inspector.On("ListInterfaces", mock.Anything).Return([]string{"lo", "docker0"}, nil)

		uc := NewResolveInterfaceUseCase(inspector, new(MockPrompter), testFallback, newTestLogger())
		_, err := uc.ResolveByChoice(context.Background())

		assert.True(t, domainErrors.IsResolutionError(err))
		assert.ErrorIs(t, err, entities.ErrNoInterfaceFound)
	})
}

func TestResolveInterfaceUseCase_Revalidate(t *testing.T) {
	inspector := new(MockLinkInspector)
	inspector.On("InterfaceExists", mock.Anything, "eth0").Return(true, nil)
	inspector.On("InterfaceExists", mock.Anything, "eth1").Return(false, nil)
	inspector.On("InterfaceExists", mock.Anything, "eth2").Return(false, errors.New("netlink error"))

	uc := NewResolveInterfaceUseCase(inspector, new(MockPrompter), testFallback, newTestLogger())

	assert.NoError(t, uc.Revalidate(context.Background(), "eth0"))
	assert.ErrorIs(t, uc.Revalidate(context.Background(), "eth1"), entities.ErrInterfaceNotFound)
	assert.True(t, domainErrors.IsResolutionError(uc.Revalidate(context.Background(), "eth2")))
}
