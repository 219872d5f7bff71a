//go:build !linux

package adapters

import (
	"context"
	"net"

	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"

	"github.com/sirupsen/logrus"
)

// NetlinkAdapter is a stub for platforms without rtnetlink.
type NetlinkAdapter struct{}

// NewNetlinkAdapter returns a stub that fails every call.
func NewNetlinkAdapter(logger *logrus.Logger) *NetlinkAdapter {
	return &NetlinkAdapter{}
}

var errUnsupported = errors.NewSystemError("netlink is not supported on this platform", nil)

func (a *NetlinkAdapter) ListInterfaces(ctx context.Context) ([]string, error) {
	return nil, errUnsupported
}

func (a *NetlinkAdapter) InterfaceExists(ctx context.Context, name string) (bool, error) {
	return false, errUnsupported
}

func (a *NetlinkAdapter) DefaultRoute(ctx context.Context, family entities.AddressFamily) (*entities.Route, error) {
	return nil, errUnsupported
}

func (a *NetlinkAdapter) DefaultRouteFor(ctx context.Context, family entities.AddressFamily, iface string) (*entities.Route, error) {
	return nil, errUnsupported
}

func (a *NetlinkAdapter) Addresses(ctx context.Context, iface string, family entities.AddressFamily, scope entities.AddressScope) ([]net.IP, error) {
	return nil, errUnsupported
}

func (a *NetlinkAdapter) AddDefaultRoute(ctx context.Context, iface string, gateway net.IP) error {
	return errUnsupported
}

func (a *NetlinkAdapter) DeleteDefaultRoute(ctx context.Context, iface string) error {
	return errUnsupported
}
