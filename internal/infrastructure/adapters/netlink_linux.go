//go:build linux

package adapters

import (
	"context"
	"fmt"
	"net"

	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"

	"github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// Netlinker is the subset of vishvananda/netlink used by NetlinkAdapter.
type Netlinker interface {
	LinkList() ([]netlink.Link, error)
	LinkByName(name string) (netlink.Link, error)
	AddrList(link netlink.Link, family int) ([]netlink.Addr, error)
	RouteList(link netlink.Link, family int) ([]netlink.Route, error)
	RouteAdd(route *netlink.Route) error
	RouteDel(route *netlink.Route) error
}

// RealNetlinker delegates to the netlink package.
type RealNetlinker struct{}

func (RealNetlinker) LinkList() ([]netlink.Link, error) { return netlink.LinkList() }

func (RealNetlinker) LinkByName(name string) (netlink.Link, error) { return netlink.LinkByName(name) }

func (RealNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	return netlink.AddrList(link, family)
}

func (RealNetlinker) RouteList(link netlink.Link, family int) ([]netlink.Route, error) {
	return netlink.RouteList(link, family)
}

func (RealNetlinker) RouteAdd(route *netlink.Route) error { return netlink.RouteAdd(route) }

func (RealNetlinker) RouteDel(route *netlink.Route) error { return netlink.RouteDel(route) }

// NetlinkAdapter implements LinkInspector and RouteManager over rtnetlink.
type NetlinkAdapter struct {
	nl     Netlinker
	logger *logrus.Logger
}

// NewNetlinkAdapter creates a NetlinkAdapter backed by the kernel.
func NewNetlinkAdapter(logger *logrus.Logger) *NetlinkAdapter {
	return NewNetlinkAdapterWith(RealNetlinker{}, logger)
}

// NewNetlinkAdapterWith creates a NetlinkAdapter with a custom Netlinker.
func NewNetlinkAdapterWith(nl Netlinker, logger *logrus.Logger) *NetlinkAdapter {
	return &NetlinkAdapter{nl: nl, logger: logger}
}

// ListInterfaces returns link names in kernel index order.
func (a *NetlinkAdapter) ListInterfaces(ctx context.Context) ([]string, error) {
	links, err := a.nl.LinkList()
	if err != nil {
		return nil, errors.NewNetworkError("failed to list links", err)
	}

	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Attrs().Name)
	}
	return names, nil
}

// InterfaceExists reports whether a link with the given name exists.
func (a *NetlinkAdapter) InterfaceExists(ctx context.Context, name string) (bool, error) {
	_, err := a.nl.LinkByName(name)
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			return false, nil
		}
		return false, errors.NewNetworkError(fmt.Sprintf("failed to look up link %s", name), err)
	}
	return true, nil
}

// DefaultRoute returns the first default route of the family across all links.
func (a *NetlinkAdapter) DefaultRoute(ctx context.Context, family entities.AddressFamily) (*entities.Route, error) {
	routes, err := a.nl.RouteList(nil, toNetlinkFamily(family))
	if err != nil {
		return nil, errors.NewNetworkError("failed to list routes", err)
	}

	links, err := a.nl.LinkList()
	if err != nil {
		return nil, errors.NewNetworkError("failed to list links", err)
	}
	linkMap := make(map[int]string, len(links))
	for _, l := range links {
		if l.Attrs().Flags&net.FlagLoopback != 0 {
			continue
		}
		linkMap[l.Attrs().Index] = l.Attrs().Name
	}

	for _, r := range routes {
		if !isDefaultRoute(r) {
			continue
		}
		index, gw := routeHop(r)
		name, ok := linkMap[index]
		if !ok {
			continue
		}
		return &entities.Route{Interface: name, Gateway: gw}, nil
	}
	return nil, nil
}

// DefaultRouteFor returns the default route bound to iface, or nil.
func (a *NetlinkAdapter) DefaultRouteFor(ctx context.Context, family entities.AddressFamily, iface string) (*entities.Route, error) {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("failed to look up link %s", iface), err)
	}

	routes, err := a.nl.RouteList(link, toNetlinkFamily(family))
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("failed to list routes on %s", iface), err)
	}

	for _, r := range routes {
		if isDefaultRoute(r) {
			_, gw := routeHop(r)
			return &entities.Route{Interface: iface, Gateway: gw}, nil
		}
	}
	return nil, nil
}

// Addresses returns usable addresses on iface filtered by scope. Tentative (DAD) addresses are skipped.
func (a *NetlinkAdapter) Addresses(ctx context.Context, iface string, family entities.AddressFamily, scope entities.AddressScope) ([]net.IP, error) {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("failed to look up link %s", iface), err)
	}

	addrs, err := a.nl.AddrList(link, toNetlinkFamily(family))
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("failed to list addresses on %s", iface), err)
	}

	var result []net.IP
	for _, addr := range addrs {
		if addr.IPNet == nil || addr.Flags&unix.IFA_F_TENTATIVE != 0 {
			continue
		}
		if scope != entities.ScopeAny && !matchesScope(addr.Scope, scope) {
			continue
		}
		result = append(result, addr.IP)
	}
	return result, nil
}

// AddDefaultRoute installs ::/0 via gateway on iface.
func (a *NetlinkAdapter) AddDefaultRoute(ctx context.Context, iface string, gateway net.IP) error {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return errors.NewNetworkError(fmt.Sprintf("failed to look up link %s", iface), err)
	}

	route := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Dst:       &net.IPNet{IP: net.IPv6zero, Mask: net.CIDRMask(0, 128)},
		Gw:        gateway,
	}
	if err := a.nl.RouteAdd(route); err != nil {
		return errors.NewNetworkError(fmt.Sprintf("failed to add default route via %s dev %s", gateway, iface), err)
	}

	a.logger.WithFields(logrus.Fields{
		"interface": iface,
		"gateway":   gateway.String(),
	}).Debug("default route added")
	return nil
}

// DeleteDefaultRoute removes every IPv6 default route bound to iface.
func (a *NetlinkAdapter) DeleteDefaultRoute(ctx context.Context, iface string) error {
	link, err := a.nl.LinkByName(iface)
	if err != nil {
		return errors.NewNetworkError(fmt.Sprintf("failed to look up link %s", iface), err)
	}

	routes, err := a.nl.RouteList(link, unix.AF_INET6)
	if err != nil {
		return errors.NewNetworkError(fmt.Sprintf("failed to list routes on %s", iface), err)
	}

	for _, r := range routes {
		if !isDefaultRoute(r) {
			continue
		}
		route := r
		if err := a.nl.RouteDel(&route); err != nil {
			return errors.NewNetworkError(fmt.Sprintf("failed to delete default route on %s", iface), err)
		}
	}
	return nil
}

func toNetlinkFamily(family entities.AddressFamily) int {
	if family == entities.FamilyV4 {
		return unix.AF_INET
	}
	return unix.AF_INET6
}

// isDefaultRoute accepts both a nil Dst and an explicit zero-length prefix.
// Only unicast routes count; the kernel installs unreachable ::/0 on lo.
func isDefaultRoute(r netlink.Route) bool {
	if r.Type != 0 && r.Type != unix.RTN_UNICAST {
		return false
	}
	if r.Dst == nil {
		return true
	}
	ones, _ := r.Dst.Mask.Size()
	return ones == 0 && r.Dst.IP.IsUnspecified()
}

// routeHop returns link index and gateway, looking into the first nexthop for multipath routes.
func routeHop(r netlink.Route) (int, net.IP) {
	if r.LinkIndex == 0 && len(r.MultiPath) > 0 {
		return r.MultiPath[0].LinkIndex, r.MultiPath[0].Gw
	}
	return r.LinkIndex, r.Gw
}

func matchesScope(kernelScope int, scope entities.AddressScope) bool {
	switch scope {
	case entities.ScopeGlobal:
		return kernelScope == unix.RT_SCOPE_UNIVERSE
	case entities.ScopeLink:
		return kernelScope == unix.RT_SCOPE_LINK
	case entities.ScopeHost:
		return kernelScope == unix.RT_SCOPE_HOST
	default:
		return true
	}
}
