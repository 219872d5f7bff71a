package adapters

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/interfaces"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"github.com/sirupsen/logrus"
)

// PingProber is a ReachabilityProber that sends a bounded number of ICMPv6 echo requests
type PingProber struct {
	interval   time.Duration
	privileged bool
	logger     *logrus.Logger
}

// NewPingProber creates a new PingProber
func NewPingProber(privileged bool, logger *logrus.Logger) interfaces.ReachabilityProber {
	return &PingProber{
		interval:   500 * time.Millisecond,
		privileged: privileged,
		logger:     logger,
	}
}

// Probe returns true when at least one reply arrives. The run is bounded by count and an overall timeout.
func (p *PingProber) Probe(ctx context.Context, target string, count int) (bool, error) {
	pinger, err := probing.NewPinger(target)
	if err != nil {
		return false, fmt.Errorf("failed to create pinger: %w", err)
	}

	pinger.Count = count
	pinger.Interval = p.interval
	pinger.Timeout = time.Duration(count)*p.interval + 2*time.Second
	pinger.SetNetwork("ip6")
	pinger.SetPrivileged(p.privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return false, err
	}

	stats := pinger.Statistics()
	p.logger.WithFields(logrus.Fields{
		"target":       target,
		"packets_sent": stats.PacketsSent,
		"packets_recv": stats.PacketsRecv,
		"avg_rtt":      stats.AvgRtt,
	}).Debug("reachability probe finished")

	return stats.PacketsRecv > 0, nil
}
