package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry는 한 번의 실행 동안 수집한 메트릭을 담습니다. node_exporter textfile collector가 읽을 수 있도록
// 기본 레지스트리의 Go 런타임 메트릭과 분리합니다
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// 실행 결과 메트릭
	RunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipv6_autoconf_runs_total",
			Help: "Total number of runs by final status",
		},
		[]string{"status"}, // success, degraded, failed
	)

	LastRunTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "ipv6_autoconf_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run",
		},
	)

	// 전략 관련 메트릭
	StrategySelected = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipv6_autoconf_strategy_selected_total",
			Help: "Configuration strategy chosen for the host",
		},
		[]string{"strategy"},
	)

	ApplyDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ipv6_autoconf_apply_duration_seconds",
			Help:    "Time spent writing and activating the configuration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy", "status"},
	)

	WriteModes = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipv6_autoconf_write_mode_total",
			Help: "Write path taken by the config applier",
		},
		[]string{"mode"}, // created, merged, overwritten, appended, unchanged
	)

	RollbacksTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipv6_autoconf_rollbacks_total",
			Help: "Total number of rollbacks after a failed apply",
		},
		[]string{"status"}, // restored, failed
	)

	// 게이트웨이 보정 메트릭
	GatewayActions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipv6_autoconf_gateway_actions_total",
			Help: "Gateway reconciliation actions",
		},
		[]string{"action"}, // already-correct, added, replaced, failed
	)

	// 검증 관련 메트릭
	VerificationDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ipv6_autoconf_verification_duration_seconds",
			Help:    "Time until a global IPv6 address appeared or the verifier gave up",
			Buckets: []float64{1, 2, 3, 5, 8, 10, 12, 15},
		},
	)

	VerificationPollAttempts = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "ipv6_autoconf_verification_poll_attempts_total",
			Help: "Total number of address polls performed by the verifier",
		},
	)

	GlobalAddressPresent = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "ipv6_autoconf_global_address_present",
			Help: "Whether a global IPv6 address was observed (1 = yes, 0 = no)",
		},
	)

	// 에러 메트릭
	ErrorsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipv6_autoconf_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"},
	)

	// 시스템 정보
	HostInfo = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ipv6_autoconf_host_info",
			Help: "Detected host information",
		},
		[]string{"version", "os_family", "os_id", "network_manager"},
	)
)

// RecordStrategy는 선택된 전략을 기록합니다
func RecordStrategy(strategy string) {
	StrategySelected.WithLabelValues(strategy).Inc()
}

// RecordApply는 설정 적용 시간과 결과를 기록합니다
func RecordApply(strategy, status string, duration float64) {
	ApplyDuration.WithLabelValues(strategy, status).Observe(duration)
}

// RecordWriteMode는 설정 쓰기 방식을 기록합니다
func RecordWriteMode(mode string) {
	WriteModes.WithLabelValues(mode).Inc()
}

// RecordRollback은 롤백 결과를 기록합니다
func RecordRollback(success bool) {
	if success {
		RollbacksTotal.WithLabelValues("restored").Inc()
	} else {
		RollbacksTotal.WithLabelValues("failed").Inc()
	}
}

// RecordGatewayAction은 게이트웨이 보정 동작을 기록합니다
func RecordGatewayAction(action string) {
	GatewayActions.WithLabelValues(action).Inc()
}

// RecordPollAttempt는 주소 폴링 1회를 기록합니다
func RecordPollAttempt() {
	VerificationPollAttempts.Inc()
}

// RecordVerification은 검증 소요 시간과 전역 주소 여부를 기록합니다
func RecordVerification(duration float64, hasGlobalAddress bool) {
	VerificationDuration.Observe(duration)
	if hasGlobalAddress {
		GlobalAddressPresent.Set(1)
	} else {
		GlobalAddressPresent.Set(0)
	}
}

// RecordError는 에러 발생을 기록합니다
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordRun은 실행 최종 상태와 완료 시각을 기록합니다
func RecordRun(status string, unixTime float64) {
	RunsTotal.WithLabelValues(status).Inc()
	LastRunTimestamp.Set(unixTime)
}

// SetHostInfo는 탐지된 호스트 정보를 설정합니다
func SetHostInfo(version, osFamily, osID string, networkManagerActive bool) {
	nm := "inactive"
	if networkManagerActive {
		nm = "active"
	}
	HostInfo.WithLabelValues(version, osFamily, osID, nm).Set(1)
}

// WriteTextfile은 수집된 메트릭을 textfile collector 형식으로 path에 기록합니다
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
