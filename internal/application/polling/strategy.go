package polling

import (
	"context"
	"ipv6-autoconf/internal/domain/interfaces"
	"ipv6-autoconf/internal/infrastructure/metrics"
	"time"

	"github.com/sirupsen/logrus"
)

// Strategy는 폴링 전략 인터페이스입니다
type Strategy interface {
	// NextInterval은 다음 폴링까지의 대기 시간을 반환합니다
	NextInterval(attempt int) time.Duration
}

// FixedIntervalStrategy는 항상 같은 간격으로 폴링합니다
type FixedIntervalStrategy struct {
	interval time.Duration
}

// NewFixedIntervalStrategy는 새로운 고정 간격 전략을 생성합니다
func NewFixedIntervalStrategy(interval time.Duration) *FixedIntervalStrategy {
	if interval <= 0 {
		interval = time.Second
	}
	return &FixedIntervalStrategy{interval: interval}
}

// NextInterval은 고정 간격을 반환합니다
func (s *FixedIntervalStrategy) NextInterval(attempt int) time.Duration {
	return s.interval
}

// Result는 한 번의 폴링 세션 결과입니다
type Result struct {
	Satisfied bool
	Attempts  int
	Elapsed   time.Duration
}

// Check는 조건이 충족되었는지 확인합니다. 에러는 로그만 남기고 다음 시도로 넘어갑니다
type Check func(ctx context.Context) (bool, error)

// PollingController는 제한 시간 안에서 조건이 충족될 때까지 폴링합니다
type PollingController struct {
	strategy Strategy
	clock    interfaces.Clock
	timeout  time.Duration
	logger   *logrus.Logger
}

// NewPollingController는 새로운 폴링 컨트롤러를 생성합니다
func NewPollingController(
	strategy Strategy,
	clock interfaces.Clock,
	timeout time.Duration,
	logger *logrus.Logger,
) *PollingController {
	return &PollingController{
		strategy: strategy,
		clock:    clock,
		timeout:  timeout,
		logger:   logger,
	}
}

// Poll은 check를 즉시 한 번 실행하고, 이후 전략의 간격마다 다시 실행합니다.
// 조건이 충족되거나 제한 시간이 지나거나 ctx가 취소되면 멈춥니다. 제한 시간 초과는 에러가 아닙니다
func (c *PollingController) Poll(ctx context.Context, check Check) (Result, error) {
	start := c.clock.Now()
	result := Result{}

	for {
		result.Attempts++
		metrics.RecordPollAttempt()

		ok, err := check(ctx)
		result.Elapsed = c.clock.Now().Sub(start)

		if err != nil {
			c.logger.WithError(err).WithField("attempt", result.Attempts).Debug("폴링 확인 실패")
		}
		if ok {
			result.Satisfied = true
			return result, nil
		}

		remaining := c.timeout - result.Elapsed
		if remaining <= 0 {
			c.logger.WithFields(logrus.Fields{
				"attempts": result.Attempts,
				"elapsed":  result.Elapsed,
			}).Debug("폴링 제한 시간 초과")
			return result, nil
		}

		wait := c.strategy.NextInterval(result.Attempts)
		if wait > remaining {
			wait = remaining
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-c.clock.After(wait):
		}
	}
}
