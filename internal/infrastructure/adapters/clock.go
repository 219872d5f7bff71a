package adapters

import (
	"ipv6-autoconf/internal/domain/interfaces"
	"time"
)

// UTCClock은 시스템 시간을 UTC로 돌려주는 Clock 구현체입니다.
// 백업 파일명과 보고서 시각은 호스트 시간대와 무관하게 UTC 기준입니다
type UTCClock struct{}

// NewRealClock은 새로운 UTCClock을 생성합니다
func NewRealClock() interfaces.Clock {
	return UTCClock{}
}

// Now는 현재 UTC 시간을 반환합니다
func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}

// After는 d 이후에 신호를 보내는 채널을 반환합니다. 0 이하이면 즉시 신호를 보냅니다
func (c UTCClock) After(d time.Duration) <-chan time.Time {
	if d <= 0 {
		ch := make(chan time.Time, 1)
		ch <- c.Now()
		return ch
	}
	return time.After(d)
}
