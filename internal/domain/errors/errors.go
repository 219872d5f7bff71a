package errors

import (
	"errors"
	"fmt"
)

// ErrorType은 에러의 종류를 나타냅니다
type ErrorType string

const (
	// ErrorTypeValidation은 유효성 검증 실패를 나타냅니다
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound는 리소스를 찾을 수 없음을 나타냅니다
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeSystem은 시스템 레벨 에러를 나타냅니다
	ErrorTypeSystem ErrorType = "SYSTEM"

	// ErrorTypeNetwork는 네트워크 관련 에러를 나타냅니다
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeTimeout은 타임아웃 에러를 나타냅니다
	ErrorTypeTimeout ErrorType = "TIMEOUT"

	// ErrorTypePrecondition은 권한 부족 또는 필수 도구 누락을 나타냅니다 (치명적)
	ErrorTypePrecondition ErrorType = "PRECONDITION_FAILED"

	// ErrorTypeResolution은 대상 인터페이스를 결정할 수 없음을 나타냅니다 (치명적)
	ErrorTypeResolution ErrorType = "RESOLUTION_FAILED"

	// ErrorTypeUserCancelled는 사용자가 확인을 거부했음을 나타냅니다 (치명적, 부작용 없음)
	ErrorTypeUserCancelled ErrorType = "USER_CANCELLED"

	// ErrorTypeApplyFailed는 롤백 이후에도 설정 적용이 실패했음을 나타냅니다 (치명적)
	ErrorTypeApplyFailed ErrorType = "APPLY_FAILED"

	// ErrorTypeReconcileDegraded는 게이트웨이 보정 실패를 나타냅니다 (비치명적)
	ErrorTypeReconcileDegraded ErrorType = "RECONCILE_DEGRADED"

	// ErrorTypeVerificationIncomplete는 제한 시간 내 검증이 완료되지 않았음을 나타냅니다 (비치명적)
	ErrorTypeVerificationIncomplete ErrorType = "VERIFICATION_INCOMPLETE"
)

// DomainError는 도메인 레벨의 에러를 나타냅니다
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error는 error 인터페이스를 구현합니다
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap은 내부 에러를 반환합니다
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is는 에러 비교를 위한 메서드입니다
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsFatal은 이 에러가 실행을 즉시 중단시켜야 하는지 여부를 반환합니다
func (e *DomainError) IsFatal() bool {
	switch e.Type {
	case ErrorTypeReconcileDegraded, ErrorTypeVerificationIncomplete:
		return false
	default:
		return true
	}
}

// 생성자 함수들

// NewValidationError는 유효성 검증 에러를 생성합니다
func NewValidationError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError는 리소스를 찾을 수 없는 에러를 생성합니다
func NewNotFoundError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewSystemError는 시스템 에러를 생성합니다
func NewSystemError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeSystem,
		Message: message,
		Cause:   cause,
	}
}

// NewNetworkError는 네트워크 관련 에러를 생성합니다
func NewNetworkError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeNetwork,
		Message: message,
		Cause:   cause,
	}
}

// NewTimeoutError는 타임아웃 에러를 생성합니다
func NewTimeoutError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeTimeout,
		Message: message,
	}
}

// NewPreconditionError는 사전 조건 실패 에러를 생성합니다
func NewPreconditionError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypePrecondition,
		Message: message,
		Cause:   cause,
	}
}

// NewResolutionError는 인터페이스 결정 실패 에러를 생성합니다
func NewResolutionError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeResolution,
		Message: message,
		Cause:   cause,
	}
}

// NewUserCancelledError는 사용자 취소 에러를 생성합니다
func NewUserCancelledError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeUserCancelled,
		Message: message,
	}
}

// NewApplyFailedError는 설정 적용 실패 에러를 생성합니다
func NewApplyFailedError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeApplyFailed,
		Message: message,
		Cause:   cause,
	}
}

// NewReconcileDegradedError는 게이트웨이 보정 실패 에러를 생성합니다
func NewReconcileDegradedError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeReconcileDegraded,
		Message: message,
		Cause:   cause,
	}
}

// NewVerificationIncompleteError는 검증 미완료 에러를 생성합니다
func NewVerificationIncompleteError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeVerificationIncomplete,
		Message: message,
	}
}

// 에러 타입 확인 헬퍼 함수들

// TypeOf는 에러 체인에서 찾은 DomainError의 타입을 반환합니다. 없으면 빈 문자열입니다
func TypeOf(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

func hasType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}

// IsValidationError는 유효성 검증 에러인지 확인합니다
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsNotFoundError는 리소스를 찾을 수 없는 에러인지 확인합니다
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsSystemError는 시스템 에러인지 확인합니다
func IsSystemError(err error) bool {
	return hasType(err, ErrorTypeSystem)
}

// IsNetworkError는 네트워크 에러인지 확인합니다
func IsNetworkError(err error) bool {
	return hasType(err, ErrorTypeNetwork)
}

// IsTimeoutError는 타임아웃 에러인지 확인합니다
func IsTimeoutError(err error) bool {
	return hasType(err, ErrorTypeTimeout)
}

// IsPreconditionError는 사전 조건 실패 에러인지 확인합니다
func IsPreconditionError(err error) bool {
	return hasType(err, ErrorTypePrecondition)
}

// IsResolutionError는 인터페이스 결정 실패 에러인지 확인합니다
func IsResolutionError(err error) bool {
	return hasType(err, ErrorTypeResolution)
}

// IsUserCancelledError는 사용자 취소 에러인지 확인합니다
func IsUserCancelledError(err error) bool {
	return hasType(err, ErrorTypeUserCancelled)
}

// IsApplyFailedError는 설정 적용 실패 에러인지 확인합니다
func IsApplyFailedError(err error) bool {
	return hasType(err, ErrorTypeApplyFailed)
}

// IsReconcileDegradedError는 게이트웨이 보정 실패 에러인지 확인합니다
func IsReconcileDegradedError(err error) bool {
	return hasType(err, ErrorTypeReconcileDegraded)
}

// IsVerificationIncompleteError는 검증 미완료 에러인지 확인합니다
func IsVerificationIncompleteError(err error) bool {
	return hasType(err, ErrorTypeVerificationIncomplete)
}

// IsFatal은 에러가 치명적인지 확인합니다. DomainError가 아닌 에러는 치명적으로 간주합니다
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.IsFatal()
	}
	return true
}
