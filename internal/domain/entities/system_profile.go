package entities

// OSFamily는 호스트 운영체제 계열을 나타냅니다
type OSFamily string

const (
	FamilyDebian  OSFamily = "debian"
	FamilyRHEL    OSFamily = "rhel"
	FamilyGeneric OSFamily = "generic"
)

// DeclarativeVersionThreshold는 netplan을 신뢰하기 시작하는 정규화 버전입니다 (이 값 초과)
const DeclarativeVersionThreshold = 1910

// SystemProfile은 환경 탐지 결과입니다. 한 번 생성되면 변경되지 않으며 값으로 전달됩니다
type SystemProfile struct {
	Family                OSFamily
	UsesDeclarativeConfig bool
	NetworkManagerActive  bool

	// 진단용 원본 값
	OSID      string
	VersionID string
}

// NewSystemProfile은 새로운 SystemProfile을 생성합니다
func NewSystemProfile(family OSFamily, declarative, nmActive bool) SystemProfile {
	return SystemProfile{
		Family:                family,
		UsesDeclarativeConfig: declarative,
		NetworkManagerActive:  nmActive,
	}
}

// WithIdentity는 OS 식별 정보가 채워진 복사본을 반환합니다
func (p SystemProfile) WithIdentity(id, versionID string) SystemProfile {
	p.OSID = id
	p.VersionID = versionID
	return p
}
