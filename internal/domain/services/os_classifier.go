package services

import (
	"strconv"
	"strings"

	"ipv6-autoconf/internal/domain/entities"
)

var (
	debianIDs = map[string]bool{
		"debian": true, "ubuntu": true, "linuxmint": true, "pop": true, "raspbian": true,
		"kali": true, "elementary": true, "zorin": true, "neon": true,
	}
	rhelIDs = map[string]bool{
		"rhel": true, "centos": true, "rocky": true, "almalinux": true, "fedora": true, "ol": true,
		"oracle": true, "amzn": true, "cloudlinux": true, "eurolinux": true, "scientific": true,
	}
)

// ClassifyFamily는 os-release의 ID와 ID_LIKE로 OS 계열을 판단합니다.
// ID가 알려진 이름이 아니면 ID_LIKE 힌트를 보고, 그것도 없으면 generic입니다
func ClassifyFamily(id, idLike string) entities.OSFamily {
	id = strings.ToLower(strings.TrimSpace(id))
	if debianIDs[id] {
		return entities.FamilyDebian
	}
	if rhelIDs[id] {
		return entities.FamilyRHEL
	}

	for _, hint := range strings.Fields(strings.ToLower(idLike)) {
		switch hint {
		case "debian", "ubuntu":
			return entities.FamilyDebian
		case "rhel", "fedora", "centos":
			return entities.FamilyRHEL
		}
	}

	return entities.FamilyGeneric
}

// NormalizeVersion은 버전 문자열에서 숫자가 아닌 문자를 제거하고 4자리로 왼쪽 패딩한 정수를 반환합니다.
// "20.04" -> 2004, "19.10" -> 1910, "8" -> 8. 숫자가 없으면 0입니다
func NormalizeVersion(version string) int {
	var digits strings.Builder
	for _, r := range version {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	padded := digits.String()
	if len(padded) < 4 {
		padded = strings.Repeat("0", 4-len(padded)) + padded
	}

	n, err := strconv.Atoi(padded)
	if err != nil {
		return 0
	}
	return n
}

// SupportsDeclarativeConfig는 netplan 디렉토리가 있고 버전이 임계값을 초과하는지 판단합니다
func SupportsDeclarativeConfig(family entities.OSFamily, netplanDirExists bool, versionID string) bool {
	if family != entities.FamilyDebian || !netplanDirExists {
		return false
	}
	return NormalizeVersion(versionID) > entities.DeclarativeVersionThreshold
}
