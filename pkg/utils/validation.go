package utils

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

// 커널 IFNAMSIZ(16)에서 종료 문자를 뺀 길이
const maxInterfaceNameLength = 15

var (
	// 가상/컨테이너/브리지 인터페이스 이름 패턴
	virtualInterfacePattern = regexp.MustCompile(
		`^(lo|docker|veth|br-|virbr|vnet|tun|tap|wg|cni|flannel|cali|kube|lxc|lxdbr|podman|vxlan|tailscale|zt|dummy)`,
	)
)

// ValidateInterfaceName은 리눅스 인터페이스 이름 규칙에 맞는지 검증
func ValidateInterfaceName(name string) error {
	if name == "" {
		return fmt.Errorf("인터페이스 이름이 비어있음")
	}

	if len(name) > maxInterfaceNameLength {
		return fmt.Errorf("인터페이스 이름이 너무 김: %d자 (최대 %d자)", len(name), maxInterfaceNameLength)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("잘못된 인터페이스 이름: %s", name)
	}

	if strings.ContainsAny(name, "/: \t\n") {
		return fmt.Errorf("잘못된 인터페이스 이름 형식: %q ('/', ':', 공백 불가)", name)
	}

	return nil
}

// IsVirtualInterfaceName은 루프백, 컨테이너, 브리지, 터널 등 설정 대상이 아닌 인터페이스인지 확인
func IsVirtualInterfaceName(name string) bool {
	return virtualInterfacePattern.MatchString(name)
}

// ValidateIPv6Address는 도달성 검사 대상이 IPv6 주소인지 검증
func ValidateIPv6Address(address string) error {
	if address == "" {
		return fmt.Errorf("주소가 비어있음")
	}

	ip := net.ParseIP(address)
	if ip == nil || ip.To4() != nil {
		return fmt.Errorf("잘못된 IPv6 주소: %s", address)
	}

	return nil
}
