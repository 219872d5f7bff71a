package network

import (
	"context"
	"fmt"
	"ipv6-autoconf/internal/domain/constants"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"strings"

	"github.com/sirupsen/logrus"
)

// ifcfgKeyValue는 ifcfg 파일의 KEY=value 한 쌍입니다
type ifcfgKeyValue struct {
	key   string
	value string
}

// ipv6IfcfgSettings는 IPv6 자동 설정에 필요한 키입니다. 순서대로 추가됩니다
var ipv6IfcfgSettings = []ifcfgKeyValue{
	{"IPV6INIT", "yes"},
	{"IPV6_AUTOCONF", "yes"},
	{"DHCPV6C", "yes"},
}

// IfcfgAdapter는 RHEL 계열 network-scripts ifcfg 파일에 IPv6 키를 병합합니다
type IfcfgAdapter struct {
	fileSystem        interfaces.FileSystem
	serviceController interfaces.ServiceController
	logger            *logrus.Logger
}

// NewIfcfgAdapter는 새로운 IfcfgAdapter를 생성합니다
func NewIfcfgAdapter(
	fs interfaces.FileSystem,
	services interfaces.ServiceController,
	logger *logrus.Logger,
) *IfcfgAdapter {
	return &IfcfgAdapter{
		fileSystem:        fs,
		serviceController: services,
		logger:            logger,
	}
}

// Write는 없는 키를 한 번만 추가하고 값이 다른 키는 그 자리에서 고칩니다.
// 이미 모든 키가 원하는 값이면 파일을 건드리지 않습니다
func (a *IfcfgAdapter) Write(ctx context.Context, strategy entities.ConfigStrategy) (entities.WriteMode, error) {
	path := strategy.ConfigPath

	if !a.fileSystem.Exists(path) {
		content := renderNewIfcfg(strategy.Interface)
		if err := a.fileSystem.WriteFile(path, []byte(content), constants.ConfigFilePermission); err != nil {
			return "", errors.NewSystemError("ifcfg 파일 저장 실패", err)
		}
		a.logWrite(strategy, entities.WriteCreated)
		return entities.WriteCreated, nil
	}

	existing, err := a.fileSystem.ReadFile(path)
	if err != nil {
		return "", errors.NewSystemError("ifcfg 파일 읽기 실패", err)
	}

	merged, mode := mergeIfcfg(string(existing), ipv6IfcfgSettings)
	if mode == entities.WriteUnchanged {
		a.logWrite(strategy, mode)
		return mode, nil
	}

	if err := a.fileSystem.WriteFile(path, []byte(merged), constants.ConfigFilePermission); err != nil {
		return "", errors.NewSystemError("ifcfg 파일 저장 실패", err)
	}

	a.logWrite(strategy, mode)
	return mode, nil
}

// Activate는 NetworkManager 또는 network 서비스를 재시작합니다
func (a *IfcfgAdapter) Activate(ctx context.Context, strategy entities.ConfigStrategy) error {
	return restartService(ctx, a.serviceController, a.logger, strategy)
}

func (a *IfcfgAdapter) logWrite(strategy entities.ConfigStrategy, mode entities.WriteMode) {
	a.logger.WithFields(logrus.Fields{
		"interface":   strategy.Interface,
		"config_path": strategy.ConfigPath,
		"write_mode":  mode,
	}).Info("ifcfg 설정 파일 처리 완료")
}

func renderNewIfcfg(iface string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "DEVICE=%s\n", iface)
	b.WriteString("ONBOOT=yes\n")
	b.WriteString("BOOTPROTO=dhcp\n")
	for _, kv := range ipv6IfcfgSettings {
		fmt.Fprintf(&b, "%s=%s\n", kv.key, kv.value)
	}
	return b.String()
}

// mergeIfcfg는 기존 내용에 settings를 병합합니다. 주석과 관련 없는 줄은 그대로 유지됩니다.
// CRLF 파일은 CRLF로 다시 씁니다
func mergeIfcfg(content string, settings []ifcfgKeyValue) (string, entities.WriteMode) {
	newline := "\n"
	if strings.Contains(content, "\r\n") {
		newline = "\r\n"
	}

	var lines []string
	if content != "" {
		lines = strings.Split(strings.TrimRight(content, "\r\n"), "\n")
		for i := range lines {
			lines[i] = strings.TrimSuffix(lines[i], "\r")
		}
	}

	changed := false
	appended := false
	seen := make(map[string]bool, len(settings))
	dropped := make(map[int]bool)

	for i, line := range lines {
		key, value, comment, ok := parseIfcfgLine(line)
		if !ok {
			continue
		}
		for _, kv := range settings {
			if kv.key != key {
				continue
			}
			if seen[key] {
				// 중복 키는 첫 줄만 남깁니다
				dropped[i] = true
				changed = true
				continue
			}
			seen[key] = true
			if value != kv.value {
				lines[i] = fmt.Sprintf("%s=%s", kv.key, kv.value)
				if comment != "" {
					lines[i] += " " + comment
				}
				changed = true
			}
		}
	}

	out := make([]string, 0, len(lines)+len(settings))
	for i, line := range lines {
		if !dropped[i] {
			out = append(out, line)
		}
	}

	for _, kv := range settings {
		if !seen[kv.key] {
			out = append(out, fmt.Sprintf("%s=%s", kv.key, kv.value))
			appended = true
		}
	}

	if !changed && !appended {
		return content, entities.WriteUnchanged
	}

	mode := entities.WriteMerged
	if appended && !changed {
		mode = entities.WriteAppended
	}
	return strings.Join(out, newline) + newline, mode
}

// parseIfcfgLine은 KEY=value 줄을 파싱합니다. 값의 따옴표와 줄 끝 주석은 분리합니다
func parseIfcfgLine(line string) (key, value, comment string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", "", false
	}
	key, raw, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", "", false
	}
	value, comment = splitIfcfgComment(raw)
	return strings.TrimSpace(key), strings.Trim(value, `"'`), comment, true
}

// splitIfcfgComment는 따옴표 밖에서 공백 뒤에 오는 #부터를 주석으로 봅니다
func splitIfcfgComment(raw string) (string, string) {
	var quote byte
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#' && i > 0 && (raw[i-1] == ' ' || raw[i-1] == '\t'):
			return strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i:])
		}
	}
	return strings.TrimSpace(raw), ""
}
