package network

import (
	"bytes"
	"context"
	"ipv6-autoconf/internal/domain/constants"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// NetplanAdapter는 netplan YAML 파일에 IPv6 자동 설정을 병합하는 ConfigWriter 구현체입니다
type NetplanAdapter struct {
	commandExecutor interfaces.CommandExecutor
	fileSystem      interfaces.FileSystem
	logger          *logrus.Logger
	applyTimeout    time.Duration
}

// NewNetplanAdapter는 새로운 NetplanAdapter를 생성합니다
func NewNetplanAdapter(
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	logger *logrus.Logger,
) *NetplanAdapter {
	return &NetplanAdapter{
		commandExecutor: executor,
		fileSystem:      fs,
		logger:          logger,
		applyTimeout:    constants.NetplanApplyTimeout * time.Second,
	}
}

// Write는 기존 파일이 있으면 관련 없는 키를 보존하며 병합하고, 파싱할 수 없으면 전체를 덮어씁니다
func (a *NetplanAdapter) Write(ctx context.Context, strategy entities.ConfigStrategy) (entities.WriteMode, error) {
	configPath := strategy.ConfigPath
	mode := entities.WriteCreated

	var doc yaml.Node
	if a.fileSystem.Exists(configPath) {
		content, err := a.fileSystem.ReadFile(configPath)
		if err != nil {
			return "", errors.NewSystemError("Netplan 설정 파일 읽기 실패", err)
		}

		if err := yaml.Unmarshal(content, &doc); err != nil || !isMappingDocument(&doc) {
			a.logger.WithFields(logrus.Fields{
				"config_path": configPath,
				"error":       err,
			}).Warn("기존 Netplan 파일을 병합할 수 없어 전체 덮어쓰기")
			doc = yaml.Node{}
			mode = entities.WriteOverwritten
		} else {
			mode = entities.WriteMerged
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}

	mergeIPv6Settings(doc.Content[0], strategy.Interface)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return "", errors.NewSystemError("Netplan 설정 마샬링 실패", err)
	}
	if err := encoder.Close(); err != nil {
		return "", errors.NewSystemError("Netplan 설정 마샬링 실패", err)
	}

	if err := a.fileSystem.WriteFile(configPath, buf.Bytes(), constants.NetplanFilePermission); err != nil {
		return "", errors.NewSystemError("Netplan 설정 파일 저장 실패", err)
	}

	a.logger.WithFields(logrus.Fields{
		"interface":   strategy.Interface,
		"config_path": configPath,
		"write_mode":  mode,
	}).Info("Netplan 설정 파일 기록 완료")

	return mode, nil
}

// Activate는 netplan generate로 문법을 검증한 뒤 netplan apply로 적용합니다
func (a *NetplanAdapter) Activate(ctx context.Context, strategy entities.ConfigStrategy) error {
	if _, err := a.commandExecutor.ExecuteWithTimeout(ctx, a.applyTimeout, "netplan", "generate"); err != nil {
		return errors.NewNetworkError("Netplan 설정 검증 실패", err)
	}

	if _, err := a.commandExecutor.ExecuteWithTimeout(ctx, a.applyTimeout, "netplan", "apply"); err != nil {
		return errors.NewNetworkError("Netplan 설정 적용 실패", err)
	}

	a.logger.WithField("interface", strategy.Interface).Info("Netplan 설정 적용 완료")
	return nil
}

func isMappingDocument(doc *yaml.Node) bool {
	return doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode
}

// mergeIPv6Settings는 network.ethernets.<iface> 아래에 dhcp6/accept-ra 값을 설정합니다
func mergeIPv6Settings(root *yaml.Node, iface string) {
	network := ensureMapping(root, "network")
	if mappingValue(network, "version") == nil {
		setScalar(network, "version", "!!int", "2")
	}

	ethernets := ensureMapping(network, "ethernets")
	ifaceNode := ensureMapping(ethernets, iface)

	setScalar(ifaceNode, "dhcp6", "!!bool", "true")
	setScalar(ifaceNode, "accept-ra", "!!int", "2")
}

// mappingValue는 매핑 노드에서 key에 해당하는 값 노드를 찾습니다
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// ensureMapping은 key의 값이 매핑이 되도록 보장합니다. 매핑이 아닌 값은 교체됩니다
func ensureMapping(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			value := mapping.Content[i+1]
			if value.Kind != yaml.MappingNode {
				value = &yaml.Node{Kind: yaml.MappingNode}
				mapping.Content[i+1] = value
			}
			return value
		}
	}

	value := &yaml.Node{Kind: yaml.MappingNode}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
	return value
}

func setScalar(mapping *yaml.Node, key, tag, value string) {
	scalar := &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = scalar
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		scalar,
	)
}
