package report

import (
	"encoding/json"
	"fmt"
	"io"
	"ipv6-autoconf/internal/domain/entities"
	"ipv6-autoconf/internal/domain/interfaces"
	"ipv6-autoconf/internal/infrastructure/metrics"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Status is the overall result of a run
type Status string

const (
	StatusSuccess  Status = "success"
	StatusDegraded Status = "degraded"
	StatusFailed   Status = "failed"
)

// Report is the serialisable summary of a run
type Report struct {
	Status       Status               `json:"status"`
	Timestamp    string               `json:"timestamp"`
	Version      string               `json:"version"`
	DryRun       bool                 `json:"dry_run"`
	Host         *HostSection         `json:"host,omitempty"`
	Interface    *InterfaceSection    `json:"interface,omitempty"`
	Strategy     *StrategySection     `json:"strategy,omitempty"`
	Apply        *ApplySection        `json:"apply,omitempty"`
	Gateway      *GatewaySection      `json:"gateway,omitempty"`
	Verification *VerificationSection `json:"verification,omitempty"`
	Warnings     []string             `json:"warnings,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// HostSection describes the detected environment
type HostSection struct {
	OSFamily             string `json:"os_family"`
	OSID                 string `json:"os_id,omitempty"`
	VersionID            string `json:"version_id,omitempty"`
	DeclarativeConfig    bool   `json:"declarative_config"`
	NetworkManagerActive bool   `json:"network_manager_active"`
}

// InterfaceSection describes the chosen interface
type InterfaceSection struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// StrategySection describes the selected configuration strategy
type StrategySection struct {
	Kind       string   `json:"kind"`
	ConfigPath string   `json:"config_path"`
	Activation string   `json:"activation"`
	Artifacts  []string `json:"artifacts"`
}

// ApplySection describes what the applier did
type ApplySection struct {
	WriteMode  string   `json:"write_mode,omitempty"`
	Backups    []string `json:"backups,omitempty"`
	RolledBack bool     `json:"rolled_back"`
}

// GatewaySection describes the gateway reconciliation
type GatewaySection struct {
	Action          string `json:"action"`
	PreviousNextHop string `json:"previous_next_hop,omitempty"`
	ExpectedNextHop string `json:"expected_next_hop"`
}

// VerificationSection describes the post-apply diagnosis
type VerificationSection struct {
	HasGlobalAddress bool     `json:"has_global_address"`
	GlobalAddresses  []string `json:"global_addresses,omitempty"`
	GatewayCorrect   bool     `json:"gateway_correct"`
	Reachable        *bool    `json:"reachable,omitempty"`
	ElapsedSeconds   float64  `json:"elapsed_seconds"`
	LikelyCauses     []string `json:"likely_causes,omitempty"`
}

// ReportService builds run reports and publishes their metrics
type ReportService struct {
	clock   interfaces.Clock
	logger  *logrus.Logger
	version string
}

// NewReportService creates a new ReportService
func NewReportService(clock interfaces.Clock, logger *logrus.Logger, version string) *ReportService {
	return &ReportService{
		clock:   clock,
		logger:  logger,
		version: version,
	}
}

// Build converts a RunReport into a Report
func (s *ReportService) Build(run *entities.RunReport) Report {
	report := Report{
		Status:    determineStatus(run),
		Timestamp: s.clock.Now().Format(time.RFC3339),
		Version:   s.version,
		DryRun:    run.DryRun,
	}

	if p := run.Profile; p != nil {
		report.Host = &HostSection{
			OSFamily:             string(p.Family),
			OSID:                 p.OSID,
			VersionID:            p.VersionID,
			DeclarativeConfig:    p.UsesDeclarativeConfig,
			NetworkManagerActive: p.NetworkManagerActive,
		}
	}

	if i := run.Interface; i != nil {
		report.Interface = &InterfaceSection{Name: i.Interface.Name, Source: string(i.Source)}
	}

	if st := run.Strategy; st != nil {
		report.Strategy = &StrategySection{
			Kind:       st.Kind.String(),
			ConfigPath: st.ConfigPath,
			Activation: string(st.Activation),
			Artifacts:  st.Artifacts(),
		}
	}

	if a := run.Apply; a != nil {
		section := &ApplySection{WriteMode: string(a.Mode), RolledBack: a.RolledBack}
		for _, record := range a.Backups {
			if record.ExistedBefore {
				section.Backups = append(section.Backups, record.BackupPath)
			}
		}
		report.Apply = section
	}

	if g := run.Gateway; g != nil {
		section := &GatewaySection{
			Action:          string(g.Action),
			ExpectedNextHop: g.Before.ExpectedNextHop.String(),
		}
		if g.Before.HasRoute() {
			section.PreviousNextHop = g.Before.CurrentNextHop.String()
		}
		report.Gateway = section
	}

	if v := run.Verification; v != nil {
		report.Verification = &VerificationSection{
			HasGlobalAddress: v.HasGlobalAddress,
			GlobalAddresses:  v.GlobalAddresses,
			GatewayCorrect:   v.GatewayCorrect,
			Reachable:        v.Reachable,
			ElapsedSeconds:   v.ElapsedSeconds,
			LikelyCauses:     v.LikelyCauses,
		}
	}

	for _, warning := range run.Warnings {
		report.Warnings = append(report.Warnings, warning.Error())
	}
	if run.Fatal != nil {
		report.Error = run.Fatal.Error()
	}

	return report
}

// Publish records the run in the metrics registry
func (s *ReportService) Publish(report Report) {
	if report.Host != nil {
		metrics.SetHostInfo(s.version, report.Host.OSFamily, report.Host.OSID, report.Host.NetworkManagerActive)
	}
	metrics.RecordRun(string(report.Status), float64(s.clock.Now().Unix()))

	s.logger.WithFields(logrus.Fields{
		"status":   report.Status,
		"warnings": len(report.Warnings),
		"dry_run":  report.DryRun,
	}).Info("run finished")
}

// determineStatus determines the overall run status
func determineStatus(run *entities.RunReport) Status {
	if run.Fatal != nil {
		return StatusFailed
	}
	if len(run.Warnings) > 0 {
		return StatusDegraded
	}
	return StatusSuccess
}

// RenderJSON writes the report as indented JSON
func RenderJSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// RenderText writes a human-readable summary of the report
func RenderText(w io.Writer, report Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Status:        %s", report.Status)
	if report.DryRun {
		b.WriteString(" (dry-run)")
	}
	b.WriteString("\n")

	if h := report.Host; h != nil {
		fmt.Fprintf(&b, "Host:          %s %s (%s)\n", orUnknown(h.OSID), h.VersionID, h.OSFamily)
	}
	if i := report.Interface; i != nil {
		fmt.Fprintf(&b, "Interface:     %s (%s)\n", i.Name, i.Source)
	}
	if st := report.Strategy; st != nil {
		fmt.Fprintf(&b, "Strategy:      %s -> %s\n", st.Kind, strings.Join(st.Artifacts, ", "))
	}
	if a := report.Apply; a != nil {
		fmt.Fprintf(&b, "Write mode:    %s\n", orUnknown(a.WriteMode))
		for _, backup := range a.Backups {
			fmt.Fprintf(&b, "Backup:        %s\n", backup)
		}
		if a.RolledBack {
			b.WriteString("Rolled back:   yes\n")
		}
	}
	if g := report.Gateway; g != nil {
		fmt.Fprintf(&b, "Gateway:       %s (expected %s", g.Action, g.ExpectedNextHop)
		if g.PreviousNextHop != "" {
			fmt.Fprintf(&b, ", was %s", g.PreviousNextHop)
		}
		b.WriteString(")\n")
	}
	if v := report.Verification; v != nil {
		if v.HasGlobalAddress {
			fmt.Fprintf(&b, "IPv6 address:  %s\n", strings.Join(v.GlobalAddresses, ", "))
		} else {
			fmt.Fprintf(&b, "IPv6 address:  none after %.0fs\n", v.ElapsedSeconds)
		}
		if v.Reachable != nil {
			fmt.Fprintf(&b, "Reachable:     %t\n", *v.Reachable)
		}
		for _, cause := range v.LikelyCauses {
			fmt.Fprintf(&b, "Likely cause:  %s\n", cause)
		}
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(&b, "Warning:       %s\n", warning)
	}
	if report.Error != "" {
		fmt.Fprintf(&b, "Error:         %s\n", report.Error)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
