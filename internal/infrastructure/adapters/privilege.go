package adapters

import (
	"ipv6-autoconf/internal/domain/interfaces"
	"os"
)

// ProcessPrivilege checks the effective uid of the running process
type ProcessPrivilege struct{}

// NewProcessPrivilege creates a new ProcessPrivilege
func NewProcessPrivilege() interfaces.PrivilegeChecker {
	return &ProcessPrivilege{}
}

// IsRoot reports whether the process runs with uid 0
func (p *ProcessPrivilege) IsRoot() bool {
	return os.Geteuid() == 0
}
