package adapters

import (
	"bufio"
	"ipv6-autoconf/internal/domain/errors"
	"ipv6-autoconf/internal/domain/interfaces"
	"strings"
)

// OSReleaseFile is an OSReleaseSource that parses an os-release style key=value file
type OSReleaseFile struct {
	fileSystem interfaces.FileSystem
	path       string
}

// NewOSReleaseFile creates a new OSReleaseFile
func NewOSReleaseFile(fs interfaces.FileSystem, path string) interfaces.OSReleaseSource {
	return &OSReleaseFile{
		fileSystem: fs,
		path:       path,
	}
}

// Read parses the os-release file and returns it as a map.
// A missing file yields an empty map so classification falls through to generic.
func (r *OSReleaseFile) Read() (map[string]string, error) {
	releaseInfo := make(map[string]string)
	if !r.fileSystem.Exists(r.path) {
		return releaseInfo, nil
	}

	content, err := r.fileSystem.ReadFile(r.path)
	if err != nil {
		return nil, errors.NewSystemError("cannot read "+r.path, err)
	}

	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			key := strings.TrimSpace(parts[0])
			value := strings.Trim(strings.TrimSpace(parts[1]), "\"'")
			releaseInfo[key] = value
		}
	}

	return releaseInfo, nil
}
