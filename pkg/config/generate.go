package config

import (
	"strings"

	"github.com/arthur-debert/jarreloc/pkg/remap"
	toml "github.com/pelletier/go-toml/v2"
)

const configHeader = `# jarreloc configuration
#
# Place this file at $XDG_CONFIG_HOME/jarreloc/config.toml or pass it with
# --config. Values shown are examples; uncomment the ones you need.
# Environment variables override files: JARRELOC_PRUNE_SOURCES=true,
# JARRELOC_LOG__FILE=/tmp/jarreloc.log.

`

// SampleConfig is the configuration rendered by GenerateConfigContent
func SampleConfig() *Config {
	cfg := Default()
	cfg.Relocations = []remap.Relocation{
		{
			Pattern:     "com.google.common",
			Replacement: "com.example.shaded.guava",
			Excludes:    []string{"com.google.common.annotations.**"},
		},
	}
	return cfg
}

// GenerateConfigContent generates the configuration file content with commented values
func GenerateConfigContent() (string, error) {
	data, err := toml.Marshal(SampleConfig())
	if err != nil {
		return "", err
	}
	return configHeader + commentOutConfigValues(string(data)), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments). Plain table headers stay so
// uncommenting a value keeps it in its table; array-of-table headers are
// commented since an empty element would be an invalid relocation.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
