package config

import (
	"fmt"
	"strings"
)

// Report name resolution modes. "snapshot" serves the product name captured at
// sale time; "live" re-resolves the current name and skips orphaned records.
const (
	ReportSourceSnapshot = "snapshot"
	ReportSourceLive     = "live"
)

type ReportConfig struct {
	Source string `koanf:"source"`
}

// String returns a string representation of the report configuration.
func (c *ReportConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Report ---\n")
	b.WriteString(fmt.Sprintf("  source: %s\n", c.Source))
	return b.String()
}

func (c *ReportConfig) Validate() error {
	switch c.Source {
	case "":
		c.Source = ReportSourceSnapshot
	case ReportSourceSnapshot, ReportSourceLive:
	default:
		return fmt.Errorf("invalid report source: %s", c.Source)
	}
	return nil
}
