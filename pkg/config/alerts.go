package config

import (
	"fmt"
	"strings"
)

type AlertsConfig struct {
	StockThreshold int32 `koanf:"stockThreshold"`
}

// String returns a string representation of the alerts configuration.
func (c *AlertsConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Alerts ---\n")
	b.WriteString(fmt.Sprintf("  stockThreshold: %d\n", c.StockThreshold))
	return b.String()
}

func (c *AlertsConfig) Validate() error {
	if c.StockThreshold < 0 {
		return fmt.Errorf("invalid stock alert threshold: %d", c.StockThreshold)
	}
	return nil
}
