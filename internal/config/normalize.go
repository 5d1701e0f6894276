package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) applyEnv() error {
	if value, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = value
	}
	if value, ok := lookupEnv(EnvLogFormat); ok {
		c.Logging.Format = value
	}
	if value, ok := lookupEnv(EnvProbeTimeout); ok {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvProbeTimeout, value)
		}
		c.Probe.TimeoutSeconds = seconds
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (c *Config) normalize() error {
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeProbe()
	c.normalizeTools()
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	return nil
}

func (c *Config) normalizeProbe() {
	// An explicit empty list means "run the command without arguments".
	if c.Probe.DefaultArgs == nil {
		c.Probe.DefaultArgs = []string{defaultProbeArg}
	}
}

func (c *Config) normalizeTools() {
	for i := range c.Tools {
		tool := &c.Tools[i]
		tool.Name = strings.TrimSpace(tool.Name)
		tool.Command = strings.TrimSpace(tool.Command)
		tool.Description = strings.TrimSpace(tool.Description)
		if tool.Command == "" {
			tool.Command = tool.Name
		}
	}
}
