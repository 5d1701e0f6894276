package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"scmutil/internal/config"
	"scmutil/internal/deps"
	"scmutil/internal/logging"
)

// errUnavailable signals a negative probe result; main exits non-zero
// without printing it because the command already reported the outcome.
var errUnavailable = errors.New("command unavailable")

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	correlationID string
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{
		flags:         flags,
		correlationID: uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.flags != nil {
			path = strings.TrimSpace(c.flags.config)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags != nil {
			if level := strings.TrimSpace(c.flags.logLevel); level != "" {
				cfg.Logging.Level = strings.ToLower(level)
			}
			if format := strings.TrimSpace(c.flags.logFormat); format != "" {
				cfg.Logging.Format = strings.ToLower(format)
			}
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// runContext returns the command context tagged with this run's correlation ID.
func (c *commandContext) runContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithCorrelationID(ctx, c.correlationID)
}

// logger builds the run's logger on the command's error stream, mirrored to
// the JSON log file when a log directory is configured. The caller must call
// the returned CloseFunc.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, logging.CloseFunc, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr())
}

func (c *commandContext) prober(cmd *cobra.Command, extra ...deps.Option) (*deps.Prober, logging.CloseFunc, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := c.logger(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts := []deps.Option{
		deps.WithLogger(logger),
		deps.WithTimeout(cfg.ProbeTimeout()),
		deps.WithDefaultArgs(cfg.ProbeArgs()...),
	}
	return deps.NewProber(append(opts, extra...)...), closeLog, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
