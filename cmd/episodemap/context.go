package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"episodemap/internal/config"
	"episodemap/internal/kvstore"
	"episodemap/internal/logging"
)

const skipConfigAnnotation = "skipConfigLoad"

// skipConfigLoad marks commands that load configuration themselves, or not
// at all.
var skipConfigLoad = map[string]string{skipConfigAnnotation: "true"}

// commandContext lazily loads configuration once per invocation and hands
// out the collaborators commands share.
type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

// logger builds the run logger. An empty sessionID omits the session field.
// Callers defer the returned func to release the log file.
func (c *commandContext) logger(sessionID string) (*slog.Logger, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := logging.NewFromConfig(cfg, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, func() { _ = closeLog() }, nil
}

func (c *commandContext) withStore(fn func(kvstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := c.logger("")
	if err != nil {
		return err
	}
	defer closeLog()
	store, err := kvstore.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open cache store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfigAnnotation] == "true" {
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
