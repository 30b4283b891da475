package services

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/custodia-labs/st-cli/internal/core/domain"
	"github.com/custodia-labs/st-cli/internal/core/ports/driven"
	"github.com/custodia-labs/st-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDisabledProviders = "providers.disabled"
	keyVersionFile       = "version.file"
	keyDockerProject     = "docker.project"
	keyDockerRunArgs     = "docker.run_args"
	keyDockerBuildArgs   = "docker.build_args"
	argsPrefix           = "args."
)

// SettingsService manages project settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Path returns the configuration file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Get retrieves the effective settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	settings.DisabledProviders = s.configStore.GetStringSlice(keyDisabledProviders)
	if file := s.configStore.GetString(keyVersionFile); file != "" {
		settings.VersionFile = file
	}

	for _, kind := range domain.AllCommandKinds() {
		args, err := s.getArgs(argsPrefix + kind.String())
		if err != nil {
			return nil, err
		}
		if len(args) > 0 {
			settings.ExtraArgs[kind] = args
		}
	}

	settings.Docker.Project = s.configStore.GetString(keyDockerProject)

	var err error
	if settings.Docker.RunArgs, err = s.getArgs(keyDockerRunArgs); err != nil {
		return nil, err
	}
	if settings.Docker.BuildArgs, err = s.getArgs(keyDockerBuildArgs); err != nil {
		return nil, err
	}

	return settings, nil
}

// Set validates and stores one key.
func (s *SettingsService) Set(key, value string) error {
	switch {
	case key == keyDisabledProviders:
		return s.configStore.Set(key, splitList(value))
	case key == keyVersionFile, key == keyDockerProject:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, value)
	case key == keyDockerRunArgs, key == keyDockerBuildArgs:
		if _, err := shellwords.Parse(value); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		return s.configStore.Set(key, value)
	case strings.HasPrefix(key, argsPrefix):
		if _, err := domain.ParseCommandKind(strings.TrimPrefix(key, argsPrefix)); err != nil {
			return err
		}
		if _, err := shellwords.Parse(value); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		return s.configStore.Set(key, value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// getArgs reads a key holding either a shell-quoted string or a string array.
func (s *SettingsService) getArgs(key string) ([]string, error) {
	if list := s.configStore.GetStringSlice(key); list != nil {
		return list, nil
	}
	raw := s.configStore.GetString(key)
	if raw == "" {
		return nil, nil
	}
	args, err := shellwords.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return args, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
