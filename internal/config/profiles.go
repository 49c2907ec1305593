package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/work-order-flow/internal/categorize"
	"github.com/Veraticus/work-order-flow/internal/correct"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ProfileFile is the on-disk layout of a profile configuration file.
type ProfileFile struct {
	Profiles        []categorize.ProfileConfig `yaml:"profiles"`
	IncludeBuiltins bool                       `yaml:"include_builtins"`
	Corrections     *correct.Config            `yaml:"corrections"`
}

// LoadRegistry returns the registry named by profiles.path, or the built-in
// profiles when no path is configured.
func LoadRegistry() (*categorize.Registry, error) {
	path := ExpandPath(viper.GetString("profiles.path"))
	if path == "" {
		return categorize.BuiltinRegistry(), nil
	}
	return LoadProfiles(path)
}

// LoadProfiles reads a profile file and builds a registry from it. Prompt
// files are resolved relative to the profile file. With include_builtins the
// built-in profiles are registered too, unless the file redefines their key.
func LoadProfiles(path string) (*categorize.Registry, error) {
	file, err := readProfileFile(path)
	if err != nil {
		return nil, err
	}

	configs := file.Profiles
	if file.IncludeBuiltins {
		configs = withBuiltins(configs)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: %s defines no profiles", categorize.ErrInvalidProfile, path)
	}

	baseDir := filepath.Dir(path)
	profiles := make([]*categorize.Profile, 0, len(configs))
	for _, cfg := range configs {
		if err := resolvePrompt(&cfg, baseDir); err != nil {
			return nil, err
		}
		p, err := categorize.NewProfile(cfg)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return categorize.NewRegistry(profiles...)
}

func readProfileFile(path string) (ProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProfileFile{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	var file ProfileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ProfileFile{}, fmt.Errorf("failed to parse profile file %s: %w", path, err)
	}
	return file, nil
}

func withBuiltins(configs []categorize.ProfileConfig) []categorize.ProfileConfig {
	defined := make(map[string]bool, len(configs))
	for _, cfg := range configs {
		defined[strings.TrimSpace(cfg.Key)] = true
	}

	out := make([]categorize.ProfileConfig, 0, len(configs)+2)
	for _, builtin := range []categorize.ProfileConfig{categorize.AeonConfig(), categorize.AE3Config()} {
		if !defined[builtin.Key] {
			out = append(out, builtin)
		}
	}
	return append(out, configs...)
}

func resolvePrompt(cfg *categorize.ProfileConfig, baseDir string) error {
	if cfg.PromptFile == "" {
		return nil
	}
	if cfg.Prompt != "" {
		return fmt.Errorf("%w: %s: prompt and prompt_file are mutually exclusive", categorize.ErrInvalidProfile, cfg.Key)
	}

	path := ExpandPath(cfg.PromptFile)
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read prompt file for profile %s: %w", cfg.Key, err)
	}
	cfg.Prompt = string(data)
	return nil
}
