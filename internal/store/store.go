// Package store loads and saves the YAML-backed categorization data: the
// keyword rule table and the merchant overrides learned from accepted
// model suggestions.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"nmorand/spendsight/internal/categorizer"
	"nmorand/spendsight/internal/fileutils"
	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"

	"gopkg.in/yaml.v3"
)

// File permissions for written config files.
const permConfigFile = 0600

// OverridesConfig is the structure of the overrides YAML file.
type OverridesConfig struct {
	Overrides map[string]string `yaml:"overrides"`
}

// RuleStore manages the rule and override files. Missing files are not
// errors: rules fall back to the built-in defaults and overrides start
// empty.
type RuleStore struct {
	RulesFile     string
	OverridesFile string
	logger        logging.Logger
}

// NewRuleStore creates a store over the given file names. Relative names
// are resolved against the standard config locations.
func NewRuleStore(rulesFile, overridesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &RuleStore{
		RulesFile:     rulesFile,
		OverridesFile: overridesFile,
		logger:        logger,
	}
}

// FindConfigFile looks for a configuration file in the standard locations:
// the path itself, ./config/, then ~/.config/spendsight/.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "spendsight", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadRules reads the category rule table. A missing file yields the
// built-in defaults; rules naming an unknown category are dropped.
func (s *RuleStore) LoadRules() ([]models.CategoryRule, error) {
	path, err := s.FindConfigFile(s.RulesFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField(logging.FieldFile, s.RulesFile).Debug("Rules file not found, using defaults")
			return categorizer.DefaultRules(), nil
		}
		return nil, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var config models.RulesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing rules file: %w", err)
	}

	rules := make([]models.CategoryRule, 0, len(config.Categories))
	for _, rule := range config.Categories {
		if !models.IsValidCategory(string(rule.Name)) {
			s.logger.WithField(logging.FieldCategory, rule.Name).Warn("Dropping rule with unknown category")
			continue
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return categorizer.DefaultRules(), nil
	}
	return rules, nil
}

// LoadOverrides reads the merchant override map. A missing file yields an
// empty map; entries with an unknown category are dropped.
func (s *RuleStore) LoadOverrides() (map[string]models.Category, error) {
	overrides := make(map[string]models.Category)

	path, err := s.FindConfigFile(s.OverridesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return overrides, nil
		}
		return nil, fmt.Errorf("error resolving overrides file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading overrides file: %w", err)
	}

	var config OverridesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing overrides file: %w", err)
	}

	for merchantName, raw := range config.Overrides {
		category, err := models.ParseCategory(raw)
		if err != nil {
			s.logger.WithFields(
				logging.Field{Key: logging.FieldMerchant, Value: merchantName},
				logging.Field{Key: logging.FieldCategory, Value: raw},
			).Warn("Dropping override with unknown category")
			continue
		}
		overrides[merchantName] = category
	}
	return overrides, nil
}

// SaveOverrides writes the merchant override map back to disk, creating
// the file next to the working directory when it does not exist yet.
func (s *RuleStore) SaveOverrides(overrides map[string]models.Category) error {
	raw := make(map[string]string, len(overrides))
	for merchantName, category := range overrides {
		raw[merchantName] = string(category)
	}

	data, err := yaml.Marshal(OverridesConfig{Overrides: raw})
	if err != nil {
		return fmt.Errorf("error encoding overrides: %w", err)
	}

	path, err := s.FindConfigFile(s.OverridesFile)
	if err != nil {
		path = s.OverridesFile
	}
	if err := fileutils.WriteFile(path, data, permConfigFile); err != nil {
		return fmt.Errorf("error writing overrides file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(overrides)},
	).Debug("Saved merchant overrides")
	return nil
}
