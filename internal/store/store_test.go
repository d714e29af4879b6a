package store

import (
	"os"
	"path/filepath"
	"testing"

	"nmorand/spendsight/internal/categorizer"
	"nmorand/spendsight/internal/logging"
	"nmorand/spendsight/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRulesMissingFileFallsBackToDefaults(t *testing.T) {
	store := NewRuleStore(filepath.Join(t.TempDir(), "rules.yaml"), "overrides.yaml", &logging.MockLogger{})

	rules, err := store.LoadRules()
	require.NoError(t, err)
	assert.Equal(t, categorizer.DefaultRules(), rules)
}

func TestLoadRulesDropsUnknownCategories(t *testing.T) {
	dir := t.TempDir()
	rulesFile := filepath.Join(dir, "rules.yaml")
	content := `categories:
  - name: Food
    keywords: [grocery, bakery]
  - name: Gadgets
    keywords: [drone]
`
	require.NoError(t, os.WriteFile(rulesFile, []byte(content), 0600))

	logger := &logging.MockLogger{}
	store := NewRuleStore(rulesFile, "overrides.yaml", logger)

	rules, err := store.LoadRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, models.CategoryFood, rules[0].Name)
	assert.Equal(t, []string{"grocery", "bakery"}, rules[0].Keywords)
	assert.True(t, logger.HasEntry("WARN", "Dropping rule with unknown category"))
}

func TestLoadRulesInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	rulesFile := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulesFile, []byte("categories: [[[["), 0600))

	store := NewRuleStore(rulesFile, "overrides.yaml", &logging.MockLogger{})
	_, err := store.LoadRules()
	assert.Error(t, err)
}

func TestLoadOverridesMissingFileIsEmpty(t *testing.T) {
	store := NewRuleStore("rules.yaml", filepath.Join(t.TempDir(), "overrides.yaml"), &logging.MockLogger{})

	overrides, err := store.LoadOverrides()
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

func TestLoadOverridesDropsUnknownCategories(t *testing.T) {
	dir := t.TempDir()
	overridesFile := filepath.Join(dir, "overrides.yaml")
	content := `overrides:
  Netflix: Subscriptions
  Mystery Shop: Gadgets
`
	require.NoError(t, os.WriteFile(overridesFile, []byte(content), 0600))

	logger := &logging.MockLogger{}
	store := NewRuleStore("rules.yaml", overridesFile, logger)

	overrides, err := store.LoadOverrides()
	require.NoError(t, err)
	assert.Equal(t, map[string]models.Category{"Netflix": models.CategorySubscriptions}, overrides)
	assert.True(t, logger.HasEntry("WARN", "Dropping override with unknown category"))
}

func TestSaveOverridesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	overridesFile := filepath.Join(dir, "overrides.yaml")
	store := NewRuleStore("rules.yaml", overridesFile, &logging.MockLogger{})

	overrides := map[string]models.Category{
		"Netflix": models.CategorySubscriptions,
		"Grocer":  models.CategoryFood,
	}
	require.NoError(t, store.SaveOverrides(overrides))

	loaded, err := store.LoadOverrides()
	require.NoError(t, err)
	assert.Equal(t, overrides, loaded)
}
