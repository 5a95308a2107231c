package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/triptally/triptally/internal/common"
	"github.com/triptally/triptally/internal/model"
)

// ruleFile is the on-disk YAML layout for an external rule table.
type ruleFile struct {
	Rules []model.PatternRule `yaml:"rules"`
}

// LoadFile reads a pattern rule table from a YAML file. A missing or
// malformed file is a fatal configuration error, never silently ignored.
func LoadFile(path string) ([]model.PatternRule, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read rule table %s: %v", common.ErrMissingConfig, path, err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("%w: failed to parse rule table %s: %v", common.ErrInvalidConfig, path, err)
	}

	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrEmptyRuleTable, path)
	}

	return rf.Rules, nil
}

// LoadOrDefault loads the rule table at path, or the built-in defaults when
// no path is configured.
func LoadOrDefault(path string) ([]model.PatternRule, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	return LoadFile(path)
}
