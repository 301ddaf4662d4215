package prereq

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxCycleRetry bounds the number of edge-removal rounds.
const MaxCycleRetry = 3

// Policy holds the tunable knobs of a resolution.
type Policy struct {
	MaxCycleRetry     int      `yaml:"max_cycle_retry"`
	CoverageThreshold float64  `yaml:"coverage_threshold"`
	FallbackTopK      int      `yaml:"fallback_top_k"`
	NameSuffixes      []string `yaml:"name_suffixes"`
	NoneMarkers       []string `yaml:"none_markers"`
	MinTokenRunes     int      `yaml:"min_token_runes"`
}

func DefaultPolicy() Policy {
	return Policy{
		MaxCycleRetry:     MaxCycleRetry,
		CoverageThreshold: 0.6,
		FallbackTopK:      3,
		NameSuffixes: []string{
			"basics", "basic", "introduction", "intro", "advanced", "practice", "fundamentals",
			"基础", "入门", "导论", "概论", "进阶", "高级", "实践", "实验",
		},
		NoneMarkers:   []string{"无", "无。", "暂无", "none", "none.", "n/a", "na", "-"},
		MinTokenRunes: 2,
	}
}

func (p Policy) Validate() error {
	if p.MaxCycleRetry < 0 {
		return fmt.Errorf("max_cycle_retry must be >= 0, got %d", p.MaxCycleRetry)
	}
	if p.CoverageThreshold < 0 || p.CoverageThreshold >= 1 {
		return fmt.Errorf("coverage_threshold must be in [0,1), got %v", p.CoverageThreshold)
	}
	if p.FallbackTopK <= 0 {
		return fmt.Errorf("fallback_top_k must be > 0, got %d", p.FallbackTopK)
	}
	if p.MinTokenRunes <= 0 {
		return fmt.Errorf("min_token_runes must be > 0, got %d", p.MinTokenRunes)
	}
	return nil
}

// LoadPolicyFile overlays the YAML document at path on DefaultPolicy. Keys
// absent from the file keep their defaults.
func LoadPolicyFile(path string) (Policy, error) {
	p := DefaultPolicy()
	path = strings.TrimSpace(path)
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

func sortStrings(s []string) { sort.Strings(s) }
