// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/activity-board/models"
)

// Correction rewrites a known-bad answer
// Date, when set, restricts the rule to submissions made on that day
type Correction struct {
	Date    string `yaml:"date"`
	Field   string `yaml:"field"`
	Wrong   any    `yaml:"wrong"`
	Replace any    `yaml:"replace"`
}

// Set is a set of member IDs
type Set map[int]struct{}

// NewSet builds a set from a list of IDs
func NewSet(ids ...int) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports membership
func (s Set) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Config holds the static data-quality rules loaded at startup
type Config struct {
	Corrections  []Correction
	Excluded     Set
	ValidMembers Set
}

type fileFormat struct {
	Corrections  []Correction `yaml:"corrections"`
	Excluded     []int        `yaml:"excluded"`
	ValidMembers []int        `yaml:"valid_members"`
}

// Empty returns a config with no rules
func Empty() *Config {
	return &Config{Excluded: NewSet(), ValidMembers: NewSet()}
}

// Load reads rules from a YAML file
// A missing file yields an empty config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("rules file not found, running without corrections", "path", path)
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(data)
}

// Parse decodes rules from YAML
func Parse(data []byte) (*Config, error) {
	var raw fileFormat
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	cfg := &Config{
		Corrections:  make([]Correction, 0, len(raw.Corrections)),
		Excluded:     NewSet(raw.Excluded...),
		ValidMembers: NewSet(raw.ValidMembers...),
	}
	for i, c := range raw.Corrections {
		if c.Wrong == nil {
			return nil, fmt.Errorf("correction %d: wrong value is required", i)
		}
		if c.Field == "" {
			c.Field = models.LabelMemberID
		}
		cfg.Corrections = append(cfg.Corrections, c)
	}
	return cfg, nil
}
