package watch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile is an optional YAML file carrying extra keywords and chats that
// are merged on top of the main configuration. It lets operators version a
// shared rule set separately from credentials.
//
//	keywords:
//	  - urgent
//	  - invoice
//	chats:
//	  - "-100123456789"
//	  - Ops Alerts
type RulesFile struct {
	Keywords []string `yaml:"keywords"`
	Chats    []string `yaml:"chats"`
}

// LoadRules reads and parses a rules file. A missing path is an error; use
// an empty rulesFile config value to disable the feature.
func LoadRules(path string) (*RulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return &rules, nil
}

// MergeRules appends the rules-file entries to the configured lists, keeping
// configuration order first and dropping duplicates.
func MergeRules(keywords, chats []string, rules *RulesFile) ([]string, []string) {
	if rules == nil {
		return keywords, chats
	}
	return appendUnique(keywords, rules.Keywords), appendUnique(chats, rules.Chats)
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, v := range base {
		seen[v] = struct{}{}
	}
	out := base
	for _, v := range extra {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
