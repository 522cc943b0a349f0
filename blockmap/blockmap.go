// Package blockmap maps instance paths to block names for the
// startpoint/endpoint block table.
//
// Without rules an instance maps to its first hierarchy token
// (m_misc/m_max_buf/u0 -> m_misc). Rules override that with a
// longest-prefix match over the full instance path.
package blockmap

import (
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/alchip/ptsum/errors"
	"github.com/alchip/ptsum/logger"
)

// Rule maps a hierarchy prefix to a block name. Prefix is stored in
// normalized form, ending with "/". An empty prefix matches every
// instance.
type Rule struct {
	Prefix string `json:"prefix"`
	Name   string `json:"name"`
}

// NormalizePrefix trims p and makes it end in "/" so that matching
// never splits a hierarchy token. Empty prefixes pass through.
func NormalizePrefix(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

// ParseEntry parses a command line rule of the form prefix=name.
func ParseEntry(entry string) (Rule, error) {
	prefix, name, ok := strings.Cut(entry, "=")
	if !ok {
		return Rule{}, errors.NewMalformedRuleError("expected prefix=name, got %q", entry)
	}
	return Rule{
		Prefix: NormalizePrefix(prefix),
		Name:   strings.TrimSpace(name),
	}, nil
}

// ParseFile parses mapping rules from file content. Each line holds
// one rule, either "prefix -> name" or "prefix name". Blank lines and
// lines starting with # are skipped.
func ParseFile(content string) ([]Rule, error) {
	var rules []Rule
	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var left, right string
		if l, r, ok := strings.Cut(line, "->"); ok {
			left, right = strings.TrimSpace(l), strings.TrimSpace(r)
		} else {
			parts := strings.Fields(line)
			if len(parts) < 2 {
				return nil, errors.NewMalformedRuleError("bad mapping line %d: %q", i+1, raw)
			}
			left, right = parts[0], parts[1]
		}
		rules = append(rules, Rule{Prefix: NormalizePrefix(left), Name: right})
	}
	return rules, nil
}

// LoadFile reads mapping rules from path on fsys.
func LoadFile(fsys afero.Fs, path string) ([]Rule, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read block map file %s", path)
	}
	rules, err := ParseFile(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse block map file %s", path)
	}
	logger.Debugw("Loaded block map file",
		"file", path,
		"count", len(rules))
	return rules, nil
}

// Resolver answers block-name lookups. The zero value (no rules)
// falls back to the first hierarchy token for every instance.
type Resolver struct {
	rules []Rule
}

// NewResolver builds a Resolver from rules. Longer prefixes win; the
// sort is stable so equal-length prefixes keep their given order.
func NewResolver(rules []Rule) *Resolver {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &Resolver{rules: sorted}
}

// Rules returns the resolver's rules in match order.
func (r *Resolver) Rules() []Rule {
	return r.rules
}

// Resolve returns the block name for an instance path. The first
// matching prefix wins; with no match the first hierarchy token is
// used, or the whole path when it has no hierarchy.
func (r *Resolver) Resolve(inst string) string {
	for _, rule := range r.rules {
		if strings.HasPrefix(inst, rule.Prefix) {
			return rule.Name
		}
	}
	if head, _, ok := strings.Cut(inst, "/"); ok {
		return head
	}
	return inst
}
