// Package layers validates architectural layering rules over the
// dependency edge set.
//
// A module's layer is found by substring matching its path against the
// declared layer names, in declaration order. This is a documented
// heuristic: a module whose name merely contains a layer keyword will be
// classified into that layer. Modules matching no declared layer opt out
// of validation entirely.
package layers

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hargabyte/archmap/internal/resolver"
)

// Rule declares one layer and the layers it is allowed to depend on.
type Rule struct {
	Name    string
	Allowed []string
}

// Rules is an ordered list of layer declarations. Classification applies
// rules in declaration order, first match wins. Rules is a slice rather
// than a map because Go map iteration would not preserve the declared
// key order.
type Rules []Rule

// UnmarshalYAML decodes a YAML mapping of layer -> allowed layers while
// preserving the mapping's key order.
func (r *Rules) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("layer rules must be a mapping of layer to allowed layers")
	}

	rules := Rules{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var name string
		if err := value.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("layer name: %w", err)
		}
		var allowed []string
		if err := value.Content[i+1].Decode(&allowed); err != nil {
			return fmt.Errorf("allowed layers for %q: %w", name, err)
		}
		rules = append(rules, Rule{Name: name, Allowed: allowed})
	}
	*r = rules
	return nil
}

// MarshalYAML encodes the rules back into an ordered mapping.
func (r Rules) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, rule := range r {
		key := &yaml.Node{}
		if err := key.Encode(rule.Name); err != nil {
			return nil, err
		}
		val := &yaml.Node{}
		if err := val.Encode(rule.Allowed); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// Validate checks the rule set for structural problems: empty or
// duplicate layer names, and allow-list entries naming undeclared
// layers (which could never match and indicate a typo).
func (r Rules) Validate() error {
	declared := make(map[string]struct{}, len(r))
	for _, rule := range r {
		if strings.TrimSpace(rule.Name) == "" {
			return fmt.Errorf("layer rules: empty layer name")
		}
		if _, dup := declared[rule.Name]; dup {
			return fmt.Errorf("layer rules: duplicate layer %q", rule.Name)
		}
		declared[rule.Name] = struct{}{}
	}
	for _, rule := range r {
		for _, allowed := range rule.Allowed {
			if _, ok := declared[allowed]; !ok {
				return fmt.Errorf("layer rules: layer %q allows undeclared layer %q", rule.Name, allowed)
			}
		}
	}
	return nil
}

// Classify returns the layer a module path belongs to, or false when the
// path matches no declared layer.
func (r Rules) Classify(modulePath string) (string, bool) {
	for _, rule := range r {
		if strings.Contains(modulePath, rule.Name) {
			return rule.Name, true
		}
	}
	return "", false
}

// allows reports whether a source layer may depend on a target layer.
// Depending on one's own layer is always allowed.
func (r Rules) allows(from, to string) bool {
	if from == to {
		return true
	}
	for _, rule := range r {
		if rule.Name != from {
			continue
		}
		for _, allowed := range rule.Allowed {
			if allowed == to {
				return true
			}
		}
		return false
	}
	return false
}

// Violation is one edge crossing layers against the declared rules.
type Violation struct {
	From string `json:"from"`
	To   string `json:"to"`
	// ExpectedLayer lists the layers the source layer may depend on,
	// joined with ", ".
	ExpectedLayer string `json:"expectedLayer"`
	ActualLayer   string `json:"actualLayer"`
	Description   string `json:"description"`
}

// Check classifies both endpoints of every edge and returns a violation
// for each edge whose target layer is missing from the source layer's
// allow-list. Edges with an unclassified endpoint raise nothing:
// layering is opt-in per module.
func Check(deps []resolver.Dependency, rules Rules) []Violation {
	violations := []Violation{}
	for _, dep := range deps {
		fromLayer, ok := rules.Classify(dep.From)
		if !ok {
			continue
		}
		toLayer, ok := rules.Classify(dep.To)
		if !ok {
			continue
		}
		if rules.allows(fromLayer, toLayer) {
			continue
		}

		expected := "none"
		for _, rule := range rules {
			if rule.Name == fromLayer && len(rule.Allowed) > 0 {
				expected = strings.Join(rule.Allowed, ", ")
			}
		}
		violations = append(violations, Violation{
			From:          dep.From,
			To:            dep.To,
			ExpectedLayer: expected,
			ActualLayer:   toLayer,
			Description: fmt.Sprintf("layer %q must not depend on layer %q (%s -> %s)",
				fromLayer, toLayer, dep.From, dep.To),
		})
	}
	return violations
}
