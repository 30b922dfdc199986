package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/algo/shoe-inventory/internal/core/domain"
)

type policyFile struct {
	Rules []policyRule `yaml:"rules"`
}

type policyRule struct {
	Prefix string   `yaml:"prefix"`
	Access string   `yaml:"access"`
	Roles  []string `yaml:"roles"`
}

// LoadPolicy returns the built-in policy when path is empty, otherwise the
// rule table read from the YAML file at path. A file with any invalid rule is
// rejected whole.
func LoadPolicy(path string) (*domain.Policy, error) {
	if path == "" {
		return domain.DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return ParsePolicy(data)
}

func ParsePolicy(data []byte) (*domain.Policy, error) {
	var f policyFile
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("%w: policy file has no rules", domain.ErrInvalidPolicy)
	}

	rules := make([]domain.PolicyRule, 0, len(f.Rules))
	for _, r := range f.Rules {
		roles := make([]domain.Role, 0, len(r.Roles))
		for _, name := range r.Roles {
			roles = append(roles, domain.Role(name))
		}
		rules = append(rules, domain.PolicyRule{
			Prefix: r.Prefix,
			Access: domain.Access(r.Access),
			Roles:  roles,
		})
	}
	return domain.NewPolicy(rules)
}
