// Package classifier assigns labels to free text through an ordered cascade
// of keyword rules. The first rule whose keyword occurs in the text wins.
package classifier

import (
	"strings"

	"catalog/internal/domain"
	"catalog/internal/store"
)

// DefaultLabel is returned by the default material classifier when no rule matches.
const DefaultLabel = "Other"

// Rule maps a keyword to a label.
type Rule struct {
	Keyword string `yaml:"keyword"`
	Label   string `yaml:"label"`
}

// DefaultMaterialRules returns the material cascade, most specific first.
func DefaultMaterialRules() []Rule {
	return []Rule{
		{Keyword: "leather", Label: "Leather"},
		{Keyword: "suede", Label: "Suede"},
		{Keyword: "cashmere", Label: "Cashmere"},
		{Keyword: "wool", Label: "Wool"},
		{Keyword: "silk", Label: "Silk"},
		{Keyword: "linen", Label: "Linen"},
		{Keyword: "cotton", Label: "Cotton"},
		{Keyword: "denim", Label: "Denim"},
		{Keyword: "canvas", Label: "Canvas"},
		{Keyword: "nylon", Label: "Nylon"},
		{Keyword: "polyester", Label: "Polyester"},
	}
}

// Classifier evaluates its rules in declaration order. It is immutable.
type Classifier struct {
	rules        []Rule
	needles      []string
	defaultLabel string
}

// New creates a Classifier. Rules with an empty keyword never match.
func New(rules []Rule, defaultLabel string) *Classifier {
	c := &Classifier{
		rules:        append([]Rule(nil), rules...),
		needles:      make([]string, len(rules)),
		defaultLabel: defaultLabel,
	}
	for i, r := range rules {
		c.needles[i] = strings.ToLower(r.Keyword)
	}
	return c
}

// NewMaterial creates a Classifier with DefaultMaterialRules and DefaultLabel.
func NewMaterial() *Classifier {
	return New(DefaultMaterialRules(), DefaultLabel)
}

// Rules returns a copy of the configured rules.
func (c *Classifier) Rules() []Rule { return append([]Rule(nil), c.rules...) }

// DefaultLabel returns the label used when nothing matches.
func (c *Classifier) DefaultLabel() string { return c.defaultLabel }

// Classify returns the label of the first rule whose keyword is a
// case-insensitive substring of text, or the default label.
func (c *Classifier) Classify(text domain.Text) string {
	if !text.Valid {
		return c.defaultLabel
	}
	lower := strings.ToLower(text.S)
	for i, needle := range c.needles {
		if needle == "" {
			continue
		}
		if strings.Contains(lower, needle) {
			return c.rules[i].Label
		}
	}
	return c.defaultLabel
}

// ClassifyField labels field f of every record, in table order.
func (c *Classifier) ClassifyField(t *store.Table, f domain.Field) ([]string, error) {
	if _, err := domain.ParseField(string(f)); err != nil {
		return nil, err
	}
	labels := make([]string, t.Len())
	for i := range labels {
		txt, err := t.Text(i, f)
		if err != nil {
			return nil, err
		}
		labels[i] = c.Classify(txt)
	}
	return labels, nil
}
