package nlparse

import (
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
)

// Candidate is one activity extracted from text.
type Candidate struct {
	Rule      string            `json:"rule"`
	Category  greenops.Category `json:"category"`
	Type      string            `json:"type"`
	Magnitude *float64          `json:"magnitude,omitempty"`
	Match     string            `json:"match"`
}

// Draft converts the candidate into ledger input tagged as text-sourced.
func (c Candidate) Draft() ledger.Draft {
	return ledger.Draft{
		Category:  c.Category,
		Type:      c.Type,
		Magnitude: c.Magnitude,
		Source:    ledger.SourceText,
	}
}

// CarbonKg previews the carbon the candidate would be logged with.
func (c Candidate) CarbonKg() float64 {
	return greenops.CalculateRaw(c.Category, c.Type, c.Magnitude)
}

// Parser evaluates an ordered rule table.
type Parser struct {
	rules []Rule
}

// New returns a parser over rules; with no rules it uses DefaultRules.
func New(rules ...Rule) *Parser {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Parser{rules: rules}
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// Parse returns the candidates found in text in rule order. Text with no
// recognizable activity yields an empty, non-nil slice.
func (p *Parser) Parse(text string) []Candidate {
	normalized := Normalize(text)
	out := []Candidate{}
	if normalized == "" {
		return out
	}

	matched := make(map[string]span, len(p.rules))
	for _, rule := range p.rules {
		idx := rule.Pattern.FindStringSubmatchIndex(normalized)
		if idx == nil {
			continue
		}
		sp := span{idx[0], idx[1]}
		if skipped(rule, sp, matched) {
			continue
		}

		c, ok := rule.Extract(submatches(normalized, idx))
		if !ok {
			continue
		}
		c.Rule = rule.Name
		c.Category = rule.Category
		c.Match = normalized[sp.start:sp.end]
		matched[rule.Name] = sp
		out = append(out, c)
	}
	return out
}

func skipped(rule Rule, sp span, matched map[string]span) bool {
	for _, name := range rule.SkipIfMatched {
		if other, ok := matched[name]; ok && other.overlaps(sp) {
			return true
		}
	}
	return false
}

// submatches expands an index slice into strings; groups that did not
// participate are empty.
func submatches(s string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if start := idx[2*i]; start >= 0 {
			out[i] = s[start:idx[2*i+1]]
		}
	}
	return out
}

//nolint:gochecknoglobals // Stateless parser over the built-in rules.
var defaultParser = New()

// Parse runs the built-in rules over text.
func Parse(text string) []Candidate {
	return defaultParser.Parse(text)
}
