package domain

import (
	"regexp"
	"strings"
)

var matchAll = regexp.MustCompile(`.*`)

// BrowserMatcher selects browser targets by exact id or by pattern.
// The zero value is unset.
type BrowserMatcher struct {
	names    []string
	patterns []*regexp.Regexp
}

// MatchBrowsers matches the given browser ids exactly.
func MatchBrowsers(names ...string) BrowserMatcher {
	return NewBrowserMatcher(names, nil)
}

// MatchPatterns matches any browser id accepted by one of the patterns.
func MatchPatterns(patterns ...*regexp.Regexp) BrowserMatcher {
	return NewBrowserMatcher(nil, patterns)
}

// MatchAllBrowsers matches every browser id.
func MatchAllBrowsers() BrowserMatcher {
	return MatchPatterns(matchAll)
}

// NewBrowserMatcher combines exact ids and patterns. Empty names and nil
// patterns are ignored.
func NewBrowserMatcher(names []string, patterns []*regexp.Regexp) BrowserMatcher {
	var m BrowserMatcher
	for _, n := range names {
		if n != "" {
			m.names = append(m.names, n)
		}
	}
	for _, p := range patterns {
		if p != nil {
			m.patterns = append(m.patterns, p)
		}
	}
	return m
}

// IsSet reports whether m holds at least one id or pattern.
func (m BrowserMatcher) IsSet() bool {
	return len(m.names) > 0 || len(m.patterns) > 0
}

// Names returns a copy of the exact ids.
func (m BrowserMatcher) Names() []string {
	if len(m.names) == 0 {
		return nil
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Patterns returns the source of each pattern.
func (m BrowserMatcher) Patterns() []string {
	if len(m.patterns) == 0 {
		return nil
	}
	out := make([]string, 0, len(m.patterns))
	for _, p := range m.patterns {
		out = append(out, p.String())
	}
	return out
}

// Matches reports whether browserID is selected. Patterns are unanchored.
func (m BrowserMatcher) Matches(browserID string) bool {
	for _, n := range m.names {
		if n == browserID {
			return true
		}
	}
	for _, p := range m.patterns {
		if p.MatchString(browserID) {
			return true
		}
	}
	return false
}

func (m BrowserMatcher) String() string {
	parts := m.Names()
	for _, p := range m.Patterns() {
		parts = append(parts, "/"+p+"/")
	}
	return strings.Join(parts, ", ")
}

func (m BrowserMatcher) clone() BrowserMatcher {
	return NewBrowserMatcher(m.names, m.patterns)
}

// SkipRule disables a suite for the matching browsers.
// An unset Browser matches every browser.
type SkipRule struct {
	Browser BrowserMatcher
	Reason  string
}

// Skip holds the skip rules declared on a suite. The zero value skips nothing.
type Skip struct {
	rules []SkipRule
}

// SkipAll returns Skip{} for false and a single match-all rule for true.
func SkipAll(skip bool) Skip {
	if !skip {
		return Skip{}
	}
	return Skip{rules: []SkipRule{{}}}
}

// SkipRules keeps the given rules in declared order.
func SkipRules(rules ...SkipRule) Skip {
	if len(rules) == 0 {
		return Skip{}
	}
	out := make([]SkipRule, len(rules))
	copy(out, rules)
	return Skip{rules: out}
}

// IsSet reports whether any rule was declared.
func (s Skip) IsSet() bool {
	return len(s.rules) > 0
}

// Rules returns the normalized rules: a rule without a browser matcher
// matches every browser.
func (s Skip) Rules() []SkipRule {
	if len(s.rules) == 0 {
		return nil
	}
	out := make([]SkipRule, 0, len(s.rules))
	for _, r := range s.rules {
		if !r.Browser.IsSet() {
			r.Browser = MatchAllBrowsers()
		} else {
			r.Browser = r.Browser.clone()
		}
		out = append(out, r)
	}
	return out
}

func (s Skip) clone() Skip {
	return SkipRules(s.rules...)
}
