// Package rule implements pattern-based window classification: an
// ordered list of rules matched against a client's app id and title,
// first match wins. Grounded on original_source/src/client/rules.c.
package rule

import (
	"regexp"

	"github.com/swl-wm/swl/internal/swlerr"
)

const maxRules = 128

// Rule describes one classification entry. Patterns are extended
// regular expressions; ForcedMonitorIndex < 0 means "unset".
type Rule struct {
	AppIDPattern       string
	TitlePattern       string
	ForcedTags         uint32
	ForcedFloating     bool
	ForcedMonitorIndex int
}

// Subject is the subset of client attributes rules match against.
// AppID and Title are late-arriving and may be empty for unmapped
// clients; an empty string is treated the same as "absent" (null).
type Subject struct {
	AppID string
	Title string
}

type compiledRule struct {
	rule    Rule
	appIDRE *regexp.Regexp
	titleRE *regexp.Regexp
}

// Engine holds the ordered rule list.
type Engine struct {
	rules []compiledRule
}

func New() *Engine {
	return &Engine{rules: make([]compiledRule, 0, maxRules)}
}

// Add compiles and appends a rule. Regex compile failure does not
// reject the rule: the pattern is kept but treated as permanently
// non-matching for that field, mirroring regcomp failure handling in
// the C engine (has_app_id_regex / has_title_regex left false).
func (e *Engine) Add(r Rule) error {
	if len(e.rules) >= maxRules {
		return swlerr.New(swlerr.NoMem, "rule engine at capacity")
	}

	cr := compiledRule{rule: r}
	if r.AppIDPattern != "" {
		if re, err := regexp.Compile(r.AppIDPattern); err == nil {
			cr.appIDRE = re
		}
	}
	if r.TitlePattern != "" {
		if re, err := regexp.Compile(r.TitlePattern); err == nil {
			cr.titleRE = re
		}
	}

	e.rules = append(e.rules, cr)
	return nil
}

// Remove deletes the rule at index, preserving order.
func (e *Engine) Remove(index int) error {
	if index < 0 || index >= len(e.rules) {
		return swlerr.New(swlerr.InvalidArg, "rule index out of range")
	}
	e.rules = append(e.rules[:index], e.rules[index+1:]...)
	return nil
}

func (e *Engine) Clear() {
	e.rules = e.rules[:0]
}

func (e *Engine) Count() int {
	return len(e.rules)
}

func (e *Engine) Get(index int) (Rule, bool) {
	if index < 0 || index >= len(e.rules) {
		return Rule{}, false
	}
	return e.rules[index].rule, true
}

// Match is the outcome of applying the first matching rule.
type Match struct {
	Rule  Rule
	Index int
}

// Apply walks the rule list in insertion order and returns the first
// rule whose patterns all match subj. A non-null pattern field
// requires the corresponding subject attribute to be present and
// regex-matching; a present pattern against an absent attribute fails
// to match even though the inverse (no pattern at all) always passes.
func (e *Engine) Apply(subj Subject) (Match, bool) {
	for i, cr := range e.rules {
		if !attributeMatches(cr.appIDRE, cr.rule.AppIDPattern, subj.AppID) {
			continue
		}
		if !attributeMatches(cr.titleRE, cr.rule.TitlePattern, subj.Title) {
			continue
		}
		return Match{Rule: cr.rule, Index: i}, true
	}
	return Match{}, false
}

func attributeMatches(re *regexp.Regexp, pattern string, attr string) bool {
	if pattern == "" {
		return true
	}
	if attr == "" {
		return false
	}
	if re == nil {
		return false
	}
	return re.MatchString(attr)
}
