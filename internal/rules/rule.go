package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Dimension names one label field.
type Dimension string

const (
	DimRequestType Dimension = "request_type"
	DimUrgency     Dimension = "urgency"
	DimThreadState Dimension = "thread_state"
	DimScheduling  Dimension = "scheduling"
	DimAttachments Dimension = "attachments"
	DimTone        Dimension = "tone"
)

// Dimensions lists every dimension in output order.
var Dimensions = []Dimension{
	DimRequestType,
	DimUrgency,
	DimThreadState,
	DimScheduling,
	DimAttachments,
	DimTone,
}

// Language tags a pattern set.
type Language string

const (
	English    Language = "en"
	Vietnamese Language = "vi"
)

// Languages are tried in this order within a rank.
var Languages = []Language{English, Vietnamese}

// RuleSpec is an uncompiled rule. Value must be an outcome that owns a rank
// in the Dimension's table; the rule is tried after the built-in rules of
// that rank. Matches of Except are blanked out of the text before Pattern is
// tested, which is how negations such as "not urgent" are kept from firing.
type RuleSpec struct {
	Dimension Dimension
	Lang      Language
	Value     string
	Pattern   string
	Except    string
}

// patterns is the per-language half of an outcome.
type patterns struct {
	match  []string
	except []string
}

// outcome is one rank of a built-in table.
type outcome struct {
	value string
	en    patterns
	vi    patterns
}

type rule struct {
	lang   Language
	value  string
	source string
	re     *regexp.Regexp
	except *regexp.Regexp
	custom bool
}

// find reports the first span of folded text matched by the rule.
func (r *rule) find(folded string) (string, bool) {
	s := folded
	if r.except != nil {
		s = r.except.ReplaceAllString(s, " ")
	}
	loc := r.re.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[0]:loc[1]], true
}

// text is one folded input to a table, labelled with where it came from.
type text struct {
	source string
	folded string
}

// table is an ordered list of ranks; ranks[i] holds every rule emitting values[i].
type table struct {
	dim    Dimension
	values []string
	ranks  [][]rule
}

func compilePattern(src string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + stripMarks(src))
}

func compileExcept(sources []string) (*regexp.Regexp, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	parts := make([]string, len(sources))
	for i, src := range sources {
		parts[i] = "(?:" + src + ")"
	}
	return compilePattern(strings.Join(parts, "|"))
}

func newTable(dim Dimension, outcomes []outcome) (*table, error) {
	t := &table{dim: dim}
	for _, oc := range outcomes {
		var ranked []rule
		for _, lang := range Languages {
			set := oc.en
			if lang == Vietnamese {
				set = oc.vi
			}
			except, err := compileExcept(set.except)
			if err != nil {
				return nil, fmt.Errorf("rules: %s %s %s except: %w", dim, oc.value, lang, err)
			}
			for _, src := range set.match {
				re, err := compilePattern(src)
				if err != nil {
					return nil, fmt.Errorf("rules: %s %s %s: %w", dim, oc.value, lang, err)
				}
				ranked = append(ranked, rule{lang: lang, value: oc.value, source: src, re: re, except: except})
			}
		}
		t.values = append(t.values, oc.value)
		t.ranks = append(t.ranks, ranked)
	}
	return t, nil
}

func (t *table) rankOf(value string) (int, bool) {
	for i, v := range t.values {
		if v == value {
			return i, true
		}
	}
	return 0, false
}

// add appends an operator rule to the rank of its value.
func (t *table) add(spec RuleSpec) error {
	rank, ok := t.rankOf(spec.Value)
	if !ok {
		return fmt.Errorf("rules: %s has no rank for value %q (allowed: %s)", t.dim, spec.Value, strings.Join(t.values, ", "))
	}
	if spec.Lang != English && spec.Lang != Vietnamese {
		return fmt.Errorf("rules: unknown language %q", spec.Lang)
	}
	if strings.TrimSpace(spec.Pattern) == "" {
		return fmt.Errorf("rules: %s %s: empty pattern", t.dim, spec.Value)
	}
	re, err := compilePattern(spec.Pattern)
	if err != nil {
		return fmt.Errorf("rules: %s %s %s: %w", t.dim, spec.Value, spec.Lang, err)
	}
	var except []string
	if spec.Except != "" {
		except = []string{spec.Except}
	}
	exceptRe, err := compileExcept(except)
	if err != nil {
		return fmt.Errorf("rules: %s %s %s except: %w", t.dim, spec.Value, spec.Lang, err)
	}
	t.ranks[rank] = append(t.ranks[rank], rule{
		lang:   spec.Lang,
		value:  spec.Value,
		source: spec.Pattern,
		re:     re,
		except: exceptRe,
		custom: true,
	})
	return nil
}

// first walks ranks in precedence order and, within a rank, texts in the
// order given. The first rule to match wins.
func (t *table) first(texts []text) (Match, bool) {
	for rank, rules := range t.ranks {
		if m, ok := t.matchRank(rank, rules, texts); ok {
			return m, true
		}
	}
	return Match{}, false
}

// at tests a single rank; used where a dimension reports every outcome.
func (t *table) at(value string, texts []text) (Match, bool) {
	rank, ok := t.rankOf(value)
	if !ok {
		return Match{}, false
	}
	return t.matchRank(rank, t.ranks[rank], texts)
}

func (t *table) matchRank(rank int, rules []rule, texts []text) (Match, bool) {
	for _, txt := range texts {
		for i := range rules {
			r := &rules[i]
			if span, ok := r.find(txt.folded); ok {
				return Match{
					Value:   r.value,
					Rank:    rank,
					Lang:    r.lang,
					Pattern: r.source,
					Matched: strings.TrimSpace(span),
					Source:  txt.source,
					Custom:  r.custom,
				}, true
			}
		}
	}
	return Match{}, false
}

// fallback is the Match recorded when no rule fired.
func (t *table) fallback(value string) Match {
	return Match{Value: value, Rank: len(t.values), Source: SourceDefault}
}
