package matcher

import (
	"fmt"
	"strings"

	"atelier/internal/model"
	"atelier/internal/parser"
)

// Candidate is one already-resolved entity the matcher can link against.
type Candidate struct {
	ID          string
	PlainName   string
	CompanyName string
	Firstname   string
	Lastname    string
}

// Result is the outcome of one match attempt, tagged with the strategy that
// produced it for auditability.
type Result struct {
	EntityID string
	Strategy model.MatchStrategy
	Reason   string
}

// Matcher is a state-free multi-stage name matcher. Stages run in strict
// priority order and stop at the first hit; it links, it never creates.
type Matcher struct{}

// New creates a matcher.
func New() *Matcher {
	return &Matcher{}
}

// Match resolves a free-text query (folder name, SST cell) against candidates.
// Stages: exact plain name, partial plain name, company name, first+last
// concatenation, then the exact/partial pair again with inverted tokens, with
// a trailing numeric suffix stripped, and with only the first "/" segment.
func (m *Matcher) Match(query string, candidates []Candidate) Result {
	query = parser.CleanString(query)
	if query == "" || len(candidates) == 0 {
		return Result{Strategy: model.StrategyNone}
	}

	normalized := parser.NormalizeKey(query)

	if r, ok := m.exactOrPartial(normalized, candidates, ""); ok {
		return r
	}

	if r, ok := m.byCompanyName(normalized, candidates); ok {
		return r
	}
	if r, ok := m.byFullName(normalized, candidates); ok {
		return r
	}

	// "Firstname LASTNAME" folders vs canonical "LASTNAME Firstname"
	if inverted := invertTokens(normalized); inverted != "" && inverted != normalized {
		if r, ok := m.exactOrPartial(inverted, candidates, "inverted"); ok {
			r.Strategy = model.StrategyInverted
			return r
		}
	}

	// trailing department digits on the query itself
	if stripped := parser.NormalizeKey(parser.StripTrailingDepartment(query)); stripped != "" && stripped != normalized {
		if r, ok := m.exactOrPartial(stripped, candidates, "digits stripped"); ok {
			r.Strategy = model.StrategyDigitsStripped
			return r
		}
		if inverted := invertTokens(stripped); inverted != "" && inverted != stripped {
			if r, ok := m.exactOrPartial(inverted, candidates, "inverted, digits stripped"); ok {
				r.Strategy = model.StrategyDigitsStripped
				return r
			}
		}
	}

	// composite "A / B" names: retry with the first segment only
	if idx := strings.IndexByte(query, '/'); idx >= 0 {
		firstSegment := parser.NormalizeKey(query[:idx])
		if firstSegment != "" && firstSegment != normalized {
			if r, ok := m.exactOrPartial(firstSegment, candidates, "first segment of composite"); ok {
				r.Strategy = model.StrategyComposite
				return r
			}
		}
	}

	return Result{Strategy: model.StrategyNone, Reason: "no stage matched"}
}

// minPartialQueryLen keeps the containment stage away from very short
// queries: a 2-3 character fragment (initials, a department number) is a
// substring of too many plain names to be a trustworthy link.
const minPartialQueryLen = 4

// exactOrPartial runs the two base stages against the cleaned plain names.
// Exact equality always applies; containment additionally requires the query
// to be at least minPartialQueryLen bytes.
func (m *Matcher) exactOrPartial(query string, candidates []Candidate, variant string) (Result, bool) {
	for _, c := range candidates {
		if plainKey(c) == query {
			return Result{
				EntityID: c.ID,
				Strategy: model.StrategyExactPlain,
				Reason:   reason("exact plain name", variant, c.PlainName),
			}, true
		}
	}
	for _, c := range candidates {
		key := plainKey(c)
		if key == "" || len(query) < minPartialQueryLen {
			continue
		}
		if strings.Contains(key, query) || strings.Contains(query, key) {
			return Result{
				EntityID: c.ID,
				Strategy: model.StrategyPartialPlain,
				Reason:   reason("partial plain name", variant, c.PlainName),
			}, true
		}
	}
	return Result{}, false
}

func (m *Matcher) byCompanyName(query string, candidates []Candidate) (Result, bool) {
	for _, c := range candidates {
		key := parser.NormalizeKey(c.CompanyName)
		if key != "" && key == query {
			return Result{
				EntityID: c.ID,
				Strategy: model.StrategyCompanyName,
				Reason:   reason("company name", "", c.CompanyName),
			}, true
		}
	}
	return Result{}, false
}

func (m *Matcher) byFullName(query string, candidates []Candidate) (Result, bool) {
	for _, c := range candidates {
		full := parser.NormalizeKey(c.Firstname + " " + c.Lastname)
		if full == "" || full == " " {
			continue
		}
		if full == query || parser.NormalizeKey(c.Lastname+" "+c.Firstname) == query {
			return Result{
				EntityID: c.ID,
				Strategy: model.StrategyFullName,
				Reason:   reason("first+last name", "", c.Firstname+" "+c.Lastname),
			}, true
		}
	}
	return Result{}, false
}

// plainKey is the candidate's matching key: plain name with a trailing
// department suffix stripped, in normalized form.
func plainKey(c Candidate) string {
	return parser.NormalizeKey(parser.StripTrailingDepartment(c.PlainName))
}

// invertTokens swaps a two-token name; longer queries are left alone.
func invertTokens(normalized string) string {
	tokens := strings.Fields(normalized)
	if len(tokens) != 2 {
		return ""
	}
	return tokens[1] + " " + tokens[0]
}

func reason(stage, variant, matched string) string {
	if variant != "" {
		return fmt.Sprintf("%s (%s) ~ %q", stage, variant, matched)
	}
	return fmt.Sprintf("%s ~ %q", stage, matched)
}
