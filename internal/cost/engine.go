package cost

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"atelier/internal/model"
	"atelier/internal/parser"
)

var (
	urlRe  = regexp.MustCompile(`https?://\S+`)
	direRe = regexp.MustCompile(`(?i)\s*dire\b.*$`)
)

// Engine parses cost columns and derives the intervention margin. The margin
// bounds are a data-quality gate: individually valid costs whose derived
// margin is implausible keep their values but lose the margin.
type Engine struct {
	norm         *parser.Normalizer
	marginPctMin decimal.Decimal
	marginPctMax decimal.Decimal
	log          *zerolog.Logger
}

// NewEngine creates a cost engine with the given margin percent bounds.
func NewEngine(norm *parser.Normalizer, marginPctMin, marginPctMax float64, log *zerolog.Logger) *Engine {
	return &Engine{
		norm:         norm,
		marginPctMin: decimal.NewFromFloat(marginPctMin),
		marginPctMax: decimal.NewFromFloat(marginPctMax),
		log:          log,
	}
}

// IsValidCostValue reports whether a raw cell can carry a cost. URLs pass
// unconditionally; otherwise the value must start with a digit and, after
// dropping a "dire ..." suffix and all slashes, contain no letter.
func IsValidCostValue(v string) bool {
	v = parser.CleanString(v)
	if v == "" {
		return false
	}
	if urlRe.MatchString(v) {
		return true
	}
	if v[0] < '0' || v[0] > '9' {
		return false
	}
	check := direRe.ReplaceAllString(v, "")
	check = strings.ReplaceAll(check, "/", "")
	for _, r := range check {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// MaterialCost is the parsed material column: an amount, a supplier URL,
// or both.
type MaterialCost struct {
	Amount *float64
	URL    string
}

// ParseMaterialCost parses the material column, which can hold a bare URL,
// an "<amount> <url>" composite, or a plain amount.
func (e *Engine) ParseMaterialCost(v string) MaterialCost {
	v = parser.CleanString(v)
	if v == "" {
		return MaterialCost{}
	}

	url := urlRe.FindString(v)
	if url != "" {
		rest := strings.TrimSpace(strings.Replace(v, url, "", 1))
		if rest == "" {
			zero := 0.0
			return MaterialCost{Amount: &zero, URL: url}
		}
		return MaterialCost{Amount: e.norm.ParseNumber(rest), URL: url}
	}
	return MaterialCost{Amount: e.norm.ParseNumber(v)}
}

// ComputeCosts turns the three raw cost columns into a CostBreakdown,
// deriving the margin when the intervention amount is positive. A margin
// whose percentage of the intervention falls outside the configured bounds is
// discarded and logged with the full arithmetic trail.
func (e *Engine) ComputeCosts(rawSubcontractor, rawMaterial, rawIntervention string) model.CostBreakdown {
	out := model.CostBreakdown{}

	if IsValidCostValue(rawSubcontractor) {
		out.Subcontractor = e.norm.ParseNumber(rawSubcontractor)
	}
	if IsValidCostValue(rawMaterial) {
		mat := e.ParseMaterialCost(rawMaterial)
		out.Material = mat.Amount
		out.MaterialURL = mat.URL
	}
	if IsValidCostValue(rawIntervention) {
		out.Intervention = e.norm.ParseNumber(rawIntervention)
	}

	if out.Intervention == nil || *out.Intervention <= 0 {
		return out
	}

	intervention := decimal.NewFromFloat(*out.Intervention)
	sst := decimal.Zero
	if out.Subcontractor != nil {
		sst = decimal.NewFromFloat(*out.Subcontractor)
	}
	material := decimal.Zero
	if out.Material != nil {
		material = decimal.NewFromFloat(*out.Material)
	}

	margin := intervention.Sub(sst).Sub(material)
	marginPct := margin.Div(intervention).Mul(decimal.NewFromInt(100))

	if marginPct.LessThan(e.marginPctMin) || marginPct.GreaterThan(e.marginPctMax) {
		if e.log != nil {
			e.log.Warn().
				Str("intervention", intervention.String()).
				Str("subcontractor", sst.String()).
				Str("material", material.String()).
				Str("margin", margin.String()).
				Str("margin_pct", marginPct.StringFixed(2)).
				Str("derivation", parser.FormatDerivation(
					*out.Intervention, sst.InexactFloat64(), material.InexactFloat64(), margin.InexactFloat64())).
				Msg("implausible margin discarded")
		}
		return out
	}

	if margin.IsNegative() && e.log != nil {
		e.log.Debug().
			Str("margin", margin.String()).
			Str("margin_pct", marginPct.StringFixed(2)).
			Msg("negative margin kept")
	}

	m := margin.InexactFloat64()
	out.Margin = &m
	return out
}

// CostRows flattens a breakdown into tagged cost rows for bulk insertion.
func CostRows(interventionID string, b model.CostBreakdown) []model.CostRow {
	var rows []model.CostRow
	if b.Subcontractor != nil {
		rows = append(rows, model.CostRow{InterventionID: interventionID, CostType: model.CostTypeSST, Amount: *b.Subcontractor})
	}
	if b.Material != nil {
		rows = append(rows, model.CostRow{InterventionID: interventionID, CostType: model.CostTypeMaterial, Amount: *b.Material, URL: b.MaterialURL})
	}
	if b.Intervention != nil {
		rows = append(rows, model.CostRow{InterventionID: interventionID, CostType: model.CostTypeIntervention, Amount: *b.Intervention})
	}
	if b.Margin != nil {
		rows = append(rows, model.CostRow{InterventionID: interventionID, CostType: model.CostTypeMargin, Amount: *b.Margin})
	}
	return rows
}
