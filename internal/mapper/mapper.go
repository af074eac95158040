package mapper

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"atelier/internal/cost"
	"atelier/internal/matcher"
	"atelier/internal/model"
	"atelier/internal/parser"
	"atelier/internal/resolver"
)

// RowMapper orchestrates the normalizers, the cost engine and the resolver to
// turn one raw row into one canonical record set.
type RowMapper struct {
	norm     *parser.Normalizer
	names    parser.NameHeuristic
	costs    *cost.Engine
	resolver *resolver.Resolver
	matcher  *matcher.Matcher
	log      *zerolog.Logger
}

// New creates a row mapper around one run-scoped resolver.
func New(norm *parser.Normalizer, names parser.NameHeuristic, costs *cost.Engine, res *resolver.Resolver, log *zerolog.Logger) *RowMapper {
	return &RowMapper{
		norm:     norm,
		names:    names,
		costs:    costs,
		resolver: res,
		matcher:  matcher.New(),
		log:      log,
	}
}

// newID mints a record identifier.
func newID() string {
	return uuid.NewString()
}

// personName extracts a name pair through the case heuristics and corrects
// evident transpositions.
func (m *RowMapper) personName(full string) (firstname, lastname string) {
	n := parser.ParsePersonName(full)
	firstname, lastname = n.Firstname, n.Lastname
	if m.names != nil && m.names.ShouldInvert(firstname, lastname) {
		firstname, lastname = lastname, firstname
	}
	return firstname, lastname
}

// contactInfo parses a mixed name/phone/email block, or nil when empty.
func contactInfo(raw string) *model.ContactInfo {
	raw = parser.CleanString(raw)
	if raw == "" {
		return nil
	}
	info := &model.ContactInfo{
		Name:   parser.ParsePersonName(raw),
		Phones: parser.ExtractPhones(raw),
		Email:  parser.ExtractEmail(raw),
	}
	if info.Name.Firstname == "" && info.Name.Lastname == "" &&
		len(info.Phones) == 0 && info.Email == "" {
		return nil
	}
	return info
}

// resolve is a logging shortcut around the resolver.
func (m *RowMapper) resolve(ctx context.Context, kind model.ReferenceKind, raw string) string {
	return m.resolver.Resolve(ctx, kind, raw)
}
