package parser

import (
	"regexp"
	"strings"

	"atelier/internal/model"
)

var (
	postalCodeRe = regexp.MustCompile(`\b(\d{5})\b`)
	departmentRe = regexp.MustCompile(`^(0[1-9]|[1-9][0-9]|9[7-8][0-9])$`)
	// trailing 2-3 digit department suffix on a name field, e.g. "ABBAS Virginie 34"
	nameDeptRe = regexp.MustCompile(`\s(\d{2,3})\s*$`)
	// trailing run of uppercase letters, used as a city fallback
	upperCityRe     = regexp.MustCompile(`([A-ZÀ-ÖØ-Þ][A-ZÀ-ÖØ-Þ'\- ]{2,})\s*$`)
	trailingSlashRe = regexp.MustCompile(`\s/[^/]*$`)
	trailingColonRe = regexp.MustCompile(`\s*:[^:]*$`)
)

// ExtractAddress extracts street, postal code and city from a noisy address
// string, stripping embedded comments. The three sub-extractions are
// independently best-effort: a missing postal code blocks nothing.
func ExtractAddress(full string) model.Address {
	s := CleanString(full)
	if s == "" {
		return model.Address{}
	}

	// inline comments: "// ...", a trailing "/ ...", a trailing ": ..."
	if idx := strings.Index(s, "//"); idx >= 0 {
		s = s[:idx]
	}
	s = trailingSlashRe.ReplaceAllString(s, "")
	s = trailingColonRe.ReplaceAllString(s, "")
	s = strings.Trim(s, ` "':`)

	addr := model.Address{}

	loc := postalCodeRe.FindStringIndex(s)
	if loc != nil {
		addr.PostalCode = s[loc[0]:loc[1]]
		addr.City = cleanCity(s[loc[1]:])
	}
	if addr.City == "" {
		if m := upperCityRe.FindStringSubmatch(s); m != nil {
			addr.City = cleanCity(m[1])
		}
	}
	if addr.City == "" {
		if idx := strings.LastIndexByte(s, ','); idx >= 0 {
			addr.City = cleanCity(s[idx+1:])
		}
	}

	addr.Street = removeAddressParts(s, addr.PostalCode, addr.City)
	return addr
}

// cleanCity trims separators and leftover digits around a city fragment.
func cleanCity(s string) string {
	s = strings.Trim(s, " ,;-–\"'")
	// a second postal code or stray digits after the city are noise
	if loc := postalCodeRe.FindStringIndex(s); loc != nil {
		s = strings.Trim(s[:loc[0]], " ,;-–\"'")
	}
	return strings.TrimSpace(s)
}

// removeAddressParts deletes the matched postal code and city from the string,
// case-insensitively, leaving the street.
func removeAddressParts(s, postalCode, city string) string {
	if postalCode != "" {
		s = strings.Replace(s, postalCode, "", 1)
	}
	if city != "" {
		lowered := strings.ToLower(s)
		target := strings.ToLower(city)
		if idx := strings.Index(lowered, target); idx >= 0 {
			s = s[:idx] + s[idx+len(target):]
		}
	}
	s = strings.Trim(s, " ,;-–\"':")
	return whitespaceRe.ReplaceAllString(s, " ")
}

// ExtractDepartment resolves a department code with a three-tier priority:
// explicit column, trailing suffix on the name field, postal code derivation.
// The first successful tier wins, tiers are never merged.
func ExtractDepartment(explicitColumn, nameField string, addr model.Address) string {
	if d := CleanString(explicitColumn); d != "" && departmentRe.MatchString(d) {
		return d
	}
	if m := nameDeptRe.FindStringSubmatch(CleanString(nameField)); m != nil && departmentRe.MatchString(m[1]) {
		return m[1]
	}
	return addr.Department()
}

// StripTrailingDepartment removes a trailing 2-3 digit department suffix from
// a name field, e.g. "ABBAS Virginie 34" → "ABBAS Virginie".
func StripTrailingDepartment(name string) string {
	return strings.TrimSpace(nameDeptRe.ReplaceAllString(CleanString(name), ""))
}
