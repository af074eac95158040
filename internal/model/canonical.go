package model

// PersonName is the parsed form of a free-text name field.
//
// Single-token input yields Firstname set and Lastname empty: a bare label is
// never promoted to a surname. Callers must not re-interpret this convention.
type PersonName struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Address is the structured form of a free-text address field.
// PostalCode, when set, is exactly five digits.
type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

// Department returns the French department code derived from the postal code,
// or "" when no postal code was extracted. Overseas codes ("97x") keep three digits.
func (a Address) Department() string {
	if len(a.PostalCode) != 5 {
		return ""
	}
	if a.PostalCode[:2] == "97" {
		return a.PostalCode[:3]
	}
	return a.PostalCode[:2]
}

// ContactInfo is the parsed tenant/owner block of an intervention row:
// name, phones and email mixed in a single cell.
type ContactInfo struct {
	Name   PersonName `json:"name"`
	Phones []string   `json:"phones"`
	Email  string     `json:"email"`
}

// CostBreakdown carries the financial sub-record of one intervention.
// Nil pointers mean "absent from the source", not zero.
type CostBreakdown struct {
	Subcontractor *float64 `json:"subcontractor"`
	Material      *float64 `json:"material"`
	MaterialURL   string   `json:"materialUrl"`
	Intervention  *float64 `json:"intervention"`
	Margin        *float64 `json:"margin"`
}

// CostType tags one flattened cost row.
type CostType string

const (
	CostTypeSST          CostType = "sst"
	CostTypeMaterial     CostType = "materiel"
	CostTypeIntervention CostType = "intervention"
	CostTypeMargin       CostType = "marge"
)

// CostRow is one flattened cost entry attached to an intervention.
type CostRow struct {
	InterventionID string   `json:"interventionId"`
	CostType       CostType `json:"costType"`
	Amount         float64  `json:"amount"`
	URL            string   `json:"url,omitempty"`
}

// CanonicalArtisan is the fully typed output record for one artisan row.
type CanonicalArtisan struct {
	ID          string `json:"id"`
	RowNo       int    `json:"rowNo"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	CompanyName string `json:"companyName"`
	// PlainName is the denormalized free-text name kept as the folder matching key.
	PlainName  string  `json:"plainName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	PhoneAlt   string  `json:"phoneAlt"`
	SIRET      string  `json:"siret"`
	Address    Address `json:"address"`
	Department string  `json:"department"`

	AgencyID  string   `json:"agencyId"`
	ManagerID string   `json:"managerId"`
	StatusID  string   `json:"statusId"`
	ZoneID    string   `json:"zoneId"`
	TradeIDs  []string `json:"tradeIds"`

	SourceSheet string `json:"sourceSheet"`
	SourceFile  string `json:"sourceFile"`
}

// CanonicalIntervention is the fully typed output record for one intervention row.
type CanonicalIntervention struct {
	ID        string `json:"id"`
	RowNo     int    `json:"rowNo"`
	Reference string `json:"reference"`

	Address     Address `json:"address"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // ISO 8601 or ""

	AgencyID     string `json:"agencyId"`
	ManagerID    string `json:"managerId"`
	StatusID     string `json:"statusId"`
	TradeID      string `json:"tradeId"`
	SSTArtisanID string `json:"sstArtisanId"`
	ClientID     string `json:"clientId"`

	Tenant *ContactInfo   `json:"tenant"`
	Owner  *ContactInfo   `json:"owner"`
	Costs  *CostBreakdown `json:"costs"`

	SourceSheet string `json:"sourceSheet"`
	SourceFile  string `json:"sourceFile"`
}

// CanonicalClient is the client record derived from an intervention row.
type CanonicalClient struct {
	ID        string     `json:"id"`
	Name      PersonName `json:"name"`
	Phones    []string   `json:"phones"`
	Email     string     `json:"email"`
	SourceRow int        `json:"sourceRow"`
}

// MappedRow is the full record set produced from one input row.
type MappedRow struct {
	Artisan      *CanonicalArtisan      `json:"artisan,omitempty"`
	Intervention *CanonicalIntervention `json:"intervention,omitempty"`
	Client       *CanonicalClient       `json:"client,omitempty"`
	CostRows     []CostRow              `json:"costRows,omitempty"`
}
