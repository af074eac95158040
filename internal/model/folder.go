package model

// MatchStrategy identifies which fuzzy stage produced a folder match.
type MatchStrategy string

const (
	StrategyExactPlain     MatchStrategy = "exact_plain"
	StrategyPartialPlain   MatchStrategy = "partial_plain"
	StrategyCompanyName    MatchStrategy = "company_name"
	StrategyFullName       MatchStrategy = "full_name"
	StrategyInverted       MatchStrategy = "inverted"
	StrategyDigitsStripped MatchStrategy = "digits_stripped"
	StrategyComposite      MatchStrategy = "composite_first"
	StrategyNone           MatchStrategy = "none"
)

// DocumentKind classifies one file found inside a matched folder.
type DocumentKind string

const (
	DocAssurance  DocumentKind = "assurance"
	DocRIB        DocumentKind = "rib"
	DocKbis       DocumentKind = "kbis"
	DocContrat    DocumentKind = "contrat"
	DocDevis      DocumentKind = "devis"
	DocFacture    DocumentKind = "facture"
	DocPhoto      DocumentKind = "photo"
	DocToClassify DocumentKind = "to_classify"
)

// Document is one classified file of an external document folder.
type Document struct {
	FileName string       `json:"fileName"`
	Kind     DocumentKind `json:"kind"`
}

// FolderMatch links one external document folder to an artisan record.
// The matcher only ever links, it never creates entities.
type FolderMatch struct {
	FolderName       string        `json:"folderName"`
	MatchedEntityID  string        `json:"matchedEntityId"`
	Strategy         MatchStrategy `json:"matchStrategy"`
	ConfidenceReason string        `json:"confidenceReason"`
	Documents        []Document    `json:"documents,omitempty"`
}
