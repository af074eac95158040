package matcher

import (
	"path/filepath"
	"strings"

	"atelier/internal/model"
	"atelier/internal/parser"
)

// document kind keyword table, checked against the normalized file name
var documentKeywords = []struct {
	kind     model.DocumentKind
	keywords []string
}{
	{model.DocAssurance, []string{"assurance", "attestation", "decennale", "rc pro", "rcpro"}},
	{model.DocRIB, []string{"rib", "iban"}},
	{model.DocKbis, []string{"kbis", "k-bis", "extrait"}},
	{model.DocContrat, []string{"contrat", "convention"}},
	{model.DocDevis, []string{"devis"}},
	{model.DocFacture, []string{"facture", "fact "}},
}

var photoExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".heic": true, ".gif": true,
}

// ClassifyDocument assigns a document kind from the file name, falling back
// to to_classify when nothing matches.
func ClassifyDocument(fileName string) model.Document {
	normalized := parser.NormalizeKey(fileName)

	for _, entry := range documentKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(normalized, kw) {
				return model.Document{FileName: fileName, Kind: entry.kind}
			}
		}
	}

	if photoExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return model.Document{FileName: fileName, Kind: model.DocPhoto}
	}

	return model.Document{FileName: fileName, Kind: model.DocToClassify}
}

// ClassifyDocuments classifies a whole folder listing.
func ClassifyDocuments(fileNames []string) []model.Document {
	out := make([]model.Document, 0, len(fileNames))
	for _, name := range fileNames {
		out = append(out, ClassifyDocument(name))
	}
	return out
}
