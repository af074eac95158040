package importer

import (
	"strings"

	"atelier/internal/model"
	"atelier/internal/parser"
)

// header keywords scoring each sheet type, in normalized column-name form
var (
	artisanKeys = []string{
		"siret", "metier", "societe", "zone", "statut", "email", "telephone",
	}
	interventionKeys = []string{
		"reference", "coutintervention", "coutsst", "coutmateriel",
		"locataire", "proprietaire", "sst", "dateintervention", "client",
	}
)

// RecognizeSheet classifies a sheet from its name and header row. A sheet
// scoring under 0.3 on both profiles stays unknown and is skipped.
func RecognizeSheet(sheetName string, headers []string) model.SheetRecognition {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = parser.NormalizeColumnName(h)
	}

	artisanScore := scoreKeywords(normalized, artisanKeys)
	interventionScore := scoreKeywords(normalized, interventionKeys)

	name := parser.NormalizeKey(sheetName)
	if strings.Contains(name, "artisan") || strings.Contains(name, "sst") {
		artisanScore += 0.2
	}
	if strings.Contains(name, "intervention") || strings.Contains(name, "chantier") {
		interventionScore += 0.2
	}

	result := model.SheetRecognition{SheetName: sheetName, SheetType: model.SheetTypeUnknown}
	switch {
	case interventionScore >= 0.3 && interventionScore >= artisanScore:
		result.SheetType = model.SheetTypeInterventions
		result.Confidence = interventionScore
	case artisanScore >= 0.3:
		result.SheetType = model.SheetTypeArtisans
		result.Confidence = artisanScore
	}
	return result
}

func scoreKeywords(normalizedHeaders, keywords []string) float64 {
	matched := 0
	for _, kw := range keywords {
		for _, h := range normalizedHeaders {
			if h != "" && strings.Contains(h, kw) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(keywords))
}
