package resolver

import "atelier/internal/model"

// Alias rewrites one known raw spelling to its canonical reference name, or
// marks the value as to be ignored entirely (placeholder text that must not
// create a reference entity).
type Alias struct {
	Name   string
	Ignore bool
}

var ignore = Alias{Ignore: true}

// aliasTables holds the curated per-kind normalization maps. Keys are in
// parser.NormalizeKey form. Raw names absent from the table resolve as
// themselves.
var aliasTables = map[model.ReferenceKind]map[string]Alias{
	model.KindAgency: {
		"idf":           {Name: "Île-de-France"},
		"ile de france": {Name: "Île-de-France"},
		"paca":          {Name: "Provence-Alpes-Côte d'Azur"},
		"ra":            {Name: "Rhône-Alpes"},
		"rhone alpes":   {Name: "Rhône-Alpes"},
		"n/a":           ignore,
		"aucune":        ignore,
		"?":             ignore,
	},
	model.KindManager: {
		"non attribue": ignore,
		"a definir":    ignore,
		"?":            ignore,
	},
	model.KindTrade: {
		"plomberie chauffage": {Name: "Plomberie"},
		"plombier":            {Name: "Plomberie"},
		"elec":                {Name: "Électricité"},
		"electricite":         {Name: "Électricité"},
		"electricien":         {Name: "Électricité"},
		"menuiserie bois":     {Name: "Menuiserie"},
		"menuisier":           {Name: "Menuiserie"},
		"serrurier":           {Name: "Serrurerie"},
		"peintre":             {Name: "Peinture"},
		"multi services":      {Name: "Multiservice"},
		"multiservices":       {Name: "Multiservice"},
		"divers":              ignore,
		"autre":               ignore,
	},
	model.KindZone: {
		"toute france":  {Name: "France entière"},
		"france":        {Name: "France entière"},
		"national":      {Name: "France entière"},
		"rp":            {Name: "Région parisienne"},
		"region paris.": {Name: "Région parisienne"},
		"?":             ignore,
	},
	model.KindArtisanStatus: {
		"ok":              {Name: "Actif"},
		"actif ok":        {Name: "Actif"},
		"blackliste":      {Name: "Blacklisté"},
		"black liste":     {Name: "Blacklisté"},
		"ne plus appeler": {Name: "Blacklisté"},
		"en cours":        {Name: "En cours d'intégration"},
		"?":               ignore,
	},
	model.KindInterventionStatus: {
		"termine":    {Name: "Terminée"},
		"terminee":   {Name: "Terminée"},
		"fini":       {Name: "Terminée"},
		"annule":     {Name: "Annulée"},
		"annulee":    {Name: "Annulée"},
		"en attente": {Name: "En attente"},
		"attente":    {Name: "En attente"},
		"en cours":   {Name: "En cours"},
		"?":          ignore,
	},
}

// lookupAlias returns the curated alias for a normalized raw name, if any.
func lookupAlias(kind model.ReferenceKind, normalized string) (Alias, bool) {
	table, ok := aliasTables[kind]
	if !ok {
		return Alias{}, false
	}
	alias, ok := table[normalized]
	return alias, ok
}
