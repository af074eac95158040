package parser

// Curated common-name lists backing FrenchNameHeuristic. Keys are in
// NormalizeKey form (lowercase, accents folded). Tuned against the source
// dataset, not meant to be exhaustive.

var commonFirstnames = map[string]bool{
	"jean": true, "pierre": true, "michel": true, "andre": true, "philippe": true,
	"rene": true, "louis": true, "alain": true, "jacques": true, "bernard": true,
	"marcel": true, "daniel": true, "roger": true, "robert": true, "paul": true,
	"claude": true, "christian": true, "henri": true, "georges": true, "nicolas": true,
	"francois": true, "patrick": true, "antoine": true, "julien": true, "thomas": true,
	"maxime": true, "alexandre": true, "vincent": true, "olivier": true, "sebastien": true,
	"laurent": true, "david": true, "stephane": true, "pascal": true, "eric": true,
	"frederic": true, "thierry": true, "bruno": true, "guillaume": true, "kevin": true,
	"marie": true, "jeanne": true, "marguerite": true, "francoise": true, "germaine": true,
	"louise": true, "yvonne": true, "madeleine": true, "suzanne": true, "helene": true,
	"catherine": true, "monique": true, "nathalie": true, "isabelle": true, "sylvie": true,
	"christine": true, "sophie": true, "celine": true, "virginie": true, "julie": true,
	"aurelie": true, "camille": true, "lea": true, "manon": true, "chloe": true,
	"sandrine": true, "valerie": true, "karine": true, "laetitia": true, "mohamed": true,
}

var commonLastnames = map[string]bool{
	"martin": true, "bernard": true, "thomas": true, "petit": true, "robert": true,
	"richard": true, "durand": true, "dubois": true, "moreau": true, "laurent": true,
	"simon": true, "michel": true, "lefebvre": true, "leroy": true, "roux": true,
	"david": true, "bertrand": true, "morel": true, "fournier": true, "girard": true,
	"bonnet": true, "dupont": true, "lambert": true, "fontaine": true, "rousseau": true,
	"vincent": true, "muller": true, "lefevre": true, "faure": true, "andre": true,
	"mercier": true, "blanc": true, "guerin": true, "boyer": true, "garnier": true,
	"chevalier": true, "francois": true, "legrand": true, "gauthier": true, "garcia": true,
	"perrin": true, "robin": true, "clement": true, "morin": true, "nicolas": true,
	"henry": true, "roussel": true, "mathieu": true, "gautier": true, "masson": true,
	"marchand": true, "duval": true, "denis": true, "dumont": true, "marie": true,
	"lemaire": true, "noel": true, "meyer": true, "dufour": true, "meunier": true,
	"brun": true, "blanchard": true, "giraud": true, "joly": true, "riviere": true,
}
