package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownClassification is returned when a classification identifier is
// not in the supported set. It is surfaced before any embedding work starts.
var ErrUnknownClassification = errors.New("catalog: unknown classification")

// spec describes where a classification's reference list lives and whether
// its entries carry codes. Selection is a pure table lookup; no per-name
// branching exists anywhere else in the matching path.
type spec struct {
	file  string
	coded bool
}

var specs = map[string]spec{
	"IOCC":          {file: "data/iocc.json", coded: false},
	"NACE":          {file: "data/nace.json", coded: true},
	"NAICS":         {file: "data/naics.json", coded: true},
	"ISIC":          {file: "data/isic.json", coded: true},
	"CPC":           {file: "data/cpc.json", coded: true},
	"HS":            {file: "data/hs.json", coded: true},
	"GTAP":          {file: "data/gtap.json", coded: true},
	"exiobase":      {file: "data/exiobase.json", coded: false},
	"ecoinvent":     {file: "data/ecoinvent.json", coded: false},
	"IMPACT World+": {file: "data/iw.json", coded: false},
}

// aliases maps alternative spellings used in the LCA literature to
// canonical identifiers.
var aliases = map[string]string{
	"openIO-Canada":     "IOCC",
	"openIO":            "IOCC",
	"NACE rev.2":        "NACE",
	"NAICS 2017":        "NAICS",
	"ISIC rev.4":        "ISIC",
	"EXIOBASE":          "exiobase",
	"Exiobase":          "exiobase",
	"ecoinvent flows":   "ecoinvent",
	"IW+":               "IMPACT World+",
	"IMPACT World+ 2.0": "IMPACT World+",
	"Harmonized System": "HS",
}

// resolve maps an identifier (canonical or alias) to its canonical name and
// spec.
func resolve(name string) (string, spec, error) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	s, ok := specs[name]
	if !ok {
		return "", spec{}, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownClassification, name, Names())
	}
	return name, s, nil
}

// Names returns the canonical classification identifiers, sorted.
func Names() []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
