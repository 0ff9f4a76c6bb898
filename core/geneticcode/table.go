package geneticcode

import (
	"sort"
	"strings"
)

// Standard is the NCBI identifier of the standard genetic code.
const Standard = 1

// Table is an immutable codon to amino acid lookup.
type Table struct {
	// ID is the NCBI translation table number.
	ID int
	// Name is the NCBI table name.
	Name string

	codons map[string]byte
}

// variant describes a genetic code as a set of reassignments on the standard table.
type variant struct {
	name   string
	deltas map[string]byte
}

var base = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

var variants = map[int]variant{
	1: {name: "Standard", deltas: nil},
	2: {name: "Vertebrate Mitochondrial", deltas: map[string]byte{
		"AGA": '*', "AGG": '*', "ATA": 'M', "TGA": 'W',
	}},
	3: {name: "Yeast Mitochondrial", deltas: map[string]byte{
		"ATA": 'M', "CTT": 'T', "CTC": 'T', "CTA": 'T', "CTG": 'T', "TGA": 'W',
	}},
	4: {name: "Mold, Protozoan, and Coelenterate Mitochondrial and Mycoplasma/Spiroplasma", deltas: map[string]byte{
		"TGA": 'W',
	}},
	5: {name: "Invertebrate Mitochondrial", deltas: map[string]byte{
		"AGA": 'S', "AGG": 'S', "ATA": 'M', "TGA": 'W',
	}},
	6: {name: "Ciliate, Dasycladacean and Hexamita Nuclear", deltas: map[string]byte{
		"TAA": 'Q', "TAG": 'Q',
	}},
	9: {name: "Echinoderm and Flatworm Mitochondrial", deltas: map[string]byte{
		"AAA": 'N', "AGA": 'S', "AGG": 'S', "TGA": 'W',
	}},
	10: {name: "Euplotid Nuclear", deltas: map[string]byte{
		"TGA": 'C',
	}},
	11: {name: "Bacterial, Archaeal and Plant Plastid", deltas: map[string]byte{
		"TGA": 'W',
	}},
	12: {name: "Alternative Yeast Nuclear", deltas: map[string]byte{
		"CTG": 'S',
	}},
}

// tables is built once from base + deltas.
var tables = func() map[int]Table {
	out := make(map[int]Table, len(variants))
	for id, v := range variants {
		codons := make(map[string]byte, len(base))
		for c, aa := range base {
			codons[c] = aa
		}
		for c, aa := range v.deltas {
			codons[c] = aa
		}
		out[id] = Table{ID: id, Name: v.name, codons: codons}
	}
	return out
}()

// Lookup returns the table for the given NCBI id.
// Unknown ids fall back to the standard table.
func Lookup(id int) Table {
	if t, ok := tables[id]; ok {
		return t
	}
	return tables[Standard]
}

// Known reports whether id names one of the supported tables.
func Known(id int) bool {
	_, ok := tables[id]
	return ok
}

// IDs returns the supported table ids in ascending order.
func IDs() []int {
	ids := make([]int, 0, len(tables))
	for id := range tables {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Codon translates a single codon. Codons containing anything other than
// A, C, G or T translate to 'X'.
func (t Table) Codon(codon string) byte {
	if aa, ok := t.codons[strings.ToUpper(codon)]; ok {
		return aa
	}
	return 'X'
}

// Deltas returns the codons whose translation differs from the standard table.
func (t Table) Deltas() map[string]byte {
	out := make(map[string]byte)
	for c, aa := range t.codons {
		if base[c] != aa {
			out[c] = aa
		}
	}
	return out
}
