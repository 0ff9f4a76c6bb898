package geneticcode

import "bytes"

var complement = map[byte]byte{
	'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G',
}

// ReverseComplement returns the upper-case reverse complement of seq.
// Anything other than A, C, G or T complements to N.
func ReverseComplement(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		if c, ok := complement[b]; ok {
			out[i] = c
		} else {
			out[i] = 'N'
		}
	}
	return out
}

// Translate converts a nucleotide sequence to peptide, reading whole codons
// from the first base. A trailing partial codon is dropped and reported
// through partial.
func (t Table) Translate(nt []byte) (pep []byte, partial bool) {
	nt = bytes.ToUpper(nt)
	pep = make([]byte, 0, len(nt)/3)
	for i := 0; i+3 <= len(nt); i += 3 {
		pep = append(pep, t.Codon(string(nt[i:i+3])))
	}
	return pep, len(nt)%3 != 0
}
