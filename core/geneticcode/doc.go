// Package geneticcode holds the NCBI translation tables used to turn coding
// sequence into peptide.
//
// The standard table is the only literal table. Every other code (2, 3, 4, 5,
// 6, 9, 10, 11 and 12) is declared as the handful of codons it reassigns, so a
// variant can never drift from the standard table anywhere else.
//
//	t := geneticcode.Lookup(11)
//	pep, partial := t.Translate([]byte("ATGTGA"))
//	// pep == "MW", partial == false
package geneticcode
