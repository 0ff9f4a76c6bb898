package gff

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatLine renders a canonical nine-column line. Source, score and phase
// are written as '.', and the attribute column is exactly id.
func FormatLine(contig, typ string, start, end int, strand byte, id string) string {
	var b strings.Builder
	b.Grow(len(contig) + len(typ) + len(id) + 32)
	b.WriteString(contig)
	b.WriteString("\t.\t")
	b.WriteString(typ)
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(start))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(end))
	b.WriteString("\t.\t")
	b.WriteByte(strand)
	b.WriteString("\t.\t")
	b.WriteString(id)
	return b.String()
}

// Rewrite renders f as a canonical line carrying id as its only attribute.
func (f *Feature) Rewrite(id string) string {
	return FormatLine(f.Contig, f.Type, f.Start, f.End, f.Strand, id)
}

// WriteLines writes one line per entry.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return err
		}
	}
	return bw.Flush()
}
