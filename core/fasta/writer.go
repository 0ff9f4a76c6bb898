package fasta

import (
	"bufio"
	"io"
)

// WrapWidth is the line width of the repository-wide sequence file.
const WrapWidth = 60

// Write renders records in FASTA format. A width of zero or less writes each
// sequence on a single line.
func Write(w io.Writer, records []Record, width int) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if err := bw.WriteByte('>'); err != nil {
			return err
		}
		if _, err := bw.WriteString(r.Header()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		if err := writeSeq(bw, r.Seq, width); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeSeq(bw *bufio.Writer, seq []byte, width int) error {
	if width <= 0 {
		width = len(seq)
	}
	for start := 0; start < len(seq); start += width {
		end := start + width
		if end > len(seq) {
			end = len(seq)
		}
		if _, err := bw.Write(seq[start:end]); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}
