package fasta

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// ErrOrphanSequence is returned when sequence data precedes the first header.
var ErrOrphanSequence = errors.New("sequence data before first header")

// Record is one sequence entry. ID is the header up to the first space and
// Desc is everything after it.
type Record struct {
	ID   string
	Desc string
	Seq  []byte
}

// Header renders the record header without the leading '>'.
func (r Record) Header() string {
	if r.Desc == "" {
		return r.ID
	}
	return r.ID + " " + r.Desc
}

// Rename returns a copy of r carrying id. The description and sequence are shared.
func (r Record) Rename(id string) Record {
	r.ID = id
	return r
}

// Read parses every record from r.
func Read(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)
	if err := leading(br); err != nil {
		return nil, err
	}

	var records []Record
	sc := seqio.NewScanner(biofasta.NewReader(br, linear.NewSeq("", nil, alphabet.Protein)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		seq := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			seq[i] = byte(l)
		}
		records = append(records, Record{
			ID:   s.Name(),
			Desc: strings.TrimSpace(s.Description()),
			Seq:  seq,
		})
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

// leading skips blank lines and fails when anything other than a header
// comes first.
func leading(br *bufio.Reader) error {
	lineNo := 1
	for {
		b, err := br.Peek(1)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch b[0] {
		case '>':
			return nil
		case '\n':
			lineNo++
			fallthrough
		case ' ', '\t', '\r':
			_, _ = br.ReadByte()
		default:
			return fmt.Errorf("line %d: %w", lineNo, ErrOrphanSequence)
		}
	}
}

// ReadFile reads a FASTA file, decompressing it when the name ends in .gz.
func ReadFile(path string) ([]Record, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}

// ReadContigs loads a genome assembly keyed by contig id. A repeated contig id
// keeps its first sequence.
func ReadContigs(path string) (map[string][]byte, error) {
	records, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	contigs := make(map[string][]byte, len(records))
	for _, r := range records {
		if _, dup := contigs[r.ID]; dup {
			continue
		}
		contigs[r.ID] = r.Seq
	}
	return contigs, nil
}

func open(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
