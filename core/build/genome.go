package build

import (
	"fmt"
	"os"
	"strings"
)

// ReservedName collides with the combined output files and cannot name a genome.
const ReservedName = "all"

// Genome is one manifest entry. Sequences is optional; Assembly is needed only
// when the genome falls back to extraction.
type Genome struct {
	Name       string `mapstructure:"name" json:"name"`
	Annotation string `mapstructure:"annotation" json:"annotation"`
	Sequences  string `mapstructure:"sequences" json:"sequences,omitempty"`
	Assembly   string `mapstructure:"assembly" json:"assembly,omitempty"`
}

// HasSequences reports whether a sequence file is configured and present.
func (g Genome) HasSequences() bool {
	if g.Sequences == "" {
		return false
	}
	_, err := os.Stat(g.Sequences)
	return err == nil
}

// ValidateManifest checks names are set, unique and not reserved, and that each
// genome has an annotation file.
func ValidateManifest(genomes []Genome) error {
	if len(genomes) == 0 {
		return invalid("no genomes configured")
	}
	seen := make(map[string]bool, len(genomes))
	for i, g := range genomes {
		name := strings.TrimSpace(g.Name)
		switch {
		case name == "":
			return invalid("genome %d has no name", i)
		case strings.ContainsAny(name, "|/"):
			return invalid("genome name %q must not contain '|' or '/'", name)
		case strings.EqualFold(name, ReservedName):
			return invalid("genome name %q is reserved", name)
		case seen[name]:
			return invalid("duplicate genome name %q", name)
		case g.Annotation == "":
			return invalid("genome %q has no annotation file", name)
		}
		seen[name] = true
	}
	return nil
}

// Find returns the manifest entry named name.
func Find(genomes []Genome, name string) (Genome, error) {
	for _, g := range genomes {
		if g.Name == name {
			return g, nil
		}
	}
	return Genome{}, fmt.Errorf("genome %q not in manifest", name)
}
