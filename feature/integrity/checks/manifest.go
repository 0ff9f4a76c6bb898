package checks

import (
	"os"

	"genedb/core/build"
)

// Routes a genome can take given the files on disk.
const (
	RouteSequences   = "sequences"
	RouteAssembly    = "assembly"
	RouteUnbuildable = "unbuildable"
)

// GenomeReport is the file check of one manifest entry.
type GenomeReport struct {
	Genome  string   `json:"genome"`
	Route   string   `json:"route"`
	Missing []string `json:"missing"`
}

// CheckManifest reports, per genome, which configured files are absent and
// which route a build would start on. A genome with sequences still needs its
// assembly should the match rate fall under threshold, so a missing assembly
// is reported for it too.
func CheckManifest(genomes []build.Genome) []GenomeReport {
	reports := make([]GenomeReport, 0, len(genomes))
	for _, g := range genomes {
		r := GenomeReport{Genome: g.Name, Missing: []string{}}
		if !exists(g.Annotation) {
			r.Missing = append(r.Missing, label(g.Annotation, "annotation"))
		}
		if g.Sequences != "" && !g.HasSequences() {
			r.Missing = append(r.Missing, g.Sequences)
		}
		hasAssembly := exists(g.Assembly)
		if !hasAssembly {
			r.Missing = append(r.Missing, label(g.Assembly, "assembly"))
		}

		switch {
		case !exists(g.Annotation):
			r.Route = RouteUnbuildable
		case g.HasSequences():
			r.Route = RouteSequences
		case hasAssembly:
			r.Route = RouteAssembly
		default:
			r.Route = RouteUnbuildable
		}
		reports = append(reports, r)
	}
	return reports
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// label names an unset path by its role.
func label(path, role string) string {
	if path == "" {
		return role
	}
	return path
}
