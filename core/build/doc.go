// Package build holds the settings and genome manifest of a repository build.
//
// # Configuration
//
// Config is embedded in core/config under the "build" key, so every field can
// be set from the environment (BUILD_MATCH_THRESHOLD=85) or from genedb.yaml.
//
// # Manifest
//
// The manifest lists one Genome per entry of the study:
//
//	genomes:
//	  - name: ecoli
//	    annotation: data/ecoli.gff3
//	    sequences: data/ecoli.pep
//	    assembly: data/ecoli.fna
//
// The name "all" is reserved for the combined outputs.
package build
