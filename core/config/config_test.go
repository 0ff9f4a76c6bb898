package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "pep", cfg.Build.AlignmentType)
	assert.Equal(t, 90, cfg.Build.MatchThreshold)
	assert.Equal(t, 1, cfg.Build.GeneticCode)
	assert.Equal(t, "genedb_output", cfg.Build.OutputDir)
	assert.Equal(t, "repo", cfg.Build.Prefix)
	assert.Equal(t, 4, cfg.Build.Workers)
	assert.Equal(t, 20, cfg.Build.SampleSize)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Empty(t, cfg.Genomes)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("BUILD_MATCH_THRESHOLD", "75")
	t.Setenv("BUILD_ALIGNMENT_TYPE", "cds")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Build.MatchThreshold)
	assert.Equal(t, "cds", cfg.Build.AlignmentType)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BUILD_GENETIC_CODE=11\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BUILD_GENETIC_CODE") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Build.GeneticCode)
}

func TestLoadConfig_Manifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `build:
  prefix: study
genomes:
  - name: ecoli
    annotation: data/ecoli.gff3
    sequences: data/ecoli.pep
    assembly: /abs/ecoli.fna
  - name: bsub
    annotation: bsub.gff3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genedb.yaml"), []byte(manifest), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "study", cfg.Build.Prefix)
	require.Len(t, cfg.Genomes, 2)

	assert.Equal(t, "ecoli", cfg.Genomes[0].Name)
	assert.Equal(t, filepath.Join(dir, "data/ecoli.gff3"), cfg.Genomes[0].Annotation)
	assert.Equal(t, filepath.Join(dir, "data/ecoli.pep"), cfg.Genomes[0].Sequences)
	assert.Equal(t, "/abs/ecoli.fna", cfg.Genomes[0].Assembly)
	assert.Empty(t, cfg.Genomes[1].Sequences)
}

func TestLoadConfig_BadManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genedb.yaml"), []byte("genomes: [\n"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
