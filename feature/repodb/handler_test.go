package repodb

import (
	"io"
	"net/http/httptest"
	"testing"

	"genedb/core/build"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, genomes []build.Genome) *fiber.App {
	t.Helper()
	cfg := testConfig()
	cfg.OutputDir = t.TempDir()

	svc := NewService(cfg, zap.NewNop(), nil)
	feature := NewFeature(svc, setupStore(t), nil, genomes, zap.NewNop())
	require.True(t, feature.IsEnabled())

	app := fiber.New(fiber.Config{JSONEncoder: json.Marshal, JSONDecoder: json.Unmarshal})
	require.NoError(t, feature.Load(app))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func TestHandler_RunLifecycle(t *testing.T) {
	dir := t.TempDir()
	app := setupApp(t, []build.Genome{alphaGenome(t, dir), betaGenome(t, dir)})

	var report Report
	status := doJSON(t, app, "POST", "/runs", &report)
	require.Equal(t, fiber.StatusCreated, status)
	assert.NotEmpty(t, report.RunID)
	assert.Len(t, report.Files, 6)
	require.Len(t, report.Genomes, 2)
	assert.Equal(t, PathMatched, report.Genomes[0].Path)

	var runs []RunRecord
	assert.Equal(t, fiber.StatusOK, doJSON(t, app, "GET", "/runs", &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, report.RunID, runs[0].ID)

	var run RunRecord
	assert.Equal(t, fiber.StatusOK, doJSON(t, app, "GET", "/runs/"+report.RunID, &run))
	assert.Equal(t, 3, run.Records)

	var genomes []GenomeRecord
	assert.Equal(t, fiber.StatusOK, doJSON(t, app, "GET", "/runs/"+report.RunID+"/genomes", &genomes))
	require.Len(t, genomes, 2)
	assert.Equal(t, "beta", genomes[1].Genome)
}

func TestHandler_NotFound(t *testing.T) {
	app := setupApp(t, nil)

	var body map[string]string
	assert.Equal(t, fiber.StatusNotFound, doJSON(t, app, "GET", "/runs/missing", &body))
	assert.Equal(t, ErrRunNotFound.Error(), body["error"])

	assert.Equal(t, fiber.StatusNotFound, doJSON(t, app, "GET", "/runs/missing/genomes", nil))
}

func TestHandler_BuildFailure(t *testing.T) {
	dir := t.TempDir()
	g := betaGenome(t, dir)
	g.Assembly = ""
	app := setupApp(t, []build.Genome{g})

	var body map[string]string
	assert.Equal(t, fiber.StatusUnprocessableEntity, doJSON(t, app, "POST", "/runs", &body))
	assert.Equal(t, "beta", body["genome"])
	assert.Equal(t, "fatal", body["class"])

	var runs []RunRecord
	assert.Equal(t, fiber.StatusOK, doJSON(t, app, "GET", "/runs", &runs))
	assert.Empty(t, runs)
}

func TestHandler_InvalidManifest(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		genomes []build.Genome
	}{
		{"duplicate names", []build.Genome{alphaGenome(t, dir), alphaGenome(t, dir)}},
		{"reserved name", []build.Genome{func() build.Genome {
			g := alphaGenome(t, dir)
			g.Name = build.ReservedName
			return g
		}()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(t, tt.genomes)

			var body map[string]string
			assert.Equal(t, fiber.StatusUnprocessableEntity, doJSON(t, app, "POST", "/runs", &body))
			assert.Equal(t, "invalid", body["class"])
			assert.Empty(t, body["genome"])

			var runs []RunRecord
			assert.Equal(t, fiber.StatusOK, doJSON(t, app, "GET", "/runs", &runs))
			assert.Empty(t, runs)
		})
	}
}

func TestFeature_DisabledWithoutStore(t *testing.T) {
	f := NewFeature(NewService(testConfig(), zap.NewNop(), nil), nil, nil, nil, zap.NewNop())
	assert.Equal(t, "runs", f.Name())
	assert.False(t, f.IsEnabled())
}
