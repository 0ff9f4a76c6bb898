package repodb

import (
	"time"
)

// RunRecord is one persisted build.
type RunRecord struct {
	ID             string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	AlignmentType  string    `gorm:"column:alignment_type;size:8" json:"alignment_type"`
	MatchThreshold int       `gorm:"column:match_threshold" json:"match_threshold"`
	GeneticCode    int       `gorm:"column:genetic_code" json:"genetic_code"`
	OutputDir      string    `gorm:"column:output_dir" json:"output_dir"`
	Genomes        int       `gorm:"column:genomes" json:"genomes"`
	Records        int       `gorm:"column:records" json:"records"`
	CreatedAt      time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName overrides the table name.
func (RunRecord) TableName() string {
	return "genedb_runs"
}

// GenomeRecord is the persisted summary of one genome in a run.
type GenomeRecord struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RunID        string  `gorm:"column:run_id;size:36;index" json:"run_id"`
	Genome       string  `gorm:"column:genome" json:"genome"`
	Path         string  `gorm:"column:path;size:16" json:"path"`
	FeatureType  string  `gorm:"column:feature_type" json:"feature_type"`
	FeatureKey   string  `gorm:"column:feature_key" json:"feature_key,omitempty"`
	FieldKey     string  `gorm:"column:field_key" json:"field_key,omitempty"`
	FieldIndex   int     `gorm:"column:field_index" json:"field_index"`
	FieldSource  string  `gorm:"column:field_source;size:8" json:"field_source,omitempty"`
	Total        int     `gorm:"column:total" json:"total"`
	Matched      int     `gorm:"column:matched" json:"matched"`
	Recovered    int     `gorm:"column:recovered" json:"recovered"`
	Rate         float64 `gorm:"column:rate" json:"rate"`
	Records      int     `gorm:"column:records" json:"records"`
	SkippedLines int     `gorm:"column:skipped_lines" json:"skipped_lines"`
}

// TableName overrides the table name.
func (GenomeRecord) TableName() string {
	return "genedb_genomes"
}

func newGenomeRecord(runID string, s Summary) GenomeRecord {
	rec := GenomeRecord{
		RunID:        runID,
		Genome:       s.Genome,
		Path:         string(s.Path),
		FeatureType:  s.FeatureType,
		FieldIndex:   -1,
		Total:        s.Total,
		Matched:      s.Matched,
		Recovered:    s.Recovered,
		Rate:         s.Rate,
		Records:      s.Records,
		SkippedLines: s.Skipped,
	}
	if c := s.Criteria; c != nil {
		rec.FeatureKey = c.FeatureKey
		rec.FieldKey = c.FieldKey
		rec.FieldIndex = c.FieldIndex
		rec.FieldSource = string(c.Source)
	}
	return rec
}
