package model

import "time"

// Stage names a pipeline stage.
type Stage string

// Pipeline stages.
const (
	StageExtract    Stage = "extract"
	StageCategorize Stage = "categorize"
)

// Run records one pipeline run for one stage.
type Run struct {
	StartedAt  time.Time
	FinishedAt *time.Time
	ID         string
	Stage      Stage
	Total      int
	Processed  int
	Skipped    int
	Failed     int
}
