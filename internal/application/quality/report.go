package quality

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StageReport holds the outcome of a single pipeline stage: row counts and
// the issues it raised. Producing a StageReport never mutates pipeline state.
type StageReport struct {
	Stage    string           `json:"stage"`
	InRows   int              `json:"in_rows"`
	OutRows  int              `json:"out_rows"`
	Issues   *IssueCollection `json:"-"`
	Duration time.Duration    `json:"duration"`
}

// DroppedRows returns how many rows the stage removed
func (s StageReport) DroppedRows() int {
	return s.InRows - s.OutRows
}

// Report aggregates the per-stage findings of one pipeline run.
type Report struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	maxIssues  int
	stages     []StageReport
}

// NewReport creates a Report for a new pipeline run. maxIssues bounds the
// retained issues per stage.
func NewReport(maxIssues int) *Report {
	return &Report{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
		maxIssues: maxIssues,
	}
}

// StageCollection returns a fresh bounded collection for a stage to fill.
func (r *Report) StageCollection() *IssueCollection {
	return NewIssueCollection(r.maxIssues)
}

// AddStage records a finished stage
func (r *Report) AddStage(stage StageReport) {
	r.stages = append(r.stages, stage)
}

// Stages returns the recorded stage reports in execution order
func (r *Report) Stages() []StageReport {
	return r.stages
}

// Finish stamps the completion time
func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}

// TotalIssues returns the issue count across all stages
func (r *Report) TotalIssues() int {
	total := 0
	for _, s := range r.stages {
		if s.Issues != nil {
			total += s.Issues.TotalCount()
		}
	}
	return total
}

// HasIssues returns true if any stage reported findings
func (r *Report) HasIssues() bool {
	return r.TotalIssues() > 0
}

// Log writes a structured summary of the run to the logger, one line per
// stage plus a run-level footer.
func (r *Report) Log(log *zap.Logger) {
	for _, s := range r.stages {
		fields := []zap.Field{
			zap.String("run_id", r.RunID.String()),
			zap.String("stage", s.Stage),
			zap.Int("in_rows", s.InRows),
			zap.Int("out_rows", s.OutRows),
			zap.Duration("duration", s.Duration),
		}
		if s.Issues != nil && s.Issues.HasIssues() {
			fields = append(fields,
				zap.Int("issues", s.Issues.TotalCount()),
				zap.Any("by_reason", s.Issues.Summary()),
			)
			log.Warn("stage completed with issues", fields...)
			continue
		}
		log.Info("stage completed", fields...)
	}

	log.Info("pipeline run finished",
		zap.String("run_id", r.RunID.String()),
		zap.Duration("elapsed", r.FinishedAt.Sub(r.StartedAt)),
		zap.Int("total_issues", r.TotalIssues()),
	)
}
