package domain

import "time"

// ProcessingJob is one run: an ordered list of images resolved from
// SourceFolder, a logo, and the options to apply. Positions carries
// manual-mode points keyed by image file name for callers that cannot
// answer placement prompts interactively.
type ProcessingJob struct {
	ID           string           `json:"id"`
	SourceFolder string           `json:"source_folder" validate:"required"`
	LogoFile     string           `json:"logo_file" validate:"required"`
	DestFolder   string           `json:"dest_folder" validate:"required"`
	Options      Options          `json:"options"`
	Positions    map[string]Point `json:"positions,omitempty" validate:"omitempty,dive"`
}

type ItemStatus string

const (
	StatusCompleted ItemStatus = "completed"
	StatusFailed    ItemStatus = "failed"
	StatusSkipped   ItemStatus = "skipped"
)

type ItemResult struct {
	Source string     `json:"source"`
	Output string     `json:"output,omitempty"`
	Status ItemStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
	Size   int64      `json:"size,omitempty"`
}

type BatchReport struct {
	JobID     string        `json:"job_id"`
	Total     int           `json:"total"`
	Processed int           `json:"processed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Items     []ItemResult  `json:"items"`
	Duration  time.Duration `json:"duration"`
}

func (r *BatchReport) Add(item ItemResult) {
	r.Items = append(r.Items, item)
	switch item.Status {
	case StatusCompleted:
		r.Processed++
	case StatusFailed:
		r.Failed++
	case StatusSkipped:
		r.Skipped++
	}
}

func (r *BatchReport) FailedItems() []ItemResult {
	var out []ItemResult
	for _, item := range r.Items {
		if item.Status == StatusFailed {
			out = append(out, item)
		}
	}
	return out
}

// JobResult is published once per consumed job. Report is nil when the job
// was rejected before any image was processed.
type JobResult struct {
	JobID  string       `json:"job_id"`
	Status ItemStatus   `json:"status"`
	Error  string       `json:"error,omitempty"`
	Report *BatchReport `json:"report,omitempty"`
}
