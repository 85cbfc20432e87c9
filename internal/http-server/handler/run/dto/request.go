package dto

import "logo-applier/internal/domain"

// RunRequest describes a run. Options left out of the body keep their
// defaults.
type RunRequest struct {
	SourceFolder string                  `json:"source_folder" validate:"required"`
	LogoFile     string                  `json:"logo_file" validate:"required"`
	DestFolder   string                  `json:"dest_folder" validate:"required"`
	Options      domain.Options          `json:"options"`
	Positions    map[string]domain.Point `json:"positions,omitempty"`
}

func NewRunRequest() RunRequest {
	return RunRequest{Options: domain.DefaultOptions()}
}

func (r RunRequest) Job() domain.ProcessingJob {
	return domain.ProcessingJob{
		SourceFolder: r.SourceFolder,
		LogoFile:     r.LogoFile,
		DestFolder:   r.DestFolder,
		Options:      r.Options,
		Positions:    r.Positions,
	}
}

type ClickRequest struct {
	X *float64 `json:"x" validate:"required,gte=0,lte=1"`
	Y *float64 `json:"y" validate:"required,gte=0,lte=1"`
}

func (r ClickRequest) Point() domain.Point {
	return domain.Point{X: *r.X, Y: *r.Y}
}
