package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"logo-applier/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

// Settings are the last used values, restored as defaults on the next run.
type Settings struct {
	SourceFolder    string              `json:"source_folder"`
	LogoFile        string              `json:"logo_file"`
	DestFolder      string              `json:"dest_folder"`
	PositionMode    domain.PositionMode `json:"position_mode"`
	FixedPosition   domain.Corner       `json:"fixed_position"`
	LogoSizePercent int                 `json:"logo_size_percent"`
	MarginPercent   int                 `json:"margin_percent"`
	BgColor         string              `json:"bg_color"`
	BgShape         domain.Shape        `json:"bg_shape"`
}

func Default() Settings {
	opts := domain.DefaultOptions()
	return Settings{
		PositionMode:    opts.PositionMode,
		FixedPosition:   opts.FixedPosition,
		LogoSizePercent: opts.LogoSizePercent,
		MarginPercent:   opts.MarginPercent,
		BgColor:         opts.BgColor,
		BgShape:         opts.BgShape,
	}
}

// Options turns the stored values into run options with the given padding.
func (s Settings) Options(padding int) domain.Options {
	return domain.Options{
		LogoSizePercent: s.LogoSizePercent,
		MarginPercent:   s.MarginPercent,
		PositionMode:    s.PositionMode,
		FixedPosition:   s.FixedPosition,
		BgColor:         s.BgColor,
		BgShape:         s.BgShape,
		Padding:         padding,
	}
}

// FromJob captures the values of a finished run.
func FromJob(job domain.ProcessingJob) Settings {
	return Settings{
		SourceFolder:    job.SourceFolder,
		LogoFile:        job.LogoFile,
		DestFolder:      job.DestFolder,
		PositionMode:    job.Options.PositionMode,
		FixedPosition:   job.Options.FixedPosition,
		LogoSizePercent: job.Options.LogoSizePercent,
		MarginPercent:   job.Options.MarginPercent,
		BgColor:         job.Options.BgColor,
		BgShape:         job.Options.BgShape,
	}
}

// normalize replaces values outside the accepted sets with defaults.
func (s Settings) normalize() Settings {
	def := Default()

	if s.PositionMode != domain.ModeManual && s.PositionMode != domain.ModeFixed {
		s.PositionMode = def.PositionMode
	}
	switch s.FixedPosition {
	case domain.CornerTopLeft, domain.CornerTopRight, domain.CornerBottomLeft, domain.CornerBottomRight:
	default:
		s.FixedPosition = def.FixedPosition
	}
	if !slices.Contains(domain.LogoSizeOptions, s.LogoSizePercent) {
		s.LogoSizePercent = def.LogoSizePercent
	}
	if !slices.Contains(domain.MarginOptions, s.MarginPercent) {
		s.MarginPercent = def.MarginPercent
	}
	if _, err := domain.ParseColor(s.BgColor); err != nil || s.BgColor == "" {
		s.BgColor = def.BgColor
	}
	switch s.BgShape {
	case domain.ShapeCircle, domain.ShapeOval, domain.ShapeRectangle:
	default:
		s.BgShape = def.BgShape
	}

	return s
}

// FileRepository keeps Settings in a flat JSON file.
type FileRepository struct {
	path   string
	logger *zlog.Zerolog
}

func NewFileRepository(path string, logger *zlog.Zerolog) *FileRepository {
	return &FileRepository{path: path, logger: logger}
}

// Load never fails: a missing or unreadable file yields defaults and missing
// keys keep their default values.
func (r *FileRepository) Load() Settings {
	s := Default()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.logger.Warn().Err(err).Str("path", r.path).Msg("Failed to read settings, using defaults")
		}
		return s
	}

	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Warn().Err(err).Str("path", r.path).Msg("Failed to parse settings, using defaults")
		return Default()
	}

	return s.normalize()
}

func (r *FileRepository) Save(s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	r.logger.Debug().Str("path", r.path).Msg("Settings saved")
	return nil
}
