package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/session"
)

// PositionsPrompter answers from a fixed set of points keyed by image file
// name. Images without a point are skipped.
type PositionsPrompter struct {
	positions map[string]domain.Point
}

func NewPositionsPrompter(positions map[string]domain.Point) *PositionsPrompter {
	return &PositionsPrompter{positions: positions}
}

func (p *PositionsPrompter) Prompt(ctx context.Context, pr session.Prompt) (session.Decision, error) {
	if err := ctx.Err(); err != nil {
		return session.Decision{}, err
	}
	if pt, ok := p.positions[filepath.Base(pr.Path)]; ok {
		return session.Confirm(pt), nil
	}
	return session.Skip(), nil
}

// point accepts both [x, y] and {"x": x, "y": y}.
type point domain.Point

func (p *point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("expected [x, y], got %d values", len(pair))
		}
		*p = point{X: pair[0], Y: pair[1]}
		return nil
	}

	var obj domain.Point
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = point(obj)
	return nil
}

// LoadPositions reads a JSON object mapping image file names to points.
func LoadPositions(path string) (map[string]domain.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	var raw map[string]point
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse positions: %w", err)
	}

	out := make(map[string]domain.Point, len(raw))
	for name, pt := range raw {
		if pt.X < 0 || pt.X > 1 || pt.Y < 0 || pt.Y > 1 {
			return nil, fmt.Errorf("position of %s out of range: %v", name, domain.Point(pt))
		}
		out[name] = domain.Point(pt)
	}
	return out, nil
}
