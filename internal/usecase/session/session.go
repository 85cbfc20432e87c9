package session

import (
	"image"
	"sync"

	"logo-applier/internal/domain"

	"github.com/google/uuid"
)

// Session walks an ordered image list once, recording at most one placement
// point per image. Every index is visited at most once and recorded paths are
// always members of the list.
type Session struct {
	ID string

	mu        sync.Mutex
	images    []string
	index     int
	stopped   bool
	positions map[string]domain.Point
}

func New(images []string) *Session {
	return &Session{
		ID:        uuid.New().String(),
		images:    append([]string(nil), images...),
		positions: make(map[string]domain.Point),
	}
}

// Step describes the image currently awaiting a decision.
type Step struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
	Total int    `json:"total"`
}

func (s *Session) Current() (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return Step{}, ErrSessionClosed
	}
	return Step{Path: s.images[s.index], Index: s.index, Total: len(s.images)}, nil
}

func (s *Session) Total() int {
	return len(s.images)
}

// Index is the number of images already decided on.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed()
}

func (s *Session) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *Session) closed() bool {
	return s.stopped || s.index >= len(s.images)
}

// Confirm clamps pt so that a logo of logoSize stays inside an image of
// imageSize, records it against the current image and advances.
func (s *Session) Confirm(pt domain.Point, logoSize, imageSize image.Point) (domain.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return domain.Point{}, ErrSessionClosed
	}

	clamped := Clamp(pt, logoSize, imageSize)
	s.positions[s.images[s.index]] = clamped
	s.index++
	return clamped, nil
}

// Skip advances without recording anything.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return ErrSessionClosed
	}
	s.index++
	return nil
}

// Stop ends the walk. Images not yet visited stay unrecorded.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return ErrSessionClosed
	}
	s.stopped = true
	return nil
}

// Apply dispatches a decision to Confirm, Skip or Stop.
func (s *Session) Apply(d Decision, logoSize, imageSize image.Point) error {
	switch d.Action {
	case ActionConfirm:
		_, err := s.Confirm(d.Point, logoSize, imageSize)
		return err
	case ActionSkip:
		return s.Skip()
	case ActionStop:
		return s.Stop()
	default:
		return ErrUnknownAction
	}
}

// Positions returns a copy of the recorded points keyed by image path.
func (s *Session) Positions() map[string]domain.Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]domain.Point, len(s.positions))
	for k, v := range s.positions {
		out[k] = v
	}
	return out
}

// Eligible returns the recorded images in list order.
func (s *Session) Eligible() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, path := range s.images {
		if _, ok := s.positions[path]; ok {
			out = append(out, path)
		}
	}
	return out
}

// Images returns the full walk order.
func (s *Session) Images() []string {
	return append([]string(nil), s.images...)
}

// Clamp limits each axis of pt to [half, 1-half], half being the logo's half
// extent relative to the image. When the logo is wider than the image the
// lower bound wins.
func Clamp(pt domain.Point, logoSize, imageSize image.Point) domain.Point {
	return domain.Point{
		X: clampAxis(pt.X, logoSize.X, imageSize.X),
		Y: clampAxis(pt.Y, logoSize.Y, imageSize.Y),
	}
}

func clampAxis(v float64, logo, img int) float64 {
	if img <= 0 {
		return v
	}
	lo := float64(logo) / 2 / float64(img)
	return max(lo, min(v, 1-lo))
}
