package session

import (
	"context"
	"image"

	"logo-applier/internal/domain"
)

type Action string

const (
	ActionConfirm Action = "confirm"
	ActionSkip    Action = "skip"
	ActionStop    Action = "stop"
)

// Decision is the answer to one Prompt. Point is only read for ActionConfirm.
type Decision struct {
	Action Action       `json:"action"`
	Point  domain.Point `json:"point"`
}

func Confirm(p domain.Point) Decision { return Decision{Action: ActionConfirm, Point: p} }
func Skip() Decision                  { return Decision{Action: ActionSkip} }
func Stop() Decision                  { return Decision{Action: ActionStop} }

// Prompt is what a Prompter is shown for the current image.
type Prompt struct {
	Step
	Image    image.Image
	Logo     image.Image
	LogoSize image.Point
}

// Prompter blocks until a placement decision for one image is available.
type Prompter interface {
	Prompt(ctx context.Context, p Prompt) (Decision, error)
}
