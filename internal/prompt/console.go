package prompt

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/preview"
	"logo-applier/internal/usecase/session"
)

// ConsolePrompter reads placement decisions line by line:
// "x y" with both values in [0,1] confirms, "s" skips, "q" stops.
// End of input stops the walk.
type ConsolePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewScanner(in), out: out}
}

func (c *ConsolePrompter) Prompt(ctx context.Context, p session.Prompt) (session.Decision, error) {
	var size image.Point
	if p.Image != nil {
		size = p.Image.Bounds().Size()
	}
	fmt.Fprintf(c.out, "%s\n%s (%dx%d, logo %dx%d)\n",
		preview.Label(p.Step), p.Path, size.X, size.Y, p.LogoSize.X, p.LogoSize.Y)

	for {
		if err := ctx.Err(); err != nil {
			return session.Decision{}, err
		}

		fmt.Fprint(c.out, "position x y (0..1), s = skip, q = stop and process: ")
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return session.Decision{}, fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Fprintln(c.out)
			return session.Stop(), nil
		}

		d, err := ParseDecision(c.in.Text())
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
			continue
		}
		return d, nil
	}
}

// ParseDecision parses one console answer.
func ParseDecision(line string) (session.Decision, error) {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 1 && (fields[0] == "s" || fields[0] == "skip"):
		return session.Skip(), nil
	case len(fields) == 1 && (fields[0] == "q" || fields[0] == "stop"):
		return session.Stop(), nil
	case len(fields) == 2:
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			return session.Decision{}, fmt.Errorf("not a position: %q", line)
		}
		if x < 0 || x > 1 || y < 0 || y > 1 {
			return session.Decision{}, fmt.Errorf("position out of range: %q", line)
		}
		return session.Confirm(domain.Point{X: x, Y: y}), nil
	default:
		return session.Decision{}, fmt.Errorf("unrecognised answer: %q", line)
	}
}
