package prompt

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in      string
		want    session.Decision
		wantErr bool
	}{
		{"0.5 0.25", session.Confirm(domain.Point{X: 0.5, Y: 0.25}), false},
		{"  1   0 ", session.Confirm(domain.Point{X: 1, Y: 0}), false},
		{"s", session.Skip(), false},
		{"SKIP", session.Skip(), false},
		{"q", session.Stop(), false},
		{"1.5 0", session.Decision{}, true},
		{"a b", session.Decision{}, true},
		{"", session.Decision{}, true},
		{"0.1 0.2 0.3", session.Decision{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDecision(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsolePrompter(t *testing.T) {
	in := strings.NewReader("nonsense\n0.2 0.8\ns\n")
	var out bytes.Buffer
	c := NewConsolePrompter(in, &out)
	step := session.Prompt{Step: session.Step{Path: "a.jpg", Index: 1, Total: 4}}

	d, err := c.Prompt(context.Background(), step)
	require.NoError(t, err)
	assert.Equal(t, session.Confirm(domain.Point{X: 0.2, Y: 0.8}), d)
	assert.Contains(t, out.String(), "Positioning: 25% (1/4)")
	assert.Contains(t, out.String(), "unrecognised answer")

	d, err = c.Prompt(context.Background(), step)
	require.NoError(t, err)
	assert.Equal(t, session.Skip(), d)

	d, err = c.Prompt(context.Background(), step)
	require.NoError(t, err)
	assert.Equal(t, session.Stop(), d, "end of input stops")
}

func TestPositionsPrompter(t *testing.T) {
	p := NewPositionsPrompter(map[string]domain.Point{"a.jpg": {X: 0.3, Y: 0.4}})

	d, err := p.Prompt(context.Background(), session.Prompt{Step: session.Step{Path: "/in/a.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, session.Confirm(domain.Point{X: 0.3, Y: 0.4}), d)

	d, err = p.Prompt(context.Background(), session.Prompt{Step: session.Step{Path: "/in/b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, session.Skip(), d)
}

func TestLoadPositions(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "positions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a.jpg":[0.5,0.5],"b.png":{"x":0.1,"y":0.9}}`), 0o644))
	got, err := LoadPositions(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Point{"a.jpg": {X: 0.5, Y: 0.5}, "b.png": {X: 0.1, Y: 0.9}}, got)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"a.jpg":[2,0]}`), 0o644))
	_, err = LoadPositions(bad)
	assert.Error(t, err)

	short := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(short, []byte(`{"a.jpg":[0.5]}`), 0o644))
	_, err = LoadPositions(short)
	assert.Error(t, err)

	_, err = LoadPositions(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
