package main

import (
	"bytes"
	"testing"
	"time"

	"logo-applier/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestApplyFlags_Job(t *testing.T) {
	f := &applyFlags{
		source: "in", logo: "logo.png", dest: "out",
		mode: "fixed", corner: "bottom_right",
		size: 15, margin: 5,
		color: "white", shape: "circle", padding: 8,
	}

	job := f.job()

	assert.Equal(t, "in", job.SourceFolder)
	assert.Equal(t, "logo.png", job.LogoFile)
	assert.Equal(t, "out", job.DestFolder)
	assert.Equal(t, domain.Options{
		LogoSizePercent: 15,
		MarginPercent:   5,
		PositionMode:    domain.ModeFixed,
		FixedPosition:   domain.CornerBottomRight,
		BgColor:         "white",
		BgShape:         domain.ShapeCircle,
		Padding:         8,
	}, job.Options)
}

func TestPrintReport(t *testing.T) {
	r := &domain.BatchReport{Duration: 1500 * time.Millisecond}
	r.Total = 3
	r.Add(domain.ItemResult{Source: "a.png", Status: domain.StatusCompleted, Size: 2000})
	r.Add(domain.ItemResult{Source: "b.png", Status: domain.StatusFailed, Error: "Failed to load image: broken"})
	r.Add(domain.ItemResult{Source: "c.png", Status: domain.StatusSkipped})

	var out bytes.Buffer
	printReport(&out, r)

	assert.Contains(t, out.String(), "Processed 1 of 3 images (1 failed, 1 skipped), 2.0 kB written in 1.5s")
	assert.Contains(t, out.String(), "  b.png: Failed to load image: broken")
	assert.NotContains(t, out.String(), "c.png")
}
