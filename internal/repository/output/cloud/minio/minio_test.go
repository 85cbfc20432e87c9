package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		dest, name, want string
	}{
		{"out", "a.jpg", "out/a.jpg"},
		{"/runs/2024/", "a.jpg", "runs/2024/a.jpg"},
		{"", "a.jpg", "a.jpg"},
		{`runs\win`, "b.jpg", "runs/win/b.jpg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ObjectKey(tt.dest, tt.name))
	}
}
