package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"dockerfile-analyzer/internal/types"
)

func TestDecomposeImage(t *testing.T) {
	tests := []struct {
		raw  string
		want types.ImageReference
	}{
		{
			raw:  "python:3.9-alpine",
			want: types.ImageReference{Name: "python", Tag: "3.9-alpine", HasTag: true},
		},
		{
			raw:  "ubuntu",
			want: types.ImageReference{Name: "ubuntu"},
		},
		{
			raw: "library/node:16",
			want: types.ImageReference{
				Repository: "library", Name: "node", Tag: "16",
				HasRepository: true, HasTag: true,
			},
		},
		{
			raw: "gcr.io/distroless/base",
			want: types.ImageReference{
				Repository: "gcr.io/distroless", Name: "base",
				HasRepository: true,
			},
		},
		{
			raw: "registry:5000/team/app:1.2",
			want: types.ImageReference{
				Repository: "registry:5000/team", Name: "app", Tag: "1.2",
				HasRepository: true, HasTag: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DecomposeImage(tt.raw)); diff != "" {
				t.Fatalf("reference mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCanonicalImage(t *testing.T) {
	got, ok := CanonicalImage("python:3.9")
	assert.True(t, ok)
	assert.Equal(t, "index.docker.io/library/python:3.9", got)

	got, ok = CanonicalImage("gcr.io/distroless/base")
	assert.True(t, ok)
	assert.Equal(t, "gcr.io/distroless/base:latest", got)

	_, ok = CanonicalImage("scratch")
	assert.False(t, ok)

	_, ok = CanonicalImage("Python:3")
	assert.False(t, ok)
}

func TestBaseImageKeepsRawReference(t *testing.T) {
	image := baseImage("node:16-alpine")
	assert.Equal(t, "node:16-alpine", image.Raw)
	assert.Equal(t, "node", image.Name)
	assert.Equal(t, "16-alpine", image.Tag)
	assert.Equal(t, "index.docker.io/library/node:16-alpine", image.Canonical)
}
