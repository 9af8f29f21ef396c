package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"11.0", []int{11}},
		{"11", []int{11}},
		{"2.7.3", []int{2, 7, 3}},
		{"2.7.0", []int{2, 7}},
		{"3.10", []int{3, 10}},
		{"v1.16-beta2", []int{1, 16, 2}},
		{"latest", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, NormalizeVersion(tt.in)); diff != "" {
				t.Fatalf("normalized mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVersionsEqual(t *testing.T) {
	assert.True(t, VersionsEqual("11.0", "11"))
	assert.True(t, VersionsEqual("3.9", "3.9.0"))
	assert.False(t, VersionsEqual("2.7.3", "2.7"))
	assert.False(t, VersionsEqual("3.1", "3.10"))
}

func TestCompareNormalized(t *testing.T) {
	assert.Equal(t, 1, CompareNormalized("2.10", "2.9"))
	assert.Equal(t, -1, CompareNormalized("2.7", "2.7.3"))
	assert.Equal(t, 0, CompareNormalized("8.0", "8"))
}

func TestVersionTableInfer(t *testing.T) {
	table := NewVersionTable()
	tests := []struct {
		name     string
		language string
		tag      string
		platform string
		want     string
		ok       bool
	}{
		{"python alpine", "python", "3.9-alpine", "alpine", "3.9", true},
		{"node alias", "nodejs", "16-alpine", "alpine", "16", true},
		{"java alpine", "java", "11-jdk-alpine", "alpine", "11", true},
		{"platform without versions", "node", "12-stretch", "stretch", "", false},
		{"unknown platform", "python", "3.9-bullseye", "bullseye", "", false},
		{"unknown language", "rust", "1.70-alpine", "alpine", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Infer(tt.language, tt.tag, tt.platform)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionTableKnown(t *testing.T) {
	table := NewVersionTable()
	assert.True(t, table.Known("java", "11.0"))
	assert.True(t, table.Known("nodejs", "16"))
	assert.False(t, table.Known("python", "2.7"))
	assert.True(t, table.Known("rust", "1.70"))
	assert.True(t, table.Known("python", "3.11.9"))
	assert.True(t, table.Known("java", "11.0.2"))
	assert.False(t, table.Known("python", "3"))
	assert.False(t, table.Known("python", "3.13.1"))
}

func TestVersionTableEntriesSorted(t *testing.T) {
	entries := NewVersionTable().Entries()
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.Language == cur.Language {
			assert.Less(t, prev.Platform, cur.Platform)
			continue
		}
		assert.Less(t, prev.Language, cur.Language)
	}
	assert.Equal(t, "c", entries[0].Language)
}
