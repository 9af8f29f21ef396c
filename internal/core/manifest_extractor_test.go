package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockerfile-analyzer/internal/shared"
	"dockerfile-analyzer/internal/types"
)

const samplePom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <dependencies>
    <dependency>
      <groupId>org.springframework</groupId>
      <artifactId>spring-core</artifactId>
      <version>5.3.9</version>
    </dependency>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
    </dependency>
    <dependency>
      <artifactId>orphan</artifactId>
    </dependency>
  </dependencies>
  <build>
    <plugins>
      <plugin>
        <dependencies>
          <dependency>
            <groupId>org.ow2.asm</groupId>
            <artifactId>asm</artifactId>
            <version>9.2</version>
          </dependency>
        </dependencies>
      </plugin>
    </plugins>
  </build>
</project>
`

func TestExtractPinnedLines(t *testing.T) {
	data := []byte("Flask==2.1.1\nrequests>=2.0\n# comment\n\nnumpy\nzope.interface==5.4\n")
	got, err := NewManifestExtractor().Extract("python", data)
	require.NoError(t, err)
	want := []types.DependencyRecord{
		{Name: "flask", Version: "2.1.1", Ecosystem: types.EcosystemPip},
		{Name: "zope-interface", Version: "5.4", Ecosystem: types.EcosystemPip},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractJSONDependenciesKeepsDocumentOrder(t *testing.T) {
	data := []byte(`{
  "name": "web",
  "dependencies": {"react": "^18.2.0", "express": "4.18.2", "weird": 3},
  "devDependencies": {"jest": "29.0.0"}
}`)
	got, err := NewManifestExtractor().Extract("nodejs", data)
	require.NoError(t, err)
	want := []types.DependencyRecord{
		{Name: "react", Version: "^18.2.0", Ecosystem: types.EcosystemNpm},
		{Name: "express", Version: "4.18.2", Ecosystem: types.EcosystemNpm},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractJSONDependenciesDegradesSilently(t *testing.T) {
	extractor := NewManifestExtractor()
	for _, input := range []string{`{"dependencies": `, `[1, 2]`, `{"name": "x"}`, `{"dependencies": []}`} {
		got, err := extractor.Extract("nodejs", []byte(input))
		require.NoError(t, err, input)
		assert.Empty(t, got, input)
	}
}

func TestExtractMavenPom(t *testing.T) {
	got, err := NewManifestExtractor().Extract("java", []byte(samplePom))
	require.NoError(t, err)
	want := []types.DependencyRecord{
		{Name: "org.springframework:spring-core", Version: "5.3.9", Ecosystem: types.EcosystemMaven},
		{Name: "junit:junit", Ecosystem: types.EcosystemMaven},
		{Name: "org.ow2.asm:asm", Version: "9.2", Ecosystem: types.EcosystemMaven},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractMavenPomWithoutNamespace(t *testing.T) {
	data := []byte(`<project><dependencies><dependency><groupId>a</groupId><artifactId>b</artifactId></dependency></dependencies></project>`)
	got, err := NewManifestExtractor().Extract("java", data)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractMavenPomMalformed(t *testing.T) {
	extractor := NewManifestExtractor()
	for _, input := range []string{`<project xmlns="http://maven.apache.org/POM/4.0.0"><dependencies>`, ``, `not xml`} {
		_, err := extractor.Extract("java", []byte(input))
		require.Error(t, err, input)
		assert.True(t, shared.IsManifestParseError(err), input)
	}
}

func TestExtractGenericLines(t *testing.T) {
	got, err := NewManifestExtractor().Extract("ruby", []byte("rails==7.0.4\n\n  sinatra  \n"))
	require.NoError(t, err)
	want := []types.DependencyRecord{
		{Name: "rails", Version: "7.0.4", Ecosystem: types.EcosystemGeneric},
		{Name: "sinatra", Ecosystem: types.EcosystemGeneric},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFileSetsSourceAndSkipsUnsupported(t *testing.T) {
	extractor := NewManifestExtractor()

	manifest := ManifestForPath("/src/requirements-dev.txt", "")
	assert.Equal(t, types.ManifestFormatPinnedLines, manifest.Format)
	got, err := extractor.ExtractFile(manifest, []byte("pytest==7.1.0\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "manifest:requirements-dev.txt", got[0].Source)

	gradle := ManifestForPath("build.gradle", "")
	assert.Equal(t, types.ManifestFormatUnsupported, gradle.Format)
	got, err = extractor.ExtractFile(gradle, []byte("implementation 'x:y:1'"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestManifestForPathFallsBackToLanguage(t *testing.T) {
	manifest := ManifestForPath("deps.lock", "nodejs")
	assert.Equal(t, "nodejs", manifest.Language)
	assert.Equal(t, types.ManifestFormatJSONDependencyMap, manifest.Format)
}
