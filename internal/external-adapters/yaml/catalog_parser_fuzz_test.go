package yaml

import (
	"testing"
)

// FuzzCatalogParser tests the YAML parser against random/malformed inputs
// to detect crashes, panics, or unexpected behavior.
//
// Run with: go test -fuzz=FuzzCatalogParser -fuzztime=30s
func FuzzCatalogParser(f *testing.F) {
	// Seed corpus with valid YAML examples
	f.Add([]byte(kicadCatalog))
	f.Add([]byte(`package: app
algorithms: [sha256, blake2b-256]
variants:
  - name: amd64
    version:
      url: https://ci.example.com/
      pattern: 'app-([0-9.]+)\.exe'
    download:
      url: https://dl.example.com/app-{version}.exe
`))

	// Seed with edge cases
	f.Add([]byte(``))                                  // Empty input
	f.Add([]byte(`package: ""` + "\n"))                // Empty package
	f.Add([]byte(`{}`))                                // Empty JSON-style YAML
	f.Add([]byte(`[]`))                                // Array instead of object
	f.Add([]byte("package: a\nvariants: [{name: x}]")) // Incomplete variant
	f.Add([]byte("package: a\npackage: b"))            // Duplicate keys

	parser := NewCatalogParser()

	f.Fuzz(func(_ *testing.T, data []byte) {
		// The parser should handle any input without crashing
		_, _ = parser.Parse(data)
	})
}
