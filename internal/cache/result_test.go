package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/lexer"
)

func sampleDiagnostics() []analyzer.Diagnostic {
	return []analyzer.Diagnostic{
		analyzer.NewDiagnostic("STY001", analyzer.CategoryStyle).
			WithSeverity(analyzer.SeverityWarning).
			WithMessage("extraSpaces", "Class attribute contains extra spaces.").
			WithRange(lexer.Position{Line: 2, Column: 14, Offset: 24}, lexer.Position{Line: 2, Column: 20, Offset: 30}).
			WithFix(&analyzer.Fix{Title: "Remove extra spaces", Edits: []analyzer.Edit{{Start: 24, End: 30, NewText: `"a b"`}}}).
			Build(),
	}
}

func TestResultStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultResultFile)

	s, err := OpenResultStore(path, "cfg-1")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	s.Put("App.vue", sample, sampleDiagnostics())
	require.NoError(t, s.Save())

	reopened, err := OpenResultStore(path, "cfg-1")
	require.NoError(t, err)

	diags, ok := reopened.Get("App.vue", sample)
	require.True(t, ok)
	require.Len(t, diags, 1)
	assert.Equal(t, "STY001", diags[0].Rule)
	assert.Equal(t, analyzer.SeverityWarning, diags[0].Severity)
	assert.Equal(t, 14, diags[0].Pos.Column)
	require.NotNil(t, diags[0].Fix)
	assert.Equal(t, `"a b"`, diags[0].Fix.Edits[0].NewText)

	_, ok = reopened.Get("App.vue", sample+"\n")
	assert.False(t, ok, "changed content must miss")
}

func TestResultStoreConfigChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultResultFile)

	s, err := OpenResultStore(path, "cfg-1")
	require.NoError(t, err)
	s.Put("App.vue", sample, sampleDiagnostics())
	require.NoError(t, s.Save())

	s, err = OpenResultStore(path, "cfg-2")
	require.NoError(t, err)
	_, ok := s.Get("App.vue", sample)
	assert.False(t, ok)
}

func TestResultStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultResultFile)
	require.NoError(t, os.WriteFile(path, []byte("not msgpack"), 0o644))

	s, err := OpenResultStore(path, "cfg")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestResultStoreSaveWithoutChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultResultFile)

	s, err := OpenResultStore(path, "cfg")
	require.NoError(t, err)
	require.NoError(t, s.Save())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "an unchanged store is not written")
}

func TestNilResultStore(t *testing.T) {
	var s *ResultStore
	_, ok := s.Get("App.vue", sample)
	assert.False(t, ok)
	s.Put("App.vue", sample, nil)
	assert.NoError(t, s.Save())
}

func TestFingerprint(t *testing.T) {
	a := map[string]interface{}{"severity": "warning", "rules": map[string]interface{}{"STY001": true, "DEP001": false}}
	b := map[string]interface{}{"rules": map[string]interface{}{"DEP001": false, "STY001": true}, "severity": "warning"}

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	b["severity"] = "error"
	fc, err := Fingerprint(b)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}
