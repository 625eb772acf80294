package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	prev := Log
	t.Cleanup(func() {
		Log = prev
		slog.SetDefault(prev)
	})

	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(&buf, tt.verbose, false)

			Log.Debug("pass", "n", 1)
			Log.Warn("slow file", "file", "a.vue")

			out := buf.String()
			assert.Contains(t, out, "slow file")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("msg=pass")))
		})
	}
}

func TestSetupJSON(t *testing.T) {
	prev := Log
	t.Cleanup(func() {
		Log = prev
		slog.SetDefault(prev)
	})

	var buf bytes.Buffer
	Setup(&buf, true, true)
	slog.Info("loaded config", "path", ".vuelint.yaml")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "loaded config", record["msg"])
	assert.Equal(t, ".vuelint.yaml", record["path"])
}
