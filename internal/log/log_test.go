package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestConsoleHandlersSplitErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := slog.New(MultiHandler{hs: NewHandlers(&out, &errOut, slog.LevelDebug)})

	logger.Debug("rendering class", "class", "Category")
	logger.Info("Generating sources", "language", "cpp")
	logger.Error("generation failed", "error", "boom")

	assert.Contains(t, out.String(), "rendering class")
	assert.Contains(t, out.String(), "Generating sources")
	assert.NotContains(t, out.String(), "generation failed")
	assert.Contains(t, errOut.String(), "generation failed")
	assert.NotContains(t, errOut.String(), "Generating sources")

	out.Reset()
	slog.New(MultiHandler{hs: NewHandlers(&out, &errOut, slog.LevelInfo)}).
		With("package", "distrib").Debug("hidden")
	assert.Empty(t, out.String())
}

func TestArtifactLogger(t *testing.T) {
	var buf bytes.Buffer
	a := NewArtifact(&buf)
	a.Log("cpp/Category.h", 1234, bytes.Repeat([]byte{0xab}, 32), false)
	a.Log("cpp/Category.cpp", 7, []byte{0x01, 0x02}, true)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} write +1234 bytes abababababababab cpp/Category.h$`), lines[0])
	assert.Regexp(t, regexp.MustCompile(`keep +7 bytes 0102 cpp/Category.cpp$`), lines[1])

	// a nil writer drops everything
	NewArtifact(nil).Log("x", 1, nil, false)
}

func TestOpenArtifactLog(t *testing.T) {
	a, c, err := OpenArtifactLog("")
	require.NoError(t, err)
	a.Log("ignored", 1, nil, false)
	require.NoError(t, c.Close())

	path := filepath.Join(t.TempDir(), "artifacts.log")
	for i := 0; i < 2; i++ {
		a, c, err = OpenArtifactLog(path)
		require.NoError(t, err)
		a.Log("go/distrib/distrib.go", 10, []byte{0xff}, i == 1)
		require.NoError(t, c.Close())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "go/distrib/distrib.go"), "the log is appended to")
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deviser.log")
	logger, closers, err := SetupLogger("debug", path)
	require.NoError(t, err)
	logger.Debug("resolved package", "classes", 6)
	for _, c := range closers {
		require.NoError(t, c.Close())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "classes=6")

	_, _, err = SetupLogger("info", filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
