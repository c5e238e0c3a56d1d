package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// ArtifactLogger records every generated file with optional file output.
type ArtifactLogger interface {
	Log(path string, size int, digest []byte, unchanged bool)
}

// artifactLogger implements ArtifactLogger with thread-safe writes.
type artifactLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewArtifact creates a new ArtifactLogger. If w is nil, the logger drops everything.
func NewArtifact(w io.Writer) ArtifactLogger {
	return &artifactLogger{w: w}
}

// Log emits a single line with timestamp, state, size, digest prefix and path.
func (a *artifactLogger) Log(path string, size int, digest []byte, unchanged bool) {
	if a.w == nil {
		return
	}

	state := "write"
	if unchanged {
		state = "keep "
	}
	sum := hex.EncodeToString(digest)
	if len(sum) > 16 {
		sum = sum[:16]
	}

	line := fmt.Sprintf("%s %s %8d bytes %s %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		state,
		size,
		sum,
		path)

	a.mu.Lock()
	_, _ = a.w.Write([]byte(line))
	a.mu.Unlock()
}
