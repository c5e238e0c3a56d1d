package emit

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dlog "github.com/sbmlteam/deviser/internal/log"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "clean", content: "#include <string>\nstatic_cast<Category*>(x);\n"},
		{name: "template arguments", content: "vector<SBase*> items;\nIdEq<Category>(sid);\n"},
		{name: "placeholder", content: "line one\n#define X <SPEC_LEVEL>\n", wantErr: "unfilled placeholder <SPEC_LEVEL> on line 2"},
		{name: "missing value", content: "a\nb\nname = <no value>;\n", wantErr: "missing template value on line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(Artifact{Path: "x.h", Content: []byte(tt.content)})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrGenerationFailed)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "(file: x.h)")
		})
	}
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("boom")
	err := NewGenerationError("render", "Category.h", "template", cause)

	assert.Equal(t, "deviser: generation error in phase render (file: Category.h): template: boom", err.Error())
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, cause)

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Category.h", ge.File)
}

func TestWriterWritesAndSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	arts := []Artifact{
		{Path: "src/a.h", Content: []byte("a")},
		{Path: "src/deep/b.cpp", Content: []byte("bb")},
		{Path: "CMakeLists.txt", Content: []byte("ccc")},
	}

	var log bytes.Buffer
	w := NewWriter(dir, discard(), dlog.NewArtifact(&log)).WithWorkers(2)
	stats, err := w.Write(context.Background(), arts)
	require.NoError(t, err)
	assert.Equal(t, Stats{Written: 3, Bytes: 6}, stats)

	got, err := os.ReadFile(filepath.Join(dir, "src", "deep", "b.cpp"))
	require.NoError(t, err)
	assert.Equal(t, "bb", string(got))

	arts[0].Content = []byte("changed")
	stats, err = NewWriter(dir, discard(), nil).Write(context.Background(), arts)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Written)
	assert.Equal(t, 2, stats.Unchanged)
	assert.Contains(t, log.String(), "src/deep/b.cpp")
}

func TestWriterRejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name string
		arts []Artifact
		want string
	}{
		{
			name: "placeholder",
			arts: []Artifact{{Path: "ok.h", Content: []byte("fine")}, {Path: "bad.h", Content: []byte("<PREFIX>")}},
			want: "unfilled placeholder",
		},
		{
			name: "duplicate path",
			arts: []Artifact{{Path: "ok.h", Content: []byte("a")}, {Path: "ok.h", Content: []byte("b")}},
			want: "generated twice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			_, err := NewWriter(dir, discard(), nil).Write(context.Background(), tt.arts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			_, statErr := os.Stat(dir)
			assert.True(t, os.IsNotExist(statErr), "nothing may be written")
		})
	}
}

func TestWriterCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewWriter(t.TempDir(), discard(), nil).WithWorkers(1).Write(ctx, []Artifact{{Path: "a", Content: []byte("a")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSort(t *testing.T) {
	arts := []Artifact{{Path: "b"}, {Path: "a/z"}, {Path: "B"}}
	Sort(arts)
	assert.Equal(t, []Artifact{{Path: "B"}, {Path: "a/z"}, {Path: "b"}}, arts)
}
