package archive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oxtoacart/bpool"

	"github.com/sir_venger/media_archive/internal/models"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	return New(Deps{Root: t.TempDir()})
}

func TestSaveStream_RoundTrip(t *testing.T) {
	a := newTestArchive(t)
	payload := bytes.Repeat([]byte("0123456789abcdef"), 1024) // 16 KiB

	n, err := a.SaveStream(context.Background(), "clip.mp4", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != int64(len(payload)) {
		t.Fatalf("written %d bytes, want %d", n, len(payload))
	}

	rc, size, err := a.OpenStream(context.Background(), "clip.mp4")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	if size != int64(len(payload)) {
		t.Fatalf("size %d, want %d", size, len(payload))
	}
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("content mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}

func TestSaveStream_EmptyFile(t *testing.T) {
	a := newTestArchive(t)

	n, err := a.SaveStream(context.Background(), "empty.mp4", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != 0 {
		t.Fatalf("written %d bytes, want 0", n)
	}

	names, err := a.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 || names[0] != "empty.mp4" {
		t.Fatalf("list %v, want [empty.mp4]", names)
	}
}

func TestSaveStream_OverwritesSameName(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	if _, err := a.SaveStream(ctx, "clip.mp4", bytes.NewReader(bytes.Repeat([]byte{0xAA}, 4096))); err != nil {
		t.Fatal(err)
	}
	if _, err := a.SaveStream(ctx, "clip.mp4", bytes.NewReader([]byte("short"))); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(filepath.Join(a.Root, "clip.mp4"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "short" {
		t.Fatalf("got %q after overwrite, want %q", got, "short")
	}
}

// chunkRecorder запоминает размер буфера каждого Read, чтобы проверить почанковое копирование.
type chunkRecorder struct {
	inner  io.Reader
	reads  int
	maxLen int
}

func (r *chunkRecorder) Read(p []byte) (int, error) {
	r.reads++
	if len(p) > r.maxLen {
		r.maxLen = len(p)
	}
	return r.inner.Read(p)
}

func TestSaveStream_CopiesInBoundedChunks(t *testing.T) {
	const chunk = 8
	a := New(Deps{
		Root: t.TempDir(),
		Pool: bpool.NewBytePool(2, chunk),
	})

	payload := bytes.Repeat([]byte("x"), 10*chunk+3)
	rec := &chunkRecorder{inner: bytes.NewReader(payload)}

	if _, err := a.SaveStream(context.Background(), "big.bin", rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Весь поток должен пройти через буфер пула, а не через один большой срез.
	if rec.maxLen != chunk {
		t.Fatalf("max read buffer %d, want %d", rec.maxLen, chunk)
	}
	if rec.reads < len(payload)/chunk {
		t.Fatalf("only %d reads for %d bytes, expected at least %d", rec.reads, len(payload), len(payload)/chunk)
	}

	got, err := os.ReadFile(filepath.Join(a.Root, "big.bin"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("content mismatch after chunked copy")
	}
}

func TestSaveStream_RejectsBadNames(t *testing.T) {
	a := newTestArchive(t)

	for _, name := range []string{"", "../evil.mp4", "a/b.mp4", `a\b.mp4`, "a..b"} {
		if _, err := a.SaveStream(context.Background(), name, bytes.NewReader([]byte("x"))); !errors.Is(err, models.ErrBadRequest) {
			t.Fatalf("name %q: got %v, want ErrBadRequest", name, err)
		}
	}
}

func TestSaveStream_KeepsPartialFileOnReaderFailure(t *testing.T) {
	a := newTestArchive(t)
	boom := errors.New("stream interrupted")

	r := io.MultiReader(bytes.NewReader(bytes.Repeat([]byte{0x01}, 512)), failingReader{err: boom})
	if _, err := a.SaveStream(context.Background(), "partial.mp4", r); !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped reader error", err)
	}

	// Частично записанный файл остаётся на диске: откат не выполняется.
	if _, err := os.Stat(filepath.Join(a.Root, "partial.mp4")); err != nil {
		t.Fatalf("partial file missing: %v", err)
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestOpenStream_NotFound(t *testing.T) {
	a := newTestArchive(t)

	if _, _, err := a.OpenStream(context.Background(), "missing.mp4"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	// Невалидные имена на чтении выглядят как отсутствующие файлы.
	if _, _, err := a.OpenStream(context.Background(), "../etc/passwd"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for traversal name", err)
	}
}

func TestDelete_TwiceAndListEffect(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	if _, err := a.SaveStream(ctx, "gone.mp4", bytes.NewReader([]byte("data"))); err != nil {
		t.Fatal(err)
	}

	if err := a.Delete(ctx, "gone.mp4"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := a.Delete(ctx, "gone.mp4"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}

	names, err := a.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatalf("list %v after delete, want empty", names)
	}
	if _, _, err := a.OpenStream(ctx, "gone.mp4"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("stream after delete: got %v, want ErrNotFound", err)
	}
}

func TestList_CreatesDirAndIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "not-yet-created")
	a := New(Deps{Root: root})
	ctx := context.Background()

	first, err := a.List(ctx)
	if err != nil {
		t.Fatalf("list on absent dir: %v", err)
	}
	if first == nil || len(first) != 0 {
		t.Fatalf("want empty non-nil listing, got %#v", first)
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("archive dir not created: %v", err)
	}

	if _, err := a.SaveStream(ctx, "a.mp4", bytes.NewReader([]byte("a"))); err != nil {
		t.Fatal(err)
	}
	if _, err := a.SaveStream(ctx, "b.mp4", bytes.NewReader([]byte("b"))); err != nil {
		t.Fatal(err)
	}

	one, err := a.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	two, err := a.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 2 || len(two) != 2 {
		t.Fatalf("listings %v / %v, want two entries each", one, two)
	}
	if !sameSet(one, two) {
		t.Fatalf("listings differ without writes: %v vs %v", one, two)
	}
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}

func TestStats(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	st, err := a.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Files != 0 || st.TotalBytes != 0 {
		t.Fatalf("empty archive stats %+v", st)
	}

	if _, err := a.SaveStream(ctx, "a.bin", bytes.NewReader(make([]byte, 100))); err != nil {
		t.Fatal(err)
	}
	if _, err := a.SaveStream(ctx, "b.bin", bytes.NewReader(make([]byte, 28))); err != nil {
		t.Fatal(err)
	}

	st, err = a.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Files != 2 || st.TotalBytes != 128 {
		t.Fatalf("stats %+v, want 2 files / 128 bytes", st)
	}
}

func TestStartMonitor_StopIsIdempotent(t *testing.T) {
	a := newTestArchive(t)

	stop := a.StartMonitor(0)
	stop() // нулевой интервал: монитор не запускался, остановка безвредна

	stop = a.StartMonitor(time.Minute)
	stop()
	stop()
}
