package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/thoreinstein/cec/internal/errors"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"successful write", []byte("hello world\n"), 0644},
		{"empty data", []byte{}, 0644},
		{"private file", []byte(`{"apiKey":"secret"}`), 0600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "test-file")

			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != tt.perm {
				t.Errorf("permissions = %o, want %o", gotPerm, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "subdir", "file.txt")

	if err := AtomicWriteFile(path, []byte("data"), 0600); err == nil {
		t.Error("AtomicWriteFile() expected error for nonexistent directory")
	}
}

func TestAtomicWriteFile_CrashBeforeRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smartlead.json")

	original := []byte(`{"apiKey":"original"}` + "\n")
	if err := os.WriteFile(path, original, 0600); err != nil {
		t.Fatalf("creating original file: %v", err)
	}

	crash := errors.New("simulated crash")
	rename = func(_, _ string) error { return crash }
	t.Cleanup(func() { rename = os.Rename })

	err := AtomicWriteFile(path, []byte(`{"apiKey":"replacement-that-never-lands"}`), 0600)
	if !errors.Is(err, crash) {
		t.Fatalf("AtomicWriteFile() error = %v, want simulated crash", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != string(original) {
		t.Errorf("original file modified: got %q, want %q", got, original)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantJSON string
		wantErr  bool
	}{
		{
			name:     "map",
			value:    map[string]string{"apiKey": "k"},
			wantJSON: "{\n  \"apiKey\": \"k\"\n}\n",
		},
		{
			name:     "struct",
			value:    struct{ Name string }{Name: "test"},
			wantJSON: "{\n  \"Name\": \"test\"\n}\n",
		},
		{
			name:    "unmarshalable channel",
			value:   make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "test.json")

			err := AtomicWriteJSON(path, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AtomicWriteJSON() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if _, err := os.Stat(path); err == nil {
					t.Error("file should not exist after marshal error")
				}
				return
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("content = %q, want %q", got, tt.wantJSON)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != PrivatePerm {
				t.Errorf("permissions = %o, want %o", gotPerm, PrivatePerm)
			}
		})
	}
}

func TestWithLock_SerializesWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter")

	var (
		wg     sync.WaitGroup
		inside int
		maxIn  int
		mu     sync.Mutex
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithLock(path, func() error {
				mu.Lock()
				inside++
				if inside > maxIn {
					maxIn = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("WithLock() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if maxIn != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxIn)
	}
}

func TestWithLock_PropagatesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	want := errors.New("inner failure")

	if err := WithLock(path, func() error { return want }); !errors.Is(err, want) {
		t.Errorf("WithLock() error = %v, want %v", err, want)
	}
}
