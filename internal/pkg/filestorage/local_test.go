package filestorage

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	ls, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return ls
}

func TestSaveBytesAndDelete(t *testing.T) {
	ls := newTestStorage(t)

	url, err := ls.SaveBytes([]byte("png-bytes"), ".PNG", FolderGenerated)
	if err != nil {
		t.Fatalf("SaveBytes: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/generated/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	full, err := ls.FullPath(url)
	if err != nil {
		t.Fatalf("FullPath: %v", err)
	}
	data, err := os.ReadFile(full)
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("stored content %q, %v", data, err)
	}

	if err := ls.DeleteFile(url); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	if err := ls.DeleteFile(url); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestSaveBytesRejects(t *testing.T) {
	ls := newTestStorage(t)
	if _, err := ls.SaveBytes([]byte("x"), ".exe", FolderGenerated); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
	if _, err := ls.SaveBytes(nil, ".png", FolderGenerated); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestFullPathRejectsTraversal(t *testing.T) {
	ls := newTestStorage(t)
	for _, u := range []string{"", "http://localhost:8080/other/x.png", "http://localhost:8080/uploads/../../etc/passwd", "/uploads/"} {
		if _, err := ls.FullPath(u); err == nil {
			t.Errorf("FullPath(%q): expected error", u)
		}
	}
}
