package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalUploadWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	l := NewLocalStorage(dir, "https://shop.example/")

	url, err := l.Upload(context.Background(), "products/abc/main.jpg", "image/jpeg",
		strings.NewReader("fake jpeg bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://shop.example/media/products/abc/main.jpg" {
		t.Fatalf("unexpected url %s", url)
	}

	b, err := os.ReadFile(filepath.Join(dir, "products", "abc", "main.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "fake jpeg bytes" {
		t.Fatal("file content mismatch")
	}
}

func TestLocalUploadRejectsTraversalKeys(t *testing.T) {
	dir := t.TempDir()
	l := NewLocalStorage(dir, "https://shop.example")

	for _, key := range []string{"../escape.jpg", "a/../../b.jpg", "/etc/passwd", "."} {
		if _, err := l.Upload(context.Background(), key, "image/jpeg", strings.NewReader("x")); err == nil {
			t.Errorf("key %q accepted", key)
		}
	}
}
