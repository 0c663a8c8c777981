package form

import (
	"bytes"
	"mime/multipart"
	"os"
	"testing"

	"github.com/originhttp/core/mime"
)

func TestDecodeURLEncoded(t *testing.T) {
	f, err := DecodeURLEncoded([]byte("name=Ann+Onymous&tags=a&tags=b"), mime.UTF8, 4)
	if err != nil {
		t.Fatalf("DecodeURLEncoded: %v", err)
	}

	name, ok := f.Get("name")
	if !ok || name != "Ann Onymous" {
		t.Fatalf("Get(name) = %q, %v, want %q, true", name, ok, "Ann Onymous")
	}

	entries := f.All()
	tagCount := 0
	for _, e := range entries {
		if e.Key == "tags" {
			tagCount++
		}
	}
	if tagCount != 2 {
		t.Fatalf("expected 2 duplicate 'tags' entries preserved, got %d", tagCount)
	}
}

func TestDecodeURLEncodedEmptyBody(t *testing.T) {
	f, err := DecodeURLEncoded(nil, mime.UTF8, 4)
	if err != nil {
		t.Fatalf("DecodeURLEncoded: %v", err)
	}

	if len(f.All()) != 0 {
		t.Fatalf("expected an empty form, got %d entries", len(f.All()))
	}
}

func TestDecodeMultipartFieldAndFile(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("title", "hello"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}

	fw, err := w.CreateFormFile("upload", "note.txt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write([]byte("temp file contents")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dir := t.TempDir()
	f, err := DecodeMultipart(&body, w.Boundary(), dir, 4, 1<<20)
	if err != nil {
		t.Fatalf("DecodeMultipart: %v", err)
	}

	title, ok := f.Get("title")
	if !ok || title != "hello" {
		t.Fatalf("Get(title) = %q, %v", title, ok)
	}

	file, ok := f.File("upload")
	if !ok {
		t.Fatal("File(upload) not found")
	}

	contents, err := os.ReadFile(file.TempPath)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(contents) != "temp file contents" {
		t.Fatalf("temp file contents = %q", contents)
	}

	if len(f.TempFiles()) != 1 || f.TempFiles()[0] != file.TempPath {
		t.Fatalf("TempFiles() = %v", f.TempFiles())
	}

	os.Remove(file.TempPath)
}

func TestDecodeMultipartTooLarge(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fw, err := w.CreateFormFile("upload", "big.bin")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(bytes.Repeat([]byte("x"), 64)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dir := t.TempDir()
	f, err := DecodeMultipart(&body, w.Boundary(), dir, 4, 8)
	if err == nil {
		t.Fatal("expected an error for a body exceeding maxSize")
	}
	if f != nil {
		t.Fatal("expected a nil Form on error")
	}

	leftover, _ := os.ReadDir(dir)
	if len(leftover) != 0 {
		t.Fatalf("expected the temp file to be cleaned up, found %v", leftover)
	}
}
