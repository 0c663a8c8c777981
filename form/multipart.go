package form

import (
	"io"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/dchest/uniuri"
	"github.com/originhttp/core/status"
)

// DecodeMultipart tokenizes a multipart/form-data body (spec §4.6). Inline
// fields decode to string entries; file parts are streamed to a temp file
// under tempDir, named with a random uniuri suffix so concurrent uploads on
// different connections never collide, and recorded as a FileValue.
//
// maxSize bounds the total bytes read across all parts combined, mirroring
// the plain-body size cap applied to url-encoded bodies.
func DecodeMultipart(body io.Reader, boundary, tempDir string, prealloc int, maxSize uint64) (*Form, error) {
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	// The per-part limits below pass budget+1 to io.LimitReader as an int64;
	// clamping keeps that from overflowing when maxSize is config.NoBodyLimit.
	if maxSize > math.MaxInt64-1 {
		maxSize = math.MaxInt64 - 1
	}

	reader := multipart.NewReader(body, boundary)
	f := New(prealloc)
	var total uint64

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			f.cleanup()
			return nil, status.ErrBadMultipart
		}

		name := part.FormName()
		if name == "" {
			part.Close()
			continue
		}

		if filename := part.FileName(); filename != "" {
			entry, n, err := decodeFilePart(part, name, filename, tempDir, maxSize-total)
			part.Close()
			if err != nil {
				f.cleanup()
				return nil, err
			}

			total += n
			f.add(entry)
			continue
		}

		data, n, err := readLimited(part, maxSize-total)
		part.Close()
		if err != nil {
			f.cleanup()
			return nil, err
		}

		total += n
		f.add(Entry{Key: name, Value: string(data)})
	}

	return f, nil
}

func decodeFilePart(part *multipart.Part, fieldName, filename, tempDir string, budget uint64) (Entry, uint64, error) {
	tmp, err := os.CreateTemp(tempDir, "upload-"+uniuri.New()+"-*")
	if err != nil {
		return Entry{}, 0, status.NewError(status.InternalServerError, "cannot create temp file")
	}
	defer tmp.Close()

	n, err := io.Copy(tmp, io.LimitReader(part, int64(budget)+1))
	if err != nil {
		os.Remove(tmp.Name())
		return Entry{}, 0, status.ErrBadMultipart
	}
	if uint64(n) > budget {
		os.Remove(tmp.Name())
		return Entry{}, 0, status.ErrBodyTooLarge
	}

	contentType := part.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return Entry{
		Key: fieldName,
		File: &FileValue{
			TempPath:    tmp.Name(),
			Filename:    filepath.Base(filename),
			ContentType: contentType,
		},
	}, uint64(n), nil
}

func readLimited(r io.Reader, budget uint64) ([]byte, uint64, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(budget)+1))
	if err != nil {
		return nil, 0, status.ErrBadMultipart
	}

	if uint64(len(data)) > budget {
		return nil, 0, status.ErrBodyTooLarge
	}

	return data, uint64(len(data)), nil
}

// cleanup removes any temp files already created for this form, used when
// a later part fails to decode and the whole request is being aborted.
func (f *Form) cleanup() {
	for _, path := range f.TempFiles() {
		os.Remove(path)
	}
}
