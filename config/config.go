// Package config holds process-wide tunables threaded through the Acceptor
// (spec §6 "Configuration surface" and "Process-wide tunables").
package config

import (
	"io"
	"math"
	"time"

	"github.com/originhttp/core/mime"
)

// Setting is the teacher's generic default/maximal pair, kept for the
// handful of knobs that are naturally "start here, never exceed there":
// header count, header value length, request-line length.
type Setting[T int | int64 | uint64] struct {
	Default, Maximal T
}

type URI struct {
	// RequestLineSize bounds the buffer used to read the request line.
	RequestLineSize Setting[int]
	// ParamsPrealloc is not read by wire.ParseQuery, which sizes parsed GET
	// parameters from the number of '&'-separated pairs in the query.
	ParamsPrealloc int
}

type Headers struct {
	// Number bounds how many distinct header names are accepted.
	Number Setting[int]
	// ValueLength bounds a single header's value length.
	ValueLength Setting[int]
	CookiesPrealloc int
}

type Body struct {
	// MaxSize is the hard cap on a request body, chunked or not. Use
	// math.MaxUint64 to disable the check.
	MaxSize uint64
	Form    BodyForm
}

type BodyForm struct {
	EntriesPrealloc    int
	DefaultCoding      mime.Charset
	DefaultContentType mime.MIME
	// TempDir is where multipart file uploads are staged (spec §6 "default
	// tmp-file directory"). Empty means os.TempDir().
	TempDir string
	// SweepInterval controls how often form.Sweeper clears orphaned
	// multipart temp files. Zero disables the sweeper.
	SweepInterval time.Duration
}

type NET struct {
	ReadBufferSize int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ListenBacklog  int
	// HeaderTap, if non-nil, receives a copy of every parsed/emitted header
	// line for debugging (spec §6 "header tap").
	HeaderTap io.Writer
}

// Taskmaster holds thread-per-connection limits. acceptor.New does not read
// them (it installs taskmaster.SingleThreaded); they take effect only when
// copied into a taskmaster.ThreadPerConnection.
type Taskmaster struct {
	MaxThreadCount int
	// MaxAcceptCount, if > 0, makes ThreadPerConnection answer 503 to every
	// connection after that many have been admitted in total; the accept
	// loop itself keeps running.
	MaxAcceptCount int
}

type Logging struct {
	LogErrors               bool
	LogWarnings             bool
	LogBacktraces           bool
	ShowErrorsInErrorPage   bool
	ShowBacktracesInErrorPage bool
}

// Config groups every tunable the Acceptor and its collaborators consult.
// Always start from Default() and override fields; a zero-value Config will
// misbehave (zero buffers, zero timeouts).
type Config struct {
	URI         URI
	Headers     Headers
	Body        Body
	NET         NET
	Taskmaster  Taskmaster
	Logging     Logging
	Name        string
	PersistentConnections bool
	DefaultContentType    mime.MIME
	DefaultCharset        mime.Charset
}

// Default mirrors the teacher's config.Default(): conservative defaults,
// permissive maximums.
func Default() *Config {
	return &Config{
		URI: URI{
			RequestLineSize: Setting[int]{Default: 2 * 1024, Maximal: 16 * 1024},
			ParamsPrealloc:  5,
		},
		Headers: Headers{
			Number:          Setting[int]{Default: 10, Maximal: 100},
			ValueLength:     Setting[int]{Default: 4096, Maximal: 8192},
			CookiesPrealloc: 5,
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024,
			Form: BodyForm{
				EntriesPrealloc:    8,
				DefaultCoding:      mime.UTF8,
				DefaultContentType: mime.Plain,
				SweepInterval:      10 * time.Minute,
			},
		},
		NET: NET{
			ReadBufferSize: 4 * 1024,
			ReadTimeout:    90 * time.Second,
			WriteTimeout:   90 * time.Second,
			ListenBacklog:  50,
		},
		Taskmaster: Taskmaster{
			MaxThreadCount: 512,
		},
		Logging: Logging{
			LogErrors:   true,
			LogWarnings: true,
		},
		Name:                  "origin/1.0",
		PersistentConnections: true,
		DefaultContentType:    mime.Plain,
		DefaultCharset:        mime.UTF8,
	}
}

// NoBodyLimit is a convenience value for Body.MaxSize meaning "unbounded".
const NoBodyLimit = uint64(math.MaxUint64)
