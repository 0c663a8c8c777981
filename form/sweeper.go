package form

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically clears multipart temp files left behind under
// tempDir. request.Request.CleanupTempFiles already deletes temp files at
// request end regardless of exit path; this is a defense-in-depth backstop
// for the case the process is killed mid-request, before CleanupTempFiles
// runs.
//
// Files are matched by the "upload-" prefix DecodeMultipart uses and are
// only removed once older than 2*interval, so an upload still legitimately
// in flight is never swept.
type Sweeper struct {
	tempDir  string
	interval time.Duration
	cron     *cron.Cron
}

func NewSweeper(tempDir string, interval time.Duration) *Sweeper {
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	return &Sweeper{tempDir: tempDir, interval: interval}
}

// Start schedules the sweep. It's a no-op if interval is zero.
func (s *Sweeper) Start() {
	if s.interval <= 0 {
		return
	}

	s.cron = cron.New()
	spec := "@every " + s.interval.String()
	_, _ = s.cron.AddFunc(spec, s.sweep)
	s.cron.Start()
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Sweeper) sweep() {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-2 * s.interval)

	for _, entry := range entries {
		if entry.IsDir() || len(entry.Name()) < 7 || entry.Name()[:7] != "upload-" {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		os.Remove(filepath.Join(s.tempDir, entry.Name()))
	}
}
