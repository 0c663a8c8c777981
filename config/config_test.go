package config

import (
	"math"
	"testing"

	"github.com/originhttp/core/mime"
)

func TestDefaultIsInternallyConsistent(t *testing.T) {
	cfg := Default()

	if cfg.URI.RequestLineSize.Default > cfg.URI.RequestLineSize.Maximal {
		t.Fatalf("RequestLineSize default %d exceeds maximal %d",
			cfg.URI.RequestLineSize.Default, cfg.URI.RequestLineSize.Maximal)
	}
	if cfg.Headers.Number.Default > cfg.Headers.Number.Maximal {
		t.Fatalf("Headers.Number default %d exceeds maximal %d",
			cfg.Headers.Number.Default, cfg.Headers.Number.Maximal)
	}
	if cfg.Headers.ValueLength.Default > cfg.Headers.ValueLength.Maximal {
		t.Fatalf("Headers.ValueLength default %d exceeds maximal %d",
			cfg.Headers.ValueLength.Default, cfg.Headers.ValueLength.Maximal)
	}
	if !cfg.PersistentConnections {
		t.Fatal("Default() should enable persistent connections")
	}
	if cfg.DefaultContentType != mime.Plain {
		t.Fatalf("DefaultContentType = %q, want %q", cfg.DefaultContentType, mime.Plain)
	}
	if cfg.NET.ReadBufferSize <= 0 || cfg.NET.ReadTimeout <= 0 || cfg.NET.WriteTimeout <= 0 {
		t.Fatal("Default() left a zero NET timeout or buffer size")
	}
}

func TestDefaultCallsAreIndependent(t *testing.T) {
	a := Default()
	b := Default()

	a.Name = "mutated"
	a.Body.MaxSize = 1

	if b.Name == "mutated" || b.Body.MaxSize == 1 {
		t.Fatal("Default() calls share state; mutating one affected the other")
	}
}

func TestNoBodyLimitIsMaxUint64(t *testing.T) {
	if NoBodyLimit != uint64(math.MaxUint64) {
		t.Fatalf("NoBodyLimit = %d, want %d", NoBodyLimit, uint64(math.MaxUint64))
	}
}
