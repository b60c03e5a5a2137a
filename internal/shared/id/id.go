// Package id provides centralized ID generation for the backend.
//
// Two families of identifiers are produced here:
//   - Resource IDs: opaque, unguessable 128-bit random tokens rendered as
//     32 hex characters. They stand in for filesystem paths in every URL.
//   - Trace IDs: prefixed ULIDs used for request tracing. Sortable and
//     readable in logs, never handed out as resource handles.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ResourceID identifies a registered directory or file
type ResourceID string

// TraceID identifies a traced request
type TraceID string

// SpanID identifies a span within a trace
type SpanID string

const (
	TracePrefix = "trace"
	SpanPrefix  = "span"
)

// ResourceIDLength is the length of a rendered resource ID
const ResourceIDLength = 32

// Generator mints identifiers from a shared entropy source
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{
		entropy: rand.Reader,
	}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// NewResourceID mints a random resource ID.
// Panics only if the entropy source fails, which crypto/rand never does.
func (g *Generator) NewResourceID() ResourceID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	u, err := uuid.NewRandomFromReader(g.entropy)
	if err != nil {
		panic(fmt.Sprintf("id: entropy source failed: %v", err))
	}
	return ResourceID(hex.EncodeToString(u[:]))
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewResourceID mints a resource ID from the default generator
func NewResourceID() ResourceID {
	return Default().NewResourceID()
}

// NewTraceID generates a new trace ID
func NewTraceID() TraceID {
	return TraceID(Default().GenerateWithPrefix(TracePrefix))
}

// NewSpanID generates a new span ID
func NewSpanID() SpanID {
	return SpanID(Default().GenerateWithPrefix(SpanPrefix))
}

func (id ResourceID) String() string { return string(id) }
func (id TraceID) String() string    { return string(id) }
func (id SpanID) String() string     { return string(id) }

// IsResourceID reports whether s has the shape of a resource ID.
// Shape only: a well-formed ID may still be unknown to the registry.
func IsResourceID(s string) bool {
	if len(s) != ResourceIDLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
