// ABOUTME: Registry for heap snapshot dump parsers
// ABOUTME: Manages parser plugins and selects the parser for a dump by sniffing its prefix

package heapdump

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/prateek/marksweep/graph"
)

// sniffLen is how much of a dump parsers get to look at in CanParse
const sniffLen = 4096

var (
	// ErrNoParser is returned when no parser can handle the dump format
	ErrNoParser = errors.New("heapdump: no parser found for dump format")

	// ErrUnknownFormat is returned by Lookup for an unregistered name
	ErrUnknownFormat = errors.New("heapdump: unknown format")
)

type parserRegistry struct {
	mu      sync.RWMutex
	parsers []Parser
}

var registry = &parserRegistry{}

// Register adds a parser to the registry. Later registrations with the
// same name replace earlier ones.
func Register(p Parser) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for i, existing := range registry.parsers {
		if existing.Name() == p.Name() {
			registry.parsers[i] = p
			return
		}
	}
	registry.parsers = append(registry.parsers, p)
}

// Lookup returns the registered parser with the given name
func Lookup(name string) (Parser, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	for _, p := range registry.parsers {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Formats lists registered format names in registration order
func Formats() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.parsers))
	for _, p := range registry.parsers {
		names = append(names, p.Name())
	}
	return names
}

// Open reads a dump and returns its graph, using the first registered
// parser that recognises the dump prefix
func Open(r io.Reader) (graph.Graph, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	prefix, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("heapdump: read prefix: %w", err)
	}

	registry.mu.RLock()
	parsers := append([]Parser(nil), registry.parsers...)
	registry.mu.RUnlock()

	for _, p := range parsers {
		if p.CanParse(bytes.NewReader(prefix)) {
			g, err := p.Parse(br)
			if err != nil {
				return nil, fmt.Errorf("heapdump: %s: %w", p.Name(), err)
			}
			return g, nil
		}
	}

	return nil, ErrNoParser
}
