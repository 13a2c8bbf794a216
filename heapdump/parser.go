// ABOUTME: Parser interface for heap snapshot dump formats
// ABOUTME: Defines the contract for pluggable dump readers

package heapdump

import (
	"io"

	"github.com/prateek/marksweep/graph"
)

// Parser reads one dump format into a snapshot graph
type Parser interface {
	// Name identifies the format, e.g. "json"
	Name() string

	// CanParse checks if this parser can handle the given dump format.
	// The reader holds only a prefix of the dump.
	CanParse(r io.Reader) bool

	// Parse reads the whole dump and builds a graph
	Parse(r io.Reader) (graph.Graph, error)
}
