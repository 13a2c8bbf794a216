// ABOUTME: JSON dump format for heap snapshots
// ABOUTME: Writes and reads objects and roots, validating references on load

package heapdump

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/prateek/marksweep/graph"
)

// jsonVersion is written into every dump
const jsonVersion = 1

// ErrInvalidDump is returned when a dump decodes but describes an
// impossible heap
var ErrInvalidDump = errors.New("invalid dump")

// JSON reads and writes the JSON dump format
type JSON struct{}

type jsonDump struct {
	Version int           `json:"version"`
	Objects []jsonObject  `json:"objects"`
	Roots   []graph.ObjID `json:"roots"`
}

type jsonObject struct {
	ID   graph.ObjID   `json:"id"`
	Kind string        `json:"kind"`
	Int  int64         `json:"int,omitempty"`
	Ptrs []graph.ObjID `json:"ptrs,omitempty"`
}

// Name implements Parser
func (JSON) Name() string { return "json" }

// CanParse checks if the input looks like a JSON dump. Only a prefix of the
// dump may be available, so it looks for one of the top-level keys rather
// than decoding the whole document.
func (JSON) CanParse(r io.Reader) bool {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}
	head := bytes.TrimSpace(buf[:n])
	if len(head) == 0 || head[0] != '{' {
		return false
	}
	for _, key := range [][]byte{[]byte(`"version"`), []byte(`"objects"`), []byte(`"roots"`)} {
		if bytes.Contains(head, key) {
			return true
		}
	}
	return false
}

// Parse reads a JSON dump and builds a graph
func (JSON) Parse(r io.Reader) (graph.Graph, error) {
	var dump jsonDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if dump.Version > jsonVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidDump, dump.Version)
	}

	known := make(map[graph.ObjID]bool, len(dump.Objects))
	for i, obj := range dump.Objects {
		if obj.ID == 0 {
			return nil, fmt.Errorf("%w: object at index %d missing ID", ErrInvalidDump, i)
		}
		if known[obj.ID] {
			return nil, fmt.Errorf("%w: duplicate object %d", ErrInvalidDump, obj.ID)
		}
		known[obj.ID] = true
	}

	g := graph.NewMemGraph()
	for _, obj := range dump.Objects {
		switch obj.Kind {
		case graph.KindInt:
			if len(obj.Ptrs) != 0 {
				return nil, fmt.Errorf("%w: int %d has references", ErrInvalidDump, obj.ID)
			}
		case graph.KindPair:
			if len(obj.Ptrs) != 2 {
				return nil, fmt.Errorf("%w: pair %d has %d references", ErrInvalidDump, obj.ID, len(obj.Ptrs))
			}
			for _, p := range obj.Ptrs {
				if !known[p] {
					return nil, fmt.Errorf("%w: pair %d references missing object %d", ErrInvalidDump, obj.ID, p)
				}
			}
		default:
			return nil, fmt.Errorf("%w: object %d has unknown kind %q", ErrInvalidDump, obj.ID, obj.Kind)
		}
		g.AddObject(&graph.Object{
			ID:   obj.ID,
			Kind: obj.Kind,
			Int:  obj.Int,
			Ptrs: append([]graph.ObjID(nil), obj.Ptrs...),
		})
	}

	for _, id := range dump.Roots {
		if !known[id] {
			return nil, fmt.Errorf("%w: root references missing object %d", ErrInvalidDump, id)
		}
	}
	// Pairs are built from existing values and never mutated, so a real
	// heap is acyclic. Renderers and analyses rely on that.
	if id, ok := findCycle(dump.Objects); ok {
		return nil, fmt.Errorf("%w: pair %d is part of a reference cycle", ErrInvalidDump, id)
	}
	g.SetRoots(graph.Roots{IDs: dump.Roots})

	return g, nil
}

// findCycle reports an object lying on a reference cycle, walking with an
// explicit stack.
func findCycle(objects []jsonObject) (graph.ObjID, bool) {
	const (
		unvisited = iota
		active
		done
	)
	type frame struct {
		id   graph.ObjID
		next int
	}
	ptrs := make(map[graph.ObjID][]graph.ObjID, len(objects))
	for _, obj := range objects {
		ptrs[obj.ID] = obj.Ptrs
	}
	state := make(map[graph.ObjID]int, len(objects))

	var stack []frame
	for _, start := range objects {
		if state[start.ID] != unvisited {
			continue
		}
		state[start.ID] = active
		stack = append(stack[:0], frame{id: start.ID})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			out := ptrs[top.id]
			if top.next == len(out) {
				state[top.id] = done
				stack = stack[:len(stack)-1]
				continue
			}
			child := out[top.next]
			top.next++
			switch state[child] {
			case active:
				return child, true
			case unvisited:
				state[child] = active
				stack = append(stack, frame{id: child})
			}
		}
	}
	return 0, false
}

// Write encodes g as an indented JSON dump
func (JSON) Write(w io.Writer, g graph.Graph) error {
	dump := jsonDump{
		Version: jsonVersion,
		Objects: make([]jsonObject, 0, g.NumObjects()),
		Roots:   g.GetRoots().IDs,
	}
	if dump.Roots == nil {
		dump.Roots = []graph.ObjID{}
	}
	g.ForEachObject(func(obj *graph.Object) {
		dump.Objects = append(dump.Objects, jsonObject{
			ID:   obj.ID,
			Kind: obj.Kind,
			Int:  obj.Int,
			Ptrs: obj.Ptrs,
		})
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&dump); err != nil {
		return fmt.Errorf("heapdump: encode json: %w", err)
	}
	return nil
}

func init() {
	Register(JSON{})
}
