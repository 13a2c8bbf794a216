// ABOUTME: Textual rendering of managed values
// ABOUTME: Integers print as their scalar, pairs as (head, tail), optionally coloured

// Package render prints values held by a gc.Manager. It only reads values
// and plays no part in memory management.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/prateek/marksweep/gc"
)

var (
	numberColor  = color.New(color.FgRed).SprintFunc()
	specialColor = color.New(color.Bold).SprintFunc()
)

// Resolver gives read access to values; *gc.Manager implements it
type Resolver interface {
	Lookup(ref gc.Ref) (gc.Value, error)
}

// Options controls rendering
type Options struct {
	Color    bool // wrap scalars and punctuation in terminal colour codes
	MaxDepth int  // pairs nested deeper print as (...); 0 means no limit
}

// ErrCycle is returned when a pair contains itself. Managed heaps never
// do; resolvers backed by hand-built graphs can.
var ErrCycle = errors.New("render: reference cycle")

type printer struct {
	r      Resolver
	w      io.Writer
	opts   Options
	err    error
	active map[gc.Ref]bool // pairs currently being printed
}

// Fprint writes the rendering of ref to w
func Fprint(w io.Writer, r Resolver, ref gc.Ref, opts Options) error {
	p := &printer{r: r, w: w, opts: opts, active: make(map[gc.Ref]bool)}
	p.value(ref, 0)
	return p.err
}

// Sprint returns the rendering of ref without colour
func Sprint(r Resolver, ref gc.Ref) (string, error) {
	var sb strings.Builder
	if err := Fprint(&sb, r, ref, Options{}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (p *printer) value(ref gc.Ref, level int) {
	if p.err != nil {
		return
	}
	v, err := p.r.Lookup(ref)
	if err != nil {
		p.err = fmt.Errorf("render %v: %w", ref, err)
		return
	}

	switch v.Kind {
	case gc.KindInteger:
		p.emit(strconv.FormatInt(v.Int, 10), numberColor)
	case gc.KindPair:
		if p.opts.MaxDepth > 0 && level >= p.opts.MaxDepth {
			p.emit("(...)", specialColor)
			return
		}
		if p.active[ref] {
			p.err = fmt.Errorf("render %v: %w", ref, ErrCycle)
			return
		}
		p.active[ref] = true
		p.emit("(", specialColor)
		p.value(v.Head, level+1)
		p.emit(", ", nil)
		p.value(v.Tail, level+1)
		p.emit(")", specialColor)
		delete(p.active, ref)
	default:
		p.err = fmt.Errorf("render %v: unknown kind %v", ref, v.Kind)
	}
}

func (p *printer) emit(s string, paint func(...interface{}) string) {
	if p.err != nil {
		return
	}
	if p.opts.Color && paint != nil {
		s = paint(s)
	}
	_, p.err = io.WriteString(p.w, s)
}
