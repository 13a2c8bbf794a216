// ABOUTME: Inspect command reporting on a heap snapshot dump
// ABOUTME: Tabulates each value with its retained count and shortest path to a root

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/prateek/marksweep/gc"
	"github.com/prateek/marksweep/graph"
	"github.com/prateek/marksweep/heapdump"
	"github.com/prateek/marksweep/render"
)

var inspectCommand = &cli.Command{
	Name:      "inspect",
	Usage:     "explain what keeps each value of a heap dump alive",
	ArgsUsage: "<dump.json>",
	Action:    inspect,
}

// inspectDepth caps how much of a value the table prints; shared
// substructure would otherwise expand exponentially
const inspectDepth = 6

// graphResolver lets render print values straight from a snapshot
type graphResolver struct {
	g graph.Graph
}

func (r graphResolver) Lookup(ref gc.Ref) (gc.Value, error) {
	obj := r.g.GetObject(graph.ObjID(ref))
	if obj == nil {
		return gc.Value{}, fmt.Errorf("object %v: %w", ref, gc.ErrStaleRef)
	}
	switch obj.Kind {
	case graph.KindInt:
		return gc.Value{Kind: gc.KindInteger, Int: obj.Int}, nil
	case graph.KindPair:
		return gc.Value{Kind: gc.KindPair, Head: gc.Ref(obj.Ptrs[0]), Tail: gc.Ref(obj.Ptrs[1])}, nil
	}
	return gc.Value{}, fmt.Errorf("object %v: unknown kind %q", ref, obj.Kind)
}

func inspect(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("inspect: expected one dump file, got %d arguments", ctx.NArg())
	}
	f, err := os.Open(ctx.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	g, err := heapdump.Open(f)
	if err != nil {
		return err
	}

	retainers := graph.NewRetainers(g)
	retained := graph.RetainedCount(g)
	resolver := graphResolver{g: g}

	rootCount := make(map[graph.ObjID]int)
	for _, id := range g.GetRoots().IDs {
		rootCount[id]++
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Ref", "Kind", "Value", "Roots", "Retained", "Path to root"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	var garbage int
	var renderErr error
	g.ForEachObject(func(obj *graph.Object) {
		var value strings.Builder
		err := render.Fprint(&value, resolver, gc.Ref(obj.ID), render.Options{MaxDepth: inspectDepth})
		if err != nil && renderErr == nil {
			renderErr = err
		}

		path := "unreachable"
		if p, ok := retainers.ShortestPath(obj.ID); ok {
			path = formatPath(p)
		} else {
			garbage++
		}

		count := "-"
		if n, ok := retained[obj.ID]; ok {
			count = strconv.Itoa(n)
		}

		table.Append([]string{
			gc.Ref(obj.ID).String(),
			obj.Kind,
			value.String(),
			strconv.Itoa(rootCount[obj.ID]),
			count,
			path,
		})
	})
	if renderErr != nil {
		return renderErr
	}
	table.Render()

	fmt.Fprintf(ctx.App.Writer, "objects: %d, roots: %d, reachable: %d, garbage: %d\n",
		g.NumObjects(), len(g.GetRoots().IDs), g.NumObjects()-garbage, garbage)
	return nil
}

func formatPath(p graph.Path) string {
	parts := make([]string, len(p.IDs))
	for i, id := range p.IDs {
		parts[i] = gc.Ref(id).String()
	}
	return strings.Join(parts, " <- ")
}
