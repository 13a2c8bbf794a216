// ABOUTME: Demonstration driver replaying the reference allocation sequence
// ABOUTME: Prints every collection and the root stack, optionally dumping a snapshot

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/prateek/marksweep/gc"
	"github.com/prateek/marksweep/heapdump"
	"github.com/prateek/marksweep/render"
)

var dumpFlag = &cli.StringFlag{
	Name:  "dump",
	Usage: "write a JSON heap snapshot taken after the pair test to this file",
}

var demoCommand = &cli.Command{
	Name:   "demo",
	Usage:  "run the reference allocation sequence",
	Flags:  []cli.Flag{dumpFlag},
	Action: demo,
}

var headingColor = color.New(color.Bold).SprintFunc()

// driver runs the demonstration against one Manager
type driver struct {
	m    *gc.Manager
	out  io.Writer
	opts render.Options
	dump string
}

func demo(ctx *cli.Context) error {
	cfg, err := settings(ctx)
	if err != nil {
		return err
	}
	log := newLogger(ctx, cfg.Level())
	out := ctx.App.Writer

	d := &driver{
		out:  out,
		opts: render.Options{Color: cfg.Color},
		dump: ctx.String(dumpFlag.Name),
	}
	d.m = gc.New(cfg.GC(log, func(s gc.Stats) {
		fmt.Fprintln(out, s)
	}))

	log.Debug("Starting demo", "capacity", cfg.StackCapacity, "baseline", cfg.BaselineThreshold)
	if err := d.run(); err != nil {
		if errors.Is(err, gc.ErrStackOverflow) || errors.Is(err, gc.ErrStackUnderflow) {
			return fmt.Errorf("precondition violated: %w", err)
		}
		return err
	}
	return nil
}

func (d *driver) heading(title string) {
	if d.opts.Color {
		title = headingColor(title)
	}
	fmt.Fprintln(d.out, title)
}

func (d *driver) pushInts(vals ...int64) error {
	for _, v := range vals {
		if _, err := d.m.PushInteger(v); err != nil {
			return err
		}
	}
	return nil
}

func (d *driver) pop(n int) error {
	for i := 0; i < n; i++ {
		if _, err := d.m.PopRoot(); err != nil {
			return err
		}
	}
	return nil
}

func (d *driver) run() error {
	d.heading("Test 1: Simple int allocation")
	if err := d.pushInts(0, 1, 2, 3, 4); err != nil {
		return err
	}
	d.m.Collect()
	fmt.Fprintln(d.out)

	d.heading("Test 2: Pop some values (unreachable)")
	if err := d.pop(2); err != nil {
		return err
	}
	d.m.Collect()
	fmt.Fprintln(d.out)

	d.heading("Test 3: Create pairs")
	if err := d.pushInts(1, 2); err != nil {
		return err
	}
	if _, err := d.m.AllocatePair(); err != nil {
		return err
	}
	if err := d.pushInts(3); err != nil {
		return err
	}
	if _, err := d.m.AllocatePair(); err != nil {
		return err
	}
	d.m.Collect()
	fmt.Fprintln(d.out)

	if err := d.writeDump(); err != nil {
		return err
	}

	d.heading("Stack contents:")
	for _, ref := range d.m.Roots() {
		if err := render.Fprint(d.out, d.m, ref, d.opts); err != nil {
			return err
		}
		fmt.Fprintln(d.out)
	}
	fmt.Fprintln(d.out)

	d.heading("Test 4: Make unreachable pairs")
	if err := d.pop(1); err != nil {
		return err
	}
	d.m.Collect()
	fmt.Fprintln(d.out)

	d.heading("Test 5: Force GC by exceeding the threshold")
	for i := 0; i < 30; i++ {
		if err := d.pushInts(int64(i)); err != nil {
			return err
		}
	}
	fmt.Fprintln(d.out)

	d.m.Teardown()
	return nil
}

func (d *driver) writeDump() error {
	if d.dump == "" {
		return nil
	}
	f, err := os.Create(d.dump)
	if err != nil {
		return fmt.Errorf("create dump: %w", err)
	}
	defer f.Close()

	if err := (heapdump.JSON{}).Write(f, d.m.Snapshot()); err != nil {
		return err
	}
	return f.Close()
}
