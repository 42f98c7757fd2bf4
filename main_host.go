package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"sparkcalc/app"
	"sparkcalc/hal"
	"sparkcalc/internal/buildinfo"
	"sparkcalc/sparkos/calc"
)

const shutdownTimeout = 2 * time.Second

func main() {
	var cfg hal.HeadlessConfig
	var win hal.WindowConfig
	var mode string
	var version bool
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Keys, "keys", "", "Headless key script; '=' is Enter, '<' is Backspace.")
	flag.StringVar(&mode, "mode", "standard", "Start mode: standard or scientific.")
	flag.IntVar(&win.Scale, "scale", 2, "Window scale factor.")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	m, ok := calc.ParseMode(mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		os.Exit(2)
	}

	var sys *app.System
	newApp := func(h hal.HAL) func() error {
		sys = app.Start(h, app.Config{Mode: m})
		return sys.Step
	}

	var err error
	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = hal.RunHeadless(ctx, newApp, cfg)
		stop()
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(newApp, win)
	}

	if sys != nil {
		if serr := sys.Shutdown(shutdownTimeout); serr != nil && err == nil {
			err = serr
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
