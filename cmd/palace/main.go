package main

import (
	"fmt"
	"os"

	"memory-palace/internal/config"
	"memory-palace/internal/debug"
	"memory-palace/internal/environment"
	"memory-palace/internal/fontfetch"
	"memory-palace/internal/geometry"
	"memory-palace/internal/graphics"
	"memory-palace/internal/input"
	"memory-palace/internal/label"
	"memory-palace/internal/logger"
	"memory-palace/internal/registry"
	"memory-palace/internal/resolver"
	"memory-palace/internal/session"
	"memory-palace/internal/shape"
	"memory-palace/internal/store"
)

const fontDir = "assets/fonts"

func main() {
	prefs, _ := config.Load()
	log := logger.New("")

	if _, err := fontfetch.Ensure(fontDir, fontfetch.DefaultFamily); err != nil {
		// Labels fall back to the built-in font.
		log.Logf("font provisioning failed: %v", err)
	}

	st, err := store.Open(prefs.StorePath, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer st.Close()

	records, err := st.Load()
	if err != nil {
		log.Logf("loading saved layout: %v", err)
	}

	palette, err := shape.LoadPalette(prefs.PalettePath)
	if err != nil {
		log.Logf("loading palette: %v", err)
		palette = shape.DefaultPalette()
	}

	visuals := &geometry.Visuals{
		Factory: geometry.NewFactory(),
		Labels:  label.NewRenderer(),
	}
	reg := registry.New(visuals, st, log)
	reg.Restore(records)

	room := environment.Build(prefs.GridVisible)
	src := &input.FallbackSource{}
	sess := session.New(reg, resolver.New(reg), src, palette, room, visuals,
		prefs.MoveSpeed, prefs.RotateSpeed)

	dbg := debug.New()
	dbg.ShowFPS = prefs.ShowFPS
	dbg.ShowMemAlloc = prefs.ShowMemAlloc

	draw := func() {
		sess.Draw()
		dbg.Draw()
	}
	graphics.Run(sess.Update, draw)
}
