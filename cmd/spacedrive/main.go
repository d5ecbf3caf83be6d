package main

import (
	"fmt"
	"os"

	"spacedrive/internal/config"
	"spacedrive/internal/env"
	"spacedrive/internal/graphics"
	"spacedrive/internal/logger"
)

func main() {
	log := logger.New(logger.DefaultPath)
	if keys, err := env.Load(".env"); err != nil {
		log.Logf("env: %v", err)
	} else if len(keys) > 0 {
		log.Logf("env: loaded %d variable(s) from .env", len(keys))
	}

	prefs, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Logf("%v (using defaults)", err)
	}
	if err := prefs.ApplyEnv(os.LookupEnv); err != nil {
		log.Log(err.Error())
	}

	a, err := newApp(prefs, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w := prefs.Window
	graphics.Run(graphics.Window{
		Title:      w.Title,
		Width:      w.Width,
		Height:     w.Height,
		Fullscreen: w.Fullscreen,
		TargetFPS:  w.TargetFPS,
	}, graphics.Loop{
		Init:      a.init,
		Update:    a.update,
		Offscreen: a.offscreen,
		Draw:      a.draw,
		Close:     a.close,
	})
}
