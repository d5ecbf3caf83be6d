package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/jinzhu/copier"

	"spacedrive/internal/commands"
	"spacedrive/internal/config"
	"spacedrive/internal/ui"
)

var errShowHide = errors.New("need exactly one of --show or --hide")

// registerToggle adds a command taking --show or --hide.
func registerToggle(reg *commands.Registry, name string, set func(bool)) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	show := fs.Bool("show", false, "show")
	hide := fs.Bool("hide", false, "hide")
	reg.Register(name, "--show | --hide", fs, func([]string) error {
		defer func() { *show, *hide = false, false }()
		if *show == *hide {
			return fmt.Errorf("%s: %w", name, errShowHide)
		}
		set(*show)
		return nil
	})
}

func registerCommands(a *app) {
	reg := a.reg
	registerToggle(reg, "mirror", func(v bool) { a.scene.MirrorVisible = v })
	registerToggle(reg, "stars", func(v bool) { a.scene.StarsVisible = v })
	registerToggle(reg, "fps", func(v bool) { a.debug.ShowFPS = v })
	registerToggle(reg, "memalloc", func(v bool) { a.debug.ShowMemAlloc = v })
	registerToggle(reg, "stats", func(v bool) { a.debug.ShowStats = v })

	reg.Register("help", "list commands", nil, func([]string) error {
		for _, line := range reg.Help() {
			a.log.Log(line)
		}
		return nil
	})
	reg.Register("pause", "keep the drive paused after the terminal closes", nil, func([]string) error {
		a.hold = !a.hold
		if a.hold {
			a.log.Log("drive stays paused after the terminal closes; P resumes")
		} else {
			a.log.Log("drive resumes when the terminal closes")
		}
		return nil
	})
	reg.Register("inspect", "[id|none]  show an object in the inspector; no id picks the nearest ahead", nil, func(args []string) error {
		switch {
		case len(args) == 0:
			id, ok := a.pool.Nearest(a.scene.Viewer())
			if !ok {
				return errors.New("inspect: nothing ahead")
			}
			a.inspect = id
		case args[0] == "none":
			a.inspect = -1
			return nil
		default:
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			if _, ok := a.pool.Object(id); !ok {
				return fmt.Errorf("inspect: no object %d", id)
			}
			a.inspect = id
		}
		title, _ := ui.Describe(a.objects[a.inspect])
		a.log.Log("inspecting " + title)
		return nil
	})
	reg.Register("info", "log pool counters", nil, func([]string) error {
		a.log.Log(statsSummary(a.pool.Stats()))
		return nil
	})
	reg.Register("seed", "<n>  rebuild the pool from seed n", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("seed: usage: cmd seed <n>")
		}
		seed, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		return a.rebuild(seed)
	})
	reg.Register("speed", "<units/s>  set drive speed", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("speed: usage: cmd speed <units/s>")
		}
		v, err := strconv.ParseFloat(args[0], 32)
		if err != nil {
			return fmt.Errorf("speed: %w", err)
		}
		a.scene.Speed = float32(v)
		a.prefs.Drive.Speed = v
		return nil
	})
	reg.Register("save", "write settings to "+config.DefaultPath, nil, func([]string) error {
		p := a.prefs
		p.Drive.Mirror = a.scene.MirrorVisible
		if err := copier.Copy(&p.Debug, a.debug); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		if err := config.Save(config.DefaultPath, p); err != nil {
			return err
		}
		a.log.Log("saved " + config.DefaultPath)
		return nil
	})
}
