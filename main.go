package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"mmusim/config"
	"mmusim/console"
	"mmusim/logger"
	"mmusim/system"
	"mmusim/teletype"

	"github.com/jroimartin/gocui"
)

var (
	configPath = flag.String("config", "", "JSON configuration file")
	batchMode  = flag.Bool("batch", false, "read commands from stdin instead of starting the TUI")
	logPath    = flag.String("log", "", "log file (overrides log_path of the configuration)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	if *logPath != "" {
		cfg.LogPath = *logPath
	}
	l := logger.New(cfg.LogPath)

	if *batchMode {
		if err := runBatch(cfg, l); err != nil {
			log.Fatalln(err)
		}
		return
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln("Couldn't create gui!")
	}
	defer g.Close()

	g.SetManagerFunc(layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		log.Panicln(err)
	}

	// start the shell once the views exist
	g.Update(func(g *gocui.Gui) error {
		return startShell(g, cfg, l)
	})

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
}

// runBatch executes stdin line by line, errors are reported and skipped
func runBatch(cfg config.Config, l *log.Logger) error {
	out := console.NewSimple(os.Stdout)
	sys, err := system.InitializeSystem(cfg, out, l)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := sys.Execute(scanner.Text()); err != nil {
			_ = out.WriteConsole(fmt.Sprintf("error: %v", err))
			if err == system.ErrHalted {
				break
			}
		}
	}
	return scanner.Err()
}

// startShell wires the system to the console and prompt views
func startShell(g *gocui.Gui, cfg config.Config, l *log.Logger) error {
	out, err := console.NewGui(g, "console")
	if err != nil {
		return err
	}
	sys, err := system.InitializeSystem(cfg, out, l)
	if err != nil {
		return err
	}
	_ = out.WriteConsole(fmt.Sprintf("MMU simulator: %d bytes, page size %d. Type help.",
		cfg.Capacity, cfg.PageSize))

	submit := func(line string) {
		_ = out.WriteConsole(". " + line)
		if err := sys.Execute(line); err != nil {
			_ = out.WriteConsole(fmt.Sprintf("error: %v", err))
		}
		updateFrames(g, sys)
	}
	if _, err := teletype.New(g, "prompt", submit); err != nil {
		return err
	}
	updateFrames(g, sys)
	return nil
}

// update frames display
// gocui allows updating the view only through Update
func updateFrames(g *gocui.Gui, sys *system.System) {
	var buf bytes.Buffer
	sys.FrameMap(&buf)
	if sys.IsHalted() {
		buf.WriteString("\nHALTED\n")
	}
	g.Update(func(g *gocui.Gui) error {
		v, err := g.View("frames")
		if err != nil {
			return err
		}
		v.Clear()
		fmt.Fprint(v, buf.String())
		return nil
	})
}

// gocui layout
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	split := maxX - 30
	// left -> console
	if v, err := g.SetView("console", 0, 0, split-1, maxY-4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Console"
		v.Autoscroll = true
		v.Wrap = true
	}

	// right -> frame map
	if v, err := g.SetView("frames", split, 0, maxX-1, maxY-4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Frames"
	}

	// down -> prompt
	if v, err := g.SetView("prompt", 0, maxY-3, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Command"
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
