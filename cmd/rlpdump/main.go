// rlpdump is a command line tool for encoding, decoding and inspecting
// canonical RLP data.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PigCharid/rlpkit/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	maxDepthFlag = &cli.IntFlag{
		Name:  "maxdepth",
		Usage: "Maximum list nesting depth",
	}
	maxSizeFlag = &cli.IntFlag{
		Name:  "maxsize",
		Usage: "Maximum input size in bytes",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored output",
	}
)

func newApp() *cli.App {
	app := &cli.App{
		Name:        filepath.Base(os.Args[0]),
		Usage:       "RLP encoding and decoding tool",
		Writer:      os.Stdout,
		ErrWriter:   os.Stderr,
		HideVersion: true,
		Flags: []cli.Flag{
			configFileFlag,
			maxDepthFlag,
			maxSizeFlag,
			verbosityFlag,
			noColorFlag,
		},
		Commands: []*cli.Command{
			encodeCommand,
			decodeCommand,
			lengthCommand,
			hashCommand,
			inspectCommand,
			dumpConfigCommand,
		},
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		setupLogging(ctx.App.ErrWriter, cfg.Log)
		color.NoColor = cfg.Log.NoColor || !isTerminal(ctx.App.Writer)
		log.Debug("Loaded configuration", "maxdepth", cfg.Codec.MaxDepth, "maxsize", cfg.Codec.MaxInputSize)
		return nil
	}
	app.CommandNotFound = func(ctx *cli.Context, cmd string) {
		fmt.Fprintf(ctx.App.ErrWriter, "No such command: %s\n", cmd)
		os.Exit(1)
	}
	return app
}

func main() {
	exit(newApp().Run(os.Args))
}

// setupLogging installs the root log handler. Colored output is only used
// when the destination is a terminal.
func setupLogging(w io.Writer, cfg logConfig) {
	usecolor := !cfg.NoColor && isTerminal(w)
	output := w
	if usecolor && w == os.Stderr {
		output = colorable.NewColorableStderr()
	}
	// trace output carries the file:line of each record
	log.PrintOrigins(cfg.Verbosity >= int(log.LvlTrace))
	// 0表示不输出任何日志
	if cfg.Verbosity <= 0 {
		log.Root().SetHandler(log.DiscardHandler())
		return
	}
	lvl := log.Lvl(cfg.Verbosity)
	if lvl > log.LvlTrace {
		lvl = log.LvlTrace
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(output, log.TerminalFormat(usecolor))))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func exit(err interface{}) {
	if err == nil {
		os.Exit(0)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
