package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/PigCharid/rlpkit/rlp"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

var dumpConfigCommand = &cli.Command{
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "",
	Description: `The dumpconfig command shows the effective configuration in TOML format.`,
	Action:      dumpConfig,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type logConfig struct {
	Verbosity int
	NoColor   bool
}

type rlpdumpConfig struct {
	Codec rlp.Config
	Log   logConfig
}

func defaultConfig() rlpdumpConfig {
	return rlpdumpConfig{
		Codec: rlp.DefaultConfig,
		Log:   logConfig{Verbosity: 2},
	}
}

func loadConfig(file string, cfg *rlpdumpConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig assembles the configuration from defaults, the config file and
// command line flags, in that order of precedence.
func makeConfig(ctx *cli.Context) (rlpdumpConfig, error) {
	cfg := defaultConfig()
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(maxDepthFlag.Name) {
		cfg.Codec.MaxDepth = ctx.Int(maxDepthFlag.Name)
	}
	if ctx.IsSet(maxSizeFlag.Name) {
		cfg.Codec.MaxInputSize = ctx.Int(maxSizeFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(noColorFlag.Name) {
		cfg.Log.NoColor = ctx.Bool(noColorFlag.Name)
	}
	if err := cfg.Codec.Check(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}
