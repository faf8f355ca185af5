package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/PigCharid/rlpkit/log"
	"github.com/PigCharid/rlpkit/rlp"
	"github.com/urfave/cli/v2"
)

var (
	encodeCommand = &cli.Command{
		Name:      "encode",
		Usage:     "Encodes a value and prints the encoding as hex",
		ArgsUsage: "<value>",
		Description: `Without --json, the argument is encoded as a string. Strings starting
with 0x are read as hex.

With --json, the argument is a JSON document: arrays become lists, numbers
must be non-negative integers, null is the empty string and booleans
encode as 0 or 1.`,
		Flags:  []cli.Flag{jsonFlag},
		Action: encode,
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Parse the argument as JSON",
	}
)

func encode(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one value as argument")
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	var val interface{} = ctx.Args().First()
	if ctx.Bool(jsonFlag.Name) {
		if val, err = parseJSONValue(ctx.Args().First()); err != nil {
			return err
		}
	}
	encoder, err := rlp.NewEncoder(cfg.Codec)
	if err != nil {
		return err
	}
	enc, err := encoder.EncodeToBytes(val)
	if err != nil {
		return err
	}
	log.Debug("Encoded value", "size", len(enc))
	_, err = fmt.Fprintf(ctx.App.Writer, "%#x\n", enc)
	return err
}

// parseJSONValue turns a JSON document into a value the encoder accepts.
func parseJSONValue(input string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid JSON: trailing data after value")
	}
	return fromJSON(v)
}

func fromJSON(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case nil:
		return []byte{}, nil
	case bool, string:
		return v, nil
	case json.Number:
		n, ok := new(big.Int).SetString(v.String(), 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer %s", v)
		}
		return n, nil
	case []interface{}:
		list := make([]interface{}, len(v))
		for i, elem := range v {
			e, err := fromJSON(elem)
			if err != nil {
				return nil, err
			}
			list[i] = e
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported JSON value of type %T", v)
	}
}
