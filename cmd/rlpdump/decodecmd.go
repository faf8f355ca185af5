package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/PigCharid/rlpkit/log"
	"github.com/PigCharid/rlpkit/rlp"
	"github.com/PigCharid/rlpkit/rlphash"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var (
	decodeCommand = &cli.Command{
		Name:      "decode",
		Usage:     "Decodes RLP data and prints the value tree",
		ArgsUsage: "[file]",
		Description: `Input is read from --hex, the given file or standard input, in that
order. Files and standard input hold raw binary data.`,
		Flags:  []cli.Flag{hexFlag, streamFlag},
		Action: decode,
	}
	lengthCommand = &cli.Command{
		Name:      "length",
		Usage:     "Prints the total size of the first item from its header",
		ArgsUsage: "<hex>",
		Action:    length,
	}
	hashCommand = &cli.Command{
		Name:      "hash",
		Usage:     "Verifies an encoding and prints its Keccak-256 hash",
		ArgsUsage: "<hex>",
		Action:    hash,
	}
	inspectCommand = &cli.Command{
		Name:      "inspect",
		Usage:     "Prints a table of the top-level items in the input",
		ArgsUsage: "<hex>",
		Action:    inspect,
	}
)

var (
	hexFlag = &cli.StringFlag{
		Name:  "hex",
		Usage: "Hex input",
	}
	streamFlag = &cli.BoolFlag{
		Name:  "stream",
		Usage: "Decode all concatenated items in the input",
	}
)

func decode(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	input, err := readInput(ctx)
	if err != nil {
		return err
	}
	dec, err := rlp.NewDecoder(cfg.Codec)
	if err != nil {
		return err
	}
	if !ctx.Bool(streamFlag.Name) {
		item, err := dec.DecodeBytes(input)
		if err != nil {
			return err
		}
		dump(ctx.App.Writer, item, 0)
		return nil
	}
	rest := input
	for n := 0; len(rest) > 0; n++ {
		item, next, err := dec.DecodeStream(rest)
		if err != nil {
			return fmt.Errorf("item %d at offset %d: %w", n, len(input)-len(rest), err)
		}
		log.Debug("Decoded item", "index", n, "size", len(rest)-len(next))
		dump(ctx.App.Writer, item, 0)
		rest = next
	}
	return nil
}

func length(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	input, err := hexArg(ctx)
	if err != nil {
		return err
	}
	dec, err := rlp.NewDecoder(cfg.Codec)
	if err != nil {
		return err
	}
	n, err := dec.GetLength(input)
	if err != nil {
		return err
	}
	if n > len(input) {
		log.Warn("Input is shorter than the encoded length", "have", len(input), "want", n)
	}
	_, err = fmt.Fprintln(ctx.App.Writer, n)
	return err
}

func hash(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	input, err := hexArg(ctx)
	if err != nil {
		return err
	}
	dec, err := rlp.NewDecoder(cfg.Codec)
	if err != nil {
		return err
	}
	item, err := dec.DecodeBytes(input)
	if err != nil {
		return err
	}
	h, err := rlphash.Hash(item)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, rlphash.Hex(h))
	return err
}

func inspect(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	input, err := hexArg(ctx)
	if err != nil {
		return err
	}
	dec, err := rlp.NewDecoder(cfg.Codec)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"#", "Offset", "Kind", "Header", "Payload", "Total", "Elems"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for n, rest := 0, input; len(rest) > 0; n++ {
		item, next, err := dec.Split(rest)
		if err != nil {
			return fmt.Errorf("item %d at offset %d: %w", n, len(input)-len(rest), err)
		}
		var (
			total  = len(rest) - len(next)
			header = headerSize(rest[0])
			kind   = item.Kind().String()
			elems  = ""
		)
		if total == 1 && header == 0 {
			kind = rlp.Byte.String()
		}
		if item.IsList() {
			elems = strconv.Itoa(item.Len())
		}
		table.Append([]string{
			strconv.Itoa(n),
			strconv.Itoa(len(input) - len(rest)),
			kind,
			strconv.Itoa(header),
			strconv.Itoa(total - header),
			strconv.Itoa(total),
			elems,
		})
		rest = next
	}
	table.Render()
	return nil
}

// headerSize returns the number of prefix bytes in front of the payload
// of an item starting with the tag byte b.
func headerSize(b byte) int {
	switch {
	case b < rlp.StringOffset:
		return 0
	case b < 0xB8:
		return 1
	case b < rlp.ListOffset:
		return 1 + int(b-0xB7)
	case b < 0xF8:
		return 1
	default:
		return 1 + int(b-0xF7)
	}
}

var (
	stringColor = color.New(color.FgGreen).SprintFunc()
	hexColor    = color.New(color.FgCyan).SprintFunc()
)

// dump prints the value tree of item.
func dump(w io.Writer, item rlp.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	if !item.IsList() {
		fmt.Fprintf(w, "%s%s\n", indent, formatString(item.Bytes()))
		return
	}
	if item.Len() == 0 {
		fmt.Fprintf(w, "%s[]\n", indent)
		return
	}
	fmt.Fprintf(w, "%s[\n", indent)
	for _, elem := range item.Elems() {
		dump(w, elem, depth+1)
	}
	fmt.Fprintf(w, "%s]\n", indent)
}

// formatString prints printable ASCII strings quoted, anything else as hex.
func formatString(b []byte) string {
	if len(b) > 0 && isASCII(b) {
		return stringColor(strconv.Quote(string(b)))
	}
	return hexColor(fmt.Sprintf("0x%x", b))
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// readInput returns the decode input from --hex, the file argument or stdin.
func readInput(ctx *cli.Context) ([]byte, error) {
	switch {
	case ctx.IsSet(hexFlag.Name):
		return parseHex(ctx.String(hexFlag.Name))
	case ctx.NArg() > 0:
		return ioutil.ReadFile(ctx.Args().First())
	default:
		log.Debug("Reading input from stdin")
		return ioutil.ReadAll(os.Stdin)
	}
}

func hexArg(ctx *cli.Context) ([]byte, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("need hex data as argument")
	}
	return parseHex(ctx.Args().First())
}

// parseHex accepts hex with or without the 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	return rlp.Normalize("0x" + strings.TrimPrefix(s, "0x"))
}
