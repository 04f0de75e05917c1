package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"

	"github.com/hex-agon/unpakr/pak"
)

var errUsage = errors.New("usage: unpakr [options] <input-pak> <output-dir>")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "unpakr",
		Usage:           "extract the files of a pak archive",
		ArgsUsage:       "<input-pak> <output-dir>",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "key",
				Usage:   "XOR key the archive is obfuscated with",
				Value:   fmt.Sprintf("0x%02X", pak.DefaultKey),
				EnvVars: []string{"UNPAKR_KEY"},
			},
			&cli.StringFlag{
				Name:    "charset",
				Usage:   "encoding of entry names (utf-8, euc-kr)",
				Value:   "utf-8",
				EnvVars: []string{"UNPAKR_CHARSET"},
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "print the entry table without extracting",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only report the result",
			},
		},
		Action: unpack,
	}
}

func unpack(c *cli.Context) error {
	if c.NArg() != 2 {
		return errUsage
	}
	pakPath := c.Args().Get(0)
	outputDir := c.Args().Get(1)

	format := pak.DefaultFormat
	key, err := parseKey(c.String("key"))
	if err != nil {
		return err
	}
	format.Key = key

	names, err := nameEncoding(c.String("charset"))
	if err != nil {
		return err
	}

	archive, err := pak.Open(pakPath, pak.WithFormat(format), pak.WithNameEncoding(names))
	if err != nil {
		return err
	}

	if c.Bool("list") {
		for _, rec := range archive.Records {
			fmt.Fprintf(c.App.Writer, "%10s  0x%08X  %s\n", humanize.Bytes(uint64(rec.Size)), rec.Offset, rec.Name())
		}
	}

	extractor := &pak.Extractor{
		Root:   outputDir,
		DryRun: c.Bool("list"),
	}
	verbose := !c.Bool("quiet") && !c.Bool("list")
	if verbose {
		extractor.Logger = log.Default()
	}

	summary, err := extractor.Extract(archive)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("Extracted %d entries (%s)", summary.Files, humanize.Bytes(summary.Bytes))
	}

	fmt.Fprintln(c.App.Writer, "ok!")
	return nil
}

func parseKey(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid key %q: %w", s, err)
	}
	return byte(v), nil
}

func nameEncoding(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "euc-kr", "euckr":
		return korean.EUCKR, nil
	}
	return nil, fmt.Errorf("unknown charset %q", charset)
}
