// Package main is the lob command, a small tool for inspecting BLOB hex
// literals and exercising savepoint id allocation from a shell.
//
// Usage:
//
//	lob [flags] info <hex>
//	lob [flags] read <hex> <pos> <len>
//	lob [flags] search <hex> <pattern-hex> [start]
//	lob [flags] truncate <hex> <len>
//	lob [flags] savepoints <n>
//
// The log level can also be set with the LOB_LOG_LEVEL environment
// variable; an explicit -log-level flag wins.
package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/jpl-au/lob"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := mainImpl(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "lob: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	logLevel string
	json     bool
	alg      int
}

func mainImpl(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("lob", flag.ContinueOnError)
	var cfg config
	fs.StringVar(&cfg.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.json, "json", false, "Print results as JSON")
	fs.IntVar(&cfg.alg, "alg", lob.AlgXXHash3, "Fingerprint algorithm (1=xxHash3, 2=FNV1a, 3=Blake2b)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	if !set["log-level"] {
		if v := os.Getenv("LOB_LOG_LEVEL"); v != "" {
			cfg.logLevel = v
		}
	}

	ll := &slog.LevelVar{}
	switch cfg.logLevel {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "info":
		ll.Set(slog.LevelInfo)
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		return errors.Newf("unknown log level: %q", cfg.logLevel)
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	rest := fs.Args()
	if len(rest) == 0 {
		return errors.New("missing command (info, read, search, truncate, savepoints)")
	}
	res, err := run(context.Background(), cfg, rest[0], rest[1:])
	if err != nil {
		slog.Debug("command failed", "cmd", rest[0], "kind", lob.Kind(err), "err", err)
		return err
	}
	return output(stdout, cfg, res)
}

// result is what a command produces. Fields left zero are not printed.
type result struct {
	Length      *int64   `json:"length,omitempty"`
	Hex         string   `json:"hex,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	Offset      *int64   `json:"offset,omitempty"`
	Savepoints  []string `json:"savepoints,omitempty"`
}

func run(ctx context.Context, cfg config, cmd string, args []string) (*result, error) {
	switch cmd {
	case "info":
		if len(args) != 1 {
			return nil, errors.New("usage: info <hex>")
		}
		b, err := lob.FromHex(args[0])
		if err != nil {
			return nil, err
		}
		defer b.Free()
		return describe(b, cfg.alg)
	case "read":
		if len(args) != 3 {
			return nil, errors.New("usage: read <hex> <pos> <len>")
		}
		b, err := lob.FromHex(args[0])
		if err != nil {
			return nil, err
		}
		defer b.Free()
		pos, n, err := ints(args[1], args[2])
		if err != nil {
			return nil, err
		}
		data, err := b.Bytes(pos, n)
		if err != nil {
			return nil, err
		}
		slog.Debug("read", "pos", pos, "len", n)
		return describe(lob.New(data), cfg.alg)
	case "search":
		if len(args) != 2 && len(args) != 3 {
			return nil, errors.New("usage: search <hex> <pattern-hex> [start]")
		}
		b, err := lob.FromHex(args[0])
		if err != nil {
			return nil, err
		}
		defer b.Free()
		pattern, err := lob.FromHex(args[1])
		if err != nil {
			return nil, err
		}
		defer pattern.Free()
		start := int64(1)
		if len(args) == 3 {
			if start, err = strconv.ParseInt(args[2], 10, 64); err != nil {
				return nil, errors.Wrap(err, "start")
			}
		}
		off, err := b.SearchBlob(pattern, start)
		if err != nil {
			return nil, err
		}
		slog.Debug("search", "pattern", pattern, "start", start, "offset", off)
		return &result{Offset: &off}, nil
	case "truncate":
		if len(args) != 2 {
			return nil, errors.New("usage: truncate <hex> <len>")
		}
		b, err := lob.FromHex(args[0])
		if err != nil {
			return nil, err
		}
		defer b.Free()
		n, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "len")
		}
		if err := b.Truncate(n); err != nil {
			return nil, err
		}
		return describe(b, cfg.alg)
	case "savepoints":
		if len(args) != 1 {
			return nil, errors.New("usage: savepoints <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, errors.Newf("invalid count %q", args[0])
		}
		names, err := allocate(ctx, lob.NewIDAllocator(), n)
		if err != nil {
			return nil, err
		}
		return &result{Savepoints: names}, nil
	default:
		return nil, errors.Newf("unknown command %q", cmd)
	}
}

func describe(b *lob.Blob, alg int) (*result, error) {
	n, err := b.Len()
	if err != nil {
		return nil, err
	}
	h, err := b.Hex()
	if err != nil {
		return nil, err
	}
	fp, err := b.Fingerprint(alg)
	if err != nil {
		return nil, err
	}
	return &result{Length: &n, Hex: h, Fingerprint: fp}, nil
}

// allocate creates n savepoints from concurrent goroutines sharing ids and
// returns their display names ordered by id.
func allocate(ctx context.Context, ids *lob.IDAllocator, n int) ([]string, error) {
	sps := make([]*lob.Savepoint, n)
	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sps[i] = lob.NewSavepoint(ids)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.SortFunc(sps, func(a, b *lob.Savepoint) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	names := make([]string, n)
	for i, sp := range sps {
		names[i] = sp.DisplayName()
	}
	slog.Debug("allocated savepoints", "count", n, "last", ids.Last())
	return names, nil
}

func ints(a, b string) (int64, int64, error) {
	x, err := strconv.ParseInt(a, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "pos")
	}
	y, err := strconv.ParseInt(b, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "len")
	}
	return x, y, nil
}

func output(w io.Writer, cfg config, res *result) error {
	if cfg.json {
		data, err := json.Marshal(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	if res.Length != nil {
		fmt.Fprintf(w, "length: %d\n", *res.Length)
	}
	if res.Hex != "" {
		fmt.Fprintf(w, "hex: %s\n", res.Hex)
	}
	if res.Fingerprint != "" {
		fmt.Fprintf(w, "fingerprint: %s\n", res.Fingerprint)
	}
	if res.Offset != nil {
		fmt.Fprintf(w, "offset: %d\n", *res.Offset)
	}
	for _, name := range res.Savepoints {
		fmt.Fprintln(w, name)
	}
	return nil
}
