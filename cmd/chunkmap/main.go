// Command chunkmap prints which storage nodes hold the data for a byte
// range of one or more distributed files.
//
// Usage:
//
//	chunkmap [flags] FILE...
//
// For every file, the chunk map is fetched from the configured metadata
// endpoint and the requested range is resolved to block locations, one line
// per block. Schedulers and operators use the host columns as locality
// hints.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/marmos91/chunkmap/internal/fileid"
	"github.com/marmos91/chunkmap/internal/logger"
	"github.com/marmos91/chunkmap/pkg/chunk"
	"github.com/marmos91/chunkmap/pkg/config"
	"github.com/marmos91/chunkmap/pkg/locator"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/chunkmap/config.yaml)")
	logLevel := flag.String("log-level", "", "Log level override (DEBUG, INFO, WARN, ERROR)")
	offset := flag.Uint64("offset", 0, "Start byte of the range to resolve")
	length := flag.Int64("length", -1, "Length of the range to resolve (-1 = to end of file)")
	concurrency := flag.Int("concurrency", 4, "Maximum concurrent chunk-map fetches")
	dumpConfig := flag.Bool("dump-config", false, "Print the effective configuration as YAML and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chunkmap: %v\n", err)
		os.Exit(1)
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger.SetLevel(cfg.Logging.Level)

	if *dumpConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "chunkmap: marshaling config: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "chunkmap: no files given")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, paths, *offset, *length, *concurrency); err != nil {
		fmt.Fprintf(os.Stderr, "chunkmap: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, paths []string, offset uint64, length int64, concurrency int) error {
	loc, err := config.NewLocator(cfg)
	if err != nil {
		return err
	}
	defer loc.Close()

	files := make([]locator.FileRef, 0, len(paths))
	for _, path := range paths {
		inode, err := fileid.Inode(path)
		if err != nil {
			return err
		}
		size, err := fileid.Size(path)
		if err != nil {
			return err
		}
		files = append(files, locator.FileRef{ID: inode, Length: size})
	}

	maps, err := locator.ResolveAll(ctx, loc, files, concurrency)
	if err != nil {
		return err
	}

	for i, path := range paths {
		rangeLength := uint64(0)
		if length < 0 {
			if offset < files[i].Length {
				rangeLength = files[i].Length - offset
			}
		} else {
			rangeLength = uint64(length)
		}

		blocks, err := chunk.ResolveRange(maps[i], offset, rangeLength)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		printBlocks(path, blocks)
	}

	return nil
}

func printBlocks(path string, blocks []chunk.BlockLocation) {
	fmt.Printf("%s:\n", path)
	if len(blocks) == 0 {
		fmt.Println("  (no blocks)")
		return
	}
	for _, block := range blocks {
		hosts := "-"
		if len(block.Hosts) > 0 {
			hosts = strings.Join(block.Hosts, ",")
		}
		fmt.Printf("  [%12d, %12d) %s\n", block.Offset, block.Offset+block.Length, hosts)
	}
}
