// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tfinspect prints the header contents of a tensorfile:
// tensor names, dtypes, shapes, byte ranges and the metadata block.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/mlfoundry/tensorfile"
)

func main() {
	cmd := &cli.Command{
		Name:      "tfinspect",
		Usage:     "Inspect the header of a tensorfile",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "metadata",
				Aliases: []string{"m"},
				Usage:   "print the free-form metadata block",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   0,
				Usage:   "number of tensors to list (0 for all)",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("expected exactly one file path argument")
	}
	path := cmd.Args().First()

	f, err := tensorfile.OpenMapped(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var dataLen uint64
	for _, tv := range f.Tensors() {
		dataLen += tv.ByteLen()
	}
	fmt.Printf("File: %s\n", path)
	fmt.Printf("tensors=%d data_bytes=%d metadata_keys=%d\n", f.Len(), dataLen, len(f.Metadata()))

	if cmd.Bool("metadata") && len(f.Metadata()) > 0 {
		fmt.Println()
		fmt.Println("Metadata:")
		keys := make([]string, 0, len(f.Metadata()))
		for k := range f.Metadata() {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", k, f.Metadata()[k])
		}
	}

	limit := int(cmd.Int("limit"))
	names := f.Names()
	fmt.Println()
	for i, name := range names {
		if limit > 0 && i == limit {
			fmt.Printf("... and %d more\n", len(names)-limit)
			break
		}
		tv, _ := f.Get(name)
		fmt.Printf("%-48s %-8s %v (%d bytes)\n", name, tv.DType(), tv.Shape(), tv.ByteLen())
	}
	return nil
}
