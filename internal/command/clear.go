// Copyright (c) 2025 The otuictl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/otui-dev/otuictl/internal/config"
	"github.com/otui-dev/otuictl/internal/meta"
)

// ClearCommandAction is the action handler for the "clear" subcommand. It
// strips the cached rendered field from every message entry of every session
// record and rewrites each record with 2-space indentation. Records are
// processed one at a time; the first failure aborts the run, leaving
// already-rewritten records in place and the rest untouched.
func ClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "clear"

	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	files, err := store.Files()
	if err != nil {
		return err
	}
	log.Debugf("found %d session file(s) in %s", len(files), store.Dir())

	dryRun := cmd.Bool("dry-run")

	for _, path := range files {
		record, err := store.Load(path)
		if err != nil {
			return err
		}

		before := record.Bytes()

		stripped, err := record.StripRendered()
		if err != nil {
			return err
		}
		log.Debugf("%s: stripped %d cached rendering(s)", path, stripped)

		if dryRun {
			if stripped > 0 {
				if err := printDiff(cmd, path, before, record.Bytes()); err != nil {
					return err
				}
			}
			continue
		}

		// Records with nothing to strip are still rewritten so the whole
		// store ends up consistently indented.
		if err := store.Write(record); err != nil {
			return err
		}
	}

	if dryRun {
		fmt.Fprintln(rootWriter(cmd), "✅ Rendered cache clear previewed (dry run, nothing written)")
	} else {
		fmt.Fprintln(rootWriter(cmd), "✅ Rendered cache cleared")
	}

	return nil
}

// printDiff renders the structural difference between the record as stored
// and as it would be rewritten.
func printDiff(cmd *cli.Command, path string, before []byte, after []byte) error {
	d, err := gojsondiff.New().Compare(before, after)
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", path, err)
	}
	if !d.Modified() {
		return nil
	}

	var left map[string]interface{}
	if err := json.Unmarshal(before, &left); err != nil {
		return fmt.Errorf("failed to diff %s: %w", path, err)
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       cmd.Bool("color"),
	})
	out, err := f.Format(d)
	if err != nil {
		return fmt.Errorf("failed to format diff for %s: %w", path, err)
	}

	w := rootWriter(cmd)
	fmt.Fprintf(w, "--- %s\n", path)
	fmt.Fprint(w, out)
	return nil
}

// ClearCommandBuilder constructs the cli.Command for "clear", wiring
// metadata, flags, and action/validator handlers.
func ClearCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "strip cached markdown renderings from session records",
		UsageText: `otuictl clear [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "show what would change without rewriting anything",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("clear.dry_run", altsrc.StringSourcer(cfg.Source)),
				),
				Value: false,
			},
			NewSessionsDirFlag("clear"),
		}, NewGlobalFlags("clear")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := ClearCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return ClearCommandAction(ctx, cmd)
		},
	}
}

// ClearCommandValidator performs validation for "clear" and delegates to
// GlobalFlagsValidator.
func ClearCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
