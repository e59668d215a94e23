// Copyright (c) 2025 The otuictl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/otui-dev/otuictl/internal/config"
	"github.com/otui-dev/otuictl/internal/meta"
	"github.com/otui-dev/otuictl/internal/output"
)

// lsColumns fixes the column order for text output.
var lsColumns = []string{"id", "name", "model", "msgs", "cached", "size", "updated"}

// LsCommandAction is the action handler for the "ls" subcommand. It lists
// the session records in the sessions directory, newest first, with message
// and cached-rendering counts.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "ls"

	store, err := openStore(cmd)
	if err != nil {
		return err
	}

	infos, err := store.List()
	if err != nil {
		return err
	}
	log.Debugf("listed %d session(s)", len(infos))

	dataset := make([]map[string]interface{}, 0, len(infos))
	for _, info := range infos {
		dataset = append(dataset, map[string]interface{}{
			"id":      info.ID,
			"name":    info.Name,
			"model":   info.Model,
			"msgs":    info.Messages,
			"cached":  info.Cached,
			"size":    humanize.Bytes(uint64(info.Size)),
			"updated": humanize.Time(info.Updated),
		})
	}

	output.Spit(dataset, lsColumns, cmd, rootWriter(cmd))

	return nil
}

// LsCommandBuilder constructs the cli.Command for "ls", wiring metadata,
// flags, and action/validator handlers.
func LsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list session records",
		UsageText: `otuictl ls [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewSessionsDirFlag("ls"),
		}, NewGlobalFlags("ls")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := LsCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return LsCommandAction(ctx, cmd)
		},
	}
}

// LsCommandValidator performs validation for "ls" and delegates to
// GlobalFlagsValidator.
func LsCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
