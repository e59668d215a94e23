// Copyright (c) 2025 The otuictl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/otui-dev/otuictl/internal/meta"
	"github.com/otui-dev/otuictl/internal/session"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// openStore resolves the sessions directory from the --sessions-dir flag
// (whose value source chain already covers env, config file, and the default
// otui data dir) and opens a store on it.
func openStore(cmd *cli.Command) (*session.Store, error) {
	dir := cmd.String("sessions-dir")
	log.Debugf("sessions dir: %s", dir)
	return session.NewStore(dir)
}

// rootWriter returns the writer configured on the root command, stdout when
// unset. Commands emit their results through this so tests can capture them.
func rootWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
