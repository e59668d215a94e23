// Copyright (c) 2025 The otuictl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/otui-dev/otuictl/internal/config"
	"github.com/otui-dev/otuictl/internal/session"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

// NewSessionsDirFlag constructs the --sessions-dir flag, namespaced to a
// command for config file lookups. Precedence: explicit flag, OTUICTL_SESSIONS
// env, <ns>.sessions_dir and sessions_dir config keys, then the default otui
// data dir.
func NewSessionsDirFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "sessions-dir",
		Aliases: []string{"d"},
		Usage:   "directory holding the otui session records",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("OTUICTL_SESSIONS"),
			yaml.YAML(ns+"."+"sessions_dir", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("sessions_dir", altsrc.StringSourcer(cfg.Source)),
		),
		Value: session.DefaultDir(),
	}
}

func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}
