// Copyright © 2025 The otuictl Authors
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for otuictl. It wires flags,
// validators, and actions for subcommands.
package command
