// Copyright © 2025 The otuictl Authors
// SPDX-License-Identifier: MIT

// otuictl is the main package for the otuictl command line tool, a
// maintenance companion for the otui session store. It wires the CLI,
// delegates to internal packages, and serves as the entry point.
package main
