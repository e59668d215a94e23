// Copyright © 2025 The otuictl Authors
// SPDX-License-Identifier: MIT

// Package version holds the build version stamped in via -ldflags.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/otui-dev/otuictl/internal/version.Version=...".
var Version = "dev"
