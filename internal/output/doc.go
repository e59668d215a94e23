// Copyright © 2025 The otuictl Authors
// SPDX-License-Identifier: MIT

// Package output renders command result sets as text tables, JSON, or YAML
// per the common output flags.
package output
