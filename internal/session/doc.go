// Copyright © 2025 The otuictl Authors
// SPDX-License-Identifier: MIT

// Package session reads, mutates, and rewrites otui session records. Records
// are kept as raw JSON so that fields this tool does not know about survive a
// rewrite untouched.
package session
