// Copyright © 2025 The otuictl Authors
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/otui-dev/otuictl/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	SessionsDir string
	StartingDir string
}
