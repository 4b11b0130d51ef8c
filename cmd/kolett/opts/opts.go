package opts

import (
	"github.com/kolett/kolett/pkg/config"
	"github.com/kolett/kolett/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	UserLogger *status.UserLogger
}
