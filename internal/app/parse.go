package app

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
)

// ParseFlags fills cfg from arguments and environment. It reports false when the caller
// should exit quietly (help was printed).
func ParseFlags(cfg any) (bool, error) {
	if _, err := flags.ParseArgs(cfg, os.Args[1:]); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
