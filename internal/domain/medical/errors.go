package medical

import "errors"

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid medical config")
