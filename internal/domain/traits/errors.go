package traits

import "errors"

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid traits config")
