package progression

import "errors"

// Sentinel errors.
var (
	ErrInvalidConfig          = errors.New("invalid progression config")
	ErrTrainingAlreadyApplied = errors.New("training already applied this season")
)
