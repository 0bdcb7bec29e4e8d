package penalty

import "errors"

var (
	ErrAlreadyPenalized = errors.New("a penalty already exists for this employee today")
	ErrPenaltyNotFound  = errors.New("penalty not found")
)
