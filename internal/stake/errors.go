package stake

import (
	"errors"
)

var ErrInvalidAmount = errors.New("invalid stake amount")
