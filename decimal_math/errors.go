package decimal_math

import "errors"

var ErrLnDomain = errors.New("decimal_math: ln undefined for values <= 0")
