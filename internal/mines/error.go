package mines

import "errors"

var ErrInvalidSettings = errors.New("invalid game settings")
