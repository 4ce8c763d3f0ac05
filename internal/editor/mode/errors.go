package mode

import "errors"

// ErrDestroyed indicates an operation on a destroyed manager.
var ErrDestroyed = errors.New("mode manager destroyed")
