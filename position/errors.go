package position

import "errors"

// ErrUnknownSequence indicates a sequence name is not one of the built-ins.
var ErrUnknownSequence = errors.New("unknown position sequence")
