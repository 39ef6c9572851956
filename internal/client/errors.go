package client

import "errors"

// ErrIncompleteApp is returned by NewApp when a dependency is missing.
var ErrIncompleteApp = errors.New("app dependencies are incomplete")
