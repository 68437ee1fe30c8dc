package model

import "errors"

var ErrNotFound = errors.New("model: not found")
