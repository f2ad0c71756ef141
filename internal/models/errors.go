package models

import "errors"

var (
	ErrNotFound   = errors.New("file not found")
	ErrBadRequest = errors.New("bad request")
)
