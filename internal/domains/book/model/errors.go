package model

import "errors"

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrInvalidAuthor = errors.New("book references a missing author")
)
