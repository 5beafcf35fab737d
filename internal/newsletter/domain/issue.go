package domain

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Content struct {
	Text string `json:"text" validate:"required"`
	HTML string `json:"html" validate:"required"`
}

// Issue is one newsletter edition: a title plus the body in both plain
// text and HTML.
type Issue struct {
	Title   string  `json:"title" validate:"required"`
	Content Content `json:"content" validate:"required"`
}

func (i Issue) Validate() error {
	return validate.Struct(i)
}
