package builder

import "errors"

var (
	ErrParserError          = errors.New("parser error occurred")
	ErrNoInput              = errors.New("no input documents")
	ErrUnexpectedOutputPath = errors.New("unexpected output path provided")
)
