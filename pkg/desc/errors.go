package desc

import "fmt"

// ParseError is a fatal syntax error in a description source. One malformed
// document fails the whole parse; there is no recovery.
type ParseError struct {
	Pos int    // approximate byte offset of the offending tag
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

func parseErrorf(pos int, format string, args ...interface{}) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
