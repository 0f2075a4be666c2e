package model

import "fmt"

type ParseErrorKind int

const (
	MalformedInstance ParseErrorKind = iota
	EmptySolution
	MalformedSolutionHeader
	SolutionTruncated
)

var parseErrorKinds = map[ParseErrorKind]string{
	MalformedInstance:       "malformed instance",
	EmptySolution:           "empty solution",
	MalformedSolutionHeader: "malformed solution header",
	SolutionTruncated:       "solution truncated",
}

func (kind ParseErrorKind) String() string {
	if name, ok := parseErrorKinds[kind]; ok {
		return name
	}
	return fmt.Sprintf("parse error kind %d", int(kind))
}

// ParseError is a fatal, content-level failure of the instance or solution parser.
// Read failures of the underlying stream are never reported as a ParseError.
type ParseError struct {
	Kind ParseErrorKind
	File string // Empty when parsing from a bare reader
	Line int    // 1-based; zero when the format is not line-oriented
	Err  error
}

func (err *ParseError) Error() string {
	if err.File != "" {
		return fmt.Sprintf("%v: %v", err.File, err.Reason())
	}
	return err.Reason()
}

// Reason renders the error without the file name
func (err *ParseError) Reason() string {
	message := err.Kind.String()
	if err.Err != nil {
		message = fmt.Sprintf("%v: %v", message, err.Err)
	}
	if err.Line > 0 {
		message = fmt.Sprintf("line %d: %v", err.Line, message)
	}
	return message
}

func (err *ParseError) Unwrap() error {
	return err.Err
}
