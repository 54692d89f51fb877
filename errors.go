package pandoc

import "fmt"

// ArityError reports a constructor called with the wrong number of
// positional arguments. It is a programmer error and never occurs for
// well-formed input.
type ArityError struct {
	Name string // constructor or field the count belongs to
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s expects %d arguments, got %d", e.Name, e.Want, e.Got)
}

// UnknownTagError reports an element tag outside the closed set.
type UnknownTagError struct {
	TagName string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown element tag %q", e.TagName)
}

// ParseError reports malformed wire JSON. The message never carries byte
// offsets or other positional detail of the input.
type ParseError struct {
	msg string
}

func parseErrorf(f string, a ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(f, a...)}
}

func (e *ParseError) Error() string {
	return "pandoc JSON: " + e.msg
}

// UnsupportedVersionError reports an api or pandoc release version with no
// compatible mapping. It is surfaced to the caller, never silently coerced.
type UnsupportedVersionError struct {
	Version Version
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported pandoc api version %s (minimum is %s)", e.Version, MinAPIVersion)
}

// AmbiguousArgumentsError reports a NewDocument call whose argument shape
// matches none of the accepted input forms.
type AmbiguousArgumentsError struct {
	Got int
}

func (e *AmbiguousArgumentsError) Error() string {
	return fmt.Sprintf("ambiguous document arguments (%d values match no accepted shape)", e.Got)
}
