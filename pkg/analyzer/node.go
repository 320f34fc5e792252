package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInputTooLarge is returned when the input exceeds the analyzer's
// configured size limit.
var ErrInputTooLarge = errors.New("analyzer: input exceeds the size limit")

// ParseError indicates that the input was not a well-formed pipeline
// definition. It is a client-input failure, distinct from any internal error.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string {
	return e.msg
}

// IsParseError reports whether err is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Document is a parsed pipeline definition. The root is always a mapping and
// the tree is read-only once built. Pipeline YAML has no fixed schema, so the
// tree is probed with the total accessors below instead of typed structs.
type Document struct {
	root map[string]any
	raw  string
}

// Parse decodes YAML text into a Document. Decoding is purely structural:
// templated expressions in the document stay plain scalars and are never
// evaluated. Empty input and non-mapping roots are parse errors so that every
// successfully parsed document has a mapping to probe.
func Parse(text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{msg: "empty YAML input"}
	}

	var root any
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, &ParseError{msg: fmt.Sprintf("invalid YAML: %v", err)}
	}

	m, ok := root.(map[string]any)
	if !ok {
		return nil, &ParseError{msg: "invalid YAML structure: the document root must be a mapping"}
	}

	return &Document{root: m, raw: text}, nil
}

// Root returns the root mapping of the document.
func (d *Document) Root() map[string]any {
	return d.root
}

// Raw returns the original YAML text.
func (d *Document) Raw() string {
	return d.raw
}

// Has reports whether the root mapping declares the given key.
func (d *Document) Has(key string) bool {
	_, ok := d.root[key]
	return ok
}

// mapping returns v as a mapping, or an empty mapping if v is absent or of a
// different kind.
func mapping(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// sequence returns v as a sequence, or an empty sequence if v is absent or of
// a different kind.
func sequence(v any) []any {
	s, ok := v.([]any)
	if !ok {
		return nil
	}
	return s
}

// scalar returns v as a string scalar, or "" if v is absent or not a string.
func scalar(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
