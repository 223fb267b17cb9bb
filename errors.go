package phyloxml

import "fmt"

// SchemaError reports well-formed XML that violates the phyloXML structural
// contract: a duplicated singular element, an attribute/child collision, or a
// closing tag that cannot belong to the construct being parsed. It is always
// fatal to the current read; no partial aggregate is returned.
//
// Low-level syntax errors are not SchemaErrors; they surface unchanged from
// the tokenizer as *encoding/xml.SyntaxError.
type SchemaError struct {
	Tag string
	Msg string
}

func (e *SchemaError) Error() string {
	if e.Tag == "" {
		return "phyloxml: " + e.Msg
	}
	return fmt.Sprintf("phyloxml: <%s>: %s", e.Tag, e.Msg)
}

func schemaErrorf(tag, format string, args ...any) error {
	return &SchemaError{Tag: tag, Msg: fmt.Sprintf(format, args...)}
}

// UsageError reports an unsupported value shape passed to Write. It is
// returned before any output is produced.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return "phyloxml: " + e.Msg
}
