package cdxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/abianche/uoo-cooldown-manager/internal/schema"
)

type frame struct {
	name     string
	fields   map[string]any
	text     strings.Builder
	children int
}

// Decode parses XML into a generic tree. Elements become keys, attributes sit
// next to child elements under their own names, repeated siblings collapse
// into []any, and an element with neither attributes nor children becomes its
// text, untouched. Character data next to children is kept under schema.TextKey.
func Decode(data []byte) (map[string]any, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true

	root := map[string]any{}
	var stack []*frame
	seenRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, syntaxError(dec, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			f := &frame{name: t.Name.Local, fields: map[string]any{}}
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				addValue(f.fields, attr.Name.Local, attr.Value)
			}
			if len(stack) > 0 {
				stack[len(stack)-1].children++
			}
			stack = append(stack, f)

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					line, _ := dec.InputPos()
					return nil, &ParseError{Line: line, Reason: "text outside of root element"}
				}
				continue
			}
			stack[len(stack)-1].text.Write(t)

		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			value := f.value()
			if len(stack) == 0 {
				addValue(root, f.name, value)
				seenRoot = true
			} else {
				addValue(stack[len(stack)-1].fields, f.name, value)
			}
		}
	}

	if !seenRoot {
		return nil, &ParseError{Reason: "no root element"}
	}
	return root, nil
}

// value keeps the text of a childless element verbatim; only whitespace
// between child elements is dropped.
func (f *frame) value() any {
	text := f.text.String()
	if f.children > 0 {
		text = strings.TrimSpace(text)
	}
	if len(f.fields) == 0 && f.children == 0 {
		return text
	}
	if strings.TrimSpace(text) != "" {
		f.fields[schema.TextKey] = text
	}
	return f.fields
}

func addValue(fields map[string]any, key string, value any) {
	existing, ok := fields[key]
	if !ok {
		fields[key] = value
		return
	}
	if seq, ok := existing.([]any); ok {
		fields[key] = append(seq, value)
		return
	}
	fields[key] = []any{existing, value}
}

func syntaxError(dec *xml.Decoder, err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Line: se.Line, Reason: se.Msg, Err: err}
	}
	line, _ := dec.InputPos()
	return &ParseError{Line: line, Reason: err.Error(), Err: err}
}
