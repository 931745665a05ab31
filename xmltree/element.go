// Package xmltree decodes an XML document into a generic tree of named
// elements carrying attributes, ordered children and text content.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrEmptyDocument = errors.New("document has no root element")

type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element
	Text     string
}

// Parse reads the whole document from r and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)
	d.Strict = true

	var root *Element
	var stack []*Element
	var text strings.Builder

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("xml decode error: %w", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			e := &Element{
				Name:  tok.Name.Local,
				Attrs: map[string]string{},
			}
			for _, attr := range tok.Attr {
				e.Attrs[attr.Name.Local] = attr.Value
			}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
			} else if root == nil {
				root = e
			}
			stack = append(stack, e)
			text.Reset()
		case xml.CharData:
			if len(stack) > 0 {
				text.Write(tok)
			}
		case xml.EndElement:
			e := stack[len(stack)-1]
			if len(e.Children) == 0 {
				e.Text = strings.TrimSpace(text.String())
			}
			text.Reset()
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// Child returns the first direct child with the given name.
func (e *Element) Child(name string) (*Element, bool) {
	for _, c := range e.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// All returns every direct child with the given name in document order.
func (e *Element) All(name string) []*Element {
	var result []*Element
	for _, c := range e.Children {
		if c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

// ChildText returns the text of the first direct child with the given name.
func (e *Element) ChildText(name string) (string, bool) {
	if c, ok := e.Child(name); ok {
		return c.Text, true
	}
	return "", false
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}
