// Package xmldoc checks that Xcode XML documents are complete before
// their fields are read.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Outline is the top of a well-formed document.
type Outline struct {
	Root string
	// Children are the direct child elements of Root, in order.
	Children []string
}

// Has reports whether Root has a direct child named name.
func (o Outline) Has(name string) bool {
	for _, c := range o.Children {
		if c == name {
			return true
		}
	}
	return false
}

// Read tokenizes the whole of data. Unlike xml.Unmarshal it rejects
// anything but whitespace, comments and processing instructions after
// the root element.
func Read(data []byte) (Outline, error) {
	var out Outline
	dec := xml.NewDecoder(bytes.NewReader(data))
	depth := 0
	closed := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Outline{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if closed {
				return Outline{}, fmt.Errorf("unexpected element <%s> after root <%s>", t.Name.Local, out.Root)
			}
			switch depth {
			case 0:
				out.Root = t.Name.Local
			case 1:
				out.Children = append(out.Children, t.Name.Local)
			}
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				closed = true
			}
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return Outline{}, fmt.Errorf("unexpected text %q outside root element", bytes.TrimSpace(t))
			}
		}
	}

	if !closed {
		return Outline{}, errors.New("no root element")
	}
	return out, nil
}

// Expect reads data and checks its root element is root.
func Expect(data []byte, root string) (Outline, error) {
	out, err := Read(data)
	if err != nil {
		return Outline{}, err
	}
	if out.Root != root {
		return Outline{}, fmt.Errorf("root element is <%s>, want <%s>", out.Root, root)
	}
	return out, nil
}
