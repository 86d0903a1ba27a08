package box

import (
	"encoding/xml"
	"io"
	"strings"
)

// IsEmptyGroupBody reports whether a removeGroup response body represents a
// disbanded group.
//
// The speakers answer either with a literal self-closing group element or
// with a group document stripped of all children; both forms count. Any
// unparsable body does not.
func IsEmptyGroupBody(body string) bool {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return false
	}
	if strings.Contains(strings.ReplaceAll(trimmed, " ", ""), "<group/>") {
		return true
	}

	decoder := xml.NewDecoder(strings.NewReader(trimmed))

	// Find the root element.
	var root xml.StartElement
	for {
		token, err := decoder.Token()
		if err != nil {
			return false
		}
		if start, ok := token.(xml.StartElement); ok {
			root = start
			break
		}
	}
	if root.Name.Local != "group" {
		return false
	}

	// The root must carry no child elements.
	depth := 1
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return true
		}
		if err != nil {
			return false
		}
		switch token.(type) {
		case xml.StartElement:
			return false
		case xml.EndElement:
			depth--
			if depth == 0 {
				return true
			}
		}
	}
}
