package group

import (
	"encoding/xml"
	"fmt"
)

// Parse decodes a group document. It is the single entry point for turning
// raw XML into a typed record; callers never walk the tree themselves.
//
// Parameters:
//   - data: Raw XML document, root element must be <group>
//
// Returns:
//   - *Group: Decoded record
//   - error: ErrMalformedDocument when the data is not a group document
func Parse(data []byte) (*Group, error) {
	var g Group
	if err := xml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &g, nil
}

// Marshal encodes the record as a UTF-8 XML document with a declaration and
// 2-space indentation, the exact form persisted on disk and sent to the
// speakers.
//
// Returns:
//   - []byte: Pretty-printed document
//   - error: nil in practice; encoding a Group cannot fail structurally
func (g *Group) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding group document: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
