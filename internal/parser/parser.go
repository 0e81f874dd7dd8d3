package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dastanaron/ffmarks/internal/models"
	"github.com/dastanaron/ffmarks/internal/tree"
)

var (
	// ErrNotObject is returned when a bookmark value is not a JSON object
	ErrNotObject = errors.New("bookmark is not a JSON object")
	// ErrChildren is returned when "children" is present but is not an array
	ErrChildren = errors.New("children is not an array")
	// ErrTrailingData is returned when anything follows the root object
	ErrTrailingData = errors.New("unexpected data after bookmarks")
)

// setter receives a scalar JSON value: string, json.Number, bool or nil.
// Composite values never reach a setter.
type setter func(r *models.Record, v any)

// fields maps recognized JSON keys to the record attribute they fill.
// Keys missing from the table are ignored.
var fields = map[string]setter{
	"guid":         text(func(r *models.Record, v string) { r.GUID = v }),
	"title":        text(func(r *models.Record, v string) { r.Title = v }),
	"type":         text(func(r *models.Record, v string) { r.Type = v }),
	"index":        integer(func(r *models.Record, v *int64) { r.Index = narrow(v) }),
	"dateAdded":    integer(func(r *models.Record, v *int64) { r.DateAdded = v }),
	"lastModified": integer(func(r *models.Record, v *int64) { r.LastModified = v }),
	"id":           integer(func(r *models.Record, v *int64) { r.ID = v }),
	"typeCode":     integer(func(r *models.Record, v *int64) { r.TypeCode = narrow(v) }),
	"root":         optText(func(r *models.Record, v *string) { r.Root = v }),
	"uri":          optText(func(r *models.Record, v *string) { r.URI = v }),
}

func text(assign func(*models.Record, string)) setter {
	return func(r *models.Record, v any) {
		if s, ok := v.(string); ok {
			assign(r, s)
		}
	}
}

// optText and integer treat null as absent
func optText(assign func(*models.Record, *string)) setter {
	return func(r *models.Record, v any) {
		switch s := v.(type) {
		case nil:
			assign(r, nil)
		case string:
			assign(r, &s)
		}
	}
}

func integer(assign func(*models.Record, *int64)) setter {
	return func(r *models.Record, v any) {
		switch n := v.(type) {
		case nil:
			assign(r, nil)
		case json.Number:
			if i, err := n.Int64(); err == nil {
				assign(r, &i)
			}
		}
	}
}

func narrow(v *int64) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

// ParseRecord copies the recognized fields of a decoded JSON object into a
// Record. A field whose value has the wrong JSON type is left unset.
func ParseRecord(obj map[string]json.RawMessage) models.Record {
	var r models.Record
	for key, raw := range obj {
		set, ok := fields[key]
		if !ok {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err == nil {
			set(&r, v)
		}
	}
	return r
}

// Parse reads a whole Firefox JSON backup and builds its tree.
// No partial tree is returned on error.
func Parse(r io.Reader) (*tree.Tree, error) {
	return build(json.NewDecoder(r), nil)
}

// Build constructs a tree from one JSON object. parentGUID is nil for the
// root; every descendant gets the GUID of its enclosing object.
func Build(raw json.RawMessage, parentGUID *string) (*tree.Tree, error) {
	return build(json.NewDecoder(bytes.NewReader(raw)), parentGUID)
}

type pending struct {
	node       *tree.Tree
	inChildren bool
}

// build consumes the token stream once. Objects and arrays are tracked on
// an explicit stack, so nesting depth is not limited by the decoder.
func build(dec *json.Decoder, parentGUID *string) (*tree.Tree, error) {
	dec.UseNumber()

	tok, err := next(dec)
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, ErrNotObject
	}

	root := &tree.Tree{}
	stack := []pending{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		tok, err := next(dec)
		if err != nil {
			return nil, err
		}

		if top.inChildren {
			switch tok {
			case json.Delim(']'):
				top.inChildren = false
			case json.Delim('{'):
				child := &tree.Tree{}
				top.node.Children = append(top.node.Children, child)
				stack = append(stack, pending{node: child})
			default:
				return nil, ErrNotObject
			}
			continue
		}

		if tok == json.Delim('}') {
			adopt(top.node)
			stack = stack[:len(stack)-1]
			continue
		}

		key, _ := tok.(string)
		if key == "children" {
			ok, err := openChildren(dec)
			if err != nil {
				return nil, err
			}
			top.node.Children = nil
			top.inChildren = ok
			continue
		}

		v, err := next(dec)
		if err != nil {
			return nil, err
		}
		if d, ok := v.(json.Delim); ok {
			if err := skip(dec, d); err != nil {
				return nil, err
			}
			continue
		}
		if set, ok := fields[key]; ok {
			set(&top.node.Record, v)
		}
	}

	if parentGUID != nil {
		parent := *parentGUID
		root.Record.ParentGUID = &parent
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return nil, ErrTrailingData
	}
	return root, nil
}

// adopt links every child to the GUID of t. The GUID may appear after
// "children" in the source object, so this runs once t is complete.
func adopt(t *tree.Tree) {
	for _, child := range t.Children {
		guid := t.Record.GUID
		child.Record.ParentGUID = &guid
	}
}

// openChildren reads the value of a "children" key. It reports whether an
// array was opened; null means no children.
func openChildren(dec *json.Decoder) (bool, error) {
	tok, err := next(dec)
	if err != nil {
		return false, err
	}
	switch tok {
	case json.Delim('['):
		return true, nil
	case nil:
		return false, nil
	}
	return false, ErrChildren
}

// skip discards the rest of a composite value whose opening delimiter has
// already been read.
func skip(dec *json.Decoder, open json.Delim) error {
	if open != '{' && open != '[' {
		return nil
	}
	for depth := 1; depth > 0; {
		tok, err := next(dec)
		if err != nil {
			return err
		}
		switch tok {
		case json.Delim('{'), json.Delim('['):
			depth++
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
	}
	return nil
}

func next(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return tok, nil
}
