// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"math"
	"strconv"
	"strings"
)

// node wraps one mapping within the payload tree together with its dotted
// path and the shared issue accumulator. All accessors record an issue and
// return a zero value on failure, so decoding a defective payload walks the
// whole tree and surfaces every problem in one pass.
type node struct {
	path string
	m    map[string]any
	iss  *issueList
}

// rootNode wraps the top-level payload, which must be a mapping.
func rootNode(payload any, iss *issueList) (node, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		iss.add("", CodeInvalidType, "payload must be a mapping")
		return node{}, false
	}
	return node{m: m, iss: iss}, true
}

func (n node) join(key string) string {
	if n.path == "" {
		return key
	}
	return n.path + "." + key
}

func joinIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func (n node) has(key string) bool {
	v, ok := n.m[key]
	return ok && v != nil
}

// text reads an optional string field. Whitespace is trimmed and a value
// that trims to empty is treated as absent.
func (n node) text(key string) *string {
	v, ok := n.m[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		n.iss.add(n.join(key), CodeInvalidType, "expected a string")
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// requireText reads a string field that must be present and non-empty after
// trimming.
func (n node) requireText(key string) string {
	v, ok := n.m[key]
	if !ok || v == nil {
		n.iss.add(n.join(key), CodeRequired, "is required")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		n.iss.add(n.join(key), CodeInvalidType, "expected a string")
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		n.iss.add(n.join(key), CodeRequired, "must contain non-whitespace characters")
	}
	return s
}

// asFloat widens the numeric types produced by JSON and YAML decoders.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// number reads an optional non-negative decimal field.
func (n node) number(key string) *float64 {
	v, ok := n.m[key]
	if !ok || v == nil {
		return nil
	}
	f, ok := asFloat(v)
	if !ok {
		n.iss.add(n.join(key), CodeInvalidType, "expected a number")
		return nil
	}
	if f < 0 {
		n.iss.add(n.join(key), CodeOutOfRange, "must be zero or greater, got %v", f)
		return nil
	}
	return &f
}

// count reads an optional integer field bounded to [min, max].
func (n node) count(key string, min, max int) *int {
	v, ok := n.m[key]
	if !ok || v == nil {
		return nil
	}
	f, ok := asFloat(v)
	if !ok || f != math.Trunc(f) {
		n.iss.add(n.join(key), CodeInvalidType, "expected an integer")
		return nil
	}
	c := int(f)
	if c < min || c > max {
		n.iss.add(n.join(key), CodeOutOfRange, "must be between %d and %d, got %d", min, max, c)
		return nil
	}
	return &c
}

// boolean reads an optional boolean field.
func (n node) boolean(key string) *bool {
	v, ok := n.m[key]
	if !ok || v == nil {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		n.iss.add(n.join(key), CodeInvalidType, "expected a boolean")
		return nil
	}
	return &b
}

// object descends into an optional nested mapping.
func (n node) object(key string) (node, bool) {
	v, ok := n.m[key]
	if !ok || v == nil {
		return node{}, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		n.iss.add(n.join(key), CodeInvalidType, "expected a mapping")
		return node{}, false
	}
	return node{path: n.join(key), m: m, iss: n.iss}, true
}

// objects reads an optional sequence of mappings. Elements that are not
// mappings are reported and skipped. The second return reports whether the
// key was present at all, so callers can distinguish absent from empty.
func (n node) objects(key string) ([]node, bool) {
	v, ok := n.m[key]
	if !ok || v == nil {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		n.iss.add(n.join(key), CodeInvalidType, "expected a sequence")
		return nil, false
	}
	nodes := make([]node, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			n.iss.add(joinIndex(n.join(key), i), CodeInvalidType, "expected a mapping")
			continue
		}
		nodes = append(nodes, node{path: joinIndex(n.join(key), i), m: m, iss: n.iss})
	}
	return nodes, true
}

// enum reads an optional field constrained to a closed value set.
func (n node) enum(key string, set enumSet) *string {
	s := n.text(key)
	if s == nil {
		return nil
	}
	if !set.contains(*s) {
		n.iss.add(n.join(key), CodeInvalidEnum, "unknown value %q, expected one of %s", *s, set)
		return nil
	}
	return s
}

// requireEnum reads a field that must be present and drawn from a closed set.
func (n node) requireEnum(key string, set enumSet) string {
	s := n.requireText(key)
	if s == "" {
		return ""
	}
	if !set.contains(s) {
		n.iss.add(n.join(key), CodeInvalidEnum, "unknown value %q, expected one of %s", s, set)
		return ""
	}
	return s
}

// enumList reads an optional sequence of enum values. When present the
// sequence must be non-empty.
func (n node) enumList(key string, set enumSet) []string {
	v, ok := n.m[key]
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		n.iss.add(n.join(key), CodeInvalidType, "expected a sequence")
		return nil
	}
	if len(items) == 0 {
		n.iss.add(n.join(key), CodeRequired, "must not be empty when present")
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			n.iss.add(joinIndex(n.join(key), i), CodeInvalidType, "expected a string")
			continue
		}
		s = strings.TrimSpace(s)
		if !set.contains(s) {
			n.iss.add(joinIndex(n.join(key), i), CodeInvalidEnum, "unknown value %q, expected one of %s", s, set)
			continue
		}
		out = append(out, s)
	}
	return out
}
