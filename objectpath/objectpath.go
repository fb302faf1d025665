// Package objectpath reads and writes values inside nested map[string]any
// and []any structures using dot/bracket path expressions such as
// "address.lines[0]", "items.2.sku" or `meta["content-type"]`.
//
// Writes are copy-on-write: Set and Delete return a new root and never
// modify the structure they were given, so previously returned roots stay
// valid snapshots.
package objectpath

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// MaxGrowth is the largest number of elements a single Set may append to a
// sequence, counting the nil elements that fill a gap before the index.
const MaxGrowth = 1024

// Segment is one step of a parsed path expression.
//
// Index is the numeric position for sequence access, or -1 when the segment
// is a plain key. Numeric dotted segments ("items.2") carry both a Key and
// an Index so they can address either a map key or a slice element.
type Segment struct {
	Key   string
	Index int
}

// Parse splits a path expression into segments.
// An empty expression yields no segments and addresses the root.
func Parse(expr string) ([]Segment, error) {
	if expr == "" {
		return nil, nil
	}

	var (
		segments []Segment
		current  strings.Builder
		pending  bool
	)

	flush := func(pos int) error {
		if !pending {
			return fmt.Errorf("%w: empty segment at offset %d in %q", ErrSyntax, pos, expr)
		}
		segments = append(segments, keySegment(current.String()))
		current.Reset()
		pending = false
		return nil
	}

	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; c {
		case '.':
			if err := flush(i); err != nil {
				return nil, err
			}
		case '[':
			if pending {
				if err := flush(i); err != nil {
					return nil, err
				}
			}
			end := strings.IndexByte(expr[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated bracket in %q", ErrSyntax, expr)
			}
			seg, err := bracketSegment(expr[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, expr)
			}
			segments = append(segments, seg)
			i += end
			if i+1 < len(expr) && expr[i+1] == '.' {
				i++
				if i+1 == len(expr) {
					return nil, fmt.Errorf("%w: trailing dot in %q", ErrSyntax, expr)
				}
			}
		default:
			current.WriteByte(c)
			pending = true
		}
	}

	if pending {
		segments = append(segments, keySegment(current.String()))
	} else if expr[len(expr)-1] == '.' {
		return nil, fmt.Errorf("%w: trailing dot in %q", ErrSyntax, expr)
	}

	return segments, nil
}

func keySegment(key string) Segment {
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 {
		return Segment{Key: key, Index: idx}
	}
	return Segment{Key: key, Index: -1}
}

func bracketSegment(inner string) (Segment, error) {
	if len(inner) >= 2 {
		quote := inner[0]
		if (quote == '"' || quote == '\'') && inner[len(inner)-1] == quote {
			return Segment{Key: inner[1 : len(inner)-1], Index: -1}, nil
		}
	}
	idx, err := strconv.Atoi(strings.TrimSpace(inner))
	if err != nil || idx < 0 {
		return Segment{}, fmt.Errorf("%w: invalid index %q", ErrSyntax, inner)
	}
	return Segment{Key: strconv.Itoa(idx), Index: idx}, nil
}

// Get returns the value at expr inside root.
// Missing paths and malformed expressions report false; they never error.
func Get(root any, expr string) (any, bool) {
	segments, err := Parse(expr)
	if err != nil {
		return nil, false
	}

	current := root
	for _, seg := range segments {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[seg.Key]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			if seg.Index < 0 || seg.Index >= len(node) {
				return nil, false
			}
			current = node[seg.Index]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set returns a copy of root with value stored at expr. Containers along the
// path are cloned; missing containers are created as maps, or as slices when
// the next segment is numeric. An empty expression replaces the root.
// Writing past the end of a sequence grows it with nil elements, by at most
// MaxGrowth.
func Set(root any, expr string, value any) (any, error) {
	segments, err := Parse(expr)
	if err != nil {
		return root, err
	}
	return set(root, segments, value, expr)
}

func set(node any, segments []Segment, value any, expr string) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	seg, rest := segments[0], segments[1:]

	switch typed := node.(type) {
	case map[string]any:
		out := maps.Clone(typed)
		if out == nil {
			out = make(map[string]any, 1)
		}
		child, err := set(typed[seg.Key], rest, value, expr)
		if err != nil {
			return node, err
		}
		out[seg.Key] = child
		return out, nil

	case []any:
		if seg.Index < 0 {
			return node, fmt.Errorf("%w: segment %q of %q addresses a sequence", ErrNotIndex, seg.Key, expr)
		}
		if seg.Index >= len(typed) && seg.Index-len(typed) >= MaxGrowth {
			return node, fmt.Errorf("%w: index %d of %q grows a sequence of %d", ErrOutOfRange, seg.Index, expr, len(typed))
		}
		out := make([]any, max(len(typed), seg.Index+1))
		copy(out, typed)
		child, err := set(out[seg.Index], rest, value, expr)
		if err != nil {
			return node, err
		}
		out[seg.Index] = child
		return out, nil

	case nil:
		if seg.Index >= 0 && seg.Key == strconv.Itoa(seg.Index) {
			return set([]any{}, segments, value, expr)
		}
		return set(map[string]any{}, segments, value, expr)

	default:
		return node, fmt.Errorf("%w: cannot descend into %T at %q of %q", ErrNotContainer, node, seg.Key, expr)
	}
}

// Delete returns a copy of root without the value at expr. Slice elements
// are spliced out. A missing path returns root unchanged.
func Delete(root any, expr string) any {
	segments, err := Parse(expr)
	if err != nil || len(segments) == 0 {
		return root
	}
	out, _ := remove(root, segments)
	return out
}

func remove(node any, segments []Segment) (any, bool) {
	seg, rest := segments[0], segments[1:]

	switch typed := node.(type) {
	case map[string]any:
		child, ok := typed[seg.Key]
		if !ok {
			return node, false
		}
		out := maps.Clone(typed)
		if len(rest) == 0 {
			delete(out, seg.Key)
			return out, true
		}
		next, changed := remove(child, rest)
		if !changed {
			return node, false
		}
		out[seg.Key] = next
		return out, true

	case []any:
		if seg.Index < 0 || seg.Index >= len(typed) {
			return node, false
		}
		if len(rest) == 0 {
			out := make([]any, 0, len(typed)-1)
			out = append(out, typed[:seg.Index]...)
			return append(out, typed[seg.Index+1:]...), true
		}
		next, changed := remove(typed[seg.Index], rest)
		if !changed {
			return node, false
		}
		out := make([]any, len(typed))
		copy(out, typed)
		out[seg.Index] = next
		return out, true
	}

	return node, false
}
