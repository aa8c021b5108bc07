package raider

// Resolve walks the document tree segment by segment and returns the
// terminal node. The document is never mutated; any mismatch aborts
// immediately with a structured *Error.
//
// An empty path resolves to the root itself.
func Resolve(root any, p Path) (any, error) {
	cur := root
	for i, seg := range p {
		switch s := seg.(type) {
		case Key:
			table, ok := cur.(map[string]any)
			if !ok {
				return nil, &Error{
					Kind:     ErrTypeMismatch,
					Resolved: p[:i],
					Segment:  seg,
					Expected: "table",
					Actual:   NodeKind(cur),
				}
			}
			next, ok := table[string(s)]
			if !ok {
				return nil, &Error{
					Kind:     ErrKeyNotFound,
					Resolved: p[:i],
					Segment:  seg,
				}
			}
			cur = next
		case Index:
			array, ok := cur.([]any)
			if !ok {
				return nil, &Error{
					Kind:     ErrTypeMismatch,
					Resolved: p[:i],
					Segment:  seg,
					Expected: "array",
					Actual:   NodeKind(cur),
				}
			}
			if int(s) >= len(array) {
				return nil, &Error{
					Kind:     ErrIndexOutOfRange,
					Resolved: p[:i],
					Segment:  seg,
					Length:   len(array),
				}
			}
			cur = array[int(s)]
		}
	}
	return cur, nil
}

// Lookup parses expr and resolves it against root in one step.
func Lookup(root any, expr string) (any, error) {
	p, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}
	return Resolve(root, p)
}
