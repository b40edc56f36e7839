package markup

import "strings"

// Predicate selects nodes during a search.
type Predicate func(Node) bool

// Classes returns the class list of an element.
func Classes(n Node) []string {
	v, _ := n.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the element carries class c.
func HasClass(n Node, c string) bool {
	for _, v := range Classes(n) {
		if v == c {
			return true
		}
	}
	return false
}

// HasAnyClass reports whether the element's class set intersects cs.
func HasAnyClass(n Node, cs ...string) bool {
	for _, c := range cs {
		if HasClass(n, c) {
			return true
		}
	}
	return false
}

// Tag matches elements by tag name.
func Tag(name string) Predicate {
	return func(n Node) bool {
		return n.IsElement() && n.Name() == name
	}
}

// ID matches the element with the given id attribute.
func ID(id string) Predicate {
	return func(n Node) bool {
		v, ok := n.Attr("id")
		return n.IsElement() && ok && v == id
	}
}

// Class matches elements carrying any of the given classes.
func Class(cs ...string) Predicate {
	return func(n Node) bool {
		return n.IsElement() && HasAnyClass(n, cs...)
	}
}

// And combines predicates.
func And(ps ...Predicate) Predicate {
	return func(n Node) bool {
		for _, p := range ps {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Elements returns the element children of n.
func Elements(n Node) []Node {
	var out []Node
	for _, ch := range n.Children() {
		if ch.IsElement() {
			out = append(out, ch)
		}
	}
	return out
}

// Find returns the first descendant of n matching p, in document order.
func Find(n Node, p Predicate) (Node, bool) {
	for _, ch := range n.Children() {
		if p(ch) {
			return ch, true
		}
		if found, ok := Find(ch, p); ok {
			return found, true
		}
	}
	return nil, false
}

// FindAll returns every descendant of n matching p, in document order.
func FindAll(n Node, p Predicate) []Node {
	var out []Node
	for _, ch := range n.Children() {
		if p(ch) {
			out = append(out, ch)
		}
		out = append(out, FindAll(ch, p)...)
	}
	return out
}

// FindChild returns the first direct child of n matching p.
func FindChild(n Node, p Predicate) (Node, bool) {
	for _, ch := range n.Children() {
		if p(ch) {
			return ch, true
		}
	}
	return nil, false
}

// FindChildren returns the direct children of n matching p.
func FindChildren(n Node, p Predicate) []Node {
	var out []Node
	for _, ch := range n.Children() {
		if p(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// OwnTexts returns the direct text children of n, trimmed, in order.
// Empty strings are kept so callers see the exact node sequence.
func OwnTexts(n Node) []string {
	var out []string
	for _, ch := range n.Children() {
		if ch.IsText() {
			out = append(out, strings.TrimSpace(ch.Text()))
		}
	}
	return out
}
