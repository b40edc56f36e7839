package extract

import (
	"github.com/f3rmion/pulvis/internal/markup"
)

// Extractor reads dictionary pages using a fixed marker contract.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	c Classifier
}

// New creates an extractor for the given markers.
func New(m Markers) *Extractor {
	return &Extractor{c: NewClassifier(m)}
}

// Classifier returns the node classifier of the extractor.
func (x *Extractor) Classifier() Classifier {
	return x.c
}

func (x *Extractor) is(k Kind) markup.Predicate {
	return func(n markup.Node) bool {
		return x.c.Classify(n) == k
	}
}

// EntryBody locates the entry body of a forward page. Its absence tells the
// caller the entry does not exist.
func (x *Extractor) EntryBody(doc markup.Node) (markup.Node, bool) {
	return markup.Find(doc, markup.ID(x.c.m.EntryBodyID))
}

// ReverseContainer locates the token container of a reverse page.
func (x *Extractor) ReverseContainer(doc markup.Node) (markup.Node, bool) {
	return markup.Find(doc, markup.And(markup.Tag("div"), markup.ID(x.c.m.EntryBodyID)))
}

// FlexionRoot locates the conjugation/declension container of a flexion page.
func (x *Extractor) FlexionRoot(doc markup.Node) (markup.Node, bool) {
	return markup.Find(doc, markup.And(markup.Tag("div"), markup.Class(x.c.m.FlexionRoot)))
}
