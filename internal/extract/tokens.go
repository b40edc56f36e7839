package extract

import (
	"github.com/f3rmion/pulvis/internal/latin"
	"github.com/f3rmion/pulvis/internal/markup"
)

// Token is one classified element of a reverse-lookup container.
type Token struct {
	Kind Kind
	Node markup.Node
}

// TokenStream lazily classifies the children of a reverse-lookup container.
// Children that are not lemma, category or vocabulary spans are skipped.
type TokenStream struct {
	c      Classifier
	nodes  []markup.Node
	pos    int
	peeked []Token
}

// Tokens creates a token stream over the direct children of container.
func (x *Extractor) Tokens(container markup.Node) *TokenStream {
	return &TokenStream{c: x.c, nodes: container.Children()}
}

func (s *TokenStream) scan() (Token, error) {
	for s.pos < len(s.nodes) {
		n := s.nodes[s.pos]
		s.pos++
		if !n.IsElement() || n.Name() != "span" {
			continue
		}
		if k := s.c.token(n); k != KindNone {
			return Token{Kind: k, Node: n}, nil
		}
	}
	return Token{}, latin.ErrEndOfStream
}

// Next consumes the next token. It returns latin.ErrEndOfStream when the
// container is exhausted.
func (s *TokenStream) Next() (Token, error) {
	if len(s.peeked) > 0 {
		t := s.peeked[0]
		s.peeked = s.peeked[1:]
		return t, nil
	}
	return s.scan()
}

// LookAhead returns the n-th upcoming token (1-based) without consuming it.
func (s *TokenStream) LookAhead(n int) (Token, error) {
	if n < 1 {
		return Token{}, latin.NewParseError("tokens", "look-ahead distance %d, want 1 or more", n)
	}
	for len(s.peeked) < n {
		t, err := s.scan()
		if err != nil {
			return Token{}, err
		}
		s.peeked = append(s.peeked, t)
	}
	return s.peeked[n-1], nil
}
