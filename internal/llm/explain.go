package llm

import (
	"context"
	"fmt"

	"github.com/f3rmion/pulvis/internal/latin"
	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent requests when explaining reverse results.
const maxParallel = 4

// EntryExpression formats a forward entry the way Explain expects it.
func EntryExpression(m *latin.WordMeaning) string {
	return fmt.Sprintf("%s (%s)", latin.StripAccents(m.Lemma), m.Grammar)
}

// ExplainEntry explains the headword of a resolved forward entry.
func (c *Client) ExplainEntry(ctx context.Context, e *latin.ForwardEntry) ([]Explanation, error) {
	if c == nil || e == nil || e.Meaning == nil {
		return nil, nil
	}
	return c.Explain(ctx, []string{EntryExpression(e.Meaning)})
}

// ExplainReverse explains every offered Latin word of a reverse result, one
// request per category, and returns the explanations in result order.
func (c *Client) ExplainReverse(ctx context.Context, r *latin.ReverseResult) ([]Explanation, error) {
	if c == nil || r == nil {
		return nil, nil
	}

	var batches [][]string
	for _, entry := range r.Entries {
		for _, cat := range entry.Categories {
			var exprs []string
			for _, item := range cat.Items {
				exprs = append(exprs, fmt.Sprintf("%s (%s)", latin.StripAccents(item.Word), cat.Name))
			}
			if len(exprs) > 0 {
				batches = append(batches, exprs)
			}
		}
	}

	results := make([][]Explanation, len(batches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, batch := range batches {
		g.Go(func() error {
			out, err := c.Explain(ctx, batch)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("explaining %q: %w", r.Query, err)
	}

	var all []Explanation
	for _, out := range results {
		all = append(all, out...)
	}
	return all, nil
}
