package kb

import (
	"fmt"
	"io"
	"sort"
)

// Format writes a human-readable dump of the knowledge base.
func (b *KnowledgeBase) Format(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "--- Knowledge base (%d rules) ---\n", len(b.Rules)); err != nil {
		return err
	}
	for _, r := range b.Rules {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}

// Format writes a human-readable dump of the fact base, including the seeded
// working memory in sorted name order so output is stable.
func (b *FactBase) Format(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "--- Fact base (%d initial facts) ---\n", len(b.Initial)); err != nil {
		return err
	}
	for _, f := range b.Initial {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Objetivo: %s\n", b.Goal.Name); err != nil {
		return err
	}
	names := make([]string, 0, len(b.Memory))
	for name := range b.Memory {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", name, FormatCertainty(b.Memory[name])); err != nil {
			return err
		}
	}
	return nil
}
