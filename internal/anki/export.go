// Package anki exports looked-up words as Anki notes, either as an .apkg
// package or as a file for Anki's text importer.
package anki

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/f3rmion/pulvis/internal/latin"
)

// Note is one flashcard: Latin on the front, English on the back.
type Note struct {
	Front string
	Back  string
	Tags  []string
}

// FromForward turns a resolved forward entry into a note. Entries without a
// meaning yield no note.
func FromForward(e *latin.ForwardEntry) (Note, bool) {
	if e == nil || e.Meaning == nil || e.Meaning.Lemma == "" {
		return Note{}, false
	}
	back := strings.Join(e.Meaning.Meanings, "; ")
	if e.Meaning.Grammar != "" {
		back = e.Meaning.Grammar + ": " + back
	}
	return Note{
		Front: e.Meaning.Lemma,
		Back:  back,
		Tags:  []string{"pulvis", "latin"},
	}, true
}

// FromReverse turns every offered word of a reverse result into a note whose
// back is the English lemma it was offered for.
func FromReverse(r *latin.ReverseResult) []Note {
	if r == nil {
		return nil
	}
	var notes []Note
	for _, entry := range r.Entries {
		for _, cat := range entry.Categories {
			for _, item := range cat.Items {
				back := entry.Lemma
				if item.Nuance != "" {
					back += " (" + item.Nuance + ")"
				}
				notes = append(notes, Note{
					Front: item.Word,
					Back:  back,
					Tags:  []string{"pulvis", "eng", tag(cat.Name)},
				})
			}
		}
	}
	return notes
}

func tag(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// Write writes notes as a tab separated file with Anki import headers.
func Write(w io.Writer, notes []Note) error {
	header := "#separator:tab\n#html:false\n#tags column:3\n"
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for _, n := range notes {
		if err := cw.Write([]string{n.Front, n.Back, strings.Join(n.Tags, " ")}); err != nil {
			return fmt.Errorf("writing note %q: %w", n.Front, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveAs writes notes to path. An .apkg path gets an Anki package, merged
// with the notes already in it; any other path gets a new text import file.
func SaveAs(path string, notes []Note) error {
	if strings.EqualFold(filepath.Ext(path), ".apkg") {
		return savePackage(path, notes)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := Write(f, notes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
