package anki

import (
	"archive/zip"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	collectionFile = "collection.anki2"
	fieldSeparator = "\x1f"

	deckID  int64 = 1718000000001
	modelID int64 = 1718000000002
	deckName      = "pulvis"
	modelName     = "pulvis Latin"
)

// schema is the version 11 collection layout that Anki imports from .apkg files.
var schema = []string{
	`CREATE TABLE col (
		id integer primary key, crt integer not null, mod integer not null,
		scm integer not null, ver integer not null, dty integer not null,
		usn integer not null, ls integer not null, conf text not null,
		models text not null, decks text not null, dconf text not null,
		tags text not null)`,
	`CREATE TABLE notes (
		id integer primary key, guid text not null, mid integer not null,
		mod integer not null, usn integer not null, tags text not null,
		flds text not null, sfld text not null, csum integer not null,
		flags integer not null, data text not null)`,
	`CREATE TABLE cards (
		id integer primary key, nid integer not null, did integer not null,
		ord integer not null, mod integer not null, usn integer not null,
		type integer not null, queue integer not null, due integer not null,
		ivl integer not null, factor integer not null, reps integer not null,
		lapses integer not null, left integer not null, odue integer not null,
		odid integer not null, flags integer not null, data text not null)`,
	`CREATE TABLE revlog (
		id integer primary key, cid integer not null, usn integer not null,
		ease integer not null, ivl integer not null, lastIvl integer not null,
		factor integer not null, time integer not null, type integer not null)`,
	`CREATE TABLE graves (usn integer not null, oid integer not null, type integer not null)`,
}

// Package is the note content of an Anki .apkg file.
type Package struct {
	path    string
	tempDir string
	db      *sql.DB
	Notes   []Note
}

// OpenPackage opens an Anki .apkg file for reading.
func OpenPackage(path string) (*Package, error) {
	tempDir, err := os.MkdirTemp("", "pulvis-anki-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	pkg := &Package{path: path, tempDir: tempDir}

	if err := pkg.extract(); err != nil {
		pkg.Close()
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(tempDir, collectionFile))
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	pkg.db = db

	if err := pkg.loadNotes(); err != nil {
		pkg.Close()
		return nil, err
	}
	return pkg, nil
}

// extract unzips the collection of the package.
func (p *Package) extract() error {
	r, err := zip.OpenReader(p.path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != collectionFile {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		out, err := os.Create(filepath.Join(p.tempDir, collectionFile))
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	}
	return fmt.Errorf("%s: no %s in package", p.path, collectionFile)
}

func (p *Package) loadNotes() error {
	rows, err := p.db.Query(`SELECT flds, tags FROM notes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var flds, tags string
		if err := rows.Scan(&flds, &tags); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}
		fields := strings.Split(flds, fieldSeparator)
		n := Note{Front: fields[0]}
		if t := strings.Fields(tags); len(t) > 0 {
			n.Tags = t
		}
		if len(fields) > 1 {
			n.Back = fields[1]
		}
		p.Notes = append(p.Notes, n)
	}
	return rows.Err()
}

// Close cleans up resources.
func (p *Package) Close() error {
	if p.db != nil {
		p.db.Close()
	}
	if p.tempDir != "" {
		os.RemoveAll(p.tempDir)
	}
	return nil
}

// savePackage writes notes as an .apkg file. Notes of an existing package at
// path are kept; a note whose front is already there is not added twice.
func savePackage(path string, notes []Note) error {
	if _, err := os.Stat(path); err == nil {
		old, err := OpenPackage(path)
		if err != nil {
			return fmt.Errorf("reading existing package: %w", err)
		}
		existing := old.Notes
		old.Close()
		notes = mergeNotes(existing, notes)
	}

	tempDir, err := os.MkdirTemp("", "pulvis-anki-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, collectionFile)
	if err := writeCollection(dbPath, notes, time.Now()); err != nil {
		return err
	}
	return zipCollection(path, dbPath)
}

func mergeNotes(existing, added []Note) []Note {
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n.Front] = true
	}
	out := existing
	for _, n := range added {
		if seen[n.Front] {
			continue
		}
		seen[n.Front] = true
		out = append(out, n)
	}
	return out
}

// writeCollection creates the sqlite collection holding one card per note.
func writeCollection(dbPath string, notes []Note, now time.Time) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	models, decks, dconf, err := collectionJSON(now)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	sec := now.Unix()
	if _, err := tx.Exec(`INSERT INTO col VALUES (1, ?, ?, ?, 11, 0, 0, 0, '{}', ?, ?, ?, '{}')`,
		sec, now.UnixMilli(), now.UnixMilli(), models, decks, dconf); err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}

	base := now.UnixMilli()
	for i, n := range notes {
		id := base + int64(i)
		if _, err := tx.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`,
			id, guid(n.Front), modelID, sec, " "+strings.Join(n.Tags, " ")+" ",
			n.Front+fieldSeparator+n.Back, n.Front, checksum(n.Front)); err != nil {
			return fmt.Errorf("writing note %q: %w", n.Front, err)
		}
		if _, err := tx.Exec(`INSERT INTO cards VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			id, id, deckID, sec, i+1); err != nil {
			return fmt.Errorf("writing card %q: %w", n.Front, err)
		}
	}
	return tx.Commit()
}

func collectionJSON(now time.Time) (models, decks, dconf string, err error) {
	id := strconv.FormatInt(modelID, 10)
	m := map[string]any{id: map[string]any{
		"id":    modelID,
		"name":  modelName,
		"type":  0,
		"mod":   now.Unix(),
		"usn":   -1,
		"sortf": 0,
		"did":   deckID,
		"flds": []map[string]any{
			{"name": "Latin", "ord": 0, "sticky": false, "rtl": false, "font": "Arial", "size": 20, "media": []string{}},
			{"name": "English", "ord": 1, "sticky": false, "rtl": false, "font": "Arial", "size": 20, "media": []string{}},
		},
		"tmpls": []map[string]any{{
			"name": "Latin to English", "ord": 0,
			"qfmt": "{{Latin}}", "afmt": "{{FrontSide}}<hr id=answer>{{English}}",
			"did": nil, "bqfmt": "", "bafmt": "",
		}},
		"css":       ".card { font-family: arial; font-size: 20px; text-align: center; }",
		"latexPre":  "",
		"latexPost": "",
		"tags":      []string{},
		"vers":      []string{},
		"req":       []any{[]any{0, "all", []int{0}}},
	}}
	deck := func(id int64, name string) map[string]any {
		return map[string]any{
			"id": id, "name": name, "desc": "", "mod": now.Unix(), "usn": -1,
			"collapsed": false, "dyn": 0, "conf": 1, "extendNew": 10, "extendRev": 50,
			"newToday": []int{0, 0}, "revToday": []int{0, 0}, "lrnToday": []int{0, 0}, "timeToday": []int{0, 0},
		}
	}
	d := map[string]any{
		"1":                            deck(1, "Default"),
		strconv.FormatInt(deckID, 10): deck(deckID, deckName),
	}
	c := map[string]any{"1": map[string]any{
		"id": 1, "name": "Default", "mod": 0, "usn": 0, "maxTaken": 60, "autoplay": true, "timer": 0, "replayq": true, "dyn": false,
		"new":   map[string]any{"delays": []int{1, 10}, "ints": []int{1, 4, 7}, "initialFactor": 2500, "order": 1, "perDay": 20, "bury": true, "separate": true},
		"rev":   map[string]any{"perDay": 100, "ease4": 1.3, "fuzz": 0.05, "maxIvl": 36500, "bury": true, "minSpace": 1, "ivlFct": 1},
		"lapse": map[string]any{"delays": []int{10}, "mult": 0, "minInt": 1, "leechFails": 8, "leechAction": 0},
	}}

	parts := make([]string, 3)
	for i, v := range []any{m, d, c} {
		b, err := json.Marshal(v)
		if err != nil {
			return "", "", "", fmt.Errorf("marshaling collection: %w", err)
		}
		parts[i] = string(b)
	}
	return parts[0], parts[1], parts[2], nil
}

// guid derives a stable note id so re-exports update instead of duplicating.
func guid(front string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte("pulvis:"+front)))[:10]
}

// checksum is the first 8 hex digits of the sort field's SHA-256.
func checksum(sfld string) int64 {
	hashStr := fmt.Sprintf("%x", sha256.Sum256([]byte(sfld)))
	csum, _ := strconv.ParseInt(hashStr[:8], 16, 64)
	return csum
}

// zipCollection packs the collection and an empty media map into path.
func zipCollection(path, dbPath string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	zw := zip.NewWriter(outFile)
	w, err := zw.Create(collectionFile)
	if err != nil {
		return fmt.Errorf("creating zip: %w", err)
	}
	db, err := os.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if _, err := io.Copy(w, db); err != nil {
		return fmt.Errorf("creating zip: %w", err)
	}

	w, err = zw.Create("media")
	if err != nil {
		return fmt.Errorf("creating zip: %w", err)
	}
	if _, err := io.WriteString(w, "{}"); err != nil {
		return fmt.Errorf("creating zip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("creating zip: %w", err)
	}
	return outFile.Close()
}
