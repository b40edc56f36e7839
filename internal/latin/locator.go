package latin

import (
	"net/url"
	"strings"
)

// Endpoints describes the URL shapes of the lexical source.
type Endpoints struct {
	BaseURL     string `yaml:"base_url" json:"base_url"`
	EntryPath   string `yaml:"entry_path" json:"entry_path"`
	FlexionPath string `yaml:"flexion_path" json:"flexion_path"`
	ReversePath string `yaml:"reverse_path" json:"reverse_path"`
}

// DefaultEndpoints returns the URL shapes of online-latin-dictionary.com.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		BaseURL:     "https://www.online-latin-dictionary.com",
		EntryPath:   "latin-english-dictionary.php",
		FlexionPath: "latin-dictionary-flexion.php",
		ReversePath: "english-latin-dictionary.php",
	}
}

// Resolve joins a site-relative path onto the base URL.
func (e Endpoints) Resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(e.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// ReverseURL returns the English to Latin page for term.
func (e Endpoints) ReverseURL(term string) string {
	return e.Resolve(e.ReversePath + "?parola=" + url.QueryEscape(term))
}

// Locator addresses one lexeme: a word plus an optional numeric variant.
type Locator struct {
	Word    string `json:"word"`
	Variant string `json:"variant,omitempty"`
}

// ParseLocator splits "word" or "word,variant" input.
func ParseLocator(input string) Locator {
	word, variant, _ := strings.Cut(strings.TrimSpace(input), ",")
	return Locator{Word: strings.TrimSpace(word), Variant: strings.TrimSpace(variant)}
}

func (l Locator) query() string {
	key := "parola"
	if l.Variant != "" {
		key = "lemma"
	}
	return key + "=" + url.QueryEscape(l.Word) + l.Variant
}

// EntryURL returns the dictionary entry page of the lexeme.
func (l Locator) EntryURL(e Endpoints) string {
	return e.Resolve(e.EntryPath + "?" + l.query())
}

// FlexionURL returns the conjugation/declension page of the lexeme.
func (l Locator) FlexionURL(e Endpoints) string {
	return e.Resolve(e.FlexionPath + "?" + l.query())
}

// Key identifies the locator in caches and history.
func (l Locator) Key() string {
	return l.Word + l.Variant
}

func (l Locator) String() string {
	if l.Variant == "" {
		return l.Word
	}
	return l.Word + "," + l.Variant
}
