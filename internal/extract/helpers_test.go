package extract

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/f3rmion/pulvis/internal/markup"
	"github.com/stretchr/testify/require"
)

func loadTestingFile(relativePath string, t *testing.T) string {
	_, filepath, _, _ := runtime.Caller(0)
	srcPath := path.Join(filepath, "..", "..", "..", relativePath)
	content, err := os.ReadFile(srcPath)
	if err != nil {
		t.Error(err)
	}
	return string(content)
}

func loadDoc(t *testing.T, relativePath string) markup.Node {
	doc, err := markup.ParseString(loadTestingFile(relativePath, t))
	require.NoError(t, err)
	return doc
}

func parseDoc(t *testing.T, src string) markup.Node {
	doc, err := markup.ParseString(src)
	require.NoError(t, err)
	return doc
}

// firstMatch returns the first element matching p in doc.
func firstMatch(t *testing.T, doc markup.Node, p markup.Predicate) markup.Node {
	n, ok := markup.Find(doc, p)
	require.True(t, ok)
	return n
}
