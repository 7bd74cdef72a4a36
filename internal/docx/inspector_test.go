package docx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datmos/word-grader/internal/docx/docxtest"
)

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.docx"))

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Error(), "absent.docx")
}

func TestOpen_ZeroByteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Open(path)

	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
}

func TestOpen_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.docx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip archive"), 0644))

	_, err := Open(path)

	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
}

func TestOpen_ZipWithoutDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:styles xmlns:w="ns"/>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "partless.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	_, err = Open(path)

	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
	assert.Contains(t, corrupt.Error(), "word/document.xml")
}

func TestOpen_MalformedDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><unclosed`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "malformed.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	_, err = Open(path)

	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
}

func TestOpen_MinimalDocument(t *testing.T) {
	path := docxtest.Write(t, docxtest.Doc{
		BodyXML: docxtest.Paragraph("", "Hello world"),
	})

	doc, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = doc.Close() }()

	assert.Equal(t, path, doc.Path())
	assert.Equal(t, 1, doc.ParagraphCount())
}

func TestClose_Idempotent(t *testing.T) {
	path := docxtest.Write(t, docxtest.Doc{BodyXML: docxtest.Paragraph("", "x")})

	doc, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, doc.Close())
	require.NoError(t, doc.Close())
}
