package docx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return bytes.NewReader(buf.Bytes())
}

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r><w:t>Câu 1: Thủ đô của Việt Nam?</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>A. Hà Nội</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>B. </w:t></w:r>
      <w:r><w:t>Đà Nẵng</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

func TestParseExtractsParagraphsAndRuns(t *testing.T) {
	r := buildDocx(t, sampleDocument)
	paragraphs, err := Parse(r, r.Size())
	require.NoError(t, err)
	require.Len(t, paragraphs, 3)

	assert.Equal(t, "Câu 1: Thủ đô của Việt Nam?", paragraphs[0].Text)

	require.Len(t, paragraphs[1].Runs, 1)
	assert.True(t, paragraphs[1].Runs[0].Underlined)
	assert.Equal(t, "A. Hà Nội", paragraphs[1].Text)

	// Nhiều run trong một đoạn được ghép lại thành văn bản đầy đủ.
	assert.Equal(t, "B. Đà Nẵng", paragraphs[2].Text)
	assert.False(t, paragraphs[2].Runs[0].Underlined)
}

func TestParseUnderlineNoneIsNotUnderlined(t *testing.T) {
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:rPr><w:u w:val="none"/></w:rPr><w:t>A. Không gạch</w:t></w:r></w:p>
  </w:body>
</w:document>`
	r := buildDocx(t, doc)
	paragraphs, err := Parse(r, r.Size())
	require.NoError(t, err)
	require.Len(t, paragraphs, 1)
	assert.False(t, paragraphs[0].Runs[0].Underlined)
}

func TestParseRejectsNonDocx(t *testing.T) {
	r := bytes.NewReader([]byte("đây không phải file zip"))
	_, err := Parse(r, r.Size())
	assert.ErrorIs(t, err, ErrNotDocx)
}

func TestParseRejectsZipWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("khac.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("nội dung"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := bytes.NewReader(buf.Bytes())
	_, err = Parse(r, r.Size())
	assert.ErrorIs(t, err, ErrNotDocx)
}
