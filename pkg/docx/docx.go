// Package docx đọc nội dung văn bản của file Word (.docx): file là một zip,
// phần thân nằm trong word/document.xml theo chuẩn OOXML. Chỉ lấy những gì
// bộ nhập đề thi cần (từng đoạn văn với các run và cờ gạch chân) nên giải
// mã XML trực tiếp thay vì kéo cả một thư viện Office.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

// Run là một đoạn chữ cùng định dạng trong đoạn văn.
type Run struct {
	Text       string
	Underlined bool
}

// Paragraph là một đoạn văn: toàn bộ chữ và danh sách run.
type Paragraph struct {
	Text string
	Runs []Run
}

var ErrNotDocx = errors.New("file không phải định dạng .docx hợp lệ")

type xmlDocument struct {
	Body xmlBody `xml:"body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"p"`
}

type xmlParagraph struct {
	Runs []xmlRun `xml:"r"`
}

type xmlRun struct {
	Props *xmlRunProps `xml:"rPr"`
	Texts []string     `xml:"t"`
}

type xmlRunProps struct {
	Underline *xmlUnderline `xml:"u"`
}

type xmlUnderline struct {
	Val string `xml:"val,attr"`
}

// Open đọc file .docx trên đĩa và trả về danh sách đoạn văn.
func Open(path string) ([]Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Parse(f, info.Size())
}

// Parse đọc một file .docx từ reader bất kỳ (ví dụ file upload trong bộ nhớ).
func Parse(r io.ReaderAt, size int64) ([]Paragraph, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, ErrNotDocx
	}

	var docFile *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, ErrNotDocx
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var doc xmlDocument
	if err := xml.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, ErrNotDocx
	}

	paragraphs := make([]Paragraph, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		var para Paragraph
		var sb strings.Builder
		for _, r := range p.Runs {
			text := strings.Join(r.Texts, "")
			underlined := r.Props != nil && r.Props.Underline != nil && r.Props.Underline.Val != "none"
			para.Runs = append(para.Runs, Run{Text: text, Underlined: underlined})
			sb.WriteString(text)
		}
		para.Text = sb.String()
		paragraphs = append(paragraphs, para)
	}

	return paragraphs, nil
}
