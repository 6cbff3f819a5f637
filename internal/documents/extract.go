package documents

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

type format int

const (
	formatUnknown format = iota
	formatText
	formatPDF
	formatDOCX
	formatHTML
)

var extensions = map[string]format{
	".txt":  formatText,
	".md":   formatText,
	".pdf":  formatPDF,
	".docx": formatDOCX,
	".html": formatHTML,
	".htm":  formatHTML,
}

var mediaTypes = map[string]format{
	"text/plain":            formatText,
	"text/markdown":         formatText,
	"application/pdf":       formatPDF,
	"text/html":             formatHTML,
	"application/xhtml+xml": formatHTML,

	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": formatDOCX,
}

// Supported reports whether files with extension ext can be read.
func Supported(ext string) bool {
	_, ok := extensions[strings.ToLower(ext)]
	return ok
}

// Extract turns raw document bytes into text. The file extension of name is
// checked first, then contentType.
func Extract(name, contentType string, data []byte) (string, error) {
	f := detect(name, contentType)
	switch f {
	case formatText:
		return string(data), nil
	case formatPDF:
		return extractPDF(data)
	case formatDOCX:
		return extractDOCX(data)
	case formatHTML:
		return extractHTML(data)
	default:
		return "", fmt.Errorf("%s (%s): %w", filepath.Base(name), contentType, ErrUnsupported)
	}
}

func detect(name, contentType string) format {
	if f, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f
	}
	if contentType == "" {
		return formatUnknown
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return formatUnknown
	}
	return mediaTypes[mediaType]
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return xmlText(doc.Editable().GetContent())
}

// xmlText keeps the character data of a WordprocessingML body. Paragraph and
// break elements become newlines, tabs become tabs.
func xmlText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read docx body: %w", err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			switch t.Name.Local {
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				b.WriteByte('\n')
			}
		}
	}
	return b.String(), nil
}

func extractHTML(data []byte) (string, error) {
	md, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}
	return md, nil
}
