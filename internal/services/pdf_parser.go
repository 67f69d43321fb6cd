package services

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFParserService extracts plain text from CV documents. Pages that yield no
// text are skipped silently; only an unreadable stream is an error.
type PDFParserService interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
	ExtractTextFromBytes(data []byte) (string, error)
	ExtractTextFromFile(filePath string) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	return collectText(reader), nil
}

func (p *pdfParserService) ExtractTextFromBytes(data []byte) (string, error) {
	return p.ExtractText(bytes.NewReader(data), int64(len(data)))
}

func (p *pdfParserService) ExtractTextFromFile(filePath string) (string, error) {
	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer f.Close()

	return collectText(reader), nil
}

func collectText(reader *pdf.Reader) string {
	var textBuilder bytes.Buffer
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable page, keep going with the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String()
}
