package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFExportService renders archive documents: a title, three metadata lines
// (summary type, length setting, generation time), and the word-wrapped body.
type PDFExportService struct{}

func NewPDFExportService() *PDFExportService {
	return &PDFExportService{}
}

// Generate returns the document as base64, the storage form of a SavedPDF
// payload.
func (s *PDFExportService) Generate(title, summaryType string, summaryLength int, content string, generatedAt time.Time) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, fmt.Sprintf("Type: %s", summaryType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Length: %d%%", summaryLength), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	for _, paragraph := range strings.Split(content, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 5.5, paragraph, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", fmt.Errorf("failed to render PDF: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode turns a stored payload back into PDF bytes for download.
func (s *PDFExportService) Decode(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("stored PDF payload is not valid base64: %w", err)
	}
	return data, nil
}

// Filename sanitizes a title into a download name: lower-cased alphanumerics
// only, with a fixed .pdf extension. An empty result falls back to
// "document.pdf".
func Filename(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = "document"
	}
	return name + ".pdf"
}
