package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

const reportTitle = "DocuMentor AI - Conversation Summary"

// Generator renders conversation summaries into PDF files under outputDir.
// The files are transient: they exist only until the response carrying them
// is fully sent.
type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{outputDir: outputDir}
}

// RenderSummary writes the summary into a fresh PDF file and returns its
// path. On failure no file is left behind.
func (g *Generator) RenderSummary(summary string) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	name := fmt.Sprintf("Summary_%s.pdf", strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	path := filepath.Join(g.outputDir, name)

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
	doc.Ln(10)

	doc.SetFont("Arial", "", 12)
	doc.MultiCell(0, 10, CleanText(summary), "", "L", false)

	if err := doc.OutputFileAndClose(path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("render pdf: %w", err)
	}
	return path, nil
}

var pdfReplacer = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"—", "-", // em dash
	"–", "-", // en dash
	"…", "...", // ellipsis
	"•", "-", // bullet
	"**", "",
	"* ", "- ",
)

// CleanText standardizes characters that break the PDF core fonts
// (Latin-1 limitations) and strips simple markdown emphasis.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	cleaned := pdfReplacer.Replace(text)
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, cleaned)
}
