// Package textextract obtiene el texto plano de los vouchers cargados: PDF (flujos de
// contenido vía pdfcpu), hojas de cálculo xlsx (excelize) y exportaciones de texto.
package textextract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	appextraction "github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

var _ appextraction.TextExtractor = (*Extractor)(nil)

var (
	magicPDF = []byte("%PDF-")
	magicZip = []byte("PK\x03\x04")
	utf8BOM  = []byte("\xEF\xBB\xBF")
)

// Extensiones aceptadas como texto exportado.
var textExtensions = map[string]bool{
	".txt": true,
	".prn": true,
	".csv": true,
	".dat": true,
	"":     true,
}

// Extractor implementa extraction.TextExtractor.
type Extractor struct{}

// New construye el extractor.
func New() *Extractor { return &Extractor{} }

// Extract detecta el formato por contenido (y extensión para texto) y devuelve el texto línea por línea.
func (e *Extractor) Extract(ctx context.Context, fileName string, data []byte) (appextraction.Document, error) {
	doc := appextraction.Document{FileName: fileName}
	if len(data) == 0 {
		return doc, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return doc, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	var err error
	switch {
	case bytes.HasPrefix(data, magicPDF):
		doc.SourceKind = entity.SourceKindPDF
		doc.Text, err = pdfText(ctx, data)
	case bytes.HasPrefix(data, magicZip) && (ext == ".xlsx" || ext == ".xlsm"):
		doc.SourceKind = entity.SourceKindXLSX
		doc.Text, err = xlsxText(data)
	case textExtensions[ext] && !bytes.ContainsRune(data, 0):
		doc.SourceKind = entity.SourceKindText
		doc.Text = decodeText(data)
	default:
		return doc, fmt.Errorf("%w: %s", domain.ErrUnsupportedDocument, fileName)
	}
	return doc, err
}

// decodeText UTF-8 tal cual (sin BOM); cualquier otra cosa se interpreta como Windows-1252,
// la codificación de las exportaciones de los sistemas de despacho.
func decodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(bytes.ToValidUTF8(data, []byte("?")))
	}
	return string(out)
}
