package textextract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jhoicas/Fletes-api/internal/domain"
)

// pdfText lee y valida el PDF y reconstruye las líneas de cada página desde su flujo de contenido.
func pdfText(ctx context.Context, data []byte) (text string, err error) {
	// pdfcpu puede entrar en pánico con archivos corruptos.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: PDF ilegible: %v", domain.ErrUnsupportedDocument, r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", fmt.Errorf("%w: leer PDF: %v", domain.ErrUnsupportedDocument, err)
	}

	var out bytes.Buffer
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
		if err != nil {
			return "", fmt.Errorf("página %d: %w", pageNr, err)
		}
		if r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("página %d: %w", pageNr, err)
		}
		for _, line := range contentLines(content) {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}
