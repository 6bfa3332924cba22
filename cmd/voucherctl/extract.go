package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Fletes-api/internal/application/dto"
	"github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/application/usecase"
	"github.com/jhoicas/Fletes-api/internal/domain"
	domextraction "github.com/jhoicas/Fletes-api/internal/domain/extraction"
	"github.com/jhoicas/Fletes-api/internal/infrastructure/patterns"
	"github.com/jhoicas/Fletes-api/internal/infrastructure/textextract"
)

// extractReport salida JSON de voucherctl extract.
type extractReport struct {
	File       string `json:"file"`
	SourceKind string `json:"source_kind"`
	*dto.ExtractionResponse
}

func newExtractCmd() *cobra.Command {
	var (
		file         string
		patternsFile string
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extrae y valida un voucher sin persistir (reporte JSON)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if patternsFile == "" {
				patternsFile = cfg.Extraction.PatternsFile
			}
			extra, err := patterns.LoadFile(patternsFile)
			if err != nil {
				return err
			}
			pipelines, err := extraction.NewPipelines(extraction.PipelineConfig{
				ExtraTiers: extra,
				Validator: domextraction.ValidatorConfig{
					ExpectedDocType: cfg.Extraction.ExpectedDocType,
					KnownPrefixes:   cfg.Extraction.KnownPrefixes,
				},
			})
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("leer %s: %w", file, err)
			}
			doc, err := textextract.New().Extract(cmd.Context(), filepath.Base(file), data)
			if err != nil {
				return err
			}
			res := extraction.ResultFrom(pipelines.For(doc.SourceKind).Run(doc.Text))
			log.Info().
				Str("file", doc.FileName).
				Int("candidates", res.CandidateRows).
				Int("valid", res.ValidRows).
				Float64("confidence", res.Confidence).
				Msg("extracción completada")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(extractReport{
				File:               doc.FileName,
				SourceKind:         doc.SourceKind,
				ExtractionResponse: usecase.ExtractionToResponse(res),
			}); err != nil {
				return err
			}
			if res.CandidateRows == 0 {
				return domain.ErrNoRowsMatched
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "voucher a procesar (PDF, xlsx o texto exportado)")
	cmd.Flags().StringVar(&patternsFile, "patterns", "", "YAML con niveles de patrón adicionales (por defecto EXTRACTION_PATTERNS_FILE)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
