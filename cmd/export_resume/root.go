package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"jobhive/internal/adapter/storage"
	"jobhive/internal/config"
	"jobhive/internal/domain"
	"jobhive/internal/usecase"
	infra "jobhive/pkg/infrastructure"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cliSession scopes the resume to this one run.
const cliSession = "cli"

var (
	inPath   string
	template string
	outDir   string
)

var rootCmd = &cobra.Command{
	Use:          "export_resume",
	Short:        "Render a resume JSON file to PDF",
	Long:         "Renders a resume JSON file through the same validation, template and Chrome pipeline the server uses, outside of any session.",
	SilenceUsage: true,
	RunE:         runExport,
}

func init() {
	rootCmd.Flags().StringVarP(&inPath, "in", "i", "resume.json", "resume JSON file")
	rootCmd.Flags().StringVarP(&template, "template", "t", string(domain.DefaultTemplate), "resume template id")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	b, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	var partial map[string]json.RawMessage
	if err := json.Unmarshal(b, &partial); err != nil {
		return fmt.Errorf("parse resume %s: %w", inPath, err)
	}

	ctx := cmd.Context()
	renderer := infra.NewChromedpRenderer(cfg.PDFPagination, cfg.ChromePath, cfg.PDFTimeout, log)
	svc := usecase.NewResumeService(storage.NewMemory(), renderer, log)

	if err := svc.Save(ctx, cliSession, partial); err != nil {
		return fmt.Errorf("invalid resume: %w", err)
	}
	if err := svc.SaveTemplate(ctx, cliSession, template); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	res, err := svc.Export(ctx, cliSession, "")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(outDir, res.FileName)
	if err := os.WriteFile(path, res.PDF.Data, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	log.Info("resume exported", zap.String("file", path), zap.Int("pages", res.PDF.Pages))
	return nil
}
