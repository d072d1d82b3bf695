package main

import (
	"encoding/json"
	"fmt"
	"os"

	"jobhive/internal/domain"
	"jobhive/internal/model"
	"jobhive/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	inPath  string
	tplName string
	outPath string
)

// Writes the HTML preview of a resume JSON file, for tweaking templates
// without going through Chrome.
var rootCmd = &cobra.Command{
	Use:          "render_resume",
	Short:        "Write the HTML preview of a resume JSON file",
	SilenceUsage: true,
	RunE:         runRender,
}

func init() {
	rootCmd.Flags().StringVar(&inPath, "in", "resume.json", "resume JSON file")
	rootCmd.Flags().StringVar(&tplName, "template", string(domain.DefaultTemplate), "resume template id")
	rootCmd.Flags().StringVar(&outPath, "out", "resume_preview.html", "output HTML file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := model.ValidateResume(doc); err != nil {
		return fmt.Errorf("invalid resume: %w", err)
	}

	data := domain.EmptyResumeData()
	if err := json.Unmarshal(b, &data); err != nil {
		return fmt.Errorf("decode resume: %w", err)
	}
	t, ok := domain.ParseTemplate(tplName)
	if !ok {
		return fmt.Errorf("unknown template %q", tplName)
	}

	html, err := usecase.RenderResumeHTML(t, data)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
	return nil
}
