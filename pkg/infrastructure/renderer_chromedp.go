package infrastructure

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "jobhive/internal/errors"
	"jobhive/internal/usecase"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Pagination modes.
const (
	ModeShift = "shift"
	ModeFlow  = "flow"
)

// A4 paper in inches for PrintToPDF.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// ChromedpRenderer turns resume HTML into a PDF with headless Chrome.
type ChromedpRenderer struct {
	mode       string
	chromePath string
	timeout    time.Duration
	log        *zap.Logger
}

func NewChromedpRenderer(mode, chromePath string, timeout time.Duration, log *zap.Logger) *ChromedpRenderer {
	if mode != ModeFlow {
		mode = ModeShift
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromedpRenderer{mode: mode, chromePath: chromePath, timeout: timeout, log: log}
}

func (r *ChromedpRenderer) Mode() string { return r.mode }

func (r *ChromedpRenderer) RenderResumePDF(ctx context.Context, html, elementID string) (*usecase.PDF, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()
	cctx, cancelTimeout := context.WithTimeout(cctx, r.timeout)
	defer cancelTimeout()

	tmpDir, err := os.MkdirTemp("", "jobhive-resume-")
	if err != nil {
		return nil, apperrors.Internal("failed to prepare render directory", err)
	}
	defer os.RemoveAll(tmpDir)

	sourceURL, err := writePage(tmpDir, "resume.html", html)
	if err != nil {
		return nil, apperrors.Internal("failed to write resume html", err)
	}

	start := time.Now()
	var pdf *usecase.PDF
	if r.mode == ModeFlow {
		pdf, err = r.flow(cctx, sourceURL, elementID)
	} else {
		pdf, err = r.shift(cctx, tmpDir, sourceURL, elementID)
	}
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.Unavailable("pdf renderer failed", err)
	}
	r.log.Info("resume rendered",
		zap.String("mode", r.mode),
		zap.Int("pages", pdf.Pages),
		zap.Int("bytes", len(pdf.Data)),
		zap.Duration("took", time.Since(start)))
	return pdf, nil
}

// shift snapshots the element once and lays the same image on every page,
// moved up by one page height each time.
func (r *ChromedpRenderer) shift(ctx context.Context, tmpDir, sourceURL, elementID string) (*usecase.PDF, error) {
	selector := "#" + elementID
	var (
		exists bool
		shot   []byte
	)
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(PageWidthPx, PageHeightPx, chromedp.EmulateScale(2)),
		chromedp.Navigate(sourceURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(elementExistsJS(elementID), &exists),
	)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound(fmt.Sprintf("element with id %s not found", elementID), nil)
	}

	err = chromedp.Run(ctx,
		chromedp.Evaluate(printSafeColorsJS, nil),
		chromedp.Screenshot(selector, &shot, chromedp.ByQuery, chromedp.NodeVisible),
	)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	plan := PlanPages(cfg.Width, cfg.Height)
	r.log.Debug("snapshot planned",
		zap.Int("width_px", cfg.Width),
		zap.Int("height_px", cfg.Height),
		zap.Float64("height_mm", plan.ImageHeightMM),
		zap.Int("pages", plan.Pages()))

	pagesURL, err := writePage(tmpDir, "pages.html", composePages(shot, plan))
	if err != nil {
		return nil, err
	}

	var buf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(pagesURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return &usecase.PDF{Data: buf, Pages: plan.Pages()}, nil
}

// flow prints the document directly and lets Chrome break pages.
func (r *ChromedpRenderer) flow(ctx context.Context, sourceURL, elementID string) (*usecase.PDF, error) {
	var (
		exists bool
		height float64
		buf    []byte
	)
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(PageWidthPx, PageHeightPx),
		chromedp.Navigate(sourceURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(elementExistsJS(elementID), &exists),
	)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound(fmt.Sprintf("element with id %s not found", elementID), nil)
	}

	err = chromedp.Run(ctx,
		chromedp.Evaluate(`document.documentElement.scrollHeight`, &height),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	pages := int(math.Ceil(height / PageHeightPx))
	if pages < 1 {
		pages = 1
	}
	return &usecase.PDF{Data: buf, Pages: pages}, nil
}

const printSafeColorsJS = `document.querySelectorAll('[class*="bg-"]').forEach(function (el) {
	el.style.setProperty('print-color-adjust', 'exact');
	el.style.setProperty('-webkit-print-color-adjust', 'exact');
})`

func elementExistsJS(id string) string {
	return "document.getElementById(" + strconv.Quote(id) + ") !== null"
}

// composePages builds an HTML document with one A4 page per plan offset,
// each showing the same PNG.
func composePages(png []byte, plan PagePlan) string {
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>`)
	b.WriteString(`@page{size:A4;margin:0}html,body{margin:0;padding:0;background:#ffffff}`)
	b.WriteString(`.page{position:relative;width:210mm;height:297mm;overflow:hidden;page-break-after:always}`)
	b.WriteString(`.page:last-child{page-break-after:auto}.page img{position:absolute;left:0;display:block}`)
	b.WriteString(`</style></head><body>`)
	for _, off := range plan.Offsets {
		fmt.Fprintf(&b, `<div class="page"><img src="%s" style="top:-%.3fmm;width:%.3fmm;height:%.3fmm"></div>`,
			src, off, plan.ImageWidthMM, plan.ImageHeightMM)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func writePage(dir, name, html string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", err
	}
	return "file://" + path, nil
}
