package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"jobhive/internal/domain"
	apperrors "jobhive/internal/errors"
	"jobhive/internal/model"

	"go.uber.org/zap"
)

type ResumeService struct {
	storage  Storage
	renderer Renderer
	log      *zap.Logger

	mu        sync.Mutex
	exporting map[string]struct{}
}

func NewResumeService(storage Storage, renderer Renderer, log *zap.Logger) *ResumeService {
	return &ResumeService{storage: storage, renderer: renderer, log: log, exporting: map[string]struct{}{}}
}

// Save shallow-merges partial into the stored resume: top-level keys in
// partial replace stored ones, every other stored key is kept.
func (s *ResumeService) Save(ctx context.Context, sid string, partial map[string]json.RawMessage) error {
	if len(partial) == 0 {
		return nil
	}

	doc := make(map[string]interface{}, len(partial))
	for k, v := range partial {
		var decoded interface{}
		if err := json.Unmarshal(v, &decoded); err != nil {
			return apperrors.InvalidInput(fmt.Sprintf("field %q is not valid JSON", k), err)
		}
		doc[k] = decoded
	}
	if err := model.ValidateResume(doc); err != nil {
		return apperrors.InvalidInput("invalid resume data", err)
	}

	existing, err := s.stored(ctx, sid)
	if err != nil {
		return err
	}
	for k, v := range partial {
		existing[k] = v
	}

	b, err := json.Marshal(existing)
	if err != nil {
		return apperrors.Internal("failed to encode resume", err)
	}
	if err := s.storage.Set(ctx, StorageKey(sid, ResumeStorageKey), string(b)); err != nil {
		return apperrors.Unavailable("resume storage unavailable", err)
	}
	return nil
}

// Load returns the stored resume laid over the empty builder defaults.
func (s *ResumeService) Load(ctx context.Context, sid string) (domain.ResumeData, error) {
	data := domain.EmptyResumeData()

	raw, ok, err := s.storage.Get(ctx, StorageKey(sid, ResumeStorageKey))
	if err != nil {
		return data, apperrors.Unavailable("resume storage unavailable", err)
	}
	if !ok {
		return data, nil
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		s.log.Warn("stored resume unreadable, using defaults", zap.String("session_id", sid), zap.Error(err))
		return domain.EmptyResumeData(), nil
	}
	return data, nil
}

func (s *ResumeService) SaveTemplate(ctx context.Context, sid, id string) error {
	t, ok := domain.ParseTemplate(id)
	if !ok {
		return apperrors.InvalidInput(fmt.Sprintf("unknown template %q", id), nil)
	}
	if err := s.storage.Set(ctx, StorageKey(sid, TemplateStorageKey), string(t)); err != nil {
		return apperrors.Unavailable("resume storage unavailable", err)
	}
	return nil
}

func (s *ResumeService) Template(ctx context.Context, sid string) (domain.TemplateType, error) {
	raw, ok, err := s.storage.Get(ctx, StorageKey(sid, TemplateStorageKey))
	if err != nil {
		return domain.DefaultTemplate, apperrors.Unavailable("resume storage unavailable", err)
	}
	if t, valid := domain.ParseTemplate(raw); ok && valid {
		return t, nil
	}
	return domain.DefaultTemplate, nil
}

// Preview renders the stored resume as HTML.
func (s *ResumeService) Preview(ctx context.Context, sid, override string) (string, error) {
	data, t, err := s.resolve(ctx, sid, override)
	if err != nil {
		return "", err
	}
	html, err := RenderResumeHTML(t, data)
	if err != nil {
		return "", apperrors.Internal("failed to render resume", err)
	}
	return html, nil
}

type ExportResult struct {
	FileName string
	Template domain.TemplateType
	PDF      *PDF
}

// Export renders the stored resume to PDF. Only one export per session runs
// at a time; a second call while one is running gets a CONFLICT error.
func (s *ResumeService) Export(ctx context.Context, sid, override string) (*ExportResult, error) {
	if !s.begin(sid) {
		return nil, apperrors.Conflict("a PDF is already being generated", nil)
	}
	defer s.end(sid)

	data, t, err := s.resolve(ctx, sid, override)
	if err != nil {
		return nil, err
	}

	html, err := RenderResumeHTML(t, data)
	if err != nil {
		s.log.Error("resume render failed", zap.String("session_id", sid), zap.Error(err))
		return nil, apperrors.Internal("failed to render resume", err)
	}

	pdf, err := s.renderer.RenderResumePDF(ctx, html, ResumeElementID)
	if err != nil {
		s.log.Error("error generating PDF", zap.String("session_id", sid), zap.String("template", string(t)), zap.Error(err))
		if de, ok := apperrors.As(err); ok {
			return nil, de
		}
		return nil, apperrors.Internal("failed to generate PDF", err)
	}

	res := &ExportResult{FileName: ExportFileName(data, t), Template: t, PDF: pdf}
	s.log.Info("resume exported",
		zap.String("session_id", sid),
		zap.String("file", res.FileName),
		zap.Int("pages", pdf.Pages),
		zap.Int("bytes", len(pdf.Data)),
	)
	return res, nil
}

// ExportFileName follows {firstName}_{lastName}_{template}_resume.pdf.
func ExportFileName(data domain.ResumeData, t domain.TemplateType) string {
	name := fmt.Sprintf("%s_%s_%s_resume.pdf", strings.TrimSpace(data.FirstName), strings.TrimSpace(data.LastName), t)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\n', '\r':
			return '_'
		}
		return r
	}, name)
}

func (s *ResumeService) resolve(ctx context.Context, sid, override string) (domain.ResumeData, domain.TemplateType, error) {
	data, err := s.Load(ctx, sid)
	if err != nil {
		return data, "", err
	}
	if override != "" {
		t, ok := domain.ParseTemplate(override)
		if !ok {
			return data, "", apperrors.InvalidInput(fmt.Sprintf("unknown template %q", override), nil)
		}
		return data, t, nil
	}
	t, err := s.Template(ctx, sid)
	return data, t, err
}

func (s *ResumeService) stored(ctx context.Context, sid string) (map[string]json.RawMessage, error) {
	out := map[string]json.RawMessage{}
	raw, ok, err := s.storage.Get(ctx, StorageKey(sid, ResumeStorageKey))
	if err != nil {
		return nil, apperrors.Unavailable("resume storage unavailable", err)
	}
	if !ok {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.log.Warn("stored resume unreadable, starting over", zap.String("session_id", sid), zap.Error(err))
		return map[string]json.RawMessage{}, nil
	}
	if out == nil {
		out = map[string]json.RawMessage{}
	}
	return out, nil
}

func (s *ResumeService) begin(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.exporting[sid]; busy {
		return false
	}
	s.exporting[sid] = struct{}{}
	return true
}

func (s *ResumeService) end(sid string) {
	s.mu.Lock()
	delete(s.exporting, sid)
	s.mu.Unlock()
}
