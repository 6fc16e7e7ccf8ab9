// Package docgen is the document variable resolution and generation
// engine: template + task + profile + optional attachment + caller
// overrides in, a filled and typographically normalized document out.
//
// The engine degrades rather than fails: an unreadable attachment, an
// ambiguous date or an unmatched pattern leaves a blank in the
// document. The only hard failure is an unknown template id.
package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"famorg/internal/docgen/render"
	"famorg/internal/docgen/resolve"
	"famorg/internal/docgen/template"
	"famorg/internal/entity"
)

// Store supplies profiles and tasks. Task lookup returns (nil, nil)
// when the id does not exist.
type Store interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	GetTask(ctx context.Context, id uuid.UUID) (*entity.Task, error)
}

// AttachmentReader turns an attachment URL into text, going through
// fetch, PDF text-layer extraction and OCR fallback as needed. A
// failure is reported as an error and treated as "no attachment text".
type AttachmentReader interface {
	Text(ctx context.Context, url string) (string, error)
}

// Uploader persists a rendered document somewhere reachable and returns
// its URL. Upload failure is non-fatal: the caller still receives the
// bytes.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// Service orchestrates one generation or preview call.
type Service struct {
	store       Store
	attachments AttachmentReader
	uploader    Uploader
	resolver    *resolve.Resolver
	logger      *slog.Logger
	now         func() time.Time
}

func NewService(store Store, attachments AttachmentReader, uploader Uploader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:       store,
		attachments: attachments,
		uploader:    uploader,
		resolver:    resolve.NewResolver(logger),
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateResult is one rendered document. URL is empty when the upload
// failed or no uploader is configured.
type GenerateResult struct {
	URL      string
	Bytes    []byte
	Filename string
	Content  string
	Pages    int
}

// PreviewResult is the resolved content plus the required variables
// that are still empty, in template order.
type PreviewResult struct {
	Content string
	Missing []string
}

// Generate renders the template into a PDF. taskID is optional;
// overrides always win, and an override with an empty value
// deliberately blanks a field.
func (s *Service) Generate(ctx context.Context, templateID string, taskID *uuid.UUID, profileID uuid.UUID, overrides map[string]string) (*GenerateResult, error) {
	start := time.Now()
	tpl, task, vs, err := s.resolveAll(ctx, templateID, taskID, profileID, overrides)
	if err != nil {
		return nil, err
	}

	content := render.Fill(tpl, vs)
	data, pages, err := render.PDF(tpl.Title, content)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.pdf", tpl.ID, s.now().Format("20060102-150405"))
	url := ""
	if s.uploader != nil {
		url, err = s.uploader.Upload(ctx, data, filename, "application/pdf")
		if err != nil {
			// The caller still gets the bytes.
			s.logger.Warn("docgen.generate.upload_failed", "filename", filename, "error", err)
			url = ""
		}
	}

	s.logger.Info("docgen.generate.ok",
		"template_id", tpl.ID,
		"has_task", task != nil,
		"pages", pages,
		"uploaded", url != "",
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &GenerateResult{URL: url, Bytes: data, Filename: filename, Content: content, Pages: pages}, nil
}

// Preview resolves and fills without producing PDF bytes, and reports
// which required variables are still empty.
func (s *Service) Preview(ctx context.Context, templateID string, taskID *uuid.UUID, profileID uuid.UUID, overrides map[string]string) (*PreviewResult, error) {
	tpl, _, vs, err := s.resolveAll(ctx, templateID, taskID, profileID, overrides)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{
		Content: render.Fill(tpl, vs),
		Missing: resolve.MissingVariables(tpl, vs),
	}, nil
}

// resolveAll is the shared front half of Generate and Preview: template
// lookup (the one hard failure), data loading, attachment text
// extraction, precedence merge.
func (s *Service) resolveAll(ctx context.Context, templateID string, taskID *uuid.UUID, profileID uuid.UUID, overrides map[string]string) (*template.Template, *entity.Task, *resolve.VariableSet, error) {
	tpl, err := template.Lookup(templateID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("template %q: %w", templateID, err)
	}

	profile, err := s.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load profile: %w", err)
	}

	var task *entity.Task
	if taskID != nil {
		task, err = s.store.GetTask(ctx, *taskID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load task: %w", err)
		}
	}

	attachmentText := ""
	if task != nil && task.AttachmentURL != "" && s.attachments != nil {
		attachmentText, err = s.attachments.Text(ctx, task.AttachmentURL)
		if err != nil {
			// Degraded extraction: generation proceeds with blanks.
			s.logger.Warn("docgen.attachment.unreadable", "url", task.AttachmentURL, "error", err)
			attachmentText = ""
		}
	}

	vs := s.resolver.Resolve(tpl, task, attachmentText, profile, overrides)
	return tpl, task, vs, nil
}
