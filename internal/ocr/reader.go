package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"famorg/constants"
)

// Fetcher downloads attachment bytes.
type Fetcher interface {
	Get(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// Reader turns an attachment URL into raw text. Results are cached by
// URL so repeated previews of the same task do not re-run OCR.
type Reader struct {
	fetcher   Fetcher
	extractor *Extractor
	cache     *gocache.Cache
	logger    *slog.Logger
}

func NewReader(fetcher Fetcher, extractor *Extractor, ttl time.Duration, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Reader{
		fetcher:   fetcher,
		extractor: extractor,
		cache:     gocache.New(ttl, 2*ttl),
		logger:    logger,
	}
}

// Text fetches the attachment at rawURL and extracts its text. PDFs use
// the text layer when present and fall back to OCR when it is empty.
func (r *Reader) Text(ctx context.Context, rawURL string) (string, error) {
	if cached, ok := r.cache.Get(rawURL); ok {
		return cached.(string), nil
	}

	data, contentType, err := r.fetcher.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}

	text, err := r.extract(ctx, rawURL, data, contentType)
	if err != nil {
		return "", err
	}

	r.cache.Set(rawURL, text, gocache.DefaultExpiration)
	r.logger.Debug("ocr.reader.ok", "url", rawURL, "chars", len(text))
	return text, nil
}

func (r *Reader) extract(ctx context.Context, rawURL string, data []byte, contentType string) (string, error) {
	switch classify(rawURL, data, contentType) {
	case constants.PDF:
		text, err := r.extractor.PDFText(ctx, data)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
		r.logger.Info("ocr.reader.scanned_pdf", "url", rawURL)
		return r.extractor.PDFOCR(ctx, data)
	case constants.IMAGE:
		ext := urlExt(rawURL)
		if constants.MapExtToFormat(ext) != constants.IMAGE {
			// content-type said image but the URL carries no usable
			// extension; png is what tesseract handles everywhere
			ext = "png"
		}
		return r.extractor.ImageText(ctx, data, ext)
	default:
		return "", fmt.Errorf("unsupported attachment type for %s (content-type %q)", rawURL, contentType)
	}
}

func classify(rawURL string, data []byte, contentType string) string {
	if len(data) >= 5 && string(data[:5]) == "%PDF-" {
		return constants.PDF
	}
	if strings.HasPrefix(contentType, "application/pdf") {
		return constants.PDF
	}
	if strings.HasPrefix(contentType, "image/") {
		return constants.IMAGE
	}
	return constants.MapExtToFormat(urlExt(rawURL))
}

func urlExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.TrimPrefix(path.Ext(rawURL), ".")
	}
	return strings.TrimPrefix(path.Ext(u.Path), ".")
}
