package ocr

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

// stubRunner replays canned output per command name and records calls.
type stubRunner struct {
	calls  []call
	stdout map[string]string
	errs   map[string]error
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, call{name: name, args: args})
	if err := s.errs[name]; err != nil {
		return nil, []byte("boom"), err
	}
	if name == "pdftoppm" {
		// Simulate the rasterizer dropping page files next to the prefix.
		prefix := args[len(args)-1]
		_ = os.WriteFile(prefix+"-1.png", []byte("fake"), 0o644)
		_ = os.WriteFile(prefix+"-2.png", []byte("fake"), 0o644)
		return nil, nil, nil
	}
	return []byte(s.stdout[name]), nil, nil
}

func newTestExtractor(r Runner) *Extractor {
	e := NewExtractor(Config{}, slog.Default())
	e.runner = r
	return e
}

func TestPDFTextUsesTextLayer(t *testing.T) {
	runner := &stubRunner{stdout: map[string]string{
		"pdftotext": "Facture n° CE25/3924\nTOTAL TTC : 120,50 €\n",
	}}
	e := newTestExtractor(runner)

	text, err := e.PDFText(context.Background(), []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Contains(t, text, "CE25/3924")

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "pdftotext", runner.calls[0].name)
	assert.Contains(t, runner.calls[0].args, "-layout")
}

func TestPDFOCRConcatenatesPages(t *testing.T) {
	runner := &stubRunner{stdout: map[string]string{
		"tesseract": "page text",
	}}
	e := newTestExtractor(runner)

	text, err := e.PDFOCR(context.Background(), []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "page text\npage text", text)

	var names []string
	for _, c := range runner.calls {
		names = append(names, c.name)
	}
	assert.Equal(t, []string{"pdftoppm", "tesseract", "tesseract"}, names)
}

func TestImageTextRejectsUnknownExtension(t *testing.T) {
	e := newTestExtractor(&stubRunner{})
	_, err := e.ImageText(context.Background(), []byte("GIF89a"), "gif")
	assert.Error(t, err)
}

type stubFetcher struct {
	data        []byte
	contentType string
	err         error
	calls       int
}

func (s *stubFetcher) Get(context.Context, string) ([]byte, string, error) {
	s.calls++
	return s.data, s.contentType, s.err
}

func TestReaderFallsBackToOCRForScannedPDF(t *testing.T) {
	runner := &stubRunner{stdout: map[string]string{
		"pdftotext": "", // no text layer
		"tesseract": "FACTURE 25AB123456",
	}}
	fetcher := &stubFetcher{data: []byte("%PDF-1.4 scanned"), contentType: "application/pdf"}
	reader := NewReader(fetcher, newTestExtractor(runner), time.Minute, slog.Default())

	text, err := reader.Text(context.Background(), "https://files.example/scan.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "25AB123456")
}

func TestReaderCachesByURL(t *testing.T) {
	runner := &stubRunner{stdout: map[string]string{
		"pdftotext": "Montant : 98,00 €",
	}}
	fetcher := &stubFetcher{data: []byte("%PDF-1.4"), contentType: "application/pdf"}
	reader := NewReader(fetcher, newTestExtractor(runner), time.Minute, slog.Default())

	for range 3 {
		text, err := reader.Text(context.Background(), "https://files.example/facture.pdf")
		require.NoError(t, err)
		assert.Contains(t, text, "98,00")
	}
	assert.Equal(t, 1, fetcher.calls)
}

func TestReaderPropagatesFetchError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	reader := NewReader(fetcher, newTestExtractor(&stubRunner{}), time.Minute, slog.Default())

	_, err := reader.Text(context.Background(), "https://files.example/gone.pdf")
	assert.Error(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "PDF", classify("https://x/y", []byte("%PDF-1.7"), ""))
	assert.Equal(t, "PDF", classify("https://x/y", []byte("??"), "application/pdf"))
	assert.Equal(t, "IMAGE", classify("https://x/photo", []byte("??"), "image/jpeg"))
	assert.Equal(t, "IMAGE", classify("https://x/photo.jpg?sig=1", []byte("??"), ""))
	assert.Equal(t, "", classify("https://x/notes.txt", []byte("hello"), "text/plain"))
}

func TestWriteTempRoundTrip(t *testing.T) {
	path, cleanup, err := writeTemp([]byte("abc"), "*.pdf")
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, ".pdf", filepath.Ext(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
	assert.True(t, strings.Contains(filepath.Base(path), "famorg-att-"))
}
