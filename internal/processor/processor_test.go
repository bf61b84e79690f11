package processor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nguyentantai21042004/meeting2slides/internal/config"
	"github.com/nguyentantai21042004/meeting2slides/internal/deck"
	"github.com/nguyentantai21042004/meeting2slides/internal/imagegen"
	"github.com/nguyentantai21042004/meeting2slides/internal/logger"
	"github.com/nguyentantai21042004/meeting2slides/internal/models"
	"github.com/nguyentantai21042004/meeting2slides/internal/outliner"
	"github.com/nguyentantai21042004/meeting2slides/internal/progress"
	"github.com/nguyentantai21042004/meeting2slides/internal/storage"
	"github.com/nguyentantai21042004/meeting2slides/internal/store"
	"github.com/nguyentantai21042004/meeting2slides/internal/transcript"
	"github.com/nguyentantai21042004/meeting2slides/pkg/executor"
)

func TestMain(m *testing.M) {
	// genai pulls in opencensus, whose view worker starts in init and never exits.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type fakeOutliner struct {
	mu       sync.Mutex
	outline  *models.Outline
	err      error
	requests []outliner.Request
}

func (f *fakeOutliner) Outline(_ context.Context, req outliner.Request) (*models.Outline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	out := *f.outline
	out.Slides = append([]models.OutlineSlide(nil), f.outline.Slides...)
	return &out, nil
}

type fakeImages struct {
	data   []byte
	failOn map[int]bool
}

func (f *fakeImages) Generate(_ context.Context, slide models.Slide, _ string) (*imagegen.Image, error) {
	if f.failOn[slide.SlideNumber] {
		return nil, errors.New("safety filter")
	}
	return &imagegen.Image{Data: f.data, MIMEType: "image/png"}, nil
}

// slideUploadFails rejects slide images but accepts decks.
type slideUploadFails struct {
	storage.Bucket
}

func (b slideUploadFails) Upload(ctx context.Context, objectPath string, data []byte, contentType string, upsert bool) error {
	if strings.Contains(objectPath, "slide_") {
		return errors.New("bucket unavailable")
	}
	return b.Bucket.Upload(ctx, objectPath, data, contentType, upsert)
}

type harness struct {
	proc     Processor
	store    store.Store
	bucket   storage.Bucket
	outliner *fakeOutliner
	images   *fakeImages
	hub      *progress.Hub
	cfg      *config.Config
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 9))
	img.Set(0, 0, color.RGBA{R: 0xd2, G: 0xdd, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleOutline() *models.Outline {
	return &models.Outline{
		Title: "Q3 Review",
		Slides: []models.OutlineSlide{
			{SlideNumber: 1, Title: "Results", Description: "Revenue up 12%", ImagePrompt: "rising chart"},
			{SlideNumber: 2, Title: "Next Steps", Description: "Hire two engineers", ImagePrompt: "team"},
		},
	}
}

func newHarness(t *testing.T, wrap func(storage.Bucket) storage.Bucket) *harness {
	t.Helper()
	dir := t.TempDir()

	st, err := store.Open(context.Background(), filepath.Join(dir, "m2s.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	bucket, err := storage.New(filepath.Join(dir, "bucket"), "presentations", "http://localhost:8080")
	require.NoError(t, err)
	if wrap != nil {
		bucket = wrap(bucket)
	}

	cfg := &config.Config{
		Paths: config.PathsConfig{
			Inbox:    filepath.Join(dir, "inbox"),
			Output:   filepath.Join(dir, "output"),
			Archived: filepath.Join(dir, "archived"),
		},
		Performance: config.PerformanceConfig{MaxConcurrent: 1},
		Defaults: config.DefaultsConfig{
			SystemPrompt:       "You are an expert at creating professional presentations.",
			ContentOrientation: "Commercial proposal",
			VisualStyle:        "Minimalist",
		},
	}

	log := logger.NewNop()
	h := &harness{
		store:    st,
		bucket:   bucket,
		outliner: &fakeOutliner{outline: sampleOutline()},
		images:   &fakeImages{data: pngBytes(t), failOn: map[int]bool{}},
		hub:      progress.NewHub(),
		cfg:      cfg,
	}
	h.proc = New(cfg, Deps{
		Store:    st,
		Bucket:   bucket,
		Outliner: h.outliner,
		Images:   h.images,
		Deck:     deck.New(deck.NewFetcher(bucket), log),
		Reader:   transcript.New(config.ConvertersConfig{}, executor.New(), log),
		Hub:      h.hub,
	}, log)
	return h
}

func (h *harness) create(t *testing.T) *models.Presentation {
	t.Helper()
	pres, err := h.proc.CreatePresentation(context.Background(), CreateRequest{
		ContentOrientation: "Internal review",
		VisualStyle:        "Dark, bold",
		Transcript:         "Ana: revenue grew. Bo: we should hire.",
	})
	require.NoError(t, err)
	return pres
}

func (h *harness) process(t *testing.T, id string) {
	t.Helper()
	_, err := h.proc.ProcessTranscript(context.Background(), TranscriptRequest{
		PresentationID: id,
		Transcript:     "Ana: revenue grew.",
	})
	require.NoError(t, err)
}

func TestCreatePresentationRequiresTranscript(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.proc.CreatePresentation(context.Background(), CreateRequest{Transcript: "  "})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestProcessTranscriptValidation(t *testing.T) {
	h := newHarness(t, nil)

	tests := []struct {
		name string
		req  TranscriptRequest
		want error
	}{
		{name: "missing id", req: TranscriptRequest{Transcript: "hello"}, want: models.ErrInvalidInput},
		{name: "blank transcript", req: TranscriptRequest{PresentationID: "p", Transcript: "\n"}, want: models.ErrInvalidInput},
		{name: "unknown presentation", req: TranscriptRequest{PresentationID: "missing", Transcript: "hello"}, want: models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.proc.ProcessTranscript(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, h.outliner.requests)
}

func TestProcessTranscriptSavesSlides(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)

	res, err := h.proc.ProcessTranscript(context.Background(), TranscriptRequest{
		PresentationID:     pres.ID,
		SystemPrompt:       "Be concise",
		ContentOrientation: "Board update",
		VisualStyle:        "Pastel",
		Transcript:         "Ana: revenue grew.",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.SlideCount)
	assert.Equal(t, "Q3 Review", res.Outline.Title)

	require.Len(t, h.outliner.requests, 1)
	assert.Equal(t, outliner.Request{
		Transcript:         "Ana: revenue grew.",
		SystemPrompt:       "Be concise",
		ContentOrientation: "Board update",
		VisualStyle:        "Pastel",
	}, h.outliner.requests[0])

	got, slides, err := h.proc.GetPresentation(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSlidesSaved, got.Status)
	assert.Equal(t, "Q3 Review", got.Title)
	require.Len(t, slides, 2)
	assert.Equal(t, "Results", slides[0].Title)
	assert.Equal(t, "rising chart", slides[0].ImagePrompt)
}

func TestProcessTranscriptEmptyOutlineKeepsSlides(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)
	h.process(t, pres.ID)

	h.outliner.outline = &models.Outline{Title: "Nothing"}
	_, err := h.proc.ProcessTranscript(context.Background(), TranscriptRequest{PresentationID: pres.ID, Transcript: "x"})
	require.ErrorContains(t, err, "outline has no slides")

	_, slides, err := h.proc.GetPresentation(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.Len(t, slides, 2)
}

func TestProcessTranscriptOutlinerError(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)
	h.outliner.err = errors.New("all API keys exhausted")

	_, err := h.proc.ProcessTranscript(context.Background(), TranscriptRequest{PresentationID: pres.ID, Transcript: "x"})
	assert.ErrorContains(t, err, "generate outline: all API keys exhausted")
}

func TestGenerateImages(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)
	h.process(t, pres.ID)
	h.images.failOn[2] = true

	images, err := h.proc.GenerateImages(context.Background(), ImagesRequest{PresentationID: pres.ID})
	require.NoError(t, err)
	require.Len(t, images, 2)

	assert.Equal(t, 1, images[0].SlideNumber)
	assert.Equal(t, h.bucket.PublicURL("presentation_"+pres.ID+"/slide_1.png"), images[0].ImageURL)
	assert.Equal(t, "/placeholder.svg?height=1024&width=1792&query=Next+Steps", images[1].ImageURL)

	stored, err := h.bucket.Download(context.Background(), "presentation_"+pres.ID+"/slide_1.png")
	require.NoError(t, err)
	assert.Equal(t, h.images.data, stored)

	got, slides, err := h.proc.GetPresentation(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusImagesGenerated, got.Status)
	assert.Equal(t, images[0].ImageURL, slides[0].ImageURL)
	assert.Equal(t, images[1].ImageURL, slides[1].ImageURL)
}

func TestGenerateImagesUploadFailureStoresDataURL(t *testing.T) {
	h := newHarness(t, func(b storage.Bucket) storage.Bucket { return slideUploadFails{b} })
	pres := h.create(t)
	h.process(t, pres.ID)

	images, err := h.proc.GenerateImages(context.Background(), ImagesRequest{PresentationID: pres.ID})
	require.NoError(t, err)
	for _, img := range images {
		assert.True(t, strings.HasPrefix(img.ImageURL, "data:image/png;base64,"), img.ImageURL)
	}
}

func TestGenerateImagesErrors(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)

	_, err := h.proc.GenerateImages(context.Background(), ImagesRequest{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = h.proc.GenerateImages(context.Background(), ImagesRequest{PresentationID: pres.ID})
	assert.ErrorIs(t, err, models.ErrNoSlides)
}

func TestGeneratePDF(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)
	h.process(t, pres.ID)
	_, err := h.proc.GenerateImages(context.Background(), ImagesRequest{PresentationID: pres.ID})
	require.NoError(t, err)

	pdfURL, err := h.proc.GeneratePDF(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.Equal(t, h.bucket.PublicURL("presentation_"+pres.ID+"/deck.pdf"), pdfURL)

	data, err := h.bucket.Download(context.Background(), "presentation_"+pres.ID+"/deck.pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	got, _, err := h.proc.GetPresentation(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, pdfURL, got.PDFURL)
}

func TestGeneratePDFErrors(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)

	_, err := h.proc.GeneratePDF(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = h.proc.GeneratePDF(context.Background(), pres.ID)
	assert.ErrorIs(t, err, models.ErrNoSlides)
}

func TestGenerateHTML(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)
	h.process(t, pres.ID)

	res, err := h.proc.GenerateHTML(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.SlideCount)
	assert.Contains(t, res.HTML, "Next Steps")

	got, _, err := h.proc.GetPresentation(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestOutlineDocument(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)

	_, err := h.proc.OutlineDocument(context.Background(), pres.ID)
	assert.ErrorIs(t, err, models.ErrNoSlides)

	h.process(t, pres.ID)
	doc, err := h.proc.OutlineDocument(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("PK")))
}

func TestRunPublishesProgress(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)

	ch, cancel := h.hub.Subscribe(pres.ID)
	defer cancel()

	res, err := h.proc.Run(context.Background(), RunRequest{PresentationID: pres.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, res.SlideCount)
	assert.Equal(t, models.StatusCompleted, res.Presentation.Status)
	assert.Equal(t, res.PDFURL, res.Presentation.PDFURL)

	// The stored transcript and style are used when reusing a record.
	require.Len(t, h.outliner.requests, 1)
	assert.Equal(t, "Dark, bold", h.outliner.requests[0].VisualStyle)

	var snaps []progress.Snapshot
	for s := range ch {
		snaps = append(snaps, s)
	}
	require.NotEmpty(t, snaps)
	last := snaps[len(snaps)-1]
	assert.True(t, last.Done)
	assert.Equal(t, res.PDFURL, last.PDFURL)
	for _, task := range last.Tasks {
		assert.Equal(t, progress.TaskCompleted, task.Status, task.ID)
	}

	var details []string
	for _, s := range snaps {
		if s.Detail != "" && (len(details) == 0 || details[len(details)-1] != s.Detail) {
			details = append(details, s.Detail)
		}
	}
	assert.Equal(t, []string{"slide 1/2", "slide 2/2"}, details)
}

func TestRunCreatesPresentation(t *testing.T) {
	h := newHarness(t, nil)

	res, err := h.proc.Run(context.Background(), RunRequest{CreateRequest: CreateRequest{Transcript: "standup notes"}})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Presentation.ID)

	list, err := h.proc.ListPresentations(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRunFailureMarksPresentationFailed(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)
	h.outliner.err = errors.New("quota exceeded")

	ch, cancel := h.hub.Subscribe(pres.ID)
	defer cancel()

	_, err := h.proc.Run(context.Background(), RunRequest{PresentationID: pres.ID})
	require.Error(t, err)

	var last progress.Snapshot
	for s := range ch {
		last = s
	}
	assert.True(t, last.Done)
	assert.Contains(t, last.Error, "quota exceeded")
	assert.Equal(t, progress.TaskError, last.Tasks[0].Status)
	assert.Equal(t, progress.TaskPending, last.Tasks[1].Status)

	got, _, err := h.proc.GetPresentation(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
}

func TestRunCanceledWhileWaitingForSlot(t *testing.T) {
	h := newHarness(t, nil)
	impl := h.proc.(*implProcessor)
	release, err := impl.semaphore.acquire(context.Background())
	require.NoError(t, err)
	defer release()

	pres := h.create(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = h.proc.Run(ctx, RunRequest{PresentationID: pres.ID})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, h.outliner.requests)

	got, _, err := h.proc.GetPresentation(context.Background(), pres.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
}

func TestProcessFile(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.proc.SaveSystemPrompt(context.Background(), "Summarise for executives")
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(h.cfg.Paths.Inbox, 0755))
	src := filepath.Join(h.cfg.Paths.Inbox, "weekly-sync.txt")
	require.NoError(t, os.WriteFile(src, []byte("We agreed to ship on Friday."), 0644))

	require.NoError(t, h.proc.ProcessFile(context.Background(), src))

	out, err := os.ReadFile(filepath.Join(h.cfg.Paths.Output, "weekly-sync.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(h.cfg.Paths.Archived, "weekly-sync.txt"))
	assert.NoError(t, err)

	require.Len(t, h.outliner.requests, 1)
	assert.Equal(t, "Summarise for executives", h.outliner.requests[0].SystemPrompt)
	assert.Equal(t, "Commercial proposal", h.outliner.requests[0].ContentOrientation)
}

func TestSystemPrompt(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	got, err := h.proc.LoadSystemPrompt(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.Equal(t, h.cfg.Defaults.SystemPrompt, got.Prompt)

	_, err = h.proc.SaveSystemPrompt(ctx, " ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	saved, err := h.proc.SaveSystemPrompt(ctx, "Focus on decisions")
	require.NoError(t, err)

	got, err = h.proc.LoadSystemPrompt(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Focus on decisions", got.Prompt)
}

func TestDeletePresentation(t *testing.T) {
	h := newHarness(t, nil)
	pres := h.create(t)
	h.process(t, pres.ID)

	require.NoError(t, h.proc.DeletePresentation(context.Background(), pres.ID))
	_, _, err := h.proc.GetPresentation(context.Background(), pres.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, h.proc.DeletePresentation(context.Background(), pres.ID), models.ErrNotFound)
	assert.ErrorIs(t, h.proc.DeletePresentation(context.Background(), ""), models.ErrInvalidInput)
}
