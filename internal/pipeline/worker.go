package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/dgallion1/questgen/internal/archive"
	"github.com/dgallion1/questgen/internal/metrics"
	"github.com/dgallion1/questgen/internal/parser"
	"github.com/dgallion1/questgen/internal/questions"
	"github.com/dgallion1/questgen/internal/upload"
)

// Archiver keeps a copy of an uploaded document before it is removed.
type Archiver interface {
	Archive(ctx context.Context, key, localPath string) error
}

// Request describes one upload to turn into questions.
type Request struct {
	ID       string
	Path     string // Saved upload; removed once the request finishes.
	Filename string
	Language string
	Count    int
}

// Result is the outcome of a successful request.
type Result struct {
	Questions   []string `json:"questions"`
	KeyPoints   int      `json:"key_points"`
	ContentHash string   `json:"content_hash"`
}

// Worker runs extraction and generation for saved uploads.
type Worker struct {
	uploads    *upload.Store
	archiver   Archiver
	stats      *metrics.Phases
	log        *slog.Logger
	parserOpts parser.Options

	// NewRand supplies the random source for each request. Tests replace it
	// with a seeded source.
	NewRand func() *rand.Rand
}

// NewWorker wires a worker. archiver may be nil.
func NewWorker(uploads *upload.Store, archiver Archiver, stats *metrics.Phases, log *slog.Logger, opts parser.Options) *Worker {
	return &Worker{
		uploads:    uploads,
		archiver:   archiver,
		stats:      stats,
		log:        log,
		parserOpts: opts,
		NewRand:    questions.NewRand,
	}
}

// Run processes req synchronously. The upload is removed on every path.
func (w *Worker) Run(ctx context.Context, req Request) (Result, error) {
	defer w.remove(req.Path)

	catalog, err := questions.CatalogFor(req.Language)
	if err != nil {
		return Result{}, err
	}
	text, err := w.extract(req)
	if err != nil {
		return Result{}, err
	}
	w.archiveUpload(ctx, req)
	return w.generate(catalog, text, req.Count)
}

// Process runs a queued job and records each phase on it.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	path := job.Path()
	defer w.remove(path)

	req := Request{
		ID:       job.ID,
		Path:     path,
		Filename: job.Filename,
		Language: job.Language,
		Count:    job.Count,
	}

	catalog, err := questions.CatalogFor(req.Language)
	if err != nil {
		log.Warn("unsupported language", "language", req.Language)
		job.Fail("queued", err)
		return
	}

	job.SetStatus(StatusExtracting, "extracting")
	text, err := w.extract(req)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.Fail("extracting", err)
		return
	}
	if err := w.archiveUpload(ctx, req); err != nil {
		job.AddError(err.Error())
	}

	job.SetStatus(StatusGenerating, "generating")
	res, err := w.generate(catalog, text, req.Count)
	if err != nil {
		log.Error("generation failed", "error", err)
		job.Fail("generating", err)
		return
	}

	job.Complete(res)
	log.Info("job completed", "questions", len(res.Questions), "key_points", res.KeyPoints)
}

// extract reads the upload. Read errors name the client's filename rather
// than the server-side upload path.
func (w *Worker) extract(req Request) (string, error) {
	start := time.Now()
	defer w.stats.Extract.Since(start)

	text, err := parser.ExtractFile(req.Path, w.parserOpts)
	var re *parser.ReadError
	if errors.As(err, &re) && req.Filename != "" {
		return "", &parser.ReadError{Path: req.Filename, Err: re.Err}
	}
	return text, err
}

// archiveUpload copies the upload to the archive bucket, if one is configured.
// Failures are logged and returned but never stop generation.
func (w *Worker) archiveUpload(ctx context.Context, req Request) error {
	if w.archiver == nil {
		return nil
	}
	key := archive.Key(req.ID, filepath.Base(req.Path), time.Now())
	if err := w.archiver.Archive(ctx, key, req.Path); err != nil {
		w.log.Warn("archive failed", "key", key, "error", err)
		return fmt.Errorf("archive %s: %w", key, err)
	}
	return nil
}

func (w *Worker) generate(catalog *questions.Catalog, text string, count int) (Result, error) {
	start := time.Now()
	defer w.stats.Generate.Since(start)

	qs, err := questions.NewGenerator(catalog, w.NewRand()).Generate(text, count)
	if err != nil {
		return Result{}, fmt.Errorf("generate questions: %w", err)
	}
	return Result{
		Questions:   qs,
		KeyPoints:   questions.CountKeyPoints(text),
		ContentHash: ContentHashHex([]byte(text)),
	}, nil
}

func (w *Worker) remove(path string) {
	if path == "" {
		return
	}
	if err := w.uploads.Remove(path); err != nil {
		w.log.Warn("failed to remove upload", "path", path, "error", err)
	}
}
