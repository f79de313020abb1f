package api

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/questgen/internal/export"
	"github.com/dgallion1/questgen/internal/parser"
	"github.com/dgallion1/questgen/internal/pipeline"
	"github.com/dgallion1/questgen/internal/questions"
	"github.com/dgallion1/questgen/internal/upload"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// questionsResponse is the JSON body of a synchronous generation.
type questionsResponse struct {
	Filename    string   `json:"filename"`
	Language    string   `json:"language"`
	Requested   int      `json:"num_questions"`
	KeyPoints   int      `json:"key_points"`
	ContentHash string   `json:"content_hash"`
	Questions   []string `json:"questions"`
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	req, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.orchestrator.Worker().Run(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if strings.EqualFold(r.FormValue("format"), "pdf") {
		s.writeWorksheet(w, r, req, res.Questions)
		return
	}

	writeJSON(w, http.StatusOK, questionsResponse{
		Filename:    req.Filename,
		Language:    req.Language,
		Requested:   req.Count,
		KeyPoints:   res.KeyPoints,
		ContentHash: res.ContentHash,
		Questions:   res.Questions,
	})
}

func (s *Server) writeWorksheet(w http.ResponseWriter, r *http.Request, req pipeline.Request, qs []string) {
	title := strings.TrimSuffix(req.Filename, filepath.Ext(req.Filename))
	data, err := export.WorksheetPDF(export.Worksheet{
		Title:     title,
		Source:    req.Filename,
		Language:  req.Language,
		Questions: qs,
		Date:      time.Now(),
	})
	if err != nil {
		s.writeError(w, r, fmt.Errorf("render worksheet: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": title + "-questions.pdf",
	}))
	w.Write(data)
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	req, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	job := pipeline.NewJob(req.Path, req.Filename, req.Language, req.Count)
	if err := s.orchestrator.Submit(job); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// readUpload validates the multipart form and saves the file to the
// upload store. On success the caller owns the saved file.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (pipeline.Request, error) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		if statusFor(err) == http.StatusRequestEntityTooLarge {
			return pipeline.Request{}, err
		}
		return pipeline.Request{}, badRequest("invalid multipart form: " + err.Error())
	}
	defer r.MultipartForm.RemoveAll()

	count, err := s.questionCount(r.FormValue("num_questions"))
	if err != nil {
		return pipeline.Request{}, err
	}

	language := r.FormValue("language")
	if language == "" {
		language = s.cfg.DefaultLanguage
	}
	// Reject before the upload is written anywhere.
	catalog, err := questions.CatalogFor(language)
	if err != nil {
		return pipeline.Request{}, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return pipeline.Request{}, badRequest("file is required: " + err.Error())
	}
	defer file.Close()

	filename := upload.SanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		return pipeline.Request{}, fmt.Errorf("%w: %q", parser.ErrUnsupportedFormat, filepath.Ext(filename))
	}

	path, err := s.uploads.Save(filename, file, s.cfg.MaxUploadBytes)
	if err != nil {
		return pipeline.Request{}, err
	}

	return pipeline.Request{
		ID:       uuid.NewString(),
		Path:     path,
		Filename: filename,
		Language: catalog.Language,
		Count:    count,
	}, nil
}

// questionCount parses num_questions. Empty means the configured default;
// values above the configured maximum are capped.
func (s *Server) questionCount(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return s.cfg.DefaultQuestionCount, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest(fmt.Sprintf("num_questions must be an integer, got %q", v))
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: num_questions must not be negative, got %d", questions.ErrInvalidArgument, n)
	}
	return min(n, s.cfg.MaxQuestionCount), nil
}
