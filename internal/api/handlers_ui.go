package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/dgallion1/questgen/internal/questions"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	Languages []string
	Language  string
	Count     int
	Max       int
	Filename  string
	Questions []string
	Error     string
}

func (s *Server) newIndexPage() indexPage {
	return indexPage{
		Languages: questions.Languages(),
		Language:  s.cfg.DefaultLanguage,
		Count:     s.cfg.DefaultQuestionCount,
		Max:       s.cfg.MaxQuestionCount,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, http.StatusOK, s.newIndexPage())
}

func (s *Server) handleIndexSubmit(w http.ResponseWriter, r *http.Request) {
	page := s.newIndexPage()

	req, err := s.readUpload(w, r)
	if err != nil {
		code, msg := s.describe(r, err)
		page.Error = msg
		s.renderIndex(w, code, page)
		return
	}
	page.Language = req.Language
	page.Count = req.Count

	res, err := s.orchestrator.Worker().Run(r.Context(), req)
	if err != nil {
		code, msg := s.describe(r, err)
		page.Error = msg
		s.renderIndex(w, code, page)
		return
	}
	page.Filename = req.Filename
	page.Questions = res.Questions
	s.renderIndex(w, http.StatusOK, page)
}

func (s *Server) renderIndex(w http.ResponseWriter, code int, page indexPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := indexTmpl.Execute(w, page); err != nil {
		s.log.Error("render index", "error", err)
	}
}
