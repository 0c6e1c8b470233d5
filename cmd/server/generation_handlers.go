package main

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/carousel"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/config"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/i18n"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/logger"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/prompt"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/slides"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/usage"
)

type server struct {
	cfg     *config.Config
	log     *logger.Logger
	gen     *carousel.Generator
	prompts *prompt.Library
	tracker *usage.Tracker
	tmpl    *template.Template
}

type contentRequest struct {
	PromptTemplate string `json:"prompt_template"`
	Transcript     string `json:"transcript"`
}

type contentResponse struct {
	RequestID string `json:"request_id"`
	*carousel.ContentResult
}

type firstImageRequest struct {
	PromptTemplate string `json:"prompt_template"`
	Heading        string `json:"heading"`
	Explanation    string `json:"explanation"`
	SlideNumber    int    `json:"slide_number"`
	TotalSlides    int    `json:"total_slides"`
}

type firstImageResponse struct {
	RequestID string `json:"request_id"`
	*carousel.ImageResult
}

type remainingImagesRequest struct {
	PromptTemplate    string                `json:"prompt_template"`
	Slides            []slides.SlideContent `json:"slides"`
	ReferenceImageURL string                `json:"reference_image_url"`
}

type remainingImagesResponse struct {
	RequestID string                      `json:"request_id"`
	Results   []carousel.GenerationResult `json:"results"`
}

func (s *server) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Transcript) == "" {
		http.Error(w, "transcript is required", http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	s.log.Info("generate content", "request_id", id, "transcript_chars", len(req.Transcript))

	res, err := s.gen.GenerateContent(r.Context(), req.PromptTemplate, req.Transcript)
	if err != nil {
		s.log.Error("generate content failed", "request_id", id, "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{RequestID: id, ContentResult: res})
}

func (s *server) handleGenerateFirstImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req firstImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Heading) == "" {
		http.Error(w, "heading is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Explanation) == "" {
		http.Error(w, "explanation is required", http.StatusBadRequest)
		return
	}
	if req.SlideNumber == 0 {
		req.SlideNumber = 1
	}

	id := uuid.NewString()
	s.log.Info("generate first image", "request_id", id, "slide", req.SlideNumber)

	res, err := s.gen.GenerateFirstImage(r.Context(), req.PromptTemplate, req.Heading, req.Explanation, req.SlideNumber, req.TotalSlides)
	if err != nil {
		s.log.Error("generate first image failed", "request_id", id, "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, firstImageResponse{RequestID: id, ImageResult: res})
}

func (s *server) handleGenerateRemainingImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req remainingImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Slides) == 0 {
		http.Error(w, "slides are required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ReferenceImageURL) == "" {
		http.Error(w, "reference_image_url is required", http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	s.log.Info("generate remaining images", "request_id", id, "slides", len(req.Slides))

	results, err := s.gen.GenerateRemainingImages(r.Context(), req.PromptTemplate, req.Slides, req.ReferenceImageURL)
	if err != nil {
		s.log.Error("generate remaining images failed", "request_id", id, "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, remainingImagesResponse{RequestID: id, Results: results})
}

func (s *server) handlePrompts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"names":   s.prompts.Names(),
		"prompts": s.prompts.All(),
	})
}

func (s *server) handleUsage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totals": s.tracker.Totals(),
		"recent": s.tracker.Recent(20),
	})
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"version":  s.cfg.Application.Version,
		"provider": s.cfg.AI.ActiveProvider,
	})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := s.baseData(r)
	data["Prompts"] = s.prompts.All()
	if err := s.tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		s.log.Error("render index", "error", err)
	}
}

// handlePreview parses pasted model output and renders the slides partial,
// so prompt output formats can be checked without an API call.
func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	data := s.baseData(r)
	data["Slides"] = slides.Parse(r.FormValue("text"))
	if err := s.tmpl.ExecuteTemplate(w, "slides.html", data); err != nil {
		s.log.Error("render preview", "error", err)
	}
}

func (s *server) baseData(r *http.Request) map[string]interface{} {
	return map[string]interface{}{
		"Lang":           i18n.GetLang(r),
		"AppName":        s.cfg.Application.Name,
		"Version":        s.cfg.Application.Version,
		"Provider":       s.cfg.AI.ActiveProvider,
		"AvailableLangs": i18n.GetAvailableLangs(),
	}
}

// statusFor maps generation errors onto HTTP statuses: bad input is the
// caller's fault, storage is ours, anything else came from upstream.
func statusFor(err error) int {
	switch {
	case errors.Is(err, carousel.ErrInvalidInput), errors.Is(err, prompt.ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, carousel.ErrStorage):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
