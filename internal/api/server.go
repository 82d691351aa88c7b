package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/brandpulse/monitor/internal/analysis"
	"github.com/brandpulse/monitor/internal/config"
	"github.com/brandpulse/monitor/internal/demo"
	"github.com/brandpulse/monitor/internal/models"
	"github.com/brandpulse/monitor/internal/monitoring"
	"github.com/brandpulse/monitor/internal/repository"
)

// Server exposes the brand monitoring HTTP API
type Server struct {
	config  *config.Config
	repo    repository.Repository
	monitor *monitoring.Service
	demoGen *demo.Generator
	router  *mux.Router
}

// NewServer creates the API server and registers its routes
func NewServer(cfg *config.Config, repo repository.Repository, monitor *monitoring.Service) *Server {
	s := &Server{
		config:  cfg,
		repo:    repo,
		monitor: monitor,
		demoGen: demo.NewGenerator(),
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

// Router returns the configured HTTP handler
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/metrics", s.handleMetrics).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/brands", s.handleListBrands).Methods("GET")
	api.HandleFunc("/brands", s.handleCreateBrand).Methods("POST")
	api.HandleFunc("/brands/{id}", s.handleGetBrand).Methods("GET")
	api.HandleFunc("/brands/{id}", s.handleDeleteBrand).Methods("DELETE")
	api.HandleFunc("/brands/{id}/health", s.handleBrandHealth).Methods("GET")

	api.HandleFunc("/mentions", s.handleListMentions).Methods("GET")
	api.HandleFunc("/mentions", s.handleCreateMention).Methods("POST")
	api.HandleFunc("/mentions/crisis-alerts", s.handleCrisisAlerts).Methods("GET")
	api.HandleFunc("/mentions/{id}", s.handleGetMention).Methods("GET")
	api.HandleFunc("/mentions/{id}/reanalyze", s.handleReanalyzeMention).Methods("POST")

	api.HandleFunc("/analyze/sentiment", s.handleAnalyzeSentiment).Methods("POST")
	api.HandleFunc("/analyze/crisis", s.handleAnalyzeCrisis).Methods("POST")
	api.HandleFunc("/analyze/batch", s.handleAnalyzeBatch).Methods("POST")
	api.HandleFunc("/analyze/status", s.handleAnalyzeStatus).Methods("GET")

	api.HandleFunc("/demo/sample-data", s.handleSampleData).Methods("GET")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.monitor.GetMetrics()))
}

type createBrandRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Website  string `json:"website"`
}

func (s *Server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.repo.ListBrands(r.Context())
	if err != nil {
		logrus.Errorf("Failed to list brands: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

func (s *Server) handleCreateBrand(w http.ResponseWriter, r *http.Request) {
	var req createBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	now := time.Now().UTC()
	brand := models.Brand{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Industry:  req.Industry,
		Website:   req.Website,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateBrand(r.Context(), &brand); err != nil {
		logrus.Errorf("Failed to create brand: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create brand")
		return
	}

	writeJSON(w, http.StatusCreated, brand)
}

func (s *Server) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := s.repo.GetBrand(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "brand not found")
		return
	}
	if err != nil {
		logrus.Errorf("Failed to get brand: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get brand")
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

func (s *Server) handleDeleteBrand(w http.ResponseWriter, r *http.Request) {
	err := s.repo.DeleteBrand(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "brand not found")
		return
	}
	if err != nil {
		logrus.Errorf("Failed to delete brand: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete brand")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBrandHealth(w http.ResponseWriter, r *http.Request) {
	brandID := mux.Vars(r)["id"]

	if _, err := s.repo.GetBrand(r.Context(), brandID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "brand not found")
			return
		}
		logrus.Errorf("Failed to get brand: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get brand")
		return
	}

	threshold := queryFloat(r, "threshold", s.config.CrisisAlertThreshold)
	days := queryInt(r, "days", 7)

	mentions, err := s.repo.ListMentions(r.Context(), repository.MentionFilter{
		BrandID: brandID,
		Since:   time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour),
	})
	if err != nil {
		logrus.Errorf("Failed to list mentions: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list mentions")
		return
	}

	summary := analysis.Summarize(mentions, threshold)
	summary.BrandID = brandID
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListMentions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	if limit > 1000 {
		limit = 1000
	}
	days := queryInt(r, "days", 7)

	mentions, err := s.repo.ListMentions(r.Context(), repository.MentionFilter{
		BrandID:  r.URL.Query().Get("brand_id"),
		Platform: r.URL.Query().Get("platform"),
		Since:    time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour),
		Limit:    limit,
	})
	if err != nil {
		logrus.Errorf("Failed to list mentions: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list mentions")
		return
	}
	writeJSON(w, http.StatusOK, mentions)
}

type createMentionRequest struct {
	BrandID       string     `json:"brand_id"`
	Platform      string     `json:"platform"`
	Content       string     `json:"content"`
	Author        string     `json:"author"`
	URL           string     `json:"url"`
	LikesCount    int        `json:"likes_count"`
	SharesCount   int        `json:"shares_count"`
	CommentsCount int        `json:"comments_count"`
	PublishedAt   *time.Time `json:"published_at"`
}

func (s *Server) handleCreateMention(w http.ResponseWriter, r *http.Request) {
	var req createMentionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BrandID == "" || req.Platform == "" {
		writeError(w, http.StatusBadRequest, "brand_id and platform are required")
		return
	}

	if _, err := s.repo.GetBrand(r.Context(), req.BrandID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "brand not found")
			return
		}
		logrus.Errorf("Failed to get brand: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get brand")
		return
	}

	now := time.Now().UTC()
	publishedAt := now
	if req.PublishedAt != nil {
		publishedAt = req.PublishedAt.UTC()
	}

	mention := models.Mention{
		ID:            uuid.NewString(),
		BrandID:       req.BrandID,
		Platform:      req.Platform,
		Content:       req.Content,
		Author:        req.Author,
		URL:           req.URL,
		LikesCount:    req.LikesCount,
		SharesCount:   req.SharesCount,
		CommentsCount: req.CommentsCount,
		PublishedAt:   publishedAt,
		CreatedAt:     now,
	}

	if err := s.repo.CreateMention(r.Context(), &mention); err != nil {
		logrus.Errorf("Failed to create mention: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create mention")
		return
	}

	if err := s.monitor.AnalyzeMention(r.Context(), &mention); err != nil {
		logrus.Errorf("Failed to analyze mention: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to analyze mention")
		return
	}

	writeJSON(w, http.StatusCreated, mention)
}

func (s *Server) handleCrisisAlerts(w http.ResponseWriter, r *http.Request) {
	threshold := queryFloat(r, "threshold", s.config.CrisisAlertThreshold)

	mentions, err := s.repo.ListMentions(r.Context(), repository.MentionFilter{
		BrandID:              r.URL.Query().Get("brand_id"),
		MinCrisisProbability: threshold,
	})
	if err != nil {
		logrus.Errorf("Failed to list crisis alerts: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list crisis alerts")
		return
	}

	// Most alarming first
	sort.Slice(mentions, func(i, j int) bool {
		return mentions[i].CrisisProbability > mentions[j].CrisisProbability
	})
	if len(mentions) > 50 {
		mentions = mentions[:50]
	}

	writeJSON(w, http.StatusOK, mentions)
}

func (s *Server) handleGetMention(w http.ResponseWriter, r *http.Request) {
	mention, err := s.repo.GetMention(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "mention not found")
		return
	}
	if err != nil {
		logrus.Errorf("Failed to get mention: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get mention")
		return
	}
	writeJSON(w, http.StatusOK, mention)
}

func (s *Server) handleReanalyzeMention(w http.ResponseWriter, r *http.Request) {
	mention, err := s.repo.GetMention(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "mention not found")
		return
	}
	if err != nil {
		logrus.Errorf("Failed to get mention: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to get mention")
		return
	}

	if err := s.monitor.AnalyzeMention(r.Context(), mention); err != nil {
		logrus.Errorf("Failed to reanalyze mention: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to reanalyze mention")
		return
	}

	writeJSON(w, http.StatusOK, mention)
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, _ := s.monitor.Analyze(req.Text)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeCrisis(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, assessment := s.monitor.Analyze(req.Text)
	writeJSON(w, http.StatusOK, assessment)
}

type batchAnalyzeRequest struct {
	Texts []string `json:"texts"`
}

type batchAnalyzeItem struct {
	Sentiment analysis.Result     `json:"sentiment"`
	Crisis    analysis.Assessment `json:"crisis"`
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Order preserved; batching equals per-text calls by contract
	results := make([]batchAnalyzeItem, 0, len(req.Texts))
	for _, text := range req.Texts {
		sentiment, crisis := s.monitor.Analyze(text)
		results = append(results, batchAnalyzeItem{Sentiment: sentiment, Crisis: crisis})
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleAnalyzeStatus(w http.ResponseWriter, r *http.Request) {
	sentiment := s.monitor.Sentiment()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"active_strategy": sentiment.ActiveStrategy(),
		"model_available": sentiment.ModelAvailable(),
		"model_name":      s.config.ModelName,
	})
}

func (s *Server) handleSampleData(w http.ResponseWriter, r *http.Request) {
	brand := s.demoGen.SampleBrand()
	mentions := s.demoGen.GenerateMentions(brand.ID, brand.Name, 7, 20)

	// Score through the real pipeline so labels stay consistent with scores
	now := time.Now().UTC()
	for i := range mentions {
		sentiment, assessment := s.monitor.Analyze(mentions[i].Content)
		mentions[i].SentimentScore = sentiment.Score
		mentions[i].SentimentLabel = sentiment.Label
		mentions[i].Confidence = sentiment.Confidence
		mentions[i].CrisisProbability = assessment.Probability
		mentions[i].CrisisLevel = assessment.Level
		mentions[i].AnalyzedAt = &now
	}

	summary := analysis.Summarize(mentions, s.config.CrisisAlertThreshold)
	summary.BrandID = brand.ID

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"brand":     brand,
		"mentions":  mentions,
		"analytics": summary,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func queryFloat(r *http.Request, key string, defaultValue float64) float64 {
	if value := r.URL.Query().Get(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
