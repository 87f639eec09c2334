package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admitplan/kcetgo/internal/assistant"
	"github.com/admitplan/kcetgo/internal/backend"
	"github.com/admitplan/kcetgo/internal/catalog"
	"github.com/admitplan/kcetgo/internal/config"
	"github.com/admitplan/kcetgo/internal/llm"
	"github.com/admitplan/kcetgo/internal/model"
	"github.com/admitplan/kcetgo/internal/preference"
)

type Server struct {
	Backend   *backend.Client
	Catalog   *catalog.Cache
	Submitter *preference.Client
	Assistant *assistant.Assistant // nil when no LLM provider is configured
}

func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.PreferenceURL)

	var asst *assistant.Assistant
	if cfg.LLM.Provider != "" {
		llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			log.Printf("Chat assistant disabled: %v", err)
		} else {
			asst = assistant.New(llmClient)
		}
	}

	return &Server{
		Backend:   client,
		Catalog:   catalog.New(client),
		Submitter: preference.NewClient(client),
		Assistant: asst,
	}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/api/colleges", s.ListColleges)
	r.GET("/api/colleges/:college_code/courses", s.ListCourses)
	r.GET("/api/cutoffs", s.ListCutoffs)
	r.POST("/api/preferences", s.SubmitPreferences)
	r.POST("/api/chat", s.Chat)

	return r
}

func (s *Server) ListColleges(c *gin.Context) {
	colleges, err := s.Catalog.Colleges(c.Request.Context())
	if err != nil {
		log.Printf("Failed to fetch colleges: %v", err)
		writeBackendError(c, err, "Failed to fetch KCET colleges")
		return
	}
	c.JSON(http.StatusOK, gin.H{"colleges": colleges})
}

func (s *Server) ListCourses(c *gin.Context) {
	code := c.Param("college_code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "College code is required"})
		return
	}

	courses, err := s.Catalog.SelectCollege(c.Request.Context(), code)
	if err != nil {
		log.Printf("Failed to fetch courses for %s: %v", code, err)
		writeBackendError(c, err, "Failed to fetch college courses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"colleges": []gin.H{{"CourseList": courses}}})
}

func (s *Server) ListCutoffs(c *gin.Context) {
	page, err := s.Backend.Cutoffs(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		log.Printf("Failed to fetch cutoffs: %v", err)
		writeBackendError(c, err, "Failed to fetch results")
		return
	}
	c.JSON(http.StatusOK, gin.H{"colleges": page.Colleges, "hasMore": page.HasMore})
}

type preferenceRequest struct {
	Rank        int    `json:"rank"`
	Cat         string `json:"cat"`
	HK          bool   `json:"hk"`
	Rural       bool   `json:"rural"`
	Kannada     bool   `json:"kannada"`
	Preferences []struct {
		CollegeCode string `json:"college_code"`
		CourseCode  string `json:"course_code"`
	} `json:"preferences"`
}

func (s *Server) SubmitPreferences(c *gin.Context) {
	var req preferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	// Rebuilding the set applies ordering and duplicate rejection to whatever
	// the client sent.
	set := preference.NewSet()
	for _, p := range req.Preferences {
		set.Add(model.College{CollegeID: p.CollegeCode}, model.Course{CourseCode: p.CourseCode})
	}

	profile := model.CandidateProfile{
		Rank:     req.Rank,
		Category: req.Cat,
		HK:       req.HK,
		Rural:    req.Rural,
		Kannada:  req.Kannada,
	}

	result, err := s.Submitter.Submit(c.Request.Context(), profile, set)
	if err != nil {
		var verr *preference.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"message": verr.Error()})
		case errors.Is(err, preference.ErrSubmissionInFlight):
			c.JSON(http.StatusConflict, gin.H{"message": "A submission is already in progress"})
		default:
			log.Printf("Preference submission failed: %v", err)
			writeBackendError(c, err, "Preference submission failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

type chatRequest struct {
	Question string `json:"question"`
}

func (s *Server) Chat(c *gin.Context) {
	if s.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Chat assistant is not configured"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	answer, err := s.Assistant.Answer(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Question is required"})
			return
		}
		log.Printf("Chat failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to answer question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// writeBackendError mirrors the upstream status and message for transport
// failures, and hides everything else behind a generic 500.
func writeBackendError(c *gin.Context, err error, fallback string) {
	var berr *backend.Error
	if errors.As(err, &berr) {
		c.JSON(berr.StatusCode, gin.H{"message": berr.Message, "status": "error"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback, "status": "error"})
}
