// Package webserver implements the HTTP surface for the web adapter:
// list/switch scripts, start/send/poll/reset a chat session. It is thin
// glue around the core engine.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"

	"dsl-bot/internal/adapter"
	"dsl-bot/internal/classifier"
	"dsl-bot/internal/config"
	"dsl-bot/internal/dsl/ast"
	"dsl-bot/internal/dsl/engine"
	"dsl-bot/internal/dsl/executor"
	"dsl-bot/internal/dsl/functions"
	"dsl-bot/internal/loader"
	"dsl-bot/internal/logging"
	"dsl-bot/internal/session"
	"dsl-bot/internal/store"
)

// Server holds the active script, the session registry, and the shared
// collaborators (store, classifier) every worker goroutine uses.
type Server struct {
	cfg     config.Config
	log     *logging.Logger
	store   store.Store
	cl      classifier.Classifier
	funcs   map[string]executor.Func
	watcher *loader.Watcher

	mu      sync.RWMutex
	scripts []string
	active  string // current .bot filename
	flow    ast.FlowTable
	botName string

	sessions *session.Manager
}

func NewServer(cfg config.Config, log *logging.Logger) (*Server, error) {
	names, err := loader.ListScripts(cfg.ScriptsDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		funcs:    functions.Default(),
		sessions: session.NewManager(),
		scripts:  names,
	}

	if cfg.IsMockStore() {
		s.store = store.NewMockStore()
	} else if pg, err := store.NewStore(cfg.DBConnString); err == nil {
		s.store = pg
	} else {
		log.Warnf("connecting to store: %v (continuing without persistence)", err)
	}

	if cfg.GeminiAPIKey != "" {
		if llm, err := classifier.NewLLMClassifier(context.Background(), cfg.GeminiAPIKey); err == nil && llm != nil {
			s.cl = llm
		}
	}
	if s.cl == nil {
		s.cl = classifier.NewRuleClassifier()
	}

	if len(names) > 0 {
		if err := s.activate(names[0]); err != nil {
			log.Warnf("activating default script %s: %v", names[0], err)
		}
	}

	watcher, err := loader.NewWatcher(cfg.ScriptsDir, log, func(names []string) {
		s.mu.Lock()
		s.scripts = names
		s.mu.Unlock()
	})
	if err != nil {
		log.Warnf("starting script watcher: %v", err)
	} else {
		s.watcher = watcher
	}

	return s, nil
}

func (s *Server) activate(filename string) error {
	path := filepath.Join(s.cfg.ScriptsDir, filename)
	script, err := loader.LoadScript(path)
	if err != nil {
		return err
	}
	botName, ok := loader.FirstBotName(script.Program)
	if !ok {
		return fmt.Errorf("script %s declares no bots", filename)
	}

	s.mu.Lock()
	s.active = filename
	s.flow = ast.BuildFlowTable(script.Program)
	s.botName = botName
	s.mu.Unlock()

	s.sessions.DeleteAll()
	return nil
}

// Router builds the gin engine with its middleware and route groups.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	api.GET("/scripts", s.handleListScripts)
	api.POST("/switch_script", s.handleSwitchScript)

	r.POST("/start_chat", s.handleStartChat)
	r.POST("/send", s.handleSend)
	r.GET("/poll", s.handlePoll)
	r.POST("/reset", s.handleReset)

	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

type scriptsResponse struct {
	Scripts []string `json:"scripts"`
	Active  string   `json:"active"`
}

func (s *Server) handleListScripts(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.JSON(http.StatusOK, scriptsResponse{Scripts: s.scripts, Active: s.active})
}

type switchScriptRequest struct {
	Filename string `json:"filename" binding:"required"`
}

func (s *Server) handleSwitchScript(c *gin.Context) {
	var req switchScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.activate(req.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": req.Filename})
}

type startChatResponse struct {
	SessionID string `json:"session_id"`
	BotName   string `json:"bot_name"`
}

func (s *Server) handleStartChat(c *gin.Context) {
	s.mu.RLock()
	flow, botName := s.flow, s.botName
	s.mu.RUnlock()

	if flow == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no active script"})
		return
	}

	sess := s.sessions.Create(botName)

	ex := &executor.Executor{
		Adapter:    sess.Adapter,
		Store:      s.store,
		Classifier: s.cl,
		Functions:  s.funcs,
	}

	// The session outlives this request, so it gets its own background
	// context rather than one tied to the HTTP request lifecycle.
	go engine.Run(context.Background(), flow, botName, sess.Context, ex, s.cfg.MaxSteps)

	c.JSON(http.StatusOK, startChatResponse{SessionID: sess.ID, BotName: botName})
}

type sendRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message"`
}

func (s *Server) handleSend(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, ok := s.sessions.Get(req.SessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	sess.Adapter.PushUserInput(req.Message)
	c.JSON(http.StatusOK, gin.H{"status": "queued"})
}

func (s *Server) handlePoll(c *gin.Context) {
	id := c.Query("session_id")
	sess, ok := s.sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	msgs := sess.Adapter.DrainOutbound()
	if msgs == nil {
		msgs = []adapter.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type resetRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

func (s *Server) handleReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.sessions.Delete(req.SessionID)
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
