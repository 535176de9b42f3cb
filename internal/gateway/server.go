// internal/gateway/server.go
package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
	dininghook "dining-concierge/internal/workers/dialog/dining-hook"
)

const noMessageReply = "Error: No message provided"

// Server is the HTTP front door: it accepts chat messages, asks the NLU
// what the user meant, and drives the dialog engine over the session's
// slot state.
type Server struct {
	config   config.GatewayConfig
	engine   *dininghook.Handler
	sessions *SessionStore
	nlu      Interpreter
	logger   logger.Logger
}

func NewServer(cfg config.GatewayConfig, engine *dininghook.Handler, sessions *SessionStore, nlu Interpreter, log logger.Logger) *Server {
	return &Server{
		config:   cfg,
		engine:   engine,
		sessions: sessions,
		nlu:      nlu,
		logger:   log.WithFields(map[string]interface{}{"component": "chat-gateway"}),
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Api-Key"},
	}))

	router.GET("/healthz", s.handleHealth)

	v1 := router.Group("/v1")
	{
		v1.POST("/chat", s.handleChat)
		v1.POST("/dialog", s.handleDialog)
	}

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// handleChat is the free-text path: extract text, interpret, merge slots
// into the session, run the dialog engine, reply with the chat envelope.
func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, replyEnvelope("", noMessageReply, ""))
		return
	}

	text := strings.TrimSpace(req.UserText())
	if text == "" {
		c.JSON(http.StatusBadRequest, replyEnvelope(req.SessionID, noMessageReply, ""))
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	ctx := c.Request.Context()

	interp, err := s.nlu.Interpret(ctx, sessionID, text)
	if err != nil {
		// An unreachable NLU reads as "didn't understand": the engine's
		// fallback close handles it.
		s.logger.WithError(err).Warn("nlu interpret failed", map[string]interface{}{
			"sessionId": sessionID,
		})
		interp = &Interpretation{}
	}

	stored, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		s.logger.WithError(err).Warn("session load failed, starting fresh", map[string]interface{}{
			"sessionId": sessionID,
		})
		stored = models.SlotSet{}
	}
	merged := mergeSlots(stored, interp.Slots)

	result := s.engine.ProcessTurn(ctx, &models.DialogEvent{
		IntentName: interp.Intent,
		Phase:      models.PhaseValidate,
		Slots:      merged,
		SessionID:  sessionID,
	})

	if result.Directive == models.DirectiveDelegate {
		// All slots are in: finish the request in the same turn.
		result = s.engine.ProcessTurn(ctx, &models.DialogEvent{
			IntentName: interp.Intent,
			Phase:      models.PhaseFinalize,
			Slots:      result.Slots,
			SessionID:  sessionID,
		})
		if err := s.sessions.Clear(ctx, sessionID); err != nil {
			s.logger.WithError(err).Warn("session clear failed", map[string]interface{}{
				"sessionId": sessionID,
			})
		}
	} else if err := s.sessions.Save(ctx, sessionID, result.Slots); err != nil {
		s.logger.WithError(err).Warn("session save failed", map[string]interface{}{
			"sessionId": sessionID,
		})
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, replyEnvelope(sessionID, result.Message, timestamp))
}

// handleDialog is the structured path: a caller that already speaks the
// dialog event shape gets the raw turn result back.
func (s *Server) handleDialog(c *gin.Context) {
	var event models.DialogEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dialog event: " + err.Error()})
		return
	}

	if event.SessionID == "" {
		event.SessionID = uuid.New().String()
	}

	result := s.engine.ProcessTurn(c.Request.Context(), &event)
	c.JSON(http.StatusOK, result)
}

// mergeSlots overlays freshly interpreted values onto the stored set. Blank
// interpretations never erase a previously captured value.
func mergeSlots(stored, fresh models.SlotSet) models.SlotSet {
	merged := stored.Clone()
	for name, value := range fresh {
		if strings.TrimSpace(value) != "" {
			merged[name] = value
		}
	}
	return merged
}
