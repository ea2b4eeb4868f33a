// Package relay provides the portfolio server: the streaming chat relay,
// the profile and contact endpoints, and the static site shell.
package relay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/foliodev/folio/pkg/contact"
	"github.com/foliodev/folio/pkg/llm"
	"github.com/foliodev/folio/pkg/profile"
	"github.com/foliodev/folio/pkg/prompt"
	"github.com/foliodev/folio/pkg/sse"
	"github.com/foliodev/folio/web"
)

// Relay is the portfolio server. Each chat request is handled
// independently: the relay composes the system prompt, forwards the
// conversation upstream with incremental delivery requested, and
// re-streams the decoded text fragments to the caller as flat text.
// It holds no per-conversation state.
type Relay struct {
	config     Config
	storer     contact.Storer
	logger     *zap.Logger
	httpClient *http.Client
	server     *fiber.App
	watcher    *profile.Watcher

	// mu guards profile and systemPrompt, swapped on profile reload.
	mu           sync.RWMutex
	profile      *profile.Profile
	systemPrompt string
}

// New creates a new Relay.
func New(config Config, logger *zap.Logger) (*Relay, error) {
	var prof *profile.Profile
	if config.ProfilePath != "" {
		var err error
		prof, err = profile.Load(config.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		logger.Info("loaded profile", zap.String("path", config.ProfilePath), zap.String("name", prof.Name))
	} else {
		prof = profile.Default()
		logger.Info("using built-in placeholder profile")
	}

	var storer contact.Storer
	if config.DBPath != "" {
		var err error
		storer, err = contact.NewSQLiteStorer(config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite storer: %w", err)
		}
		logger.Info("using SQLite contact storage", zap.String("path", config.DBPath))
	} else {
		storer = contact.NewMemoryStorer()
		logger.Info("using in-memory contact storage")
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		// Enable streaming
		StreamRequestBody: true,
	})

	r := &Relay{
		config: config,
		storer: storer,
		logger: logger,
		server: app,
		httpClient: &http.Client{
			// LLM requests can be slow, especially with long answers
			Timeout: 5 * time.Minute,
		},
	}
	r.setProfile(prof)

	if config.ProfilePath != "" {
		watcher, err := profile.Watch(config.ProfilePath, logger, r.setProfile)
		if err != nil {
			// Live reload is a convenience; serving continues without it.
			logger.Warn("profile watch unavailable", zap.Error(err))
		} else {
			r.watcher = watcher
		}
	}

	// Register routes
	app.Post("/api/chat", r.handleChat)
	app.Get("/api/profile", r.handleProfile)
	app.Post("/api/contact", r.handleContact)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	// Static site shell, served for anything the API routes don't claim.
	app.Use(adaptor.HTTPHandler(http.FileServer(http.FS(web.Static()))))

	return r, nil
}

// Run starts the relay server on the configured listening address.
func (r *Relay) Run() error {
	r.logger.Info("starting relay server",
		zap.String("listen", r.config.ListenAddr),
		zap.String("upstream", r.config.UpstreamURL),
		zap.String("model", r.config.Model),
	)

	return r.server.Listen(r.config.ListenAddr)
}

// Close shuts down the relay and releases resources.
func (r *Relay) Close() error {
	if r.watcher != nil {
		r.watcher.Close()
	}
	return r.storer.Close()
}

// setProfile swaps in a profile and its composed system prompt.
func (r *Relay) setProfile(p *profile.Profile) {
	composed := prompt.Compose(p)

	r.mu.Lock()
	r.profile = p
	r.systemPrompt = composed
	r.mu.Unlock()
}

// SystemPrompt returns the currently composed system prompt.
func (r *Relay) SystemPrompt() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.systemPrompt
}

// handleChat relays a conversation to the upstream provider and streams
// the reply back as flat text. Errors before the first forwarded byte are
// structured JSON; once streaming has begun a failure can only surface as
// an early close, with whatever was already sent left standing.
func (r *Relay) handleChat(c *fiber.Ctx) error {
	startTime := time.Now()

	var req llm.ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		r.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "messages array is required"})
	}

	if len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "messages array is required"})
	}

	apiKey, ok := r.config.lookupEnv(APIKeyVar)
	if !ok || apiKey == "" {
		r.logger.Error("upstream credential not configured", zap.String("var", APIKeyVar))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: APIKeyVar + " not configured"})
	}

	r.logger.Debug("received chat request",
		zap.Int("message_count", len(req.Messages)),
	)

	upstreamReq := llm.UpstreamRequest{
		Model:  r.config.Model,
		Stream: true,
		Messages: append(
			[]llm.Message{{Role: llm.RoleSystem, Content: r.SystemPrompt()}},
			req.Messages...,
		),
	}

	reqBody, err := json.Marshal(upstreamReq)
	if err != nil {
		r.logger.Error("failed to marshal upstream request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "internal error"})
	}

	httpReq, err := http.NewRequestWithContext(c.Context(), "POST", r.config.UpstreamURL, bytes.NewReader(reqBody))
	if err != nil {
		r.logger.Error("failed to create upstream request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "internal error"})
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	// One attempt only: retrying a model call would duplicate billable
	// work and can produce two different answers for one question.
	httpResp, err := r.httpClient.Do(httpReq)
	if err != nil {
		r.logger.Error("upstream request failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: "AI service error"})
	}

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		r.logger.Error("upstream returned error",
			zap.Int("status", httpResp.StatusCode),
			zap.String("body", string(body)),
		)
		return c.Status(httpResp.StatusCode).JSON(llm.ErrorResponse{
			Error:   "AI service error",
			Details: string(body),
		})
	}

	// Flat text out: the client treats the whole body as the answer.
	c.Set("Content-Type", "text/plain; charset=utf-8")
	c.Set("Cache-Control", "no-cache")

	// The stream writer runs after this handler returns, so the upstream
	// body is closed inside it, on every exit path.
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer httpResp.Body.Close()

		var forwarded int
		decoder := sse.NewDecoder(httpResp.Body)
		for {
			fragment, err := decoder.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				// Mid-stream failure: close with what was already sent.
				r.logger.Error("error reading upstream stream", zap.Error(err))
				break
			}

			if _, err := w.WriteString(fragment); err != nil {
				r.logger.Debug("client went away mid-stream", zap.Error(err))
				break
			}
			// Flush per fragment to preserve the incremental delivery.
			if err := w.Flush(); err != nil {
				r.logger.Debug("client went away mid-stream", zap.Error(err))
				break
			}
			forwarded++
		}

		r.logger.Debug("streaming complete",
			zap.Int("fragments", forwarded),
			zap.Duration("duration", time.Since(startTime)),
		)
	}))

	return nil
}

// handleProfile returns the currently loaded profile.
func (r *Relay) handleProfile(c *fiber.Ctx) error {
	r.mu.RLock()
	p := r.profile
	r.mu.RUnlock()

	return c.JSON(p)
}

// contactRequest is the body of a contact-form submission.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// handleContact validates and persists a contact-form submission.
func (r *Relay) handleContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "name, email, and message are required"})
	}

	msg := &contact.Message{
		Name:  req.Name,
		Email: req.Email,
		Body:  req.Message,
	}
	if err := r.storer.Put(c.Context(), msg); err != nil {
		r.logger.Error("failed to store contact message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "failed to store message"})
	}

	r.logger.Info("contact message stored",
		zap.Int64("id", msg.ID),
		zap.String("email", msg.Email),
	)

	return c.Status(fiber.StatusCreated).JSON(msg)
}
