// a11ybot is a terminal accessibility advisor: it answers WCAG and
// digital-accessibility questions with a hosted generative-AI model,
// falling back to a built-in knowledge base when offline content
// suffices or the remote service is unavailable.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/philippgille/chromem-go"

	"github.com/accessly/a11ybot/pkg/advisor"
	"github.com/accessly/a11ybot/pkg/cache"
	"github.com/accessly/a11ybot/pkg/config"
	"github.com/accessly/a11ybot/pkg/kb"
	"github.com/accessly/a11ybot/pkg/logger"
	"github.com/accessly/a11ybot/pkg/media"
	"github.com/accessly/a11ybot/pkg/metrics"
	"github.com/accessly/a11ybot/pkg/providers"
	"github.com/accessly/a11ybot/pkg/ratelimit"
	"github.com/accessly/a11ybot/pkg/session"
	"github.com/accessly/a11ybot/pkg/status"
)

const helpText = `Commands:
  /image <path> [question]  analyze an image for accessibility issues
  /kb [topic]               list offline topics, or show one
  /resources                show general accessibility resources
  /search <query>           semantic search (when enabled)
  /model [name]             show or switch the active model
  /reset                    clear the conversation history
  /help                     show this help
  /quit                     exit

Anything else is asked as an accessibility question.`

type app struct {
	cfg        *config.Config
	advisor    *advisor.Advisor
	sessions   *session.Manager
	sessionKey string
	kbase      *kb.Base
	vectors    *kb.VectorStore
	respCache  *cache.Cache
	pacer      *ratelimit.Pacer
	tracker    *metrics.Tracker
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	// A missing credential is fatal before any request is attempted.
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY (or ANTHROPIC_API_KEY / OPENAI_API_KEY with A11YBOT_PROVIDER).")
		os.Exit(1)
	}

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(1)
	}

	if cfg.StatusAddr != "" {
		status.Start(cfg.StatusAddr, status.Info{
			Provider:  cfg.Provider,
			Model:     a.advisor.Model(),
			StartedAt: time.Now(),
		})
	}

	if err := a.run(); err != nil {
		fmt.Fprintf(os.Stderr, "a11ybot: %v\n", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config) (*app, error) {
	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg: cfg,
		advisor: advisor.New(advisor.Options{
			Provider:   provider,
			Model:      cfg.Model,
			Persona:    cfg.Persona,
			Credential: cfg.Credential(),
		}),
		sessions:   session.NewManager(),
		sessionKey: session.NewSessionKey(),
		kbase:      kb.New(),
		respCache:  cache.New(cfg.CacheSize),
		pacer:      ratelimit.New(time.Duration(cfg.RateLimitSeconds) * time.Second),
		tracker:    metrics.NewTracker(cfg.Workspace),
	}

	if cfg.SemanticSearch {
		embeddingFn := chromem.NewEmbeddingFuncOpenAI(cfg.OpenAIAPIKey, chromem.EmbeddingModelOpenAI3Small)
		vs, err := kb.NewVectorStore(cfg.Workspace, embeddingFn)
		if err != nil {
			logger.WarnCF("main", "Semantic search disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			if err := vs.IndexArticles(context.Background(), a.kbase); err != nil {
				logger.WarnCF("main", "Failed to index articles", map[string]interface{}{
					"error": err.Error(),
				})
			}
			a.vectors = vs
		}
	}

	return a, nil
}

func buildProvider(cfg *config.Config) (providers.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return providers.NewGeminiProvider(cfg.GeminiAPIKey), nil
	case "anthropic":
		return providers.NewAnthropicProvider(cfg.AnthropicAPIKey), nil
	case "openai":
		return providers.NewOpenAIProvider(cfg.OpenAIAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func (a *app) run() error {
	rl, err := readline.New("a11y> ")
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	fmt.Printf("a11ybot — accessibility advisor (%s / %s)\n", a.cfg.Provider, a.advisor.Model())
	fmt.Println("Type /help for commands.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := a.handleCommand(line); quit {
				return nil
			}
			continue
		}

		a.ask(line)
	}
}

// handleCommand dispatches slash commands. Returns true to exit.
func (a *app) handleCommand(line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Println(helpText)
	case "/reset":
		a.sessions.Clear(a.sessionKey)
		a.sessionKey = session.NewSessionKey()
		fmt.Println("Conversation cleared.")
	case "/model":
		if rest == "" {
			fmt.Printf("Current model: %s\n", a.advisor.Model())
		} else {
			old := a.advisor.Model()
			a.advisor.SetModel(rest)
			fmt.Printf("Model switched: %s -> %s\n", old, rest)
		}
	case "/kb":
		a.showKB(rest)
	case "/resources":
		fmt.Println(kb.GeneralResources)
		fmt.Println("\nOffline topics:", strings.Join(a.kbase.Topics(), ", "))
	case "/search":
		a.search(rest)
	case "/image":
		path, question, _ := strings.Cut(rest, " ")
		a.askImage(path, strings.TrimSpace(question))
	default:
		fmt.Printf("Unknown command %s (try /help)\n", cmd)
	}
	return false
}

func (a *app) showKB(topic string) {
	if topic == "" {
		fmt.Println("Offline topics:", strings.Join(a.kbase.Topics(), ", "))
		return
	}
	article := a.kbase.Get(topic)
	if article == nil {
		fmt.Printf("No offline article for %q. Topics: %s\n", topic, strings.Join(a.kbase.Topics(), ", "))
		return
	}
	fmt.Println(article.Answer)
}

func (a *app) search(query string) {
	if a.vectors == nil {
		fmt.Println("Semantic search is disabled (set A11YBOT_SEMANTIC_SEARCH=true and OPENAI_API_KEY).")
		return
	}
	if query == "" {
		fmt.Println("Usage: /search <query>")
		return
	}

	results, err := a.vectors.Search(context.Background(), query, 3)
	if err != nil {
		fmt.Printf("Search failed: %v\n", err)
		return
	}
	if len(results) == 0 {
		fmt.Println("No matches.")
		return
	}
	for _, r := range results {
		fmt.Printf("[%s, score %.2f]\n%s\n\n", r.Source, r.Score, r.Content)
	}
}

// ask answers a text question: cache first, then the offline knowledge
// base, then one remote call.
func (a *app) ask(question string) {
	key := cache.Key(question)
	if answer, ok := a.respCache.Get(key); ok {
		fmt.Println("[cached — no API cost]")
		fmt.Println(answer)
		a.remember(question, answer, false)
		a.track("cached", nil)
		return
	}

	if article := a.kbase.Lookup(question); article != nil {
		fmt.Println("[offline content — no API cost]")
		fmt.Println(article.Answer)
		a.remember(question, article.Answer, false)
		a.track("offline", nil)
		return
	}

	history := a.sessions.History(a.sessionKey)

	if err := a.pacer.Wait(context.Background()); err != nil {
		fmt.Printf("Interrupted while pacing requests: %v\n", err)
		return
	}

	reply, err := a.advisor.Generate(context.Background(), advisor.Turn{Text: question}, history)
	if err != nil {
		a.reportError(err)
		a.track(outcomeLabel(err), nil)
		return
	}

	fmt.Println(reply.Text)
	a.respCache.Set(key, reply.Text, 0)
	a.remember(question, reply.Text, false)
	a.track("ok", reply.Usage)

	if a.vectors != nil {
		a.vectors.IndexConversation(context.Background(), a.sessionKey, question, reply.Text)
	}
}

// askImage analyzes an image for accessibility issues. Image requests
// are never cached; each upload is treated as new content.
func (a *app) askImage(path, question string) {
	if path == "" {
		fmt.Println("Usage: /image <path> [question]")
		return
	}

	part, err := media.LoadImage(path)
	if err != nil {
		fmt.Printf("Cannot load image: %v\n", err)
		return
	}

	history := a.sessions.History(a.sessionKey)

	if err := a.pacer.Wait(context.Background()); err != nil {
		fmt.Printf("Interrupted while pacing requests: %v\n", err)
		return
	}

	reply, err := a.advisor.Generate(context.Background(),
		advisor.Turn{Text: question, Image: part}, history)
	if err != nil {
		a.reportError(err)
		a.track(outcomeLabel(err), nil)
		return
	}

	fmt.Println(reply.Text)
	userText := question
	if userText == "" {
		userText = fmt.Sprintf("Analyze image %s for accessibility.", part.FileName)
	}
	a.rememberImage(userText, reply.Text)
	a.track("ok", reply.Usage)
}

func (a *app) remember(question, answer string, hasImage bool) {
	a.sessions.Append(a.sessionKey, "user", question, hasImage)
	a.sessions.Append(a.sessionKey, "assistant", answer, false)
}

func (a *app) rememberImage(question, answer string) {
	a.remember(question, answer, true)
}

func (a *app) track(outcome string, usage *providers.UsageInfo) {
	event := metrics.UsageEvent{
		SessionKey: a.sessionKey,
		Provider:   a.cfg.Provider,
		Model:      a.advisor.Model(),
		Outcome:    outcome,
	}
	if usage != nil {
		event.InputTokens = usage.PromptTokens
		event.OutputTokens = usage.CompletionTokens
	}
	a.tracker.Record(event)
}

// reportError prints a user-facing message for a classified failure.
// The session stays alive; the user may retry manually.
func (a *app) reportError(err error) {
	switch {
	case errors.Is(err, advisor.ErrInvalidInput):
		fmt.Println("Please enter a question or attach an image.")
	case errors.Is(err, advisor.ErrMissingCredential):
		fmt.Println("No API key configured. Set GEMINI_API_KEY and restart.")
	case errors.Is(err, advisor.ErrAuthRejected):
		fmt.Println("The API rejected your key. Check that it is valid and enabled for the Generative Language API.")
		logger.ErrorCF("main", "Credential rejected", map[string]interface{}{"error": err.Error()})
	case errors.Is(err, advisor.ErrRemoteUnavailable):
		fmt.Println("The AI service is unavailable or over quota. Showing offline resources instead:")
		fmt.Println()
		fmt.Println(kb.GeneralResources)
		logger.WarnCF("main", "Remote unavailable", map[string]interface{}{"error": err.Error()})
	case errors.Is(err, advisor.ErrEmptyResponse):
		fmt.Println("The model returned no usable content. Try rephrasing your question.")
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, advisor.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, advisor.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, advisor.ErrAuthRejected):
		return "auth_rejected"
	case errors.Is(err, advisor.ErrRemoteUnavailable):
		return "unavailable"
	case errors.Is(err, advisor.ErrEmptyResponse):
		return "empty_response"
	default:
		return "error"
	}
}
