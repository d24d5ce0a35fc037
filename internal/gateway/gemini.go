package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/claude/runpro/internal/metrics"
	"github.com/claude/runpro/internal/models"
)

// contentGenerator is the part of the genai client the gateway uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config selects models and behaviour of the Gemini gateway.
type Config struct {
	APIKey    string
	PlanModel string
	ChatModel string
	Language  string
	Timeout   time.Duration
	Search    bool
}

// Gemini implements Gateway on the Gemini API.
type Gemini struct {
	gen     contentGenerator
	cfg     Config
	metrics *metrics.Manager
	log     *slog.Logger
	now     func() time.Time
}

var _ Gateway = (*Gemini)(nil)

// NewGemini creates a Gemini API client.
func NewGemini(ctx context.Context, cfg Config, m *metrics.Manager, log *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return newGemini(client.Models, cfg, m, log), nil
}

func newGemini(gen contentGenerator, cfg Config, m *metrics.Manager, log *slog.Logger) *Gemini {
	if cfg.Language == "" {
		cfg.Language = "th"
	}
	return &Gemini{gen: gen, cfg: cfg, metrics: m, log: log, now: time.Now}
}

// Language is the display language prompts are written for.
func (g *Gemini) Language() string { return g.cfg.Language }

// generate runs one model call with the configured timeout and records
// metrics for it.
func (g *Gemini) generate(ctx context.Context, op Op, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.gen.GenerateContent(ctx, model, contents, config)
	g.metrics.HistGatewayDuration.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
	if err != nil {
		g.fail(op, "error", err)
		return nil, &models.GatewayError{Op: string(op), Err: err}
	}
	if resp == nil {
		err := errors.New("empty response")
		g.fail(op, "error", err)
		return nil, &models.GatewayError{Op: string(op), Err: err}
	}
	return resp, nil
}

func (g *Gemini) fail(op Op, outcome string, err error) {
	g.metrics.CounterGatewayCalls.WithLabelValues(string(op), outcome).Inc()
	g.log.Error("gateway call failed", "op", op, "outcome", outcome, "error", err)
}

func (g *Gemini) succeed(op Op) {
	g.metrics.CounterGatewayCalls.WithLabelValues(string(op), "ok").Inc()
}

// invalid records a response that did not match the expected shape.
func (g *Gemini) invalid(op Op, err error) error {
	g.fail(op, "invalid", err)
	// %v so a schema problem in the response is not reported as bad user input
	return &models.GatewayError{Op: string(op), Err: fmt.Errorf("unexpected response: %v", err)}
}

// GeneratePlan asks the plan model for one week of training.
func (g *Gemini) GeneratePlan(ctx context.Context, profile models.UserProfile, targetDate time.Time, daysPerWeek int) (models.TrainingPlan, error) {
	if err := profile.Validate(); err != nil {
		return models.TrainingPlan{}, err
	}
	if targetDate.IsZero() {
		return models.TrainingPlan{}, models.Invalid("targetDate", "required")
	}
	if daysPerWeek < 1 || daysPerWeek > 7 {
		return models.TrainingPlan{}, models.Invalid("daysPerWeek", "must be between 1 and 7")
	}

	lang := g.cfg.Language
	prompt := planPrompt(lang, profile, targetDate, daysPerWeek, g.now())
	resp, err := g.generate(ctx, OpGeneratePlan, g.cfg.PlanModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   planSchema(lang),
	})
	if err != nil {
		return models.TrainingPlan{}, err
	}

	var plan models.TrainingPlan
	if err := json.Unmarshal([]byte(resp.Text()), &plan); err != nil {
		return models.TrainingPlan{}, g.invalid(OpGeneratePlan, err)
	}
	if err := plan.Validate(); err != nil {
		return models.TrainingPlan{}, g.invalid(OpGeneratePlan, err)
	}
	g.succeed(OpGeneratePlan)
	g.log.Info("plan generated", "target", profile.Target, "focus", plan.Focus, "workouts", len(plan.Workouts))
	return plan, nil
}

// SuggestExercises asks for up to three strength exercises that are not
// already in existing.
func (g *Gemini) SuggestExercises(ctx context.Context, existing []string, profile models.UserProfile) ([]models.StrengthExercise, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	lang := g.cfg.Language
	resp, err := g.generate(ctx, OpSuggestExercises, g.cfg.PlanModel, genai.Text(exercisePrompt(lang, existing, profile)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   exerciseListSchema(lang),
	})
	if err != nil {
		return nil, err
	}

	var suggested []models.StrengthExercise
	if err := json.Unmarshal([]byte(resp.Text()), &suggested); err != nil {
		return nil, g.invalid(OpSuggestExercises, err)
	}
	out := filterSuggestions(suggested, existing)
	if len(out) == 0 {
		return nil, g.invalid(OpSuggestExercises, errors.New("no usable exercises"))
	}
	g.succeed(OpSuggestExercises)
	return out, nil
}

// filterSuggestions drops invalid entries and names already taken
// (case-insensitive), keeping at most MaxSuggestions.
func filterSuggestions(suggested []models.StrengthExercise, existing []string) []models.StrengthExercise {
	seen := make(map[string]bool, len(existing))
	for _, name := range existing {
		seen[strings.ToLower(strings.TrimSpace(name))] = true
	}
	var out []models.StrengthExercise
	for _, e := range suggested {
		if len(out) == MaxSuggestions {
			break
		}
		e.Name = strings.TrimSpace(e.Name)
		key := strings.ToLower(e.Name)
		if e.Validate() != nil || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// Converse answers a coaching question. An empty answer is replaced by a
// polite apology rather than treated as a failure.
func (g *Gemini) Converse(ctx context.Context, query string, history []models.ChatMessage) (models.CoachReply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.CoachReply{}, models.Invalid("query", "must not be empty")
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == models.RoleModel {
			role = genai.RoleModel
		}
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(query, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(coachInstruction(g.cfg.Language), genai.RoleUser),
	}
	if g.cfg.Search {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := g.generate(ctx, OpConverse, g.cfg.ChatModel, contents, config)
	if err != nil {
		return models.CoachReply{}, err
	}
	g.succeed(OpConverse)

	reply := models.CoachReply{Text: strings.TrimSpace(resp.Text()), Citations: citations(resp)}
	if reply.Text == "" {
		reply.Text = EmptyReply(g.cfg.Language)
	}
	return reply, nil
}

// citations collects the web sources of the first candidate, once per URL.
func citations(resp *genai.GenerateContentResponse) []models.Citation {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var out []models.Citation
	seen := map[string]bool{}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		title := chunk.Web.Title
		if title == "" {
			title = chunk.Web.URI
		}
		out = append(out, models.Citation{Title: title, URL: chunk.Web.URI})
	}
	return out
}
