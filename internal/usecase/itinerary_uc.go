package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Novalitix/go-to-japan-ai/internal/domain"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/model"
	"github.com/Novalitix/go-to-japan-ai/internal/domain/ports/adapter"
	"github.com/Novalitix/go-to-japan-ai/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ ItineraryGenerator = (*itineraryUC)(nil)

// ItineraryGenerator is the collaborator that turns a trip request into a
// finished itinerary. The gateway only sees this interface; the staged LLM
// pipeline below is one implementation, tests use canned ones.
type ItineraryGenerator interface {
	Generate(ctx context.Context, req model.TripRequest) (json.RawMessage, error)
}

// The planning modules, in pipeline order. Lodging, dining and transport
// are optional and gated by the request's services list; the daily
// activities sequence always runs.
var serviceStages = []string{"lodging", "restaurants", "transport", "activities"}

const weatherFanout = 4

type itineraryUC struct {
	llm    adapter.LLMAdapter
	search adapter.SearchAdapter // nil when no search key is configured
	model  string
	log    *zerolog.Logger
}

func NewItineraryUseCase(llm adapter.LLMAdapter, search adapter.SearchAdapter, modelName string, logger *zerolog.Logger) (*itineraryUC, error) {
	if llm == nil {
		return nil, domain.ErrNoPlanner
	}
	ucLog := logger.With().Str("component", "ItineraryUC").Logger()
	return &itineraryUC{llm: llm, search: search, model: modelName, log: &ucLog}, nil
}

// Generate runs the planning stages in order: traveler profile, per-city
// weather, live advisories, the service modules, budget aggregation, a
// quality audit over the accumulated notes, then a synthesis pass that
// emits the final itinerary JSON.
func (u *itineraryUC) Generate(ctx context.Context, req model.TripRequest) (json.RawMessage, error) {
	cities := req.Cities()
	notes := make(map[string]string)

	profile, err := u.chat(ctx, profilePrompt, profileInput(req))
	if err != nil {
		return nil, fmt.Errorf("profile stage: %w", err)
	}
	notes["profile"] = profile

	weather, err := u.weatherByCity(ctx, req, cities)
	if err != nil {
		return nil, fmt.Errorf("weather stage: %w", err)
	}
	notes["weather"] = weather

	advisories, err := u.advisories(ctx, req, cities)
	if err != nil {
		// Live news is best-effort; a search outage must not sink the trip.
		u.log.Warn().Err(err).Msg("advisories stage skipped")
	} else {
		notes["advisories"] = advisories
	}

	for _, svc := range serviceStages {
		if svc != "activities" && !req.HasService(svc) {
			continue
		}
		out, err := u.serviceStage(ctx, req, svc, cities)
		if err != nil {
			return nil, fmt.Errorf("%s stage: %w", svc, err)
		}
		notes[svc] = out
	}

	budget, err := u.chat(ctx, budgetPrompt, budgetInput(req, notes))
	if err != nil {
		return nil, fmt.Errorf("budget stage: %w", err)
	}
	notes["budget"] = budget

	audit, err := u.chat(ctx, auditPrompt, stageNotes(notes))
	if err != nil {
		return nil, fmt.Errorf("audit stage: %w", err)
	}
	notes["audit"] = audit

	return u.synthesize(ctx, req, notes)
}

func (u *itineraryUC) weatherByCity(ctx context.Context, req model.TripRequest, cities []string) (string, error) {
	outs := make([]string, len(cities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(weatherFanout)
	for i, city := range cities {
		g.Go(func() error {
			out, err := u.chat(gctx, weatherPrompt,
				fmt.Sprintf("City: %s\nDates: %s to %s (%d days)", city, req.DepartureDate, req.ReturnDate, req.Duration))
			if err != nil {
				return err
			}
			outs[i] = fmt.Sprintf("## %s\n%s", city, out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(outs, "\n\n"), nil
}

func (u *itineraryUC) advisories(ctx context.Context, req model.TripRequest, cities []string) (string, error) {
	if u.search == nil {
		return "", nil
	}
	var ctxLines []string
	for _, city := range cities {
		q := fmt.Sprintf("%s Japan events closures travel advisory %s", city, req.DepartureDate)
		hits, err := u.search.Search(ctx, q, 5)
		if err != nil {
			return "", err
		}
		for _, h := range hits {
			ctxLines = append(ctxLines, fmt.Sprintf("[%s] %s — %s (%s)", city, h.Title, h.Snippet, h.Link))
		}
	}
	if len(ctxLines) == 0 {
		return "", nil
	}
	return u.chat(ctx, advisoryPrompt, strings.Join(ctxLines, "\n"))
}

func (u *itineraryUC) serviceStage(ctx context.Context, req model.TripRequest, svc string, cities []string) (string, error) {
	input := fmt.Sprintf("Cities: %s\nDates: %s to %s (%d days)\nPace: %s\nInterests: %s\nBudget (EUR): %.0f\nTraveling: %s\nComments: %s",
		strings.Join(cities, ", "), req.DepartureDate, req.ReturnDate, req.Duration,
		req.Pace, strings.Join(req.Interests, ", "), req.Budget, req.TravelWith, req.Comments)

	// Ground the stage in fresh search hits when a search provider is wired.
	if u.search != nil {
		q := fmt.Sprintf("best %s %s Japan %s", svc, strings.Join(cities, " "), req.DepartureDate)
		if hits, err := u.search.Search(ctx, q, 5); err == nil && len(hits) > 0 {
			var lines []string
			for _, h := range hits {
				lines = append(lines, fmt.Sprintf("- %s — %s (%s)", h.Title, h.Snippet, h.Link))
			}
			input += "\n\nWeb findings:\n" + strings.Join(lines, "\n")
		}
	}
	return u.chat(ctx, servicePrompts[svc], input)
}

func (u *itineraryUC) synthesize(ctx context.Context, req model.TripRequest, notes map[string]string) (json.RawMessage, error) {
	out, err := u.chat(ctx, synthesisPrompt, stageNotes(notes))
	if err != nil {
		return nil, fmt.Errorf("synthesis stage: %w", err)
	}

	var it model.Itinerary
	if err := json.Unmarshal([]byte(extractJSON(out)), &it); err != nil {
		return nil, fmt.Errorf("synthesis output not valid itinerary JSON: %w", err)
	}
	fillMeta(&it, req)

	result, err := json.Marshal(&it)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// chat wraps one LLM call with timing, metrics and trace logging.
func (u *itineraryUC) chat(ctx context.Context, system, user string) (string, error) {
	msgs := []adapter.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
	start := time.Now()
	text, usage, err := u.llm.ChatWithUsage(ctx, u.model, msgs)
	latency := time.Since(start)

	metrics.ObserveLLMCall(u.llm.Name(), u.model,
		usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens,
		int(latency/time.Millisecond), err == nil)
	if err != nil {
		return "", err
	}
	u.log.Trace().Dur("latency", latency).Int("tokens", usage.TotalTokens).Msg("llm call")
	return text, nil
}

// fillMeta backfills itinerary metadata from the request so the caller
// always gets its own trip parameters echoed back, whatever the model chose
// to emit.
func fillMeta(it *model.Itinerary, req model.TripRequest) {
	m := &it.Meta
	if m.FirstName == "" {
		m.FirstName = req.FirstName
	}
	if m.DepartureDate == "" {
		m.DepartureDate = req.DepartureDate
	}
	if m.ReturnDate == "" {
		m.ReturnDate = req.ReturnDate
	}
	if m.DurationDays == 0 {
		m.DurationDays = req.Duration
	}
	if m.Pace == "" {
		m.Pace = req.Pace
	}
	if len(m.Cities) == 0 {
		m.Cities = req.Cities()
	}
	if len(m.Interests) == 0 {
		m.Interests = req.Interests
	}
	if len(m.Services) == 0 {
		m.Services = req.Services
	}
}

// extractJSON tolerates fenced or chatty model output and returns the widest
// {...} span it can find.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// stageNotes concatenates the accumulated stage outputs in pipeline order.
// Both the audit and synthesis stages consume it; at audit time the audit
// section is simply absent.
func stageNotes(notes map[string]string) string {
	var sb strings.Builder
	for _, key := range []string{"profile", "weather", "advisories", "lodging", "restaurants", "transport", "activities", "budget", "audit"} {
		if v := notes[key]; v != "" {
			fmt.Fprintf(&sb, "### %s\n%s\n\n", key, v)
		}
	}
	return sb.String()
}

func profileInput(req model.TripRequest) string {
	b, _ := json.Marshal(req)
	return string(b)
}

func budgetInput(req model.TripRequest, notes map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target budget (EUR): %.0f\n\n", req.Budget)
	for _, key := range []string{"lodging", "restaurants", "transport", "activities"} {
		if v := notes[key]; v != "" {
			fmt.Fprintf(&sb, "### %s\n%s\n\n", key, v)
		}
	}
	return sb.String()
}
