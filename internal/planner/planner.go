// Package planner runs the three-stage generation pipeline for one trip:
// flights, then hotels, then an itinerary constrained by the prices the first
// two stages produced.
//
// A Planner holds no per-run state. Every call to Plan derives its guardrails
// from the text generated during that call only.
package planner

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbuddy/internal/budget"
	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/extract"
	"github.com/pkordes/travelbuddy/internal/prompt"
)

// Generator produces text for a prompt. Implementations return an error
// wrapping domain.ErrGeneration when the upstream call cannot complete.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// PriceExtractor finds the cheapest flight price in generated text.
type PriceExtractor interface {
	MinPrice(text string) (decimal.Decimal, bool)
}

// HotelParser turns generated hotel text into options.
type HotelParser interface {
	ParseHotels(text string) []domain.HotelOption
}

// PriceExtractorFunc adapts a plain function to PriceExtractor.
type PriceExtractorFunc func(string) (decimal.Decimal, bool)

func (f PriceExtractorFunc) MinPrice(text string) (decimal.Decimal, bool) { return f(text) }

// HotelParserFunc adapts a plain function to HotelParser.
type HotelParserFunc func(string) []domain.HotelOption

func (f HotelParserFunc) ParseHotels(text string) []domain.HotelOption { return f(text) }

// Planner sequences the generation calls. Construct it with New.
type Planner struct {
	gen     Generator
	prompts *prompt.Set
	prices  PriceExtractor
	hotels  HotelParser
	log     *slog.Logger
}

// Option customises a Planner.
type Option func(*Planner)

// WithPriceExtractor replaces the regex-based flight price extractor.
func WithPriceExtractor(e PriceExtractor) Option {
	return func(p *Planner) { p.prices = e }
}

// WithHotelParser replaces the regex-based hotel listing parser.
func WithHotelParser(h HotelParser) Option {
	return func(p *Planner) { p.hotels = h }
}

// WithLogger sets the logger used to report failed stages.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.log = l }
}

// New constructs a Planner. prompts may be nil to use prompt.Default().
func New(gen Generator, prompts *prompt.Set, opts ...Option) *Planner {
	if prompts == nil {
		prompts = prompt.Default()
	}
	p := &Planner{
		gen:     gen,
		prompts: prompts,
		prices:  PriceExtractorFunc(extract.MinPrice),
		hotels:  HotelParserFunc(extract.ParseHotels),
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Plan runs flights, hotels and itinerary generation in sequence.
//
// A stage whose generation fails contributes an empty text and is listed in
// FailedStages; later stages carry on with whatever guardrails are available.
// Plan never returns an error so that successful stages are always kept.
func (p *Planner) Plan(ctx context.Context, req domain.TripRequest) domain.PlanResult {
	res := domain.PlanResult{Request: req}
	nights := budget.Nights(req.StartDate, req.EndDate)
	data := prompt.NewData(req, max(nights, 1))

	res.Flights = p.run(ctx, &res, domain.StageFlights, p.prompts.Flights, data)
	if v, ok := p.prices.MinPrice(res.Flights); ok {
		res.Guardrails.MinFlightPrice = &v
	}

	res.Hotels = p.run(ctx, &res, domain.StageHotels, p.prompts.Hotels, data)
	options := p.hotels.ParseHotels(res.Hotels)

	alloc := budget.Allocate(req.Budget, req.Travelers, nights, res.Guardrails.MinFlightPrice, options)
	res.Guardrails.NightlyCap = alloc.NightlyCap
	res.Guardrails.ChosenHotel = alloc.Hotel

	data.HotelInstruction = prompt.HotelInstruction(res.Guardrails)
	data.FlightInstruction = prompt.FlightInstruction(res.Guardrails, req.Travelers)
	res.Itinerary = p.run(ctx, &res, domain.StageItinerary, p.prompts.Itinerary, data)

	p.log.InfoContext(ctx, "plan generated",
		"destination", req.Destination,
		"hotel_options", len(options),
		"min_flight_price", optional(res.Guardrails.MinFlightPrice),
		"nightly_cap", optional(res.Guardrails.NightlyCap),
		"failed_stages", res.FailedStages,
	)
	return res
}

// run renders and generates one stage, recording a failure on res instead of
// returning it.
func (p *Planner) run(ctx context.Context, res *domain.PlanResult, stage domain.Stage, st prompt.Stage, data prompt.Data) string {
	text, err := st.Render(data)
	if err == nil {
		text, err = p.gen.Generate(ctx, text, st.Temperature)
	}
	if err != nil {
		p.log.WarnContext(ctx, "generation stage failed", "stage", stage, "error", err)
		res.FailedStages = append(res.FailedStages, stage)
		return ""
	}
	return text
}

func optional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
