// Package prompt renders the prompt text sent to the text generation service
// for each planning stage. Templates live in templates.yaml, embedded at
// compile time, so wording can change without touching the planner.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/travelbuddy/internal/domain"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Stage is one rendered-on-demand prompt together with its sampling
// temperature.
type Stage struct {
	Temperature float64
	tmpl        *template.Template
}

// Set holds the templates for every planning stage.
type Set struct {
	System    string
	Flights   Stage
	Hotels    Stage
	Itinerary Stage
}

type stageFile struct {
	Temperature float64 `yaml:"temperature"`
	Template    string  `yaml:"template"`
}

type setFile struct {
	System    string    `yaml:"system"`
	Flights   stageFile `yaml:"flights"`
	Hotels    stageFile `yaml:"hotels"`
	Itinerary stageFile `yaml:"itinerary"`
}

// Default returns the embedded template set. It panics if the embedded file
// is malformed, which is a build defect rather than a runtime condition.
func Default() *Set {
	s, err := Parse(defaultTemplates)
	if err != nil {
		panic("prompt: embedded templates: " + err.Error())
	}
	return s
}

// Parse builds a Set from YAML. Every stage must have a non-empty template.
func Parse(data []byte) (*Set, error) {
	var f setFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("prompt.Parse: %w", err)
	}

	s := &Set{System: strings.TrimSpace(f.System)}
	for _, st := range []struct {
		name string
		in   stageFile
		out  *Stage
	}{
		{"flights", f.Flights, &s.Flights},
		{"hotels", f.Hotels, &s.Hotels},
		{"itinerary", f.Itinerary, &s.Itinerary},
	} {
		if strings.TrimSpace(st.in.Template) == "" {
			return nil, fmt.Errorf("prompt.Parse: %s: template is required", st.name)
		}
		t, err := template.New(st.name).Option("missingkey=error").Parse(st.in.Template)
		if err != nil {
			return nil, fmt.Errorf("prompt.Parse: %s: %w", st.name, err)
		}
		*st.out = Stage{Temperature: st.in.Temperature, tmpl: t}
	}
	return s, nil
}

// Data is the value every template is rendered against.
// HotelInstruction and FlightInstruction are only set for the itinerary stage.
type Data struct {
	Origin            string
	Destination       string
	StartDate         string
	EndDate           string
	Nights            int
	Travelers         int
	Budget            string
	Mood              domain.Mood
	Pace              domain.Pace
	Eco               bool
	Interests         string
	HotelInstruction  string
	FlightInstruction string
}

// NewData maps a TripRequest onto template fields.
func NewData(req domain.TripRequest, nights int) Data {
	return Data{
		Origin:      req.Origin,
		Destination: req.Destination,
		StartDate:   req.StartDate.Format("2006-01-02"),
		EndDate:     req.EndDate.Format("2006-01-02"),
		Nights:      nights,
		Travelers:   req.Travelers,
		Budget:      Money(req.Budget),
		Mood:        req.Mood,
		Pace:        req.Pace,
		Eco:         req.Eco,
		Interests:   strings.Join(req.Interests, ", "),
	}
}

// Render executes the stage template.
func (s Stage) Render(d Data) (string, error) {
	var b strings.Builder
	if err := s.tmpl.Execute(&b, d); err != nil {
		return "", fmt.Errorf("prompt.Stage.Render: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

// Money formats an amount with two decimals and no currency sign.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// HotelInstruction tells the itinerary stage which lodging to use. A chosen
// hotel wins over a nightly cap; with neither, the stage picks freely.
func HotelInstruction(g domain.Guardrails) string {
	switch {
	case g.ChosenHotel != nil:
		return fmt.Sprintf("Use exactly this hotel for the entire stay and no other: %s (%s), nightly price $%s.",
			g.ChosenHotel.Name, g.ChosenHotel.Area, Money(g.ChosenHotel.NightlyPrice))
	case g.NightlyCap != nil:
		return fmt.Sprintf("Choose a hotel whose nightly price does not exceed $%s.", Money(*g.NightlyCap))
	default:
		return "Choose a reasonable mid-range hotel."
	}
}

// FlightInstruction keeps the itinerary's flight cost consistent with the
// cheapest fare found by the flights stage.
func FlightInstruction(g domain.Guardrails, travelers int) string {
	if g.MinFlightPrice == nil {
		return "Use realistic flight pricing."
	}
	return fmt.Sprintf("The flight total must not fall below $%s per traveler (%d traveler(s)).",
		Money(*g.MinFlightPrice), travelers)
}
