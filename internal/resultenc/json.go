// Package resultenc serializes a resolver.Bundle into the wire
// formats external callers consume: JSON for humans and scripts, and a
// schema-versioned binary envelope for size-sensitive callers.
package resultenc

import (
	"encoding/json"

	"github.com/opentrep/opentrep-go/internal/resolver"
)

// jsonLocation mirrors resolver.Location with only the fields worth
// exposing externally.
type jsonLocation struct {
	IATACode    string  `json:"iata_code,omitempty"`
	ICAOCode    string  `json:"icao_code,omitempty"`
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Words       string  `json:"matched_words"`
	Score       float64 `json:"score"`
}

// Envelope is the JSON shape returned to external callers.
type Envelope struct {
	Locations []jsonLocation `json:"locations"`
	Unmatched []string       `json:"unmatched,omitempty"`
	Partial   bool           `json:"partial"`
	Score     float64        `json:"score"`
	Error     string         `json:"error,omitempty"`
}

func toEnvelope(bundle resolver.Bundle) Envelope {
	env := Envelope{Partial: bundle.Partial, Score: bundle.Score}
	for _, loc := range bundle.Locations {
		name := ""
		if loc.POR != nil {
			name = loc.POR.Names.Primary.Text
		}
		jl := jsonLocation{Name: name, Words: joinWords(loc.Words), Score: loc.Score}
		if loc.POR != nil {
			jl.IATACode = loc.POR.IATACode
			jl.ICAOCode = loc.POR.ICAOCode
			jl.CountryCode = loc.POR.CountryCode
			jl.Latitude = loc.POR.Latitude
			jl.Longitude = loc.POR.Longitude
		}
		env.Locations = append(env.Locations, jl)
	}
	for _, words := range bundle.Unmatched {
		env.Unmatched = append(env.Unmatched, joinWords(words))
	}
	return env
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

// MarshalJSON renders bundle as the external JSON envelope.
func MarshalJSON(bundle resolver.Bundle) ([]byte, error) {
	return json.Marshal(toEnvelope(bundle))
}

// MarshalJSONError renders a resolution failure as the same envelope
// shape, with the error's message in the error field, so consumers
// always parse one JSON shape whether the call succeeded or not.
func MarshalJSONError(err error) ([]byte, error) {
	return json.Marshal(Envelope{Error: err.Error()})
}
