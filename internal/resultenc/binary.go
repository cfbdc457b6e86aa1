package resultenc

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/opentrep/opentrep-go/internal/resolver"
)

// schemaVersion is the leading byte of every binary envelope. Bump it
// whenever the gob-encoded payload shape changes incompatibly so an
// old decoder fails fast instead of silently misreading new fields.
const schemaVersion byte = 1

// payload is the gob-encoded body; a plain struct rather than
// resolver.Bundle directly so the wire shape is decoupled from the
// in-memory one and can evolve independently.
type payload struct {
	Locations []resolver.Location
	Unmatched [][]string
	Score     float64
	Partial   bool
}

// MarshalBinary renders bundle as schemaVersion byte + gob(payload).
func MarshalBinary(bundle resolver.Bundle) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(schemaVersion)
	if err := gob.NewEncoder(&buf).Encode(payload{
		Locations: bundle.Locations,
		Unmatched: bundle.Unmatched,
		Score:     bundle.Score,
		Partial:   bundle.Partial,
	}); err != nil {
		return nil, fmt.Errorf("resultenc: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary reverses MarshalBinary.
func UnmarshalBinary(data []byte) (resolver.Bundle, error) {
	if len(data) == 0 {
		return resolver.Bundle{}, fmt.Errorf("resultenc: empty payload")
	}
	version, body := data[0], data[1:]
	if version != schemaVersion {
		return resolver.Bundle{}, fmt.Errorf("resultenc: unsupported schema version %d", version)
	}
	var p payload
	if err := gob.NewDecoder(bytes.NewReader(body)).Decode(&p); err != nil {
		return resolver.Bundle{}, fmt.Errorf("resultenc: decode: %w", err)
	}
	return resolver.Bundle{
		Locations: p.Locations,
		Unmatched: p.Unmatched,
		Score:     p.Score,
		Partial:   p.Partial,
	}, nil
}
