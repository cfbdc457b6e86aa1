package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"time"
)

// Mode controls how the loader reacts to a malformed line.
type Mode int

const (
	// StrictMode stops iteration (with a final FormatError) on the
	// first malformed line. This is the default.
	StrictMode Mode = iota
	// BestEffortMode reports the FormatError for the offending line
	// but continues with the next one.
	BestEffortMode
)

var mandatoryColumns = []string{
	"iata_code", "icao_code", "geoname_id", "latitude", "longitude",
	"loc_type", "name", "asciiname", "alternatenames", "country_code",
	"adm1_code", "date_from", "date_until", "city_code_list",
}

// Loader parses a POR catalog file.
type Loader struct {
	path string
	mode Mode
}

// Open returns a Loader for path. The source is opened lazily, on the
// first call to Records.
func Open(path string, mode Mode) *Loader {
	return &Loader{path: path, mode: mode}
}

// Records returns a lazy, single-pass sequence of parsed POR records.
// A malformed line yields (nil, *FormatError); in StrictMode iteration
// stops there, in BestEffortMode it continues with the next line.
func (l *Loader) Records() iter.Seq2[*POR, error] {
	return func(yield func(*POR, error) bool) {
		rc, err := openDecompressed(l.path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rc.Close()

		r := csv.NewReader(rc)
		r.Comma = '^'
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		header, err := r.Read()
		if err != nil {
			yield(nil, &NotReadableError{Path: l.path, Err: err})
			return
		}
		// Every data line must carry exactly as many fields as the header.
		r.FieldsPerRecord = len(header)
		colIndex := make(map[string]int, len(header))
		for i, h := range header {
			colIndex[strings.TrimSpace(h)] = i
		}
		for _, m := range mandatoryColumns {
			if _, ok := colIndex[m]; !ok {
				yield(nil, &FormatError{Line: 1, Column: 0, Message: fmt.Sprintf("missing mandatory column %q", m)})
				return
			}
		}

		line := 1
		for {
			record, err := r.Read()
			if err == io.EOF {
				return
			}
			line++
			if err != nil {
				if !yield(nil, &FormatError{Line: line, Column: 0, Message: err.Error()}) {
					return
				}
				if l.mode == StrictMode {
					return
				}
				continue
			}

			por, perr := parseRecord(record, colIndex, line)
			if perr != nil {
				if !yield(nil, perr) {
					return
				}
				if l.mode == StrictMode {
					return
				}
				continue
			}
			if !yield(por, nil) {
				return
			}
		}
	}
}

func parseRecord(record []string, col map[string]int, line int) (*POR, *FormatError) {
	field := func(name string) (string, int) {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return "", idx
		}
		return record[idx], idx
	}

	iata, iataCol := field("iata_code")
	icao, _ := field("icao_code")
	geonameStr, geonameCol := field("geoname_id")
	latStr, latCol := field("latitude")
	lonStr, lonCol := field("longitude")
	locTypeStr, locCol := field("loc_type")
	name, _ := field("name")
	asciiName, _ := field("asciiname")
	alternates, _ := field("alternatenames")
	country, _ := field("country_code")
	adm1, _ := field("adm1_code")
	dateFrom, _ := field("date_from")
	dateUntil, _ := field("date_until")
	cityList, _ := field("city_code_list")

	var geonameID int64
	if geonameStr != "" {
		var err error
		geonameID, err = strconv.ParseInt(geonameStr, 10, 64)
		if err != nil {
			return nil, &FormatError{Line: line, Column: geonameCol, Message: "geoname_id is not an integer"}
		}
	}
	if iata == "" && geonameID == 0 {
		return nil, &FormatError{Line: line, Column: iataCol, Message: "at least one of iata_code or geoname_id must be set"}
	}

	var lat, lon float64
	if latStr != "" {
		var err error
		lat, err = strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, &FormatError{Line: line, Column: latCol, Message: "latitude is not a float"}
		}
	}
	if lonStr != "" {
		var err error
		lon, err = strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return nil, &FormatError{Line: line, Column: lonCol, Message: "longitude is not a float"}
		}
	}

	if locTypeStr == "" {
		return nil, &FormatError{Line: line, Column: locCol, Message: "loc_type is required"}
	}
	kind := LocationType(strings.ToUpper(locTypeStr)[0])

	names := NameSet{}
	if name != "" {
		names.Primary = Name{Lang: "", Text: name}
	}
	if asciiName != "" && asciiName != name {
		names.Alternates = append(names.Alternates, Name{Lang: "en", Text: asciiName})
	}
	for _, pair := range strings.Split(alternates, "|") {
		if pair == "" {
			continue
		}
		lang, text, ok := strings.Cut(pair, "=")
		if !ok || text == "" {
			continue
		}
		names.Alternates = append(names.Alternates, Name{Lang: lang, Text: text})
	}

	var cityIDs []string
	for _, c := range strings.Split(cityList, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			cityIDs = append(cityIDs, c)
		}
	}

	from, err := parseDate(dateFrom)
	if err != nil {
		return nil, &FormatError{Line: line, Column: 0, Message: "date_from is not a valid date"}
	}
	until, err := parseDate(dateUntil)
	if err != nil {
		return nil, &FormatError{Line: line, Column: 0, Message: "date_until is not a valid date"}
	}

	return &POR{
		Key: Key{
			IATACode:  iata,
			ICAOCode:  icao,
			GeonameID: geonameID,
		},
		Kind:        kind,
		Names:       names,
		CityIDs:     cityIDs,
		CountryCode: country,
		Adm1Code:    adm1,
		Latitude:    lat,
		Longitude:   lon,
		ValidFrom:   from,
		ValidUntil:  until,
	}, nil
}

// SkipFormatErrors wraps records so that per-line FormatErrors are
// handed to onSkip and dropped instead of reaching the consumer; every
// other error (and every good record) passes through. Pair it with
// BestEffortMode when feeding a builder that treats any yielded error
// as fatal.
func SkipFormatErrors(records iter.Seq2[*POR, error], onSkip func(*FormatError)) iter.Seq2[*POR, error] {
	return func(yield func(*POR, error) bool) {
		for por, err := range records {
			var fe *FormatError
			if err != nil && errors.As(err, &fe) {
				if onSkip != nil {
					onSkip(fe)
				}
				continue
			}
			if !yield(por, err) {
				return
			}
		}
	}
}

// Collect drains records into a slice, stopping at the first yielded
// error. Use it when a later stage (serving-city resolution, say)
// needs the whole catalog in memory rather than a single pass.
func Collect(records iter.Seq2[*POR, error]) ([]*POR, error) {
	var pors []*POR
	for por, err := range records {
		if err != nil {
			return nil, err
		}
		pors = append(pors, por)
	}
	return pors, nil
}

// Seq adapts an in-memory slice back into the streaming form the index
// builder consumes.
func Seq(pors []*POR) iter.Seq2[*POR, error] {
	return func(yield func(*POR, error) bool) {
		for _, p := range pors {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
