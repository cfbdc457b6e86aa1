package catalog

// ResolveServingCities joins every non-city POR's raw CityIDs against
// the city records in pors (keyed by IATA code), populating Cities.
// City links are stored as plain keys plus copied name sets, not
// pointers into other records, so a POR stays self-contained once
// resolved.
func ResolveServingCities(pors []*POR) {
	cities := make(map[string]*POR, len(pors))
	for _, p := range pors {
		if p.Kind == City && p.IATACode != "" {
			cities[p.IATACode] = p
		}
	}

	for _, p := range pors {
		if p.Kind == City || len(p.CityIDs) == 0 {
			continue
		}
		p.Cities = make([]CityRef, 0, len(p.CityIDs))
		for _, code := range p.CityIDs {
			city, ok := cities[code]
			if !ok {
				continue
			}
			p.Cities = append(p.Cities, CityRef{
				IATACode:  city.IATACode,
				GeonameID: city.GeonameID,
				Names:     city.Names,
			})
		}
	}
}
