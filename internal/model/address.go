package model

import "strings"

// FormatFullAddress builds the display form of an address from its
// components. Components are concatenated in the order house number,
// street, place, suburb, city, postcode, skipping empty ones, with
// trailing separators trimmed. Pure function.
func FormatFullAddress(housenumber, street, city, postcode, suburb, place string) string {
	var b strings.Builder
	if housenumber != "" {
		b.WriteString(housenumber)
		b.WriteString(" ")
	}
	if street != "" {
		b.WriteString(street)
		b.WriteString(", ")
	}
	if place != "" {
		b.WriteString(place)
		b.WriteString(", ")
	}
	if suburb != "" {
		b.WriteString(suburb)
		b.WriteString(", ")
	}
	if city != "" {
		b.WriteString(city)
		b.WriteString(" ")
	}
	if postcode != "" {
		b.WriteString(postcode)
	}
	return strings.TrimRight(b.String(), ", ")
}
