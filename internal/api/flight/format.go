package flight

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

const maxListedFlights = 5

var flightKeywords = map[string]bool{
	"flight": true, "flights": true, "airline": true, "airlines": true, "airport": true,
	"schedule": true, "timetable": true, "departure": true, "arrival": true,
	"airplane": true, "aircraft": true, "fly": true, "flying": true, "plane": true,
}

// IsFlightQuery reports whether any word of text is a flight keyword.
func IsFlightQuery(text string) bool {
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if flightKeywords[w] {
			return true
		}
	}
	return false
}

// FormatFlights renders up to five flights as a numbered list.
func FormatFlights(flights []types.Flight) string {
	if len(flights) == 0 {
		return "I couldn't find any flights matching your query. Please try being more specific with your request."
	}
	if len(flights) > maxListedFlights {
		flights = flights[:maxListedFlights]
	}

	var b strings.Builder
	b.WriteString("Here are some flight options:\n")
	for i, f := range flights {
		fmt.Fprintf(&b, "\n%d. %s %s\n", i+1, orDefault(f.Airline.Name, "Unknown Airline"), orDefault(f.Flight.IATA, "Unknown"))
		fmt.Fprintf(&b, "   From: %s (%s)\n", orDefault(f.Departure.Airport, "Unknown"), orDefault(f.Departure.IATA, "?"))
		fmt.Fprintf(&b, "   To: %s (%s)\n", orDefault(f.Arrival.Airport, "Unknown"), orDefault(f.Arrival.IATA, "?"))
		fmt.Fprintf(&b, "   Departure: %s\n", orDefault(f.Departure.Scheduled, "TBD"))
		fmt.Fprintf(&b, "   Arrival: %s\n", orDefault(f.Arrival.Scheduled, "TBD"))
		fmt.Fprintf(&b, "   Status: %s\n", titleCase(orDefault(f.FlightStatus, "unknown")))
	}
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func titleCase(s string) string {
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
