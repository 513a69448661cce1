package flight

import (
	"strings"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

var airports = []types.Airport{
	{IATA: "CMB", Name: "Bandaranaike International Airport", City: "Colombo", Country: "Sri Lanka"},
	{IATA: "HRI", Name: "Mattala Rajapaksa International Airport", City: "Hambantota", Country: "Sri Lanka"},
	{IATA: "JAF", Name: "Jaffna International Airport", City: "Jaffna", Country: "Sri Lanka"},
	{IATA: "RML", Name: "Colombo Ratmalana Airport", City: "Ratmalana", Country: "Sri Lanka"},
	{IATA: "TRR", Name: "China Bay Airport", City: "Trincomalee", Country: "Sri Lanka"},
	{IATA: "MLE", Name: "Velana International Airport", City: "Male", Country: "Maldives"},
	{IATA: "SIN", Name: "Singapore Changi Airport", City: "Singapore", Country: "Singapore"},
	{IATA: "DXB", Name: "Dubai International Airport", City: "Dubai", Country: "United Arab Emirates"},
	{IATA: "DOH", Name: "Hamad International Airport", City: "Doha", Country: "Qatar"},
	{IATA: "BOM", Name: "Chhatrapati Shivaji Maharaj International Airport", City: "Mumbai", Country: "India"},
	{IATA: "DEL", Name: "Indira Gandhi International Airport", City: "Delhi", Country: "India"},
	{IATA: "MAA", Name: "Chennai International Airport", City: "Chennai", Country: "India"},
	{IATA: "BLR", Name: "Kempegowda International Airport", City: "Bangalore", Country: "India"},
	{IATA: "BKK", Name: "Suvarnabhumi Airport", City: "Bangkok", Country: "Thailand"},
	{IATA: "KUL", Name: "Kuala Lumpur International Airport", City: "Kuala Lumpur", Country: "Malaysia"},
	{IATA: "HKG", Name: "Hong Kong International Airport", City: "Hong Kong", Country: "China"},
	{IATA: "NRT", Name: "Narita International Airport", City: "Tokyo", Country: "Japan"},
	{IATA: "SYD", Name: "Sydney Kingsford Smith Airport", City: "Sydney", Country: "Australia"},
	{IATA: "LHR", Name: "London Heathrow Airport", City: "London", Country: "United Kingdom"},
	{IATA: "FRA", Name: "Frankfurt am Main Airport", City: "Frankfurt", Country: "Germany"},
	{IATA: "CDG", Name: "Charles de Gaulle Airport", City: "Paris", Country: "France"},
	{IATA: "IST", Name: "Istanbul Airport", City: "Istanbul", Country: "Turkey"},
	{IATA: "LIS", Name: "Humberto Delgado Airport", City: "Lisbon", Country: "Portugal"},
}

// aliases maps informal place names onto airport codes.
var aliases = map[string]string{
	"colombo":      "CMB",
	"bandaranaike": "CMB",
	"katunayake":   "CMB",
	"negombo":      "CMB",
	"mattala":      "HRI",
	"hambantota":   "HRI",
	"jaffna":       "JAF",
	"trincomalee":  "TRR",
	"male":         "MLE",
	"malé":         "MLE",
	"maldives":     "MLE",
	"changi":       "SIN",
	"bombay":       "BOM",
	"madras":       "MAA",
	"new delhi":    "DEL",
	"bengaluru":    "BLR",
	"suvarnabhumi": "BKK",
	"heathrow":     "LHR",
}

type IATALookup struct {
	byCode map[string]types.Airport
}

func NewIATALookup() *IATALookup {
	l := &IATALookup{byCode: make(map[string]types.Airport, len(airports))}
	for _, a := range airports {
		l.byCode[a.IATA] = a
	}
	return l
}

// Resolve maps a code, alias, city, airport name or country onto an airport.
// Unknown three-letter codes are passed through with only IATA set.
func (l *IATALookup) Resolve(location string) (types.Airport, bool) {
	q := strings.ToLower(strings.TrimSpace(location))
	if q == "" {
		return types.Airport{}, false
	}
	if code, ok := aliases[q]; ok {
		return l.byCode[code], true
	}
	upper := strings.ToUpper(q)
	if a, ok := l.byCode[upper]; ok {
		return a, true
	}
	for _, a := range airports {
		if strings.EqualFold(a.City, q) {
			return a, true
		}
	}
	if len(q) >= 4 {
		for _, a := range airports {
			if strings.Contains(strings.ToLower(a.Name), q) {
				return a, true
			}
		}
	}
	for _, a := range airports {
		if strings.EqualFold(a.Country, q) {
			return a, true
		}
	}
	if isIATACode(upper) {
		return types.Airport{IATA: upper}, true
	}
	return types.Airport{}, false
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Display renders "Name (IATA)" or just the code when the name is unknown.
func Display(a types.Airport) string {
	if a.Name == "" {
		return a.IATA
	}
	return a.Name + " (" + a.IATA + ")"
}
