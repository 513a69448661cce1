// Package dataset holds the static Sri Lanka tourism records the chatbot is
// grounded on, and converts them to retrievable documents.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

const CompleteFile = "srilanka_tourism_complete_dataset.json"

type Dataset struct {
	Destinations   []Destination   `json:"destinations"`
	Hotels         []Hotel         `json:"hotels"`
	Transportation []Transport     `json:"transportation"`
	Restaurants    []Restaurant    `json:"restaurants"`
	Activities     []Activity      `json:"activities"`
	Weather        []Weather       `json:"weather"`
	CulturalInfo   []CulturalInfo  `json:"cultural_info"`
	Packages       []TravelPackage `json:"packages"`
	PracticalInfo  []PracticalInfo `json:"practical_info"`
}

// Generate returns a fresh copy of the built-in dataset.
func Generate() *Dataset {
	return &Dataset{
		Destinations:   append([]Destination(nil), destinations...),
		Hotels:         append([]Hotel(nil), hotels...),
		Transportation: append([]Transport(nil), transportation...),
		Restaurants:    append([]Restaurant(nil), restaurants...),
		Activities:     append([]Activity(nil), activities...),
		Weather:        append([]Weather(nil), weather...),
		CulturalInfo:   append([]CulturalInfo(nil), culturalInfo...),
		Packages:       append([]TravelPackage(nil), packages...),
		PracticalInfo:  append([]PracticalInfo(nil), practicalInfo...),
	}
}

// Load reads a dataset previously written by Export.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return &d, nil
}

// Counts reports the number of records per section, keyed like the JSON file.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"destinations":   len(d.Destinations),
		"hotels":         len(d.Hotels),
		"transportation": len(d.Transportation),
		"restaurants":    len(d.Restaurants),
		"activities":     len(d.Activities),
		"weather":        len(d.Weather),
		"cultural_info":  len(d.CulturalInfo),
		"packages":       len(d.Packages),
		"practical_info": len(d.PracticalInfo),
	}
}

// Documents renders one document per record. SourceIDs are stable across
// runs so re-ingesting updates rows instead of duplicating them.
func (d *Dataset) Documents() []types.Document {
	var docs []types.Document
	add := func(cat types.Category, title, content string, meta map[string]string) {
		docs = append(docs, types.Document{
			SourceID: string(cat) + "-" + slug(title),
			Category: cat,
			Title:    title,
			Content:  content,
			Metadata: meta,
		})
	}

	for _, r := range d.Destinations {
		add(types.CategoryDestination, r.Name, fmt.Sprintf(
			"%s is a %s in %s district, %s Province. %s. Best time to visit: %s. Typical visit: %s. Entrance fee: LKR %d. Activities: %s. Rating %.1f/5.",
			r.Name, strings.ToLower(r.Type), r.District, r.Province, r.Description, r.BestTime, r.Duration, r.EntranceFee,
			strings.Join(r.Activities, ", "), r.Rating),
			map[string]string{"district": r.District, "province": r.Province, "type": r.Category})
	}
	for _, r := range d.Hotels {
		add(types.CategoryHotel, r.Name, fmt.Sprintf(
			"%s is a %d-star %s hotel in %s, %s Province. Price range LKR %s per night, %d rooms. Amenities: %s. Contact %s. Rating %.1f/5.",
			r.Name, r.StarRating, strings.ToLower(r.Category), r.District, r.Province, r.PriceRange, r.TotalRooms,
			strings.Join(r.Amenities, ", "), r.Contact, r.Rating),
			map[string]string{"district": r.District, "province": r.Province, "stars": strconv.Itoa(r.StarRating)})
	}
	for _, r := range d.Transportation {
		add(types.CategoryTransportation, r.Operator+" "+r.Type, fmt.Sprintf(
			"%s (%s, %s). Routes: %s. Booking: %s. Contact: %s.",
			r.Operator, r.Type, r.Category, describeRoutes(r.Routes), r.Booking, r.Contact),
			map[string]string{"type": r.Type})
	}
	for _, r := range d.Restaurants {
		add(types.CategoryRestaurant, r.Name, fmt.Sprintf(
			"%s serves %s cuisine (%s) in %s. Specialties: %s. Price range LKR %s. Open %s. Rating %.1f/5.",
			r.Name, r.Cuisine, strings.ToLower(r.Category), r.District, strings.Join(r.Specialties, ", "),
			r.PriceRange, r.OpeningHours, r.Rating),
			map[string]string{"district": r.District, "cuisine": r.Cuisine})
	}
	for _, r := range d.Activities {
		add(types.CategoryActivity, r.Name+" in "+r.Location, fmt.Sprintf(
			"%s in %s (%s district): %s. Season: %s, best between %s. Duration %s, price LKR %d, operated by %s.",
			r.Name, r.Location, r.District, r.Description, r.Season, r.BestTime, r.Duration, r.Price, r.Operator),
			map[string]string{"district": r.District, "type": r.Category})
	}
	for _, r := range d.Weather {
		add(types.CategoryWeather, r.Region+" "+r.Season, fmt.Sprintf(
			"%s during the %s (%s): temperatures %s, %s rainfall, humidity %s. %s.",
			r.Region, strings.ToLower(r.Season), r.Months, r.TemperatureRange, strings.ToLower(r.Rainfall), r.Humidity, r.Conditions),
			map[string]string{"region": r.Region})
	}
	for _, r := range d.CulturalInfo {
		add(types.CategoryCultural, r.Topic, fmt.Sprintf("%s (%s): %s Do: %s. Don't: %s.",
			r.Topic, r.Category, r.Description, r.Do, r.Dont),
			map[string]string{"topic": r.Category})
	}
	for _, r := range d.Packages {
		add(types.CategoryPackage, r.Name, fmt.Sprintf(
			"%s is a %s %s package visiting %s for LKR %d. Includes %s. Group size %s, operated by %s.",
			r.Name, r.Duration, strings.ToLower(r.Category), strings.Join(r.Destinations, ", "), r.Price,
			strings.Join(r.Includes, ", "), r.GroupSize, r.Operator),
			map[string]string{"duration": r.Duration})
	}
	for _, r := range d.PracticalInfo {
		add(types.CategoryPractical, r.Topic, fmt.Sprintf("%s - %s: %s", r.Category, r.Topic, r.Details),
			map[string]string{"topic": r.Category})
	}
	return docs
}

func describeRoutes(routes []Route) string {
	parts := make([]string, 0, len(routes))
	for _, r := range routes {
		if r.From != "" {
			parts = append(parts, fmt.Sprintf("%s to %s in about %d minutes for LKR %d", r.From, r.To, r.Duration, r.Price))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s, %s pricing", r.Coverage, strings.ToLower(r.Pricing)))
	}
	return strings.Join(parts, "; ")
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Export writes the complete JSON dataset plus one CSV per section into dir
// and returns the written paths.
func (d *Dataset) Export(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode dataset: %w", err)
	}
	jsonPath := filepath.Join(dir, CompleteFile)
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}
	written := []string{jsonPath}

	for _, t := range d.tables() {
		path := filepath.Join(dir, "srilanka_"+t.name+".csv")
		if err := writeCSV(path, t.header, t.rows); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

type table struct {
	name   string
	header []string
	rows   [][]string
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func (d *Dataset) tables() []table {
	list := func(items []string) string { return strings.Join(items, "; ") }

	var ts []table

	t := table{name: "destinations", header: []string{"name", "district", "province", "type", "category", "description", "best_time", "duration", "entrance_fee", "lat", "lng", "activities", "rating"}}
	for _, r := range d.Destinations {
		t.rows = append(t.rows, []string{r.Name, r.District, r.Province, r.Type, r.Category, r.Description, r.BestTime, r.Duration,
			strconv.Itoa(r.EntranceFee), ftoa(r.Coordinates.Lat), ftoa(r.Coordinates.Lng), list(r.Activities), ftoa(r.Rating)})
	}
	ts = append(ts, t)

	t = table{name: "hotels", header: []string{"name", "district", "province", "category", "star_rating", "price_range", "amenities", "contact", "rating", "total_rooms"}}
	for _, r := range d.Hotels {
		t.rows = append(t.rows, []string{r.Name, r.District, r.Province, r.Category, strconv.Itoa(r.StarRating), r.PriceRange,
			list(r.Amenities), r.Contact, ftoa(r.Rating), strconv.Itoa(r.TotalRooms)})
	}
	ts = append(ts, t)

	t = table{name: "transportation", header: []string{"type", "operator", "category", "routes", "contact", "booking"}}
	for _, r := range d.Transportation {
		t.rows = append(t.rows, []string{r.Type, r.Operator, r.Category, describeRoutes(r.Routes), r.Contact, r.Booking})
	}
	ts = append(ts, t)

	t = table{name: "restaurants", header: []string{"name", "district", "province", "cuisine", "category", "price_range", "specialties", "rating", "contact", "opening_hours"}}
	for _, r := range d.Restaurants {
		t.rows = append(t.rows, []string{r.Name, r.District, r.Province, r.Cuisine, r.Category, r.PriceRange,
			list(r.Specialties), ftoa(r.Rating), r.Contact, r.OpeningHours})
	}
	ts = append(ts, t)

	t = table{name: "activities", header: []string{"name", "location", "district", "category", "duration", "price", "season", "best_time", "description", "operator", "rating"}}
	for _, r := range d.Activities {
		t.rows = append(t.rows, []string{r.Name, r.Location, r.District, r.Category, r.Duration, strconv.Itoa(r.Price),
			r.Season, r.BestTime, r.Description, r.Operator, ftoa(r.Rating)})
	}
	ts = append(ts, t)

	t = table{name: "weather", header: []string{"region", "season", "months", "temperature_range", "rainfall", "humidity", "conditions"}}
	for _, r := range d.Weather {
		t.rows = append(t.rows, []string{r.Region, r.Season, r.Months, r.TemperatureRange, r.Rainfall, r.Humidity, r.Conditions})
	}
	ts = append(ts, t)

	t = table{name: "cultural_info", header: []string{"category", "topic", "description", "do", "dont"}}
	for _, r := range d.CulturalInfo {
		t.rows = append(t.rows, []string{r.Category, r.Topic, r.Description, r.Do, r.Dont})
	}
	ts = append(ts, t)

	t = table{name: "packages", header: []string{"name", "duration", "price", "destinations", "includes", "category", "group_size", "operator", "rating"}}
	for _, r := range d.Packages {
		t.rows = append(t.rows, []string{r.Name, r.Duration, strconv.Itoa(r.Price), list(r.Destinations), list(r.Includes),
			r.Category, r.GroupSize, r.Operator, ftoa(r.Rating)})
	}
	ts = append(ts, t)

	t = table{name: "practical_info", header: []string{"category", "topic", "details"}}
	for _, r := range d.PracticalInfo {
		t.rows = append(t.rows, []string{r.Category, r.Topic, r.Details})
	}
	ts = append(ts, t)

	return ts
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
