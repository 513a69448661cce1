package types

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryDestination    Category = "destination"
	CategoryHotel          Category = "hotel"
	CategoryRestaurant     Category = "restaurant"
	CategoryActivity       Category = "activity"
	CategoryTransportation Category = "transportation"
	CategoryCultural       Category = "cultural"
	CategoryPractical      Category = "practical"
	CategoryWeather        Category = "weather"
	CategoryPackage        Category = "package"
)

// Document is a unit of retrievable tourism text. SourceID identifies the
// dataset record; long records are split into several chunks.
type Document struct {
	ID         uuid.UUID         `json:"id"`
	SourceID   string            `json:"source_id"`
	ChunkIndex int               `json:"chunk_index"`
	Category   Category          `json:"category"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at,omitempty"`
}

type ScoredDocument struct {
	Document
	Similarity float64 `json:"similarity"`
}

type IngestReport struct {
	Documents int           `json:"documents"`
	Chunks    int           `json:"chunks"`
	Duration  time.Duration `json:"duration"`
}
