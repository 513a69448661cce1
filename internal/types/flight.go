package types

type Airport struct {
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// FlightSearch is a parsed route query. Date is YYYY-MM-DD or empty.
type FlightSearch struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date,omitempty"`
}

type Flight struct {
	FlightDate   string         `json:"flight_date"`
	FlightStatus string         `json:"flight_status"`
	Departure    FlightEndpoint `json:"departure"`
	Arrival      FlightEndpoint `json:"arrival"`
	Airline      struct {
		Name string `json:"name"`
		IATA string `json:"iata"`
	} `json:"airline"`
	Flight struct {
		Number string `json:"number"`
		IATA   string `json:"iata"`
	} `json:"flight"`
}

type FlightEndpoint struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Terminal  string `json:"terminal,omitempty"`
	Gate      string `json:"gate,omitempty"`
	Delay     *int   `json:"delay,omitempty"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated,omitempty"`
}
