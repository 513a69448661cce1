package dataset

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Destination struct {
	Name        string      `json:"name"`
	District    string      `json:"district"`
	Province    string      `json:"province"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	BestTime    string      `json:"best_time"`
	Duration    string      `json:"duration"`
	EntranceFee int         `json:"entrance_fee"`
	Coordinates Coordinates `json:"coordinates"`
	Activities  []string    `json:"activities"`
	Rating      float64     `json:"rating"`
}

type Hotel struct {
	Name        string      `json:"name"`
	District    string      `json:"district"`
	Province    string      `json:"province"`
	Category    string      `json:"category"`
	StarRating  int         `json:"star_rating"`
	PriceRange  string      `json:"price_range"`
	Amenities   []string    `json:"amenities"`
	Coordinates Coordinates `json:"coordinates"`
	Contact     string      `json:"contact"`
	Rating      float64     `json:"rating"`
	TotalRooms  int         `json:"total_rooms"`
}

type Route struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Duration int    `json:"duration,omitempty"` // minutes
	Price    int    `json:"price,omitempty"`    // LKR
	Coverage string `json:"coverage,omitempty"`
	Pricing  string `json:"pricing,omitempty"`
}

type Transport struct {
	Type     string  `json:"type"`
	Operator string  `json:"operator"`
	Category string  `json:"category"`
	Routes   []Route `json:"routes"`
	Contact  string  `json:"contact"`
	Booking  string  `json:"booking"`
}

type Restaurant struct {
	Name         string   `json:"name"`
	District     string   `json:"district"`
	Province     string   `json:"province"`
	Cuisine      string   `json:"cuisine"`
	Category     string   `json:"category"`
	PriceRange   string   `json:"price_range"`
	Specialties  []string `json:"specialties"`
	Rating       float64  `json:"rating"`
	Contact      string   `json:"contact"`
	OpeningHours string   `json:"opening_hours"`
}

type Activity struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	District    string  `json:"district"`
	Category    string  `json:"category"`
	Duration    string  `json:"duration"`
	Price       int     `json:"price"`
	Season      string  `json:"season"`
	BestTime    string  `json:"best_time"`
	Description string  `json:"description"`
	Operator    string  `json:"operator"`
	Rating      float64 `json:"rating"`
}

type Weather struct {
	Region           string `json:"region"`
	Season           string `json:"season"`
	Months           string `json:"months"`
	TemperatureRange string `json:"temperature_range"`
	Rainfall         string `json:"rainfall"`
	Humidity         string `json:"humidity"`
	Conditions       string `json:"conditions"`
}

type CulturalInfo struct {
	Category    string `json:"category"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Do          string `json:"do"`
	Dont        string `json:"dont"`
}

type TravelPackage struct {
	Name         string   `json:"name"`
	Duration     string   `json:"duration"`
	Price        int      `json:"price"`
	Destinations []string `json:"destinations"`
	Includes     []string `json:"includes"`
	Category     string   `json:"category"`
	GroupSize    string   `json:"group_size"`
	Operator     string   `json:"operator"`
	Rating       float64  `json:"rating"`
}

type PracticalInfo struct {
	Category string `json:"category"`
	Topic    string `json:"topic"`
	Details  string `json:"details"`
}

var destinations = []Destination{
	{Name: "Gangaramaya Temple", District: "Colombo", Province: "Western", Type: "Temple", Category: "Religious",
		Description: "Historic Buddhist temple with a museum and cultural center",
		BestTime:    "Year round", Duration: "1-2 hours", EntranceFee: 500,
		Coordinates: Coordinates{6.9115, 79.8601}, Activities: []string{"Temple Tours", "Cultural Shows", "Photography"}, Rating: 4.3},
	{Name: "Negombo Beach", District: "Gampaha", Province: "Western", Type: "Beach", Category: "Beach",
		Description: "Long golden beach close to the international airport, known for its fishing fleet and lagoon",
		BestTime:    "November to April", Duration: "Half day", EntranceFee: 0,
		Coordinates: Coordinates{7.2083, 79.8358}, Activities: []string{"Swimming", "Fish Market Visit", "Lagoon Boat Ride"}, Rating: 4.1},
	{Name: "Sigiriya Rock Fortress", District: "Matale", Province: "Central", Type: "UNESCO World Heritage Site", Category: "Historical",
		Description: "Ancient rock fortress and palace ruins with stunning frescoes and gardens",
		BestTime:    "December to April", Duration: "3-4 hours", EntranceFee: 4500,
		Coordinates: Coordinates{7.9570, 80.7603}, Activities: []string{"Rock Climbing", "Photography", "Museum Visit"}, Rating: 4.6},
	{Name: "Temple of the Sacred Tooth Relic", District: "Kandy", Province: "Central", Type: "UNESCO World Heritage Site", Category: "Religious",
		Description: "Royal palace complex housing the relic of the tooth of the Buddha",
		BestTime:    "Year round", Duration: "2 hours", EntranceFee: 2000,
		Coordinates: Coordinates{7.2936, 80.6413}, Activities: []string{"Puja Ceremony", "Museum Visit", "Lake Walk"}, Rating: 4.5},
	{Name: "Royal Botanical Gardens", District: "Kandy", Province: "Central", Type: "Botanical Garden", Category: "Natural",
		Description: "Peradeniya gardens with over 4000 plant species and a famous orchid house",
		BestTime:    "Year round", Duration: "2-3 hours", EntranceFee: 3000,
		Coordinates: Coordinates{7.2693, 80.5968}, Activities: []string{"Nature Walks", "Photography", "Picnics"}, Rating: 4.5},
	{Name: "Ancient City of Polonnaruwa", District: "Polonnaruwa", Province: "North Central", Type: "UNESCO World Heritage Site", Category: "Historical",
		Description: "Medieval capital with well-preserved ruins, statues and the Gal Vihara rock temple",
		BestTime:    "December to April", Duration: "Half day", EntranceFee: 4000,
		Coordinates: Coordinates{7.9403, 81.0188}, Activities: []string{"Cycling Tours", "Photography", "Archaeology"}, Rating: 4.6},
	{Name: "Galle Fort", District: "Galle", Province: "Southern", Type: "UNESCO World Heritage Site", Category: "Historical",
		Description: "Dutch colonial fort with ramparts, boutique shops and a lighthouse overlooking the ocean",
		BestTime:    "December to April", Duration: "Half day", EntranceFee: 0,
		Coordinates: Coordinates{6.0269, 80.2170}, Activities: []string{"Walking Tours", "Shopping", "Sunset Views"}, Rating: 4.6},
	{Name: "Mirissa Beach", District: "Matara", Province: "Southern", Type: "Beach", Category: "Beach",
		Description: "Crescent beach famous for whale watching, surfing and Coconut Tree Hill",
		BestTime:    "November to April", Duration: "1-2 days", EntranceFee: 0,
		Coordinates: Coordinates{5.9483, 80.4716}, Activities: []string{"Whale Watching", "Surfing", "Snorkeling"}, Rating: 4.5},
	{Name: "Yala National Park", District: "Hambantota", Province: "Southern", Type: "National Park", Category: "Wildlife",
		Description: "Sri Lanka's most visited park with one of the highest leopard densities in the world",
		BestTime:    "February to July", Duration: "Half day", EntranceFee: 6000,
		Coordinates: Coordinates{6.3725, 81.5185}, Activities: []string{"Jeep Safari", "Bird Watching", "Photography"}, Rating: 4.4},
	{Name: "Horton Plains National Park", District: "Nuwara Eliya", Province: "Central", Type: "National Park", Category: "Natural",
		Description: "Highland plateau with cloud forest and the sheer drop of World's End",
		BestTime:    "January to March", Duration: "Half day", EntranceFee: 3500,
		Coordinates: Coordinates{6.8028, 80.8066}, Activities: []string{"Hiking", "Bird Watching", "Photography"}, Rating: 4.5},
	{Name: "Jaffna Fort", District: "Jaffna", Province: "Northern", Type: "Fort", Category: "Historical",
		Description: "Star-shaped Portuguese and Dutch fort on the Jaffna lagoon",
		BestTime:    "January to September", Duration: "1-2 hours", EntranceFee: 0,
		Coordinates: Coordinates{9.6615, 80.0074}, Activities: []string{"History Tours", "Photography"}, Rating: 4.2},
	{Name: "Pigeon Island National Park", District: "Trincomalee", Province: "Eastern", Type: "Marine National Park", Category: "Natural",
		Description: "Coral reef island with blacktip reef sharks and turtles off Nilaveli",
		BestTime:    "May to September", Duration: "Half day", EntranceFee: 2500,
		Coordinates: Coordinates{8.7229, 81.2064}, Activities: []string{"Snorkeling", "Diving", "Swimming"}, Rating: 4.4},
	{Name: "Dambulla Cave Temple", District: "Matale", Province: "Central", Type: "UNESCO World Heritage Site", Category: "Religious",
		Description: "Five cave shrines with over 150 Buddha statues and painted ceilings",
		BestTime:    "Year round", Duration: "1-2 hours", EntranceFee: 2000,
		Coordinates: Coordinates{7.8567, 80.6492}, Activities: []string{"Temple Visit", "Photography"}, Rating: 4.5},
	{Name: "Nine Arch Bridge", District: "Badulla", Province: "Uva", Type: "Bridge", Category: "Historical",
		Description: "Colonial-era railway viaduct surrounded by tea plantations near Ella",
		BestTime:    "Year round", Duration: "1-2 hours", EntranceFee: 0,
		Coordinates: Coordinates{6.8768, 81.0608}, Activities: []string{"Train Spotting", "Photography", "Hiking"}, Rating: 4.6},
	{Name: "Sinharaja Forest Reserve", District: "Ratnapura", Province: "Sabaragamuwa", Type: "Rainforest", Category: "Natural",
		Description: "Last viable lowland rainforest of the island, rich in endemic birds",
		BestTime:    "December to April", Duration: "Full day", EntranceFee: 1500,
		Coordinates: Coordinates{6.4000, 80.5000}, Activities: []string{"Guided Treks", "Bird Watching"}, Rating: 4.5},
}

var hotels = []Hotel{
	{Name: "Shangri-La Hotel Colombo", District: "Colombo", Province: "Western", Category: "Luxury", StarRating: 5, PriceRange: "15000-25000",
		Amenities: []string{"Pool", "Spa", "Gym", "Restaurant", "Bar", "WiFi"}, Coordinates: Coordinates{6.9271, 79.8612},
		Contact: "+94112441000", Rating: 4.6, TotalRooms: 500},
	{Name: "Galle Face Hotel", District: "Colombo", Province: "Western", Category: "Heritage Luxury", StarRating: 5, PriceRange: "12000-22000",
		Amenities: []string{"Pool", "Spa", "Restaurant", "Bar", "Sea View"}, Coordinates: Coordinates{6.9271, 79.8477},
		Contact: "+94112541010", Rating: 4.4, TotalRooms: 220},
	{Name: "The Kandy House", District: "Kandy", Province: "Central", Category: "Boutique", StarRating: 4, PriceRange: "8000-15000",
		Amenities: []string{"Pool", "Restaurant", "Garden", "WiFi"}, Coordinates: Coordinates{7.2481, 80.5897},
		Contact: "+94812233521", Rating: 4.5, TotalRooms: 9},
	{Name: "98 Acres Resort and Spa", District: "Badulla", Province: "Uva", Category: "Resort", StarRating: 4, PriceRange: "6000-12000",
		Amenities: []string{"Spa", "Restaurant", "Mountain View", "Tea Plantation"}, Coordinates: Coordinates{6.8719, 81.0461},
		Contact: "+94552050050", Rating: 4.4, TotalRooms: 30},
	{Name: "Backpack Lanka", District: "Kandy", Province: "Central", Category: "Hostel", StarRating: 2, PriceRange: "800-2000",
		Amenities: []string{"WiFi", "Shared Kitchen", "Lockers"}, Coordinates: Coordinates{7.2906, 80.6337},
		Contact: "+94812223344", Rating: 3.8, TotalRooms: 20},
}

var transportation = []Transport{
	{Type: "Air", Operator: "SriLankan Airlines", Category: "Domestic",
		Routes:  []Route{{From: "Colombo", To: "Jaffna", Duration: 80, Price: 12000}},
		Contact: "+94197733000", Booking: "Online, Agents"},
	{Type: "Train", Operator: "Sri Lanka Railways", Category: "Scenic",
		Routes: []Route{
			{From: "Colombo", To: "Kandy", Duration: 180, Price: 300},
			{From: "Kandy", To: "Ella", Duration: 420, Price: 400},
			{From: "Colombo", To: "Galle", Duration: 150, Price: 250},
		},
		Contact: "+94112434215", Booking: "Station, Online"},
	{Type: "Bus", Operator: "SLTB", Category: "Public",
		Routes: []Route{
			{From: "Colombo", To: "Kandy", Duration: 180, Price: 150},
			{From: "Colombo", To: "Galle", Duration: 120, Price: 120},
		},
		Contact: "+94112588979", Booking: "Cash on board"},
	{Type: "Taxi", Operator: "PickMe", Category: "App-based",
		Routes:  []Route{{Coverage: "Island-wide", Pricing: "Meter-based"}},
		Contact: "App", Booking: "Mobile App"},
	{Type: "Tuk-tuk", Operator: "Local", Category: "Traditional",
		Routes:  []Route{{Coverage: "Short distances", Pricing: "Negotiable"}},
		Contact: "Street hail", Booking: "Direct"},
}

var restaurants = []Restaurant{
	{Name: "Ministry of Crab", District: "Colombo", Province: "Western", Cuisine: "Seafood", Category: "Fine Dining", PriceRange: "3000-8000",
		Specialties: []string{"Pepper Crab", "Butter Pepper Garlic Crab", "Lobster"}, Rating: 4.6,
		Contact: "+94115234722", OpeningHours: "12:00-15:00, 18:30-23:30"},
	{Name: "Upali's by Nawaloka", District: "Colombo", Province: "Western", Cuisine: "Sri Lankan", Category: "Local", PriceRange: "800-2000",
		Specialties: []string{"Rice & Curry", "Hoppers", "Kottu"}, Rating: 4.2,
		Contact: "+94112575757", OpeningHours: "11:00-22:00"},
	{Name: "The Hill Club", District: "Nuwara Eliya", Province: "Central", Cuisine: "Continental", Category: "Heritage", PriceRange: "1500-3500",
		Specialties: []string{"English Breakfast", "High Tea", "Colonial Cuisine"}, Rating: 4.3,
		Contact: "+94522222653", OpeningHours: "07:00-22:00"},
}

var activities = []Activity{
	{Name: "Whale Watching", Location: "Mirissa", District: "Matara", Category: "Wildlife", Duration: "4-5 hours", Price: 3500,
		Season: "November to April", BestTime: "06:00-11:00", Description: "Spot blue whales and dolphins in their natural habitat",
		Operator: "Mirissa Water Sports", Rating: 4.4},
	{Name: "White Water Rafting", Location: "Kitulgala", District: "Kegalle", Category: "Adventure", Duration: "3-4 hours", Price: 2500,
		Season: "Year round", BestTime: "09:00-15:00", Description: "Thrilling rafting experience on Kelani River",
		Operator: "Adventure Sports Lanka", Rating: 4.3},
	{Name: "Tea Factory Tour", Location: "Nuwara Eliya", District: "Nuwara Eliya", Category: "Cultural", Duration: "2-3 hours", Price: 1000,
		Season: "Year round", BestTime: "09:00-16:00", Description: "Learn about Ceylon tea production process",
		Operator: "Pedro Tea Estate", Rating: 4.2},
	{Name: "Cultural Dance Show", Location: "Kandy", District: "Kandy", Category: "Cultural", Duration: "1 hour", Price: 1000,
		Season: "Year round", BestTime: "19:30-20:30", Description: "Traditional Kandyan dance performance",
		Operator: "Kandy Cultural Centre", Rating: 4.1},
}

var weather = []Weather{
	{Region: "Western Province", Season: "Dry Season", Months: "December-March", TemperatureRange: "24-32°C",
		Rainfall: "Low", Humidity: "70-80%", Conditions: "Sunny and dry, ideal for beach activities"},
	{Region: "Western Province", Season: "Wet Season", Months: "April-November", TemperatureRange: "24-30°C",
		Rainfall: "High", Humidity: "80-90%", Conditions: "Heavy rainfall, especially May and October"},
	{Region: "Hill Country", Season: "Year Round", Months: "All year", TemperatureRange: "10-20°C",
		Rainfall: "Variable", Humidity: "80-90%", Conditions: "Cool climate, can be misty in mornings"},
}

var culturalInfo = []CulturalInfo{
	{Category: "Religion", Topic: "Buddhism",
		Description: "70% of population follows Buddhism. Remove shoes and hats when entering temples.",
		Do:          "Dress modestly, be respectful", Dont: "Point feet towards Buddha statues"},
	{Category: "Greetings", Topic: "Ayubowan",
		Description: "Traditional Sinhala greeting meaning 'may you live long'",
		Do:          "Use respectful greetings", Dont: "Use overly casual greetings with elders"},
	{Category: "Dress Code", Topic: "Temple Visits",
		Description: "Conservative dress required for religious sites",
		Do:          "Cover shoulders and knees", Dont: "Wear revealing clothing"},
}

var packages = []TravelPackage{
	{Name: "Cultural Triangle Tour", Duration: "5 days", Price: 45000,
		Destinations: []string{"Sigiriya", "Polonnaruwa", "Dambulla", "Kandy"},
		Includes:     []string{"Accommodation", "Transportation", "Guide", "Entrance Fees"},
		Category:     "Cultural", GroupSize: "2-15 people", Operator: "Sri Lanka Tours", Rating: 4.5},
	{Name: "Hill Country Adventure", Duration: "7 days", Price: 65000,
		Destinations: []string{"Kandy", "Nuwara Eliya", "Ella", "Horton Plains"},
		Includes:     []string{"Hotels", "Train rides", "Meals", "Activities"},
		Category:     "Nature", GroupSize: "2-12 people", Operator: "Ceylon Adventures", Rating: 4.4},
	{Name: "Beach & Wildlife", Duration: "8 days", Price: 75000,
		Destinations: []string{"Galle", "Unawatuna", "Yala", "Mirissa"},
		Includes:     []string{"Beach hotels", "Safari", "Whale watching", "Meals"},
		Category:     "Beach & Wildlife", GroupSize: "2-10 people", Operator: "Island Escapes", Rating: 4.3},
}

var practicalInfo = []PracticalInfo{
	{Category: "Currency", Topic: "Sri Lankan Rupee (LKR)", Details: "Exchange rate varies. USD widely accepted in tourist areas."},
	{Category: "Language", Topic: "Official Languages", Details: "Sinhala and Tamil are official. English widely spoken in tourist areas."},
	{Category: "Visa", Topic: "Tourist Visa", Details: "ETA required for most countries. 30-day tourist visa available online."},
	{Category: "Health", Topic: "Vaccinations", Details: "No mandatory vaccines. Hepatitis A/B and Typhoid recommended."},
	{Category: "Safety", Topic: "General Safety", Details: "Generally safe for tourists. Normal precautions advised."},
}
