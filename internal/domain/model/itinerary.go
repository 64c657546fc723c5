package model

// Itinerary is the structured result the planner pipeline synthesizes:
// trip meta, one overview per city, one plan per day, a budget
// aggregation and any live advisories gathered along the way.
type Itinerary struct {
	Meta       ItineraryMeta  `json:"meta"`
	Cities     []CityOverview `json:"cities,omitempty"`
	Days       []DayPlan      `json:"days"`
	Budget     *BudgetSummary `json:"budget,omitempty"`
	Advisories []Advisory     `json:"advisories,omitempty"`
	Summary    string         `json:"summary,omitempty"`
	Sources    []SourceRef    `json:"sources,omitempty"`
}

type ItineraryMeta struct {
	FirstName     string   `json:"first_name,omitempty"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date,omitempty"`
	DurationDays  int      `json:"duration_days"`
	Pace          string   `json:"pace,omitempty"`
	Cities        []string `json:"cities"`
	Interests     []string `json:"interests,omitempty"`
	Services      []string `json:"services,omitempty"`
}

type SourceRef struct {
	URL   string `json:"url"`
	Date  string `json:"date,omitempty"`
	Title string `json:"title,omitempty"`
}

type CityOverview struct {
	City           string        `json:"city"`
	Lodging        *Lodging      `json:"lodging,omitempty"`
	TransportNotes string        `json:"transport_notes,omitempty"`
	Passes         []TravelPass  `json:"passes,omitempty"`
	Dining         []DiningSpot  `json:"dining,omitempty"`
	Weather        *WeatherBrief `json:"weather,omitempty"`
}

type Lodging struct {
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Link     string  `json:"link,omitempty"`
	CheckIn  string  `json:"check_in,omitempty"`
	CheckOut string  `json:"check_out,omitempty"`
	CostEUR  float64 `json:"cost_eur,omitempty"`
}

type TravelPass struct {
	Name  string `json:"name"`
	Link  string `json:"link,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type DiningSpot struct {
	Name     string  `json:"name"`
	Cuisine  string  `json:"cuisine,omitempty"`
	Address  string  `json:"address,omitempty"`
	CostEUR  float64 `json:"cost_eur,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

type WeatherBrief struct {
	Summary       string  `json:"summary"`
	TempAvgC      float64 `json:"temp_avg_c,omitempty"`
	PrecipProbPct int     `json:"precip_prob_pct,omitempty"`
	Special       string  `json:"special,omitempty"`
}

type DayPlan struct {
	Date       string         `json:"date"`
	City       string         `json:"city"`
	Weather    *WeatherBrief  `json:"weather,omitempty"`
	Activities []Activity     `json:"activities,omitempty"`
	Transport  []TransportLeg `json:"transport,omitempty"`
	Notes      string         `json:"notes,omitempty"`
}

type Activity struct {
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	StartTime       string  `json:"start_time,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	Address         string  `json:"address,omitempty"`
	IndoorOutdoor   string  `json:"indoor_outdoor,omitempty"`
	CostEUR         float64 `json:"cost_eur,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type TransportLeg struct {
	From                string  `json:"from"`
	To                  string  `json:"to"`
	Mode                string  `json:"mode"`
	LineOrService       string  `json:"line_or_service,omitempty"`
	DurationMinutes     int     `json:"duration_minutes,omitempty"`
	CostEUR             float64 `json:"cost_eur,omitempty"`
	ReservationRequired bool    `json:"reservation_required,omitempty"`
}

type BudgetSummary struct {
	Categories []CategoryCost `json:"categories"`
	TotalEUR   float64        `json:"total_eur"`
	TargetEUR  float64        `json:"target_eur,omitempty"`
	DeltaEUR   float64        `json:"delta_eur,omitempty"`
	Notes      string         `json:"notes,omitempty"`
}

type CategoryCost struct {
	Category    string  `json:"category"` // transport, lodging, dining, activities
	SubtotalEUR float64 `json:"subtotal_eur"`
}

type Advisory struct {
	City    string      `json:"city,omitempty"`
	Kind    string      `json:"kind,omitempty"` // event, closure, alert
	Title   string      `json:"title"`
	Detail  string      `json:"detail,omitempty"`
	Sources []SourceRef `json:"sources,omitempty"`
}
