package model

// TripRequest is the traveler-preferences payload posted to /kickoff_post.
// The gateway decodes it structurally but does not interpret the fields;
// they are handed to the planner verbatim.
type TripRequest struct {
	PlanningType    string   `json:"planningType"`
	TravelWith      string   `json:"travelWith"`
	Pace            string   `json:"pace"`
	FirstName       string   `json:"firstName"`
	DepartureDate   string   `json:"departureDate"`
	DeparturePeriod string   `json:"departurePeriod,omitempty"`
	ReturnDate      string   `json:"returnDate"`
	Duration        int      `json:"duration"`
	CitiesToInclude []string `json:"citiesToInclude"`
	CitiesToExclude []string `json:"citiesToExclude"`
	Budget          float64  `json:"budget"`
	Comments        string   `json:"comments"`
	Interests       []string `json:"interests"`
	Services        []string `json:"services"`
}

// HasService reports whether the traveler asked for an optional planning
// module such as "restaurants", "lodging" or "transport".
func (r TripRequest) HasService(name string) bool {
	for _, s := range r.Services {
		if s == name {
			return true
		}
	}
	return false
}

// Cities returns the included cities, falling back to a whole-country plan
// marker when the traveler left the list empty.
func (r TripRequest) Cities() []string {
	if len(r.CitiesToInclude) > 0 {
		return r.CitiesToInclude
	}
	return []string{"Japan"}
}
