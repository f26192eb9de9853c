package models

// Passenger is a booking as seen inside a trip.
type Passenger struct {
	Booking
	IsOverflow bool `json:"isOverflow"`
}

// Trip is the consolidated view of every booking sharing a date and time slot.
// Passengers are in priority order.
type Trip struct {
	Date           string      `json:"date"`
	Time           string      `json:"time"`
	Capacity       int         `json:"capacity"`
	Passengers     []Passenger `json:"passengers"`
	TotalPax       int         `json:"totalPax"`
	AcceptedPax    int         `json:"acceptedPax"`
	OverflowPax    int         `json:"overflowPax"`
	IsOverCapacity bool        `json:"isOverCapacity"`
}

func (t Trip) Accepted() []Passenger {
	out := make([]Passenger, 0, len(t.Passengers))
	for _, p := range t.Passengers {
		if !p.IsOverflow {
			out = append(out, p)
		}
	}
	return out
}

func (t Trip) Overflow() []Passenger {
	var out []Passenger
	for _, p := range t.Passengers {
		if p.IsOverflow {
			out = append(out, p)
		}
	}
	return out
}
