package models

// Route is one direction of the shuttle line.
type Route struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// DefaultRoutes is the two-way line between Trấn Biên and Bình Phước.
func DefaultRoutes() []Route {
	return []Route{
		{ID: "TB-BP", Name: "Trấn Biên → Bình Phước", From: "Trấn Biên", To: "Bình Phước"},
		{ID: "BP-TB", Name: "Bình Phước → Trấn Biên", From: "Bình Phước", To: "Trấn Biên"},
	}
}

func FindRoute(routes []Route, id string) (Route, bool) {
	for _, r := range routes {
		if r.ID == id {
			return r, true
		}
	}
	return Route{}, false
}
