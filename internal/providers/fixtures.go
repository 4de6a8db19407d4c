package providers

import (
	"fmt"
	"time"
)

// FixtureEvents returns the bundled dataset for a catalog. Dates are offset
// from the current day so local runs always have upcoming events to show.
func FixtureEvents(name string) []wireEvent {
	seeds, ok := fixtureSeeds[name]
	if !ok {
		return nil
	}

	base := time.Now().UTC().Truncate(24 * time.Hour)
	events := make([]wireEvent, 0, len(seeds))
	for i, s := range seeds {
		events = append(events, wireEvent{
			ID:          fmt.Sprintf("fixture-%03d", i+1),
			Title:       s.title,
			Description: s.description,
			Venue:       s.venue,
			Address:     s.address,
			Category:    s.category,
			Date:        base.AddDate(0, 0, s.daysOut).Add(time.Duration(s.hour) * time.Hour).Format(time.RFC3339),
			Latitude:    s.lat,
			Longitude:   s.lng,
		})
	}
	return events
}

type fixtureSeed struct {
	title       string
	description string
	venue       string
	address     string
	category    string
	daysOut     int
	hour        int
	lat, lng    float64
}

var fixtureSeeds = map[string][]fixtureSeed{
	NameTicketmaster: {
		{"Summer Stadium Tour", "National touring act, one night only", "Riverfront Stadium", "100 Stadium Way", "Music", 3, 19, 41.8827, -87.6233},
		{"Championship Quarterfinal", "Home side hosts the quarterfinal", "Riverfront Stadium", "100 Stadium Way", "Sports", 8, 18, 41.8827, -87.6233},
		{"Broadway Touring Company", "Award-winning musical on tour", "Orpheum Theater", "216 State St", "Arts & Theatre", 12, 19, 41.8837, -87.6278},
	},
	NameEventbrite: {
		{"Intro to Woodworking", "Hands-on beginner workshop", "Makers Guild", "58 Canal St", "Workshop", 2, 10, 41.8892, -87.6351},
		{"Startup Pitch Night", "Six local founders, five minutes each", "Innovation Hall", "900 W Fulton Market", "Business", 5, 18, 41.8868, -87.6487},
		{"Summer Stadium Tour", "Resale listing for the stadium show", "Riverfront Stadium", "100 Stadium Way", "Music", 3, 19, 41.8827, -87.6233},
	},
	NameSeatGeek: {
		{"Championship Quarterfinal", "Quarterfinal, lower bowl available", "Riverfront Stadium", "100 Stadium Way", "Sports", 8, 18, 41.8827, -87.6233},
		{"Comedy Double Bill", "Two headliners back to back", "Laugh Cellar", "3159 N Broadway", "Comedy", 6, 20, 41.9399, -87.6444},
	},
	NameYelp: {
		{"Night Market", "Street food and local vendors", "Pilsen Plaza", "1800 S Racine Ave", "Food & Drink", 4, 17, 41.8578, -87.6566},
		{"Rooftop Wine Tasting", "Regional wines with a skyline view", "Harborview Rooftop", "505 N Lake Shore Dr", "Food & Drink", 9, 18, 41.8918, -87.6133},
	},
	NameBandsintown: {
		{"Basement Tapes Live", "Local four-piece, doors at eight", "The Empty Bottle", "1035 N Western Ave", "Music", 1, 20, 41.8998, -87.6871},
		{"Summer Stadium Tour", "Tour stop as listed by the artist", "Riverfront Stadium", "100 Stadium Way", "Music", 3, 19, 41.8827, -87.6233},
	},
	NameArtInstitute: {
		{"Impressionism After Dark", "Evening gallery access with talks", "Art Institute", "111 S Michigan Ave", "Art", 7, 18, 41.8796, -87.6237},
		{"Sketching in the Galleries", "Guided drop-in drawing session", "Art Institute", "111 S Michigan Ave", "Art", 14, 13, 41.8796, -87.6237},
	},
	NameMeetup: {
		{"Go Developers Meetup", "Monthly talks and hallway track", "Innovation Hall", "900 W Fulton Market", "Tech", 10, 18, 41.8868, -87.6487},
		{"Lakefront Morning Run", "Casual 5k, all paces welcome", "North Avenue Beach", "1600 N Lake Shore Dr", "Fitness", 2, 8, 41.9137, -87.6252},
	},
}
