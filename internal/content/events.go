// Package content holds the static site content: event metadata and blog
// post listings. Both are read-only in-process constants; editing them is a
// deploy, not a database write. Registration rows reference events by slug
// but the submission endpoint never validates against this catalog, so a
// new event form can go live before its listing does.
package content

import "time"

// Event describes one event page on the site. FormFields is informational:
// it drives the client form, while the submission endpoint stays
// schema-agnostic.
type Event struct {
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartsAt         time.Time `json:"starts_at"`
	Location         string    `json:"location"`
	RegistrationOpen bool      `json:"registration_open"`
	FormFields       []string  `json:"form_fields,omitempty"`
}

var events = []Event{
	{
		Slug:             "easter-service",
		Title:            "Easter Sunday Service",
		Description:      "Resurrection Sunday celebration with worship, choir, and a children's program.",
		StartsAt:         time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC),
		Location:         "Main Sanctuary",
		RegistrationOpen: true,
		FormFields:       []string{"full_name", "email", "party_size"},
	},
	{
		Slug:             "vbs-2026",
		Title:            "Vacation Bible School 2026",
		Description:      "A week of Bible stories, crafts, games, and music for ages 4-12.",
		StartsAt:         time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
		Location:         "Fellowship Hall",
		RegistrationOpen: true,
		FormFields:       []string{"parent_name", "email", "phone_number", "children", "allergies"},
	},
	{
		Slug:             "marriage-retreat",
		Title:            "Marriage Enrichment Retreat",
		Description:      "A weekend retreat for couples in the North Georgia mountains.",
		StartsAt:         time.Date(2026, 9, 18, 17, 0, 0, 0, time.UTC),
		Location:         "Blue Ridge Conference Center",
		RegistrationOpen: true,
		FormFields:       []string{"couple_names", "email", "phone_number", "dietary_restrictions"},
	},
	{
		Slug:             "christmas-concert",
		Title:            "Christmas Concert",
		Description:      "An evening of carols and candlelight with the GRM choir.",
		StartsAt:         time.Date(2026, 12, 18, 19, 0, 0, 0, time.UTC),
		Location:         "Main Sanctuary",
		RegistrationOpen: false,
	},
}

// Events returns every event, soonest first.
func Events() []Event {
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// EventBySlug returns the event for slug, or false when the catalog has no
// such page.
func EventBySlug(slug string) (Event, bool) {
	for _, event := range events {
		if event.Slug == slug {
			return event, true
		}
	}
	return Event{}, false
}
