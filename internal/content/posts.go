package content

import "time"

// Post is one blog entry. Bodies live in the frontend; the API serves the
// listing metadata only.
type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
	Excerpt     string    `json:"excerpt"`
}

var posts = []Post{
	{
		Slug:        "welcome-to-our-new-site",
		Title:       "Welcome to Our New Site",
		Author:      "Pastor K. Mensah",
		PublishedAt: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		Excerpt:     "A fresh home for announcements, events, and encouragement throughout the week.",
	},
	{
		Slug:        "vbs-registration-now-open",
		Title:       "VBS Registration Is Now Open",
		Author:      "Children's Ministry",
		PublishedAt: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		Excerpt:     "Sign your kids up for a week of stories, crafts, and songs this June.",
	},
	{
		Slug:        "serving-our-city",
		Title:       "Serving Our City",
		Author:      "Outreach Team",
		PublishedAt: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		Excerpt:     "How the food pantry grew from one shelf to three hundred families a month.",
	},
}

// Posts returns every post, newest first.
func Posts() []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func PostBySlug(slug string) (Post, bool) {
	for _, post := range posts {
		if post.Slug == slug {
			return post, true
		}
	}
	return Post{}, false
}
