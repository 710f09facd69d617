package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventBySlug(t *testing.T) {
	event, ok := EventBySlug("vbs-2026")
	require.True(t, ok)
	require.Equal(t, "Vacation Bible School 2026", event.Title)
	require.True(t, event.RegistrationOpen)

	_, ok = EventBySlug("no-such-event")
	require.False(t, ok)
}

func TestEventsReturnsCopy(t *testing.T) {
	first := Events()
	first[0].Title = "mutated"

	second := Events()
	require.NotEqual(t, "mutated", second[0].Title)
}

func TestPostsNewestFirst(t *testing.T) {
	all := Posts()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		require.False(t, all[i-1].PublishedAt.Before(all[i].PublishedAt))
	}
}

func TestPostBySlug(t *testing.T) {
	post, ok := PostBySlug("serving-our-city")
	require.True(t, ok)
	require.Equal(t, "Outreach Team", post.Author)

	_, ok = PostBySlug("missing")
	require.False(t, ok)
}
