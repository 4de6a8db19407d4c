package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alex-user-go/events/internal/auth"
)

func TestEnvStore(t *testing.T) {
	t.Setenv("EVENTS_TICKETMASTER_TOKEN", "tm-secret")
	t.Setenv("EVENTS_ART_INSTITUTE_TOKEN", "aic-secret")

	s := auth.NewEnvStore("Ticketmaster", "Art Institute", "Meetup")

	token, ok := s.Token("Ticketmaster")
	assert.True(t, ok)
	assert.Equal(t, "tm-secret", token)

	// Lookup is case-insensitive
	assert.True(t, s.Connected("ticketmaster"))
	assert.True(t, s.Connected("TICKETMASTER"))

	// Spaces in names map to underscores in env keys
	assert.True(t, s.Connected("Art Institute"))

	assert.False(t, s.Connected("Meetup"))
	_, ok = s.Token("Meetup")
	assert.False(t, ok)
}

func TestEnvStore_SetToken(t *testing.T) {
	s := auth.NewEnvStore("Meetup")
	assert.False(t, s.Connected("Meetup"))

	s.SetToken("Meetup", "override")
	assert.True(t, s.Connected("meetup"))
}

func TestStaticStore(t *testing.T) {
	s := auth.StaticStore{"yelp": "y-secret"}

	token, ok := s.Token("Yelp")
	assert.True(t, ok)
	assert.Equal(t, "y-secret", token)
	assert.False(t, s.Connected("SeatGeek"))
}
