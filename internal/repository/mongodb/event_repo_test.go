package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"bettertomorrow/internal/domain"
)

func TestBuildEventFilter(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter domain.EventFilter
		want   bson.M
	}{
		{
			name:   "empty filter matches everything",
			filter: domain.EventFilter{},
			want:   bson.M{},
		},
		{
			name:   "creator email exact match",
			filter: domain.EventFilter{CreatorEmail: "a@x.com"},
			want:   bson.M{"creator_email": "a@x.com"},
		},
		{
			name:   "event type exact match",
			filter: domain.EventFilter{EventType: "cleanup"},
			want:   bson.M{"event_type": "cleanup"},
		},
		{
			name:   "title search is case-insensitive regex",
			filter: domain.EventFilter{TitleSearch: "beach"},
			want:   bson.M{"title": bson.M{"$regex": "beach", "$options": "i"}},
		},
		{
			name:   "title search quotes regex metacharacters",
			filter: domain.EventFilter{TitleSearch: "2+2 (party)"},
			want:   bson.M{"title": bson.M{"$regex": `2\+2 \(party\)`, "$options": "i"}},
		},
		{
			name:   "upcoming filter uses gte on event date",
			filter: domain.EventFilter{UpcomingAfter: &now},
			want:   bson.M{"event_date": bson.M{"$gte": now}},
		},
		{
			name: "combined filters",
			filter: domain.EventFilter{
				EventType:     "cleanup",
				TitleSearch:   "beach",
				UpcomingAfter: &now,
			},
			want: bson.M{
				"event_type": "cleanup",
				"title":      bson.M{"$regex": "beach", "$options": "i"},
				"event_date": bson.M{"$gte": now},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildEventFilter(tt.filter))
		})
	}
}

func TestBuildEventUpdate(t *testing.T) {
	updatedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	title := "New"
	location := "Hall 2"
	date := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)

	t.Run("empty update still refreshes updated_at", func(t *testing.T) {
		got := buildEventUpdate(domain.EventUpdate{}, updatedAt)
		require.Equal(t, bson.M{"$set": bson.M{"updated_at": updatedAt}}, got)
	})

	t.Run("only present fields are set", func(t *testing.T) {
		got := buildEventUpdate(domain.EventUpdate{Title: &title}, updatedAt)
		set, ok := got["$set"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, "New", set["title"])
		assert.Equal(t, updatedAt, set["updated_at"])
		assert.NotContains(t, set, "description")
		assert.NotContains(t, set, "location")
	})

	t.Run("multiple fields", func(t *testing.T) {
		got := buildEventUpdate(domain.EventUpdate{Location: &location, EventDate: &date}, updatedAt)
		set, ok := got["$set"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, "Hall 2", set["location"])
		assert.Equal(t, date, set["event_date"])
		assert.NotContains(t, set, "title")
	})
}
