package entity

import "time"

// Event is a user-submitted feed entry. UserID references the creating
// user and is fixed at creation; only the owner may delete the event.
// ImageURL is the asset-store reference, never the raw payload.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	Rating    int       `json:"rating"`
	ImageURL  string    `json:"image"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventOwner is the denormalized owner projection attached to feed items.
type EventOwner struct {
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

// FeedEvent is an Event joined with its owner's public projection,
// as returned by the paginated feed.
type FeedEvent struct {
	Event
	Owner EventOwner `json:"owner"`
}
