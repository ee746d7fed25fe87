package events

import "time"

// Event types emitted to the notification/calendar/IoT collaborators.
const (
	TypeBookingCreated   = "booking_created"
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
)

// Event is the payload delivered to downstream collaborators. Delivery
// and acknowledgement are the collaborators' concern; the engine only
// emits.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Reference string `json:"reference"`
	MemberID  uint   `json:"member_id"`

	Service string `json:"service"`
	Room    string `json:"room"`

	Date      string `json:"date"`
	TimeRange string `json:"time_range"`

	ScenePreferences string `json:"scene_preferences,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}
