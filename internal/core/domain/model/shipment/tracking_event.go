package shipment

import "time"

// TrackingEvent is one entry of a shipment's status history.
type TrackingEvent struct {
	status     Status
	note       string
	occurredAt time.Time
}

func NewTrackingEvent(status Status, note string, occurredAt time.Time) TrackingEvent {
	return TrackingEvent{status: status, note: note, occurredAt: occurredAt}
}

func (e TrackingEvent) Status() Status { return e.status }
func (e TrackingEvent) Note() string { return e.note }
func (e TrackingEvent) OccurredAt() time.Time { return e.occurredAt }
