package events

import "time"

const NotificationRequestedTopic = "payops.notification.requested.v1"

// RecipientRoleOrgAdmins addresses every admin of the organization instead
// of a single employee.
const RecipientRoleOrgAdmins = "role:org-admins"

type NotificationRequestedEvent struct {
	EventType      string    `json:"event_type"`
	OrganizationID string    `json:"organization_id"`
	RecipientID    string    `json:"recipient_id"`
	Message        string    `json:"message"`
	OccurredAt     time.Time `json:"occurred_at"`
}
