package models

// Contact request lifecycle. A request starts pending and moves to accepted
// or rejected exactly once; both are terminal.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// Contact is a directional edge in contacts.json: it belongs to UserID's
// contact list and points at ContactUserID. Username and email are snapshots
// taken when the edge was created; they are not refreshed if the other party
// later renames.
type Contact struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	ContactUserID   string `json:"contactUserId"`
	ContactUsername string `json:"contactUsername"`
	ContactEmail    string `json:"contactEmail"`
	CreatedAt       int64  `json:"createdAt"`
}

// ContactRequest is one entry of contact-requests.json. Requester identity
// is denormalized at creation time, like the contact snapshots.
type ContactRequest struct {
	ID                string `json:"id"`
	RequesterID       string `json:"requesterId"`
	RequesterUsername string `json:"requesterUsername"`
	RequesterEmail    string `json:"requesterEmail"`
	RecipientID       string `json:"recipientId"`
	Status            string `json:"status"`
	CreatedAt         int64  `json:"createdAt"`
}
