package entity

import "time"

type Chat struct {
	Id         string     `bson:"_id" json:"id"`
	BookingId  string     `bson:"bookingId" json:"bookingId"`
	HostId     string     `bson:"hostId" json:"hostId"`
	CustomerId string     `bson:"customerId" json:"customerId"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt  *time.Time `bson:"deletedAt,omitempty" json:"-"`
}

// ChatFilter matches chats where ParticipantId is either the host or the customer.
type ChatFilter struct {
	ParticipantId  string
	ExcludeDeleted bool
}

// Caller is the already-authenticated identity on whose behalf a listing runs.
type Caller struct {
	Id string `json:"_id"`
}

type ListUserChatsRequest struct {
	User *Caller `json:"user"`
	Page int     `json:"page"`
}

type ListUserChatsResponse struct {
	Pages int    `json:"pages"`
	Chats []Chat `json:"chats"`
}
