package entity

import "time"

type Message struct {
	Id        string     `bson:"_id" json:"id"`
	ChatId    string     `bson:"chatId" json:"chatId"`
	Text      string     `bson:"text" json:"text"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	CreatedBy string     `bson:"createdBy" json:"createdBy"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"`
}

type MessageFilter struct {
	ChatId         string
	ExcludeDeleted bool
}

type ListChatMessagesRequest struct {
	ChatId string `json:"chatId"`
	Page   int    `json:"page"`
}

type ListChatMessagesResponse struct {
	Pages    int       `json:"pages"`
	Messages []Message `json:"messages"`
}
