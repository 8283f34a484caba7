package domain

import (
	"strings"
	"time"
)

// ActorRole is the side of the marketplace an actor reference belongs to.
type ActorRole string

const (
	RoleClient ActorRole = "client"
	RoleWorker ActorRole = "worker"
	RoleSystem ActorRole = "system"
)

func ParseSenderRole(s string) (ActorRole, bool) {
	switch r := ActorRole(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleClient, RoleWorker:
		return r, true
	}
	return "", false
}

type ReviewReply struct {
	ID         string     `json:"id"`
	ReviewID   string     `json:"review_id"`
	Source     SourceKind `json:"source"`
	SenderRole ActorRole  `json:"sender_role"`
	SenderRef  string     `json:"sender_ref"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
}

type ThreadItemType string

const (
	ItemReview  ThreadItemType = "review"
	ItemMessage ThreadItemType = "message"
)

// ThreadItem is one entry of a review discussion timeline.
type ThreadItem struct {
	ID            string         `json:"id"`
	ItemType      ThreadItemType `json:"item_type"`
	SenderRole    ActorRole      `json:"sender_role"`
	SenderRef     string         `json:"sender_ref"`
	SenderDisplay string         `json:"sender_display"`
	Title         *string        `json:"title,omitempty"`
	Rating        *int           `json:"rating,omitempty"`
	Content       string         `json:"content"`
	CreatedAt     time.Time      `json:"created_at"`
}
