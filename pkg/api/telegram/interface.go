package telegram

import "context"

type ChatMember struct {
	UserID string
	Status string
}

// IsMember reports whether the member belongs to the chat. Restricted, left
// and kicked statuses do not count.
func (m ChatMember) IsMember() bool {
	switch m.Status {
	case "creator", "administrator", "member":
		return true
	}

	return false
}

type IEndpoint interface {
	GetChatMember(ctx context.Context, chatID, userID string) (ChatMember, error)
}
