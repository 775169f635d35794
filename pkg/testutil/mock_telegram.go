package testutil

import (
	"context"

	"github.com/codexero/backend/pkg/api/telegram"
)

type MockTelegramEndpoint struct {
	GetChatMemberFunc func(ctx context.Context, chatID, userID string) (telegram.ChatMember, error)
}

func (e *MockTelegramEndpoint) GetChatMember(
	ctx context.Context, chatID, userID string,
) (telegram.ChatMember, error) {
	if e.GetChatMemberFunc == nil {
		panic("not implemented")
	}

	return e.GetChatMemberFunc(ctx, chatID, userID)
}
