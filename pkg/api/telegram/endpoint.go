package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/pkg/api"
)

const apiURL = "https://api.telegram.org"

type Endpoint struct {
	BotToken string

	apiGenerator api.Generator
}

func New(cfg config.TelegramConfigs) *Endpoint {
	return &Endpoint{
		BotToken:     cfg.BotToken,
		apiGenerator: api.NewGenerator(),
	}
}

func (e *Endpoint) GetChatMember(ctx context.Context, chatID, userID string) (ChatMember, error) {
	resp, err := e.apiGenerator.New(apiURL, "/bot%s/getChatMember", e.BotToken).
		Query(api.Parameter{
			"chat_id": chatID,
			"user_id": userID,
		}).
		GET(ctx)
	if err != nil {
		return ChatMember{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return ChatMember{}, errors.New("invalid body type")
	}

	if ok, err := body.GetBool("ok"); err != nil || !ok {
		return ChatMember{}, fmt.Errorf("invalid response")
	}

	result, err := body.GetJSON("result")
	if err != nil {
		return ChatMember{}, err
	}

	status, err := result.GetString("status")
	if err != nil {
		return ChatMember{}, err
	}

	user, err := result.GetJSON("user")
	if err != nil {
		return ChatMember{}, err
	}

	id, err := user.GetInt("id")
	if err != nil {
		return ChatMember{}, err
	}

	return ChatMember{UserID: strconv.Itoa(id), Status: status}, nil
}
