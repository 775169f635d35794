package model

type SubscribeWaitlistRequest struct {
	Email string `json:"email"`
}

type SubscribeWaitlistResponse struct{}
