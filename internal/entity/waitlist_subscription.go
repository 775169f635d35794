package entity

type WaitlistSubscription struct {
	Base

	Email string `gorm:"uniqueIndex"`
}
