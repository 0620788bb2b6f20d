package domain

import "time"

// NewsletterSubscription is a public opt-in record. UnsubscribeToken is an
// opaque capability embedded in unsubscribe links; UnsubscribedAt marks opt-out.
type NewsletterSubscription struct {
	ID               int64      `gorm:"primaryKey" json:"id,string" form:"id"`
	FirstName        string     `json:"first_name" form:"first_name"`
	LastName         string     `json:"last_name" form:"last_name"`
	Email            string     `gorm:"uniqueIndex;size:255" json:"email" form:"email"`
	UnsubscribeToken string     `gorm:"index;size:64" json:"-"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (NewsletterSubscription) TableName() string {
	return "newsletter_subscriptions"
}

// Unsubscribed reports whether the subscriber has opted out.
func (s *NewsletterSubscription) Unsubscribed() bool {
	return s.UnsubscribedAt != nil
}
