package domain

var Tables = []interface{}{
	// Catalog
	&Product{},
	&Blog{},
	&Principal{},
	&Announcement{},
	&HeroBackground{},
	// Audience
	&NewsletterSubscription{},
	&CustomerRegistration{},
	// Accounts
	&User{},
	&Invitation{},
	// System
	&SysOprLog{},
}
