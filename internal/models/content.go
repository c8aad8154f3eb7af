package models

import "time"

// SiteContent is the singleton document backing the public pages. There is
// exactly one row; updates overwrite it in place.
type SiteContent struct {
	HeroTitle      string
	HeroSubtitle   string
	AboutTitle     string
	AboutText1     string
	AboutText2     string
	ContactAddress string
	ContactPhone   string
	ContactEmail   string
	ContactHours   string
	UpdatedBy      *string
	UpdatedAt      time.Time
}

// DefaultSiteContent returns the content seeded on first run.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		HeroTitle:      "Ingrid Chemicals Pvt Ltd",
		HeroSubtitle:   "Leading provider of high-quality mining chemicals and industrial equipment with over 20 years of industry expertise and innovation.",
		AboutTitle:     "About Ingrid Chemicals",
		AboutText1:     "Founded in 2003, Ingrid Chemicals has established itself as a trusted partner in the mining industry, providing specialized chemical solutions and equipment to enhance operational efficiency and safety.",
		AboutText2:     "Our commitment to quality, innovation, and customer satisfaction has made us the preferred choice for mining operations across the region.",
		ContactAddress: "123 Industrial Park, Mining City",
		ContactPhone:   "+1 (555) 123-4567",
		ContactEmail:   "info@ingridchemicals.com",
		ContactHours:   "Mon - Fri: 8:00 AM - 6:00 PM<br>Sat: 9:00 AM - 2:00 PM<br>Sun: Closed",
	}
}
