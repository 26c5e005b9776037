package park

import "fmt"

// Site is one National Park Service site as listed on nps.gov.
type Site struct {
	Category string `json:"category"` // e.g. "National Park"; may be empty
	Name     string `json:"name"`
	Address  string `json:"address"` // "City, ST"
	Zipcode  string `json:"zipcode"` // may carry a +4 suffix, e.g. "82190-0168"
	Phone    string `json:"phone"`
}

// NewSite creates a Site from its scraped fields.
func NewSite(category, name, address, zipcode, phone string) Site {
	return Site{
		Category: category,
		Name:     name,
		Address:  address,
		Zipcode:  zipcode,
		Phone:    phone,
	}
}

// Info returns the one-line summary shown in site listings.
func (s Site) Info() string {
	return fmt.Sprintf("%s (%s): %s %s", s.Name, s.Category, s.Address, s.Zipcode)
}
