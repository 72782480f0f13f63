// internal/models/registration.go
package models

// Document is the wizard's form state. Numeric fields hold the text exactly
// as typed; they are coerced when the payload is built.
type Document struct {
	BusinessName   string `json:"businessName"`
	Description    string `json:"description"`
	Email          string `json:"email"`
	GooglePlaceID  string `json:"googlePlaceId"`
	FacebookPageID string `json:"facebookPageId"`
	FacebookLink   string `json:"facebookLink"`
	InstagramLink  string `json:"instagramLink"`
	WhatsappLink   string `json:"whatsappLink"`
	AverageRating  string `json:"averageRating"`

	Address       Address        `json:"address"`
	BusinessHours []BusinessHour `json:"businessHours"`
	Services      []Service      `json:"services"`
}

type Address struct {
	BuildingName string `json:"buildingName"`
	StreetName   string `json:"streetName"`
	UnitNumber   string `json:"unitNumber"`
	PostalCode   string `json:"postalCode"`
	FullAddress  string `json:"fullAddress"`
	Latitude     string `json:"latitude"`
	Longitude    string `json:"longitude"`
}

type BusinessHour struct {
	Day       string `json:"day"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

type Service struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Pricing     Pricing  `json:"pricing"`
}

type Pricing struct {
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Unit        string `json:"unit"`
	VariantName string `json:"variantName"`
}

// Clone returns a deep copy; slices are never shared with the receiver.
func (d Document) Clone() Document {
	out := d
	if d.BusinessHours != nil {
		out.BusinessHours = append([]BusinessHour(nil), d.BusinessHours...)
	}
	if d.Services != nil {
		out.Services = make([]Service, len(d.Services))
		for i, svc := range d.Services {
			out.Services[i] = svc.Clone()
		}
	}
	return out
}

func (s Service) Clone() Service {
	out := s
	out.Tags = append([]string{}, s.Tags...)
	return out
}
