package models

// Payload is the wire form of a Document sent to the registration sink.
type Payload struct {
	BusinessName   string   `json:"businessName"`
	Description    string   `json:"description"`
	Email          string   `json:"email"`
	GooglePlaceID  string   `json:"googlePlaceId"`
	FacebookPageID string   `json:"facebookPageId"`
	FacebookLink   string   `json:"facebookLink"`
	InstagramLink  string   `json:"instagramLink"`
	WhatsappLink   string   `json:"whatsappLink"`
	AverageRating  *float64 `json:"averageRating,omitempty"`

	Address       PayloadAddress   `json:"address"`
	BusinessHours []BusinessHour   `json:"businessHours"`
	Services      []PayloadService `json:"services"`
}

type PayloadAddress struct {
	BuildingName string  `json:"buildingName"`
	StreetName   string  `json:"streetName"`
	UnitNumber   string  `json:"unitNumber"`
	PostalCode   string  `json:"postalCode"`
	FullAddress  string  `json:"fullAddress"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

type PayloadService struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Pricing     PayloadPricing `json:"pricing"`
}

type PayloadPricing struct {
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Unit        string  `json:"unit"`
	VariantName string  `json:"variantName"`
}

// Ack is the sink's success body.
type Ack struct {
	Success bool `json:"success"`
}

// SinkError is the sink's failure body.
type SinkError struct {
	Error string `json:"error"`
}
