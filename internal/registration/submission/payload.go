package submission

import (
	"fmt"
	"strings"

	"business-registration/internal/common/validation"
	"business-registration/internal/models"
	"business-registration/internal/registration/form"
)

// BuildPayload coerces the document's numeric text into the wire form.
// Empty averageRating is omitted, empty prices become 0 and blank currency
// or unit fall back to the service defaults.
func BuildPayload(doc models.Document) (*models.Payload, error) {
	p := &models.Payload{
		BusinessName:   doc.BusinessName,
		Description:    doc.Description,
		Email:          doc.Email,
		GooglePlaceID:  doc.GooglePlaceID,
		FacebookPageID: doc.FacebookPageID,
		FacebookLink:   doc.FacebookLink,
		InstagramLink:  doc.InstagramLink,
		WhatsappLink:   doc.WhatsappLink,
		BusinessHours:  append([]models.BusinessHour{}, doc.BusinessHours...),
		Services:       make([]models.PayloadService, 0, len(doc.Services)),
	}

	if strings.TrimSpace(doc.AverageRating) != "" {
		rating, err := validation.ParseDecimal(doc.AverageRating)
		if err != nil {
			return nil, fmt.Errorf("averageRating: %w", err)
		}
		p.AverageRating = &rating
	}

	lat, err := validation.ParseDecimal(doc.Address.Latitude)
	if err != nil {
		return nil, fmt.Errorf("address.latitude: %w", err)
	}
	lng, err := validation.ParseDecimal(doc.Address.Longitude)
	if err != nil {
		return nil, fmt.Errorf("address.longitude: %w", err)
	}
	p.Address = models.PayloadAddress{
		BuildingName: doc.Address.BuildingName,
		StreetName:   doc.Address.StreetName,
		UnitNumber:   doc.Address.UnitNumber,
		PostalCode:   doc.Address.PostalCode,
		FullAddress:  doc.Address.FullAddress,
		Latitude:     lat,
		Longitude:    lng,
	}

	for i, svc := range doc.Services {
		price := 0.0
		if strings.TrimSpace(svc.Pricing.Price) != "" {
			price, err = validation.ParseDecimal(svc.Pricing.Price)
			if err != nil {
				return nil, fmt.Errorf("services.%d.pricing.price: %w", i, err)
			}
		}
		p.Services = append(p.Services, models.PayloadService{
			Name:        svc.Name,
			Description: svc.Description,
			Tags:        append([]string{}, svc.Tags...),
			Pricing: models.PayloadPricing{
				Price:       price,
				Currency:    orDefault(svc.Pricing.Currency, form.DefaultCurrency),
				Unit:        orDefault(svc.Pricing.Unit, form.DefaultUnit),
				VariantName: svc.Pricing.VariantName,
			},
		})
	}

	return p, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
