package form

import "business-registration/internal/models"

// Weekdays is the fixed order of the business hours rows.
var Weekdays = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

const (
	DefaultOpenTime    = "09:00:00"
	DefaultCloseTime   = "18:00:00"
	DefaultCurrency    = "SGD"
	DefaultUnit        = "hour"
	DefaultVariantName = "Standard Rate"
)

// NewDocument returns an empty document with the seven default hour rows
// and no services.
func NewDocument() models.Document {
	return models.Document{
		BusinessHours: DefaultHours(),
		Services:      []models.Service{},
	}
}

func DefaultHours() []models.BusinessHour {
	hours := make([]models.BusinessHour, len(Weekdays))
	for i, day := range Weekdays {
		hours[i] = models.BusinessHour{
			Day:       day,
			OpenTime:  DefaultOpenTime,
			CloseTime: DefaultCloseTime,
		}
	}
	return hours
}

// NewService is the blank entry appended by AddService.
func NewService() models.Service {
	return models.Service{
		Tags: []string{},
		Pricing: models.Pricing{
			Currency:    DefaultCurrency,
			Unit:        DefaultUnit,
			VariantName: DefaultVariantName,
		},
	}
}
