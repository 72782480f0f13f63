package form

import (
	"business-registration/internal/common/validation"
	"business-registration/internal/models"
)

func registrationRules() map[string]validation.Rule {
	required := func(label string) validation.Rule {
		return validation.Rule{Tag: "required", Message: label + " is required."}
	}
	link := validation.Rule{Tag: "omitempty,url", Message: "Please enter a valid URL."}

	return map[string]validation.Rule{
		"businessName": {
			Tag:     "required,min=2",
			Message: "Business name must be at least 2 characters.",
		},
		"description": {
			Tag:     "required,min=10",
			Message: "Business description must be at least 10 characters.",
		},
		"email": {
			Tag:     "required,email",
			Message: "Please enter a valid email address.",
		},
		"facebookLink":  link,
		"instagramLink": link,
		"whatsappLink":  link,
		"averageRating": {
			Tag: "omitempty,float_text,float_between=0 5",
			Messages: map[string]string{
				"float_text":    "Average rating must be a number.",
				"float_between": "Average rating must be between 0 and 5.",
			},
		},

		"address.buildingName": required("Building name"),
		"address.streetName":   required("Street name"),
		"address.unitNumber":   required("Unit number"),
		"address.postalCode":   required("Postal code"),
		"address.fullAddress":  required("Full address"),
		"address.latitude": {
			Tag: "notblank,float_text,float_between=-90 90",
			Messages: map[string]string{
				"notblank":      "Latitude is required.",
				"float_text":    "Latitude must be a number.",
				"float_between": "Latitude must be between -90 and 90.",
			},
		},
		"address.longitude": {
			Tag: "notblank,float_text,float_between=-180 180",
			Messages: map[string]string{
				"notblank":      "Longitude is required.",
				"float_text":    "Longitude must be a number.",
				"float_between": "Longitude must be between -180 and 180.",
			},
		},

		"businessHours.*.openTime":  {Tag: "required,clock_time", Message: "Opening time must use HH:MM:SS format."},
		"businessHours.*.closeTime": {Tag: "required,clock_time", Message: "Closing time must use HH:MM:SS format."},

		"services.*.tags": {Tag: "unique", Message: "Tags must not repeat."},
		"services.*.pricing.price": {
			Tag: "omitempty,float_text,float_between=0 1000000000",
			Messages: map[string]string{
				"float_text":    "Price must be a number.",
				"float_between": "Price must not be negative.",
			},
		},
		"services.*.pricing.currency": required("Currency"),
		"services.*.pricing.unit":     required("Unit"),
	}
}

// Validator checks a document against the registration rules. It never
// mutates the document.
type Validator struct {
	rules *validation.RuleSet
}

func NewValidator() (*Validator, error) {
	rs, err := validation.NewRuleSet(registrationRules())
	if err != nil {
		return nil, err
	}
	return &Validator{rules: rs}, nil
}

// Validate checks only the given paths. Paths that do not resolve, such as a
// removed service index, are skipped.
func (v *Validator) Validate(doc *models.Document, paths []string) *validation.ValidationResult {
	var errs []validation.ValidationError
	for _, path := range paths {
		value, ok := Lookup(doc, path)
		if !ok {
			continue
		}
		if fieldErr := v.rules.Check(path, value); fieldErr != nil {
			errs = append(errs, *fieldErr)
		}
	}
	return validation.NewResult(errs)
}

func (v *Validator) ValidateBusinessDetails(doc *models.Document) *validation.ValidationResult {
	return v.Validate(doc, BusinessDetailsScope())
}

func (v *Validator) ValidateAll(doc *models.Document) *validation.ValidationResult {
	return v.Validate(doc, AllPaths(doc))
}
