package form

import (
	"fmt"
	"strconv"
	"strings"

	"business-registration/internal/common/errors"
	"business-registration/internal/models"
)

var businessPaths = []string{
	"businessName",
	"description",
	"email",
	"googlePlaceId",
	"facebookPageId",
	"facebookLink",
	"instagramLink",
	"whatsappLink",
	"averageRating",
}

var addressPaths = []string{
	"address.buildingName",
	"address.streetName",
	"address.unitNumber",
	"address.postalCode",
	"address.fullAddress",
	"address.latitude",
	"address.longitude",
}

var hourFields = []string{"day", "openTime", "closeTime"}

var serviceFields = []string{
	"name",
	"description",
	"tags",
	"pricing.price",
	"pricing.currency",
	"pricing.unit",
	"pricing.variantName",
}

// BusinessDetailsScope lists the paths checked before leaving the first tab.
func BusinessDetailsScope() []string {
	out := make([]string, 0, len(businessPaths)+len(addressPaths))
	out = append(out, businessPaths...)
	return append(out, addressPaths...)
}

// AllPaths lists every leaf path of doc, including one set per hours row and
// per service.
func AllPaths(doc *models.Document) []string {
	out := BusinessDetailsScope()
	for i := range doc.BusinessHours {
		for _, f := range hourFields {
			out = append(out, fmt.Sprintf("businessHours.%d.%s", i, f))
		}
	}
	for i := range doc.Services {
		for _, f := range serviceFields {
			out = append(out, fmt.Sprintf("services.%d.%s", i, f))
		}
	}
	return out
}

// Lookup resolves path against doc. The boolean is false for paths that do
// not exist, including out-of-range indices. Returned slices are copies.
func Lookup(doc *models.Document, path string) (interface{}, bool) {
	if ref := scalarRef(doc, path); ref != nil {
		return *ref, true
	}

	head, rest := splitHead(path)
	switch head {
	case "address":
		if rest == "" {
			return doc.Address, true
		}
	case "businessHours":
		if rest == "" {
			return append([]models.BusinessHour(nil), doc.BusinessHours...), true
		}
		idx, field, ok := splitIndex(rest, len(doc.BusinessHours))
		if !ok {
			return nil, false
		}
		row := doc.BusinessHours[idx]
		if field == "" {
			return row, true
		}
		if ref := hourRef(&row, field); ref != nil {
			return *ref, true
		}
	case "services":
		if rest == "" {
			return cloneServices(doc.Services), true
		}
		idx, field, ok := splitIndex(rest, len(doc.Services))
		if !ok {
			return nil, false
		}
		svc := doc.Services[idx].Clone()
		switch field {
		case "":
			return svc, true
		case "tags":
			return svc.Tags, true
		case "pricing":
			return svc.Pricing, true
		}
		if ref := serviceRef(&svc, field); ref != nil {
			return *ref, true
		}
	}
	return nil, false
}

// assign writes value at path. Slices reachable from doc are never modified
// in place: list writes clone, modify and replace the whole list.
func assign(doc *models.Document, path string, value interface{}) error {
	if ref := scalarRef(doc, path); ref != nil {
		s, ok := value.(string)
		if !ok {
			return errors.NewInvalidFieldValueError(path, fmt.Sprintf("expected string, got %T", value))
		}
		*ref = s
		return nil
	}

	head, rest := splitHead(path)
	switch head {
	case "address":
		if rest != "" {
			break
		}
		addr, ok := value.(models.Address)
		if !ok {
			return errors.NewInvalidFieldValueError(path, fmt.Sprintf("expected address, got %T", value))
		}
		doc.Address = addr
		return nil

	case "businessHours":
		return assignHours(doc, path, rest, value)

	case "services":
		return assignServices(doc, path, rest, value)
	}

	return errors.NewUnknownPathError(path)
}

func assignHours(doc *models.Document, path, rest string, value interface{}) error {
	if rest == "" {
		hours, ok := value.([]models.BusinessHour)
		if !ok {
			return errors.NewInvalidFieldValueError(path, fmt.Sprintf("expected hours list, got %T", value))
		}
		if err := checkHours(hours); err != nil {
			return errors.NewInvalidFieldValueError(path, err.Error())
		}
		doc.BusinessHours = append([]models.BusinessHour(nil), hours...)
		return nil
	}

	idx, field, ok := splitIndex(rest, len(doc.BusinessHours))
	if !ok {
		return errors.NewUnknownPathError(path)
	}

	hours := append([]models.BusinessHour(nil), doc.BusinessHours...)
	switch field {
	case "":
		row, ok := value.(models.BusinessHour)
		if !ok {
			return errors.NewInvalidFieldValueError(path, fmt.Sprintf("expected hours row, got %T", value))
		}
		if row.Day != hours[idx].Day {
			return errors.NewInvalidFieldValueError(path, "day of week is fixed")
		}
		hours[idx] = row
	case "day":
		return errors.NewInvalidFieldValueError(path, "day of week is fixed")
	default:
		ref := hourRef(&hours[idx], field)
		if ref == nil {
			return errors.NewUnknownPathError(path)
		}
		s, ok := value.(string)
		if !ok {
			return errors.NewInvalidFieldValueError(path, fmt.Sprintf("expected string, got %T", value))
		}
		*ref = s
	}
	doc.BusinessHours = hours
	return nil
}

func assignServices(doc *models.Document, path, rest string, value interface{}) error {
	if rest == "" {
		services, ok := value.([]models.Service)
		if !ok {
			return errors.NewInvalidFieldValueError(path, fmt.Sprintf("expected service list, got %T", value))
		}
		for i, svc := range services {
			if err := checkTags(svc.Tags); err != nil {
				return errors.NewInvalidFieldValueError(fmt.Sprintf("services.%d.tags", i), err.Error())
			}
		}
		doc.Services = cloneServices(services)
		return nil
	}

	idx, field, ok := splitIndex(rest, len(doc.Services))
	if !ok {
		return errors.NewUnknownPathError(path)
	}

	services := cloneServices(doc.Services)
	switch field {
	case "":
		svc, ok := value.(models.Service)
		if !ok {
			return errors.NewInvalidFieldValueError(path, fmt.Sprintf("expected service, got %T", value))
		}
		if err := checkTags(svc.Tags); err != nil {
			return errors.NewInvalidFieldValueError(path, err.Error())
		}
		services[idx] = svc.Clone()
	case "tags":
		tags, ok := value.([]string)
		if !ok {
			return errors.NewInvalidFieldValueError(path, fmt.Sprintf("expected tag list, got %T", value))
		}
		if err := checkTags(tags); err != nil {
			return errors.NewInvalidFieldValueError(path, err.Error())
		}
		services[idx].Tags = append([]string{}, tags...)
	default:
		ref := serviceRef(&services[idx], field)
		if ref == nil {
			return errors.NewUnknownPathError(path)
		}
		s, ok := value.(string)
		if !ok {
			return errors.NewInvalidFieldValueError(path, fmt.Sprintf("expected string, got %T", value))
		}
		*ref = s
	}
	doc.Services = services
	return nil
}

func scalarRef(doc *models.Document, path string) *string {
	switch path {
	case "businessName":
		return &doc.BusinessName
	case "description":
		return &doc.Description
	case "email":
		return &doc.Email
	case "googlePlaceId":
		return &doc.GooglePlaceID
	case "facebookPageId":
		return &doc.FacebookPageID
	case "facebookLink":
		return &doc.FacebookLink
	case "instagramLink":
		return &doc.InstagramLink
	case "whatsappLink":
		return &doc.WhatsappLink
	case "averageRating":
		return &doc.AverageRating
	case "address.buildingName":
		return &doc.Address.BuildingName
	case "address.streetName":
		return &doc.Address.StreetName
	case "address.unitNumber":
		return &doc.Address.UnitNumber
	case "address.postalCode":
		return &doc.Address.PostalCode
	case "address.fullAddress":
		return &doc.Address.FullAddress
	case "address.latitude":
		return &doc.Address.Latitude
	case "address.longitude":
		return &doc.Address.Longitude
	}
	return nil
}

func hourRef(row *models.BusinessHour, field string) *string {
	switch field {
	case "day":
		return &row.Day
	case "openTime":
		return &row.OpenTime
	case "closeTime":
		return &row.CloseTime
	}
	return nil
}

func serviceRef(svc *models.Service, field string) *string {
	switch field {
	case "name":
		return &svc.Name
	case "description":
		return &svc.Description
	case "pricing.price":
		return &svc.Pricing.Price
	case "pricing.currency":
		return &svc.Pricing.Currency
	case "pricing.unit":
		return &svc.Pricing.Unit
	case "pricing.variantName":
		return &svc.Pricing.VariantName
	}
	return nil
}

func splitHead(path string) (string, string) {
	head, rest, _ := strings.Cut(path, ".")
	return head, rest
}

// splitIndex parses "3.field" into (3, "field"), rejecting out-of-range indices.
func splitIndex(rest string, length int) (int, string, bool) {
	idxStr, field, _ := strings.Cut(rest, ".")
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= length {
		return 0, "", false
	}
	return idx, field, true
}

func checkHours(hours []models.BusinessHour) error {
	if len(hours) != len(Weekdays) {
		return fmt.Errorf("business hours must have %d rows, got %d", len(Weekdays), len(hours))
	}
	for i, row := range hours {
		if row.Day != Weekdays[i] {
			return fmt.Errorf("row %d must be %s, got %q", i, Weekdays[i], row.Day)
		}
	}
	return nil
}

func checkTags(tags []string) error {
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			return fmt.Errorf("duplicate tag %q", tag)
		}
		seen[tag] = struct{}{}
	}
	return nil
}

func cloneServices(services []models.Service) []models.Service {
	out := make([]models.Service, len(services))
	for i, svc := range services {
		out[i] = svc.Clone()
	}
	return out
}
