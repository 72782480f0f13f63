package form

import (
	"fmt"
	"strconv"
	"strings"

	"business-registration/internal/common/validation"
	"business-registration/internal/models"
)

// SetHours changes the opening and closing time of one weekday row.
func (r *Registry) SetHours(day int, openTime, closeTime string) error {
	if day < 0 || day >= len(r.doc.BusinessHours) {
		return fmt.Errorf("day index %d out of range", day)
	}
	hours := append([]models.BusinessHour(nil), r.doc.BusinessHours...)
	hours[day].OpenTime = openTime
	hours[day].CloseTime = closeTime
	return r.Set("businessHours", hours)
}

// AddService appends a blank service and returns its index.
func (r *Registry) AddService() int {
	services := append(cloneServices(r.doc.Services), NewService())
	// Every entry carries a valid tag set, so this cannot fail.
	_ = r.Set("services", services)
	return len(services) - 1
}

// RemoveService drops the service at index. Later services shift down by one
// and their recorded errors move with them. Out-of-range indices are a no-op.
func (r *Registry) RemoveService(index int) bool {
	if index < 0 || index >= len(r.doc.Services) {
		return false
	}

	services := make([]models.Service, 0, len(r.doc.Services)-1)
	for i, svc := range r.doc.Services {
		if i != index {
			services = append(services, svc.Clone())
		}
	}
	// Set would drop the errors of every shifted service, so the errors are
	// re-keyed here and the list goes through assign directly.
	if err := assign(&r.doc, "services", services); err != nil {
		return false
	}
	r.reindexServiceErrors(index)
	return true
}

func (r *Registry) reindexServiceErrors(removed int) {
	shifted := make(map[string]validation.ValidationError, len(r.errors))
	for key, err := range r.errors {
		idx, field, ok := serviceErrorKey(key)
		switch {
		case !ok:
			shifted[key] = err
		case idx == removed:
			// dropped with the service
		case idx > removed:
			newKey := fmt.Sprintf("services.%d%s", idx-1, field)
			err.Field = newKey
			shifted[newKey] = err
		default:
			shifted[key] = err
		}
	}
	r.errors = shifted
}

// serviceErrorKey splits "services.2.pricing.price" into (2, ".pricing.price").
func serviceErrorKey(key string) (int, string, bool) {
	rest, ok := strings.CutPrefix(key, "services.")
	if !ok {
		return 0, "", false
	}
	idxStr, field, hasField := strings.Cut(rest, ".")
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return 0, "", false
	}
	if hasField {
		field = "." + field
	}
	return idx, field, true
}

// AddTag adds tag to the service's tag set. Adding a present tag is a no-op.
func (r *Registry) AddTag(index int, tag string) bool {
	if index < 0 || index >= len(r.doc.Services) {
		return false
	}
	current := r.doc.Services[index].Tags
	for _, t := range current {
		if t == tag {
			return false
		}
	}
	tags := append(append([]string{}, current...), tag)
	return r.Set(fmt.Sprintf("services.%d.tags", index), tags) == nil
}

// RemoveTag removes tag from the service's tag set if present.
func (r *Registry) RemoveTag(index int, tag string) bool {
	if index < 0 || index >= len(r.doc.Services) {
		return false
	}
	current := r.doc.Services[index].Tags
	tags := make([]string, 0, len(current))
	for _, t := range current {
		if t != tag {
			tags = append(tags, t)
		}
	}
	if len(tags) == len(current) {
		return false
	}
	return r.Set(fmt.Sprintf("services.%d.tags", index), tags) == nil
}

// FillFullAddress composes address.fullAddress from the other address parts
// when it is still blank. It reports whether the field was written.
func (r *Registry) FillFullAddress() bool {
	addr := r.doc.Address
	if strings.TrimSpace(addr.FullAddress) != "" {
		return false
	}
	composed := ComposeFullAddress(addr)
	if composed == "" {
		return false
	}
	return r.Set("address.fullAddress", composed) == nil
}

// ComposeFullAddress joins the non-blank parts as
// "<unit> <building>, <street>, <postal code>".
func ComposeFullAddress(addr models.Address) string {
	var parts []string
	first := strings.TrimSpace(strings.Join(nonBlank(addr.UnitNumber, addr.BuildingName), " "))
	if first != "" {
		parts = append(parts, first)
	}
	parts = append(parts, nonBlank(addr.StreetName, addr.PostalCode)...)
	return strings.Join(parts, ", ")
}

func nonBlank(values ...string) []string {
	var out []string
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
