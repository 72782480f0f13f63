package form

import (
	"reflect"
	"sort"
	"strings"

	"business-registration/internal/common/validation"
	"business-registration/internal/models"
)

// Registry owns a document and the per-path errors of the latest validation
// pass. It is not safe for concurrent use; the wizard session serializes
// access.
type Registry struct {
	doc    models.Document
	errors map[string]validation.ValidationError
}

func NewRegistry() *Registry {
	return &Registry{
		doc:    NewDocument(),
		errors: make(map[string]validation.ValidationError),
	}
}

// Get returns the value at path, or false when the path does not exist.
func (r *Registry) Get(path string) (interface{}, bool) {
	return Lookup(&r.doc, path)
}

// Set writes value at path. Errors recorded for the path, or for any path
// beneath it whose value changed, are cleared.
func (r *Registry) Set(path string, value interface{}) error {
	before := r.doc
	if err := assign(&r.doc, path, value); err != nil {
		return err
	}
	r.clearChanged(&before, path)
	return nil
}

func (r *Registry) clearChanged(before *models.Document, path string) {
	for key := range r.errors {
		if key != path && !strings.HasPrefix(key, path+".") {
			continue
		}
		oldVal, _ := Lookup(before, key)
		newVal, ok := Lookup(&r.doc, key)
		if !ok || !reflect.DeepEqual(oldVal, newVal) {
			delete(r.errors, key)
		}
	}
}

// ErrorsFor returns the error recorded for path by the latest validation pass.
func (r *Registry) ErrorsFor(path string) (validation.ValidationError, bool) {
	err, ok := r.errors[path]
	return err, ok
}

// Errors returns all recorded errors ordered by path.
func (r *Registry) Errors() []validation.ValidationError {
	out := make([]validation.ValidationError, 0, len(r.errors))
	for _, err := range r.errors {
		out = append(out, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// Apply replaces the errors of every path in scope with those in result.
func (r *Registry) Apply(scope []string, result *validation.ValidationResult) {
	for _, path := range scope {
		delete(r.errors, path)
	}
	if result == nil {
		return
	}
	for _, err := range result.Errors {
		r.errors[err.Field] = err
	}
}

// Document returns a deep copy of the current document.
func (r *Registry) Document() models.Document {
	return r.doc.Clone()
}

// Reset restores the default document and drops all errors.
func (r *Registry) Reset() {
	r.doc = NewDocument()
	r.errors = make(map[string]validation.ValidationError)
}

// Load replaces the whole document, e.g. from a saved draft. The hours and
// tag invariants are checked before anything is written.
func (r *Registry) Load(doc models.Document) error {
	next := NewDocument()
	next.BusinessName = doc.BusinessName
	next.Description = doc.Description
	next.Email = doc.Email
	next.GooglePlaceID = doc.GooglePlaceID
	next.FacebookPageID = doc.FacebookPageID
	next.FacebookLink = doc.FacebookLink
	next.InstagramLink = doc.InstagramLink
	next.WhatsappLink = doc.WhatsappLink
	next.AverageRating = doc.AverageRating
	next.Address = doc.Address

	if len(doc.BusinessHours) > 0 {
		if err := assign(&next, "businessHours", doc.BusinessHours); err != nil {
			return err
		}
	}
	if doc.Services != nil {
		if err := assign(&next, "services", doc.Services); err != nil {
			return err
		}
	}

	r.doc = next
	r.errors = make(map[string]validation.ValidationError)
	return nil
}
