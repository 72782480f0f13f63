package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Rule Set Tests
// ==========================

func newTestRuleSet(t *testing.T) *RuleSet {
	t.Helper()
	rs, err := NewRuleSet(map[string]Rule{
		"name": {
			Tag:     "required,min=2",
			Message: "Name must be at least 2 characters.",
		},
		"email": {Tag: "required,email"},
		"rating": {
			Tag: "omitempty,float_text,float_between=0 5",
			Messages: map[string]string{
				"float_text":    "Rating must be a number.",
				"float_between": "Rating must be between 0 and 5.",
			},
		},
		"items.*.opens": {Tag: "required,clock_time"},
		"items.*.tags":  {Tag: "unique"},
		"link":          {Tag: "omitempty,url"},
	})
	require.NoError(t, err)
	return rs
}

func TestRuleSet_Check(t *testing.T) {
	rs := newTestRuleSet(t)

	tests := []struct {
		name     string
		path     string
		value    interface{}
		wantCode string
		wantMsg  string
	}{
		{"empty name", "name", "", CodeRequired, "Name must be at least 2 characters."},
		{"short name", "name", "A", CodeMinLength, "Name must be at least 2 characters."},
		{"valid name", "name", "Ab", "", ""},
		{"bad email", "email", "not-an-email", CodeInvalidFormat, "Please enter a valid email address."},
		{"valid email", "email", "owner@example.com", "", ""},
		{"empty rating is absent", "rating", "", "", ""},
		{"rating not a number", "rating", "abc", CodeMalformedInput, "Rating must be a number."},
		{"rating NaN", "rating", "NaN", CodeMalformedInput, "Rating must be a number."},
		{"rating too high", "rating", "5.5", CodeOutOfRange, "Rating must be between 0 and 5."},
		{"rating boundary", "rating", "5", "", ""},
		{"clock with seconds", "items.3.opens", "09:00:00", "", ""},
		{"clock without seconds", "items.0.opens", "18:30", "", ""},
		{"clock invalid", "items.0.opens", "25:00:00", CodeInvalidFormat, "Time must use HH:MM:SS format."},
		{"duplicate tags", "items.1.tags", []string{"Math", "Math"}, CodeDuplicateValue, "Values must not repeat."},
		{"distinct tags", "items.1.tags", []string{"Math", "Physics"}, "", ""},
		{"malformed link", "link", "not a url", CodeMalformedInput, "Please enter a valid URL."},
		{"empty link", "link", "", "", ""},
		{"no rule", "googlePlaceId", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rs.Check(tt.path, tt.value)
			if tt.wantCode == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.path, got.Field)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestPathPattern(t *testing.T) {
	assert.Equal(t, "services.*.pricing.price", PathPattern("services.12.pricing.price"))
	assert.Equal(t, "businessHours.*.openTime", PathPattern("businessHours.0.openTime"))
	assert.Equal(t, "address.latitude", PathPattern("address.latitude"))
}

func TestParseDecimal(t *testing.T) {
	f, err := ParseDecimal(" 1.3521 ")
	require.NoError(t, err)
	assert.InDelta(t, 1.3521, f, 1e-9)

	for _, bad := range []string{"", "  ", "1,5", "12abc", "Inf", "NaN"} {
		_, err := ParseDecimal(bad)
		assert.Error(t, err, bad)
	}
}

// ==========================
// JSON Schema Tests
// ==========================

const testSchema = `{
  "type": "object",
  "required": ["name", "address"],
  "properties": {
    "name": {"type": "string"},
    "address": {
      "type": "object",
      "required": ["latitude"],
      "properties": {"latitude": {"type": "number"}}
    }
  }
}`

func TestJSONSchema_Validate(t *testing.T) {
	schema, err := CompileSchema(testSchema)
	require.NoError(t, err)

	ok, err := schema.Validate(map[string]interface{}{
		"name":    "Acme",
		"address": map[string]interface{}{"latitude": 1.35},
	})
	require.NoError(t, err)
	assert.True(t, ok.Valid)

	bad, err := schema.Validate(map[string]interface{}{
		"address": map[string]interface{}{"latitude": "north"},
	})
	require.NoError(t, err)
	assert.False(t, bad.Valid)
	assert.True(t, bad.HasErrors("name"))
	assert.True(t, bad.HasErrors("address.latitude"))
	assert.Len(t, bad.GetErrorMessages(), 2)
}

func TestCompileSchema_Invalid(t *testing.T) {
	_, err := CompileSchema(`{"type": 12}`)
	assert.Error(t, err)
}

func TestValidationResult_Helpers(t *testing.T) {
	res := NewResult([]ValidationError{
		{Field: "email", Message: "bad", Code: CodeInvalidFormat},
		{Field: "businessName", Message: "short", Code: CodeMinLength},
	})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"businessName", "email"}, res.Fields())
	assert.Len(t, res.GetErrorsForField("email"), 1)
	assert.Empty(t, res.GetErrorsForField("description"))
	assert.True(t, NewResult(nil).Valid)
}
