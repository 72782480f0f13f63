package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Rule binds a validator tag chain to the messages shown when it fails.
type Rule struct {
	Tag      string
	Message  string
	Messages map[string]string
}

// RuleSet validates single values addressed by dotted paths. Numeric path
// segments are matched by "*" in rule patterns.
type RuleSet struct {
	validate *validator.Validate
	rules    map[string]Rule
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

func NewRuleSet(rules map[string]Rule) (*RuleSet, error) {
	v := validator.New()

	custom := map[string]validator.Func{
		"float_text":    validateFloatText,
		"float_between": validateFloatBetween,
		"clock_time":    validateClockTime,
		"notblank":      validators.NotBlank,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}

	rs := &RuleSet{validate: v, rules: make(map[string]Rule, len(rules))}
	for pattern, rule := range rules {
		rs.rules[pattern] = rule
	}
	return rs, nil
}

// Check validates value against the rule for path. A path without a rule is
// always valid.
func (rs *RuleSet) Check(path string, value interface{}) *ValidationError {
	rule, ok := rs.rules[PathPattern(path)]
	if !ok || rule.Tag == "" {
		return nil
	}

	err := rs.validate.Var(value, rule.Tag)
	if err == nil {
		return nil
	}

	tag := ""
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		tag = fieldErrs[0].Tag()
	}

	return &ValidationError{
		Field:   path,
		Message: rule.messageFor(tag),
		Code:    codeForTag(tag),
	}
}

func (r Rule) messageFor(tag string) string {
	if msg, ok := r.Messages[tag]; ok {
		return msg
	}
	if r.Message != "" {
		return r.Message
	}
	return defaultMessage(tag)
}

func codeForTag(tag string) string {
	switch tag {
	case "required", "notblank":
		return CodeRequired
	case "min":
		return CodeMinLength
	case "url", "float_text":
		return CodeMalformedInput
	case "float_between":
		return CodeOutOfRange
	case "unique":
		return CodeDuplicateValue
	default:
		return CodeInvalidFormat
	}
}

func defaultMessage(tag string) string {
	switch tag {
	case "required", "notblank":
		return "This field is required."
	case "min":
		return "This field is too short."
	case "email":
		return "Please enter a valid email address."
	case "url":
		return "Please enter a valid URL."
	case "float_text":
		return "Please enter a number."
	case "float_between":
		return "Value is out of range."
	case "clock_time":
		return "Time must use HH:MM:SS format."
	case "unique":
		return "Values must not repeat."
	default:
		return "Invalid value."
	}
}

// PathPattern replaces numeric segments with "*":
// "services.3.pricing.price" -> "services.*.pricing.price".
func PathPattern(path string) string {
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		if _, err := strconv.Atoi(seg); err == nil {
			segments[i] = "*"
		}
	}
	return strings.Join(segments, ".")
}

// ParseDecimal converts user-typed numeric text to a finite float64.
func ParseDecimal(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", text)
	}
	return f, nil
}

func validateFloatText(fl validator.FieldLevel) bool {
	_, err := ParseDecimal(fl.Field().String())
	return err == nil
}

// float_between=<lo> <hi>, inclusive.
func validateFloatBetween(fl validator.FieldLevel) bool {
	bounds := strings.Fields(fl.Param())
	if len(bounds) != 2 {
		return false
	}
	lo, errLo := strconv.ParseFloat(bounds[0], 64)
	hi, errHi := strconv.ParseFloat(bounds[1], 64)
	if errLo != nil || errHi != nil {
		return false
	}
	f, err := ParseDecimal(fl.Field().String())
	if err != nil {
		return false
	}
	return f >= lo && f <= hi
}

func validateClockTime(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}
