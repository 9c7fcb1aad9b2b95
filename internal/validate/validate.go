package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reSort  = regexp.MustCompile(`^(recent|price-low|price-high)$`)
	reType  = regexp.MustCompile(`^(all|scrap|refurb)$`)
)

const maxQ = 50

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	_ = val.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "buyer" || s == "seller"
	})
	return val
}

// Struct runs tag validation. The returned error lists the offending fields.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return FieldErrors(ve)
	}
	return err
}

// FieldErrors names every field that failed, in declaration order.
type FieldErrors validator.ValidationErrors

func (fe FieldErrors) Error() string {
	names := make([]string, 0, len(fe))
	for _, e := range fe {
		names = append(names, strings.ToLower(e.Field())+":"+e.Tag())
	}
	return "invalid fields: " + strings.Join(names, ", ")
}

func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for _, e := range fe {
		out = append(out, strings.ToLower(e.Field()))
	}
	return out
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q caps a search string. It is deliberately not trimmed: a query with a
// leading space only matches titles containing that space.
func Q(s string) string {
	if utf8.RuneCountInString(s) <= maxQ {
		return s
	}
	return string([]rune(s)[:maxQ])
}

// ListingID parses a positive integer listing id.
func ListingID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Qty parses a wizard quantity; anything unparsable or below 1 becomes 1.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Sort falls back to recent for unknown modes.
func Sort(s string) string {
	if reSort.MatchString(s) {
		return s
	}
	return "recent"
}

func ListingType(s string) string {
	if reType.MatchString(s) {
		return s
	}
	return "all"
}

// Selector returns s when it is one of the offered options, else "all".
func Selector(s string, options []string) string {
	for _, o := range options {
		if s == o {
			return s
		}
	}
	return "all"
}

// Bool accepts the usual checkbox encodings.
func Bool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// LocalRedirect accepts only same-site absolute paths. Anything else,
// including protocol-relative URLs, becomes "/".
func LocalRedirect(s string) string {
	if s == "" || !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, `/\`) {
		return "/"
	}
	if strings.ContainsAny(s, "\r\n") {
		return "/"
	}
	return s
}
