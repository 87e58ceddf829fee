package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"avtovybor/internal/domain"
	"avtovybor/internal/quote"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// User-facing messages are Russian, matching the site.
const (
	MsgAllFields = "Заполните все поля."
	MsgYear      = "Укажите корректный год выпуска (от 1980 до 2025)."
	MsgMileage   = "Укажите корректный пробег (от 0 до 10 000 000 км)."
	MsgPhone     = "Введите корректный номер телефона."
	MsgEmail     = "Укажите корректный email."
	MsgPassword  = "Пароль должен содержать от 8 до 72 символов."
)

// Error is a rejected input. Message is safe to show to the user.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Field + ": " + e.Message }

// TradeInInput is the raw trade-in payload. Year and Mileage are pointers so
// an absent number is told apart from zero.
type TradeInInput struct {
	Make      string `json:"make" form:"make" validate:"required"`
	Model     string `json:"model" form:"model" validate:"required"`
	Year      *int   `json:"year" form:"year" validate:"required,gte=1980,lte=2025"`
	Mileage   *int   `json:"mileage" form:"mileage" validate:"required,gte=0,lte=10000000"`
	Phone     string `json:"phone" form:"phone" validate:"required,min=10"`
	UserEmail string `json:"userEmail" form:"userEmail" validate:"required"`
}

var structs = newValidator()

// newValidator reports fields by their JSON names so errors match the wire.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// TradeIn checks every field and returns the normalized request, or the first
// failing field in declaration order.
func TradeIn(in TradeInInput) (domain.TradeInRequest, error) {
	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	in.Phone = strings.TrimSpace(in.Phone)
	in.UserEmail = strings.TrimSpace(in.UserEmail)

	if err := structs.Struct(in); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			return domain.TradeInRequest{}, fieldError(ves[0])
		}
		return domain.TradeInRequest{}, &Error{Field: "request", Message: MsgAllFields}
	}
	return domain.TradeInRequest{
		Make:      in.Make,
		Model:     in.Model,
		Year:      *in.Year,
		Mileage:   *in.Mileage,
		Phone:     in.Phone,
		UserEmail: in.UserEmail,
	}, nil
}

func fieldError(fe validator.FieldError) *Error {
	field := fe.Field()
	if fe.Tag() == "required" {
		return &Error{Field: field, Message: MsgAllFields}
	}
	switch fe.StructField() {
	case "Year":
		return &Error{Field: field, Message: MsgYear}
	case "Mileage":
		return &Error{Field: field, Message: MsgMileage}
	case "Phone":
		return &Error{Field: field, Message: MsgPhone}
	}
	return &Error{Field: field, Message: MsgAllFields}
}

// Year parses a form value and checks the accepted range.
func Year(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1980 || n > 2025 {
		return 0, &Error{Field: "year", Message: MsgYear}
	}
	return n, nil
}

// Mileage parses a form value; non-numeric or out-of-range input is rejected.
func Mileage(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > quote.MaxMileage {
		return 0, &Error{Field: "mileage", Message: MsgMileage}
	}
	return n, nil
}

// Phone only enforces a minimum length; format is not checked.
func Phone(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < 10 {
		return "", &Error{Field: "phone", Message: MsgPhone}
	}
	return s, nil
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces the bcrypt-compatible length window.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 72
}

// ID accepts catalog slugs such as "volvo-xc90".
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}
