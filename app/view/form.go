package view

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	models "student-performance-dashboard/app/models/analytics"
)

// PredictionForm is the raw prediction input, as posted by the page form or
// as JSON (numbers or numeric strings).
type PredictionForm struct {
	PatScore             models.Scalar `form:"pat_score" json:"pat_score" validate:"required,float"`
	SatScore             models.Scalar `form:"sat_score" json:"sat_score" validate:"required,float"`
	AttendancePercentage models.Scalar `form:"attendance_percentage" json:"attendance_percentage" validate:"required,float"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("float", func(fl validator.FieldLevel) bool {
		_, err := parseNumber(fl.Field().String())
		return err == nil
	})
	return v
}

// FormError lists the fields that did not parse as numbers.
type FormError struct {
	Fields []string
}

func (e *FormError) Error() string {
	return "invalid number in: " + strings.Join(e.Fields, ", ")
}

// ParsePredictionForm checks that the three fields are numbers and converts
// them. Ranges are left to the backend.
func ParsePredictionForm(form PredictionForm) (models.PredictionRequest, error) {
	if err := validate.Struct(form); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return models.PredictionRequest{}, err
		}
		fe := &FormError{}
		for _, v := range verrs {
			fe.Fields = append(fe.Fields, v.Field())
		}
		return models.PredictionRequest{}, fe
	}

	pat, _ := parseNumber(form.PatScore.String())
	sat, _ := parseNumber(form.SatScore.String())
	att, _ := parseNumber(form.AttendancePercentage.String())

	return models.PredictionRequest{
		PatScore:             pat,
		SatScore:             sat,
		AttendancePercentage: att,
	}, nil
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}
