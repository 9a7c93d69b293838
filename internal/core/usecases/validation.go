package usecases

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/samirrijal/locainsight/internal/core/domain"
)

// recordSchema is the shape every element of a model reply must satisfy.
type recordSchema struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,wgs84_lat"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,wgs84_lon"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("wgs84_lat", func(fl validator.FieldLevel) bool {
		return domain.ValidLatitude(fl.Field().Float())
	})
	_ = v.RegisterValidation("wgs84_lon", func(fl validator.FieldLevel) bool {
		return domain.ValidLongitude(fl.Field().Float())
	})
	return v
}

// ValidateRecommendations parses a JSON payload and checks it record by
// record. Any violation rejects the whole payload; no partial list is
// returned. Errors are *domain.GenerationError.
func ValidateRecommendations(raw []byte) ([]domain.Recommendation, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, schemaError(&domain.ValidationError{Msg: "Response data must be an array"})
		}
		return nil, &domain.GenerationError{Reason: "parse", Err: err}
	}
	if len(elems) == 0 {
		return nil, schemaError(&domain.ValidationError{Msg: "No recommendations found"})
	}

	recs := make([]domain.Recommendation, 0, len(elems))
	for i, elem := range elems {
		rec, err := validateRecord(i+1, elem)
		if err != nil {
			return nil, schemaError(err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// validateRecord reads only the exact lower-case keys. encoding/json matches
// struct fields case-insensitively, so the element is split into a map first.
func validateRecord(index int, elem json.RawMessage) (domain.Recommendation, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil || fields == nil {
		return domain.Recommendation{}, &domain.ValidationError{
			Index: index,
			Msg:   fmt.Sprintf("Invalid recommendation %d", index),
		}
	}

	var r recordSchema
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"name", &r.Name},
		{"description", &r.Description},
		{"address", &r.Address},
	} {
		if raw, ok := fields[f.key]; ok {
			if err := json.Unmarshal(raw, f.dst); err != nil {
				return domain.Recommendation{}, &domain.ValidationError{Index: index, Field: f.key}
			}
		}
	}
	for _, f := range []struct {
		key string
		dst **float64
	}{
		{"latitude", &r.Latitude},
		{"longitude", &r.Longitude},
	} {
		if raw, ok := fields[f.key]; ok {
			if err := json.Unmarshal(raw, f.dst); err != nil {
				return domain.Recommendation{}, &domain.ValidationError{Index: index, Field: f.key}
			}
		}
	}

	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return domain.Recommendation{}, &domain.ValidationError{Index: index, Field: fieldErrs[0].Field()}
		}
		return domain.Recommendation{}, fmt.Errorf("validate recommendation %d: %w", index, err)
	}

	return domain.Recommendation{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}, nil
}

func schemaError(err error) error {
	return &domain.GenerationError{Reason: "schema", Err: err}
}
