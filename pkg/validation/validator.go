package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Location names are identifiers; underscores stand in for spaces
	namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_'-]*$`)
)

func init() {
	validate = validator.New()

	// Report fields by their YAML names so errors match the dataset file
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("location_name", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// ExtentRecord is the coordinate space locations are placed in
type ExtentRecord struct {
	Width  float64 `yaml:"width" json:"width" validate:"gt=0"`
	Height float64 `yaml:"height" json:"height" validate:"gt=0"`
}

// LocationRecord is one location as written in a dataset file
type LocationRecord struct {
	Name string  `yaml:"name" json:"name" validate:"required,max=64,location_name"`
	X    float64 `yaml:"x" json:"x" validate:"gte=0"`
	Y    float64 `yaml:"y" json:"y" validate:"gte=0"`
	Kind string  `yaml:"kind" json:"kind" validate:"required,oneof=haven town ruin forest mountain city fortress gate hazard pass"`
}

// RouteRecord is one bidirectional route as written in a dataset file
type RouteRecord struct {
	From   string `yaml:"from" json:"from" validate:"required,location_name"`
	To     string `yaml:"to" json:"to" validate:"required,location_name,nefield=From"`
	Danger int    `yaml:"danger" json:"danger" validate:"min=1,max=10"`
	Type   string `yaml:"type" json:"type" validate:"required,oneof=road mountain_pass forest_path hazardous_path dangerous_path"`
}

// DatasetRecord is a complete dataset file
type DatasetRecord struct {
	Name      string           `yaml:"name" json:"name" validate:"required,max=64"`
	Title     string           `yaml:"title" json:"title" validate:"omitempty,max=128"`
	Extent    ExtentRecord     `yaml:"extent" json:"extent"`
	Locations []LocationRecord `yaml:"locations" json:"locations" validate:"required,min=1,max=1000,dive"`
	Routes    []RouteRecord    `yaml:"routes" json:"routes" validate:"max=5000,dive"`
}

// ValidateDataset validates a dataset record's fields. Cross-record
// checks (unknown endpoints, duplicates) happen when the graph is built.
func ValidateDataset(ds *DatasetRecord) error {
	if ds == nil {
		return errors.New("dataset cannot be nil")
	}

	if err := validate.Struct(ds); err != nil {
		return formatValidationError(err)
	}

	for _, loc := range ds.Locations {
		if loc.X > ds.Extent.Width || loc.Y > ds.Extent.Height {
			return fmt.Errorf("locations: %s at (%g, %g) lies outside the %gx%g extent",
				loc.Name, loc.X, loc.Y, ds.Extent.Width, ds.Extent.Height)
		}
	}

	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := fieldPath(e)
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: %q must be one of [%s]", field, e.Value(), param)
		case "nefield":
			return fmt.Errorf("%s: must differ from %s", field, param)
		case "location_name":
			return fmt.Errorf("%s: %q is not a valid location name", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}

// fieldPath drops the root struct name from the namespace,
// e.g. "DatasetRecord.routes[3].danger" becomes "routes[3].danger".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
