package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/adityakarchi/recipe-management/internal/domain"
	"github.com/adityakarchi/recipe-management/internal/service/recipe"
)

const (
	mustBeArray  = "must be an array"
	mustBeString = "must be a string"
	invalidJSON  = "invalid JSON"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// recipeRequest is the wire form of a recipe. Ingredients and steps stay raw
// until they are known to be arrays.
type recipeRequest struct {
	Name        string          `json:"name"        validate:"max=255"`
	Description *string         `json:"description" validate:"omitempty,max=5000"`
	PrepTime    *int            `json:"prepTime"    validate:"omitempty,min=0,max=2147483647"`
	CookTime    *int            `json:"cookTime"    validate:"omitempty,min=0,max=2147483647"`
	Servings    *int            `json:"servings"    validate:"omitempty,min=0,max=2147483647"`
	ImageURL    *string         `json:"imageUrl"    validate:"omitempty,max=2048"`
	Ingredients json.RawMessage `json:"ingredients"`
	Steps       json.RawMessage `json:"steps"`
}

type ingredientRequest struct {
	Quantity looseString `json:"quantity" validate:"max=100"`
	Unit     *string     `json:"unit"     validate:"omitempty,max=50"`
	Name     string      `json:"name"     validate:"max=255"`
}

// looseString accepts a JSON string, number or null. Clients send quantities
// like 2 as well as "1/2".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		*s = looseString(n.String())
		return nil
	}
}

// DecodeRecipe reads a recipe payload. It returns either the input for the
// recipe service or the field errors that make the payload unusable.
func DecodeRecipe(r io.Reader) (recipe.RecipeInput, *domain.ValidationError) {
	var req recipeRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return recipe.RecipeInput{}, domain.NewValidationError("body", invalidJSON)
	}

	var missing []domain.FieldError
	if req.Name == "" {
		missing = append(missing, domain.FieldError{Field: "name", Message: "required"})
	}
	if isAbsent(req.Ingredients) {
		missing = append(missing, domain.FieldError{Field: "ingredients", Message: "required"})
	}
	if isAbsent(req.Steps) {
		missing = append(missing, domain.FieldError{Field: "steps", Message: "required"})
	}
	if len(missing) > 0 {
		return recipe.RecipeInput{}, domain.NewValidationErrors(missing)
	}

	var rawIngredients, rawSteps []json.RawMessage
	var shape []domain.FieldError
	if err := json.Unmarshal(req.Ingredients, &rawIngredients); err != nil {
		shape = append(shape, domain.FieldError{Field: "ingredients", Message: mustBeArray})
	}
	if err := json.Unmarshal(req.Steps, &rawSteps); err != nil {
		shape = append(shape, domain.FieldError{Field: "steps", Message: mustBeArray})
	}
	if len(shape) > 0 {
		return recipe.RecipeInput{}, domain.NewValidationErrors(shape)
	}

	var errs []domain.FieldError
	errs = append(errs, structErrors("", req)...)

	input := recipe.RecipeInput{
		Name:        req.Name,
		Description: req.Description,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		ImageURL:    req.ImageURL,
		Ingredients: make([]recipe.IngredientInput, 0, len(rawIngredients)),
		Steps:       make([]string, 0, len(rawSteps)),
	}

	for i, raw := range rawIngredients {
		var ing ingredientRequest
		if err := json.Unmarshal(raw, &ing); err != nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("ingredients[%d]", i), Message: "must be an object"})
			continue
		}
		errs = append(errs, structErrors(fmt.Sprintf("ingredients[%d].", i), ing)...)
		input.Ingredients = append(input.Ingredients, recipe.IngredientInput{
			Quantity: string(ing.Quantity),
			Unit:     ing.Unit,
			Name:     ing.Name,
		})
	}

	for i, raw := range rawSteps {
		var st *string
		if err := json.Unmarshal(raw, &st); err != nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("steps[%d]", i), Message: mustBeString})
			continue
		}
		if st != nil {
			input.Steps = append(input.Steps, *st)
		} else {
			input.Steps = append(input.Steps, "")
		}
	}

	if len(errs) > 0 {
		return recipe.RecipeInput{}, domain.NewValidationErrors(errs)
	}
	return input, nil
}

// isAbsent reports a missing, null, empty-array or empty-string value.
func isAbsent(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) || bytes.Equal(v, []byte(`""`)) {
		return true
	}
	if v[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(v, &items); err == nil && len(items) == 0 {
			return true
		}
	}
	return false
}

// structErrors runs the struct-level rules on v and converts the result into
// field errors named after the JSON keys.
func structErrors(prefix string, v any) []domain.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()}}
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Field: prefix + fe.Field(), Message: ruleMessage(fe)})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("too large (max %s)", fe.Param())
		}
		return fmt.Sprintf("too long (max %s)", fe.Param())
	case "min":
		return "must not be negative"
	default:
		return fe.Tag()
	}
}
