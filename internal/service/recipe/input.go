package recipe

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/adityakarchi/recipe-management/internal/domain"
)

const (
	maxNameLen        = 255
	maxDescriptionLen = 5000
	maxImageURLLen    = 2048
	maxQuantityLen    = 100
	maxUnitLen        = 50
	maxInstructionLen = 5000

	// maxCounter is the largest value the INT columns for prep time, cook
	// time and servings can hold.
	maxCounter = math.MaxInt32
)

// RecipeInput holds a recipe as submitted by a client. It is used for both
// create and full-replace update.
type RecipeInput struct {
	Name        string
	Description *string
	PrepTime    *int
	CookTime    *int
	Servings    *int
	ImageURL    *string
	Ingredients []IngredientInput
	Steps       []string
}

// IngredientInput is one submitted ingredient line.
type IngredientInput struct {
	Quantity string
	Unit     *string
	Name     string
}

// Validate checks all fields and collects all errors. Lines with a blank name
// and blank steps do not count towards the required minimum of one each.
func (i *RecipeInput) Validate(maxIngredients, maxSteps int) error {
	var errs []domain.FieldError

	switch {
	case domain.CleanText(i.Name) == "":
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	case utf8.RuneCountInString(i.Name) > maxNameLen:
		errs = append(errs, domain.FieldError{Field: "name", Message: tooLong(maxNameLen)})
	}

	if i.Description != nil && utf8.RuneCountInString(*i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: tooLong(maxDescriptionLen)})
	}
	if i.ImageURL != nil && len(*i.ImageURL) > maxImageURLLen {
		errs = append(errs, domain.FieldError{Field: "imageUrl", Message: tooLong(maxImageURLLen)})
	}
	errs = appendCounter(errs, "prepTime", i.PrepTime)
	errs = appendCounter(errs, "cookTime", i.CookTime)
	errs = appendCounter(errs, "servings", i.Servings)

	kept := 0
	for idx, ing := range i.Ingredients {
		ingName := domain.CleanText(ing.Name)
		if ingName == "" {
			continue
		}
		kept++
		if utf8.RuneCountInString(ingName) > maxNameLen {
			errs = append(errs, domain.FieldError{Field: fieldIndex("ingredients", idx, "name"), Message: tooLong(maxNameLen)})
		}
		if utf8.RuneCountInString(ing.Quantity) > maxQuantityLen {
			errs = append(errs, domain.FieldError{Field: fieldIndex("ingredients", idx, "quantity"), Message: tooLong(maxQuantityLen)})
		}
		if ing.Unit != nil && utf8.RuneCountInString(*ing.Unit) > maxUnitLen {
			errs = append(errs, domain.FieldError{Field: fieldIndex("ingredients", idx, "unit"), Message: tooLong(maxUnitLen)})
		}
	}
	switch {
	case kept == 0:
		errs = append(errs, domain.FieldError{Field: "ingredients", Message: "required"})
	case kept > maxIngredients:
		errs = append(errs, domain.FieldError{Field: "ingredients", Message: fmt.Sprintf("too many (max %d)", maxIngredients)})
	}

	keptSteps := 0
	for idx, st := range i.Steps {
		if strings.TrimSpace(st) == "" {
			continue
		}
		keptSteps++
		if utf8.RuneCountInString(st) > maxInstructionLen {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("steps[%d]", idx), Message: tooLong(maxInstructionLen)})
		}
	}
	switch {
	case keptSteps == 0:
		errs = append(errs, domain.FieldError{Field: "steps", Message: "required"})
	case keptSteps > maxSteps:
		errs = append(errs, domain.FieldError{Field: "steps", Message: fmt.Sprintf("too many (max %d)", maxSteps)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// toRecipe builds the aggregate to persist. Text is stored as submitted;
// only ingredient names are trimmed, since they key the shared dictionary.
// Blank optionals and zero counters become NULL, blank-named lines and blank
// steps are dropped. Step positions are assigned by NumberSteps over the
// kept steps only.
func (i *RecipeInput) toRecipe() *domain.Recipe {
	rec := &domain.Recipe{
		Name:        i.Name,
		Description: domain.NullIfBlank(i.Description),
		PrepTime:    domain.NullIfZero(i.PrepTime),
		CookTime:    domain.NullIfZero(i.CookTime),
		Servings:    domain.NullIfZero(i.Servings),
		ImageURL:    domain.NullIfBlank(i.ImageURL),
	}

	for _, ing := range i.Ingredients {
		name := domain.CleanText(ing.Name)
		if name == "" {
			continue
		}
		rec.Ingredients = append(rec.Ingredients, domain.IngredientLine{
			Name:     name,
			Quantity: ing.Quantity,
			Unit:     domain.NullIfBlank(ing.Unit),
		})
	}

	var instructions []string
	for _, st := range i.Steps {
		if strings.TrimSpace(st) != "" {
			instructions = append(instructions, st)
		}
	}
	rec.Steps = domain.NumberSteps(0, instructions)

	return rec
}

func appendCounter(errs []domain.FieldError, field string, v *int) []domain.FieldError {
	switch {
	case v == nil:
	case *v < 0:
		errs = append(errs, domain.FieldError{Field: field, Message: "must not be negative"})
	case *v > maxCounter:
		errs = append(errs, domain.FieldError{Field: field, Message: tooLarge(maxCounter)})
	}
	return errs
}

func tooLarge(limit int) string {
	return fmt.Sprintf("too large (max %d)", limit)
}

func tooLong(limit int) string {
	return fmt.Sprintf("too long (max %d)", limit)
}

func fieldIndex(prefix string, idx int, field string) string {
	return fmt.Sprintf("%s[%d].%s", prefix, idx, field)
}
