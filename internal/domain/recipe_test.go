package domain

import (
	"testing"
	"time"
)

func TestNumberSteps_Contiguous(t *testing.T) {
	t.Parallel()

	steps := NumberSteps(7, []string{"mix", "bake", "cool"})

	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	for i, s := range steps {
		if s.Position != i+1 {
			t.Errorf("steps[%d].Position = %d, want %d", i, s.Position, i+1)
		}
		if s.RecipeID != 7 {
			t.Errorf("steps[%d].RecipeID = %d, want 7", i, s.RecipeID)
		}
	}
	if steps[1].Instruction != "bake" {
		t.Errorf("steps[1].Instruction = %q, want %q", steps[1].Instruction, "bake")
	}
}

func TestNumberSteps_Empty(t *testing.T) {
	t.Parallel()

	if got := NumberSteps(1, nil); len(got) != 0 {
		t.Fatalf("expected no steps, got %d", len(got))
	}
}

func TestRecipe_SummaryAndInstructions(t *testing.T) {
	t.Parallel()

	desc := "crunchy"
	servings := 2
	now := time.Now()
	r := Recipe{
		ID:          3,
		Name:        "Toast",
		Description: &desc,
		Servings:    &servings,
		CreatedAt:   now.Add(-time.Hour),
		UpdatedAt:   now,
		Steps: []Step{
			{Position: 1, Instruction: "Slice bread"},
			{Position: 2, Instruction: "Toast it"},
		},
	}

	s := r.Summary()
	if s.ID != 3 || s.Name != "Toast" || s.Description != &desc || s.Servings != &servings {
		t.Errorf("unexpected summary: %+v", s)
	}
	if !s.UpdatedAt.Equal(now) {
		t.Errorf("summary UpdatedAt = %v, want %v", s.UpdatedAt, now)
	}

	got := r.Instructions()
	if len(got) != 2 || got[0] != "Slice bread" || got[1] != "Toast it" {
		t.Errorf("Instructions() = %v", got)
	}
}
