package client

import (
	"fmt"
	"strconv"
)

// ScaledAmount converts an ingredient amount from the recipe's base portion
// count to the selected one. A base portion of zero or less leaves the
// amount unchanged.
func ScaledAmount(amount float64, basePortion, selectedPortion int) float64 {
	if basePortion <= 0 || selectedPortion <= 0 {
		return amount
	}
	return amount * float64(selectedPortion) / float64(basePortion)
}

// FormatAmount renders an amount with exactly two decimal places.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// Scale returns the recipe's ingredients with amounts scaled to the
// selected portion count. The recipe itself is untouched; scaling is a
// display concern only.
func Scale(recipe Recipe, selectedPortion int) []Ingredient {
	out := make([]Ingredient, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ing.Amount = ScaledAmount(ing.Amount, recipe.Portion, selectedPortion)
		out[i] = ing
	}
	return out
}

// ScaledLabel is a convenience for list rendering, e.g. "250 g flour".
func ScaledLabel(ing Ingredient, basePortion, selectedPortion int) string {
	amount := ScaledAmount(ing.Amount, basePortion, selectedPortion)
	return fmt.Sprintf("%s %s %s", FormatAmount(amount), ing.Unit, ing.Ingredient)
}
