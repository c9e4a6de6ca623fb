package model

import (
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ingredient is one entry of a recipe's ordered ingredient list. Amounts are
// stored for the recipe's base portion count and scaled client-side.
type Ingredient struct {
	Ingredient string  `bson:"ingredient" json:"ingredient" binding:"required"`
	Amount     float64 `bson:"amount" json:"amount" binding:"required,gt=0"`
	Unit       string  `bson:"unit" json:"unit" binding:"required"`
}

// NutritionalValue carries free-form numeric text. The fields are opaque to
// the server: they are stored and returned verbatim, never parsed.
type NutritionalValue struct {
	Kcal          string `bson:"kcal" json:"kcal"`
	Protein       string `bson:"protein" json:"protein"`
	Fat           string `bson:"fat" json:"fat"`
	Carbohydrates string `bson:"carbohydrates" json:"carbohydrates"`
}

// Comment is an append-only entry; no edit or delete is exposed.
type Comment struct {
	UserID  primitive.ObjectID `bson:"user" json:"user"`
	Comment string             `bson:"comment" json:"comment"`
}

// RatingEntry holds one user's rating. A recipe keeps at most one entry per
// user; re-rating replaces the value in place.
type RatingEntry struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Value  int                `bson:"value" json:"value"`
}

type Recipe struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name              string               `bson:"name" json:"name"`
	Ingredients       []Ingredient         `bson:"ingredients" json:"ingredients"`
	Portion           int                  `bson:"portion" json:"portion"`
	NutritionalValues []NutritionalValue   `bson:"nutritionalValues" json:"nutritionalValues"`
	Directions        string               `bson:"directions" json:"directions"`
	Tags              []string             `bson:"tags" json:"tags"`
	Href              string               `bson:"href" json:"href"`
	Time              int                  `bson:"time" json:"time"`
	Comments          []Comment            `bson:"comments" json:"comments"`
	Rating            []RatingEntry        `bson:"rating" json:"rating"`
	Categories        []primitive.ObjectID `bson:"categories" json:"categories"`
	OwnerID           primitive.ObjectID   `bson:"user" json:"user"`
}

// AverageRating returns the mean rating rounded to one decimal place.
// ok is false when the recipe has no ratings; an unrated recipe is distinct
// from one rated zero.
func (r *Recipe) AverageRating() (avg float64, ok bool) {
	if len(r.Rating) == 0 {
		return 0, false
	}
	sum := 0
	for _, e := range r.Rating {
		sum += e.Value
	}
	avg = float64(sum) / float64(len(r.Rating))
	return math.Round(avg*10) / 10, true
}

// NormalizeTags lowercases and trims tags, dropping empties and duplicates.
// Normalization happens at write time so matching never has to care about
// case.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		normalized = append(normalized, t)
	}
	return normalized
}
