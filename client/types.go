// Package client is a Go client for the cookbook API. It pairs a typed HTTP
// client with an explicit application-state store that caches server
// responses and applies optimistic bookmark updates.
package client

// Ingredient mirrors the server's wire format; Amount is for the recipe's
// base portion count and scaled for display with Scale.
type Ingredient struct {
	Ingredient string  `json:"ingredient"`
	Amount     float64 `json:"amount"`
	Unit       string  `json:"unit"`
}

// NutritionalValue fields are free-form text end to end; the client never
// parses them either.
type NutritionalValue struct {
	Kcal          string `json:"kcal"`
	Protein       string `json:"protein"`
	Fat           string `json:"fat"`
	Carbohydrates string `json:"carbohydrates"`
}

type Comment struct {
	User    string `json:"user"`
	Author  string `json:"author,omitempty"`
	Comment string `json:"comment"`
}

type RatingEntry struct {
	User  string `json:"user"`
	Value int    `json:"value"`
}

type Recipe struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Ingredients       []Ingredient       `json:"ingredients"`
	Portion           int                `json:"portion"`
	NutritionalValues []NutritionalValue `json:"nutritionalValues"`
	Directions        string             `json:"directions"`
	Tags              []string           `json:"tags"`
	Href              string             `json:"href"`
	Time              int                `json:"time"`
	Comments          []Comment          `json:"comments"`
	Rating            []RatingEntry      `json:"rating"`
	Categories        []string           `json:"categories"`
	User              string             `json:"user"`
	Owner             string             `json:"owner,omitempty"`
	AverageRating     *float64           `json:"averageRating,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Session is the persisted identity: the bearer token plus the display
// fields the UI needs before any fetch completes.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// EnrichedRecipe is a recipe joined with the names of its categories,
// recomputed whenever either cache changes.
type EnrichedRecipe struct {
	Recipe
	CategoryNames []string `json:"categoryNames"`
}
