package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreJoinsCategoryNames(t *testing.T) {
	store := NewStore()
	store.SetCategories([]Category{
		{ID: "cat1", Name: "Dessert"},
		{ID: "cat2", Name: "Mains"},
	})
	store.SetRecipes([]Recipe{
		{ID: "r1", Name: "Tiramisu", Categories: []string{"cat1"}},
		{ID: "r2", Name: "Mystery", Categories: []string{"unknown"}},
	})

	recipes := store.Recipes()
	require.Len(t, recipes, 2)
	assert.Equal(t, []string{"Dessert"}, recipes[0].CategoryNames)
	assert.Empty(t, recipes[1].CategoryNames)
}

func TestStoreReJoinsWhenCategoriesArrive(t *testing.T) {
	store := NewStore()

	// Recipes can land before the category list does.
	store.SetRecipes([]Recipe{{ID: "r1", Name: "Tiramisu", Categories: []string{"cat1"}}})

	recipes := store.Recipes()
	require.Len(t, recipes, 1)
	assert.Empty(t, recipes[0].CategoryNames)

	store.SetCategories([]Category{{ID: "cat1", Name: "Dessert"}})

	recipes = store.Recipes()
	assert.Equal(t, []string{"Dessert"}, recipes[0].CategoryNames)
}

func TestStoreRecipeByID(t *testing.T) {
	store := NewStore()
	store.SetRecipes([]Recipe{{ID: "r1", Name: "Tiramisu"}})

	recipe, ok := store.RecipeByID("r1")
	assert.True(t, ok)
	assert.Equal(t, "Tiramisu", recipe.Name)

	_, ok = store.RecipeByID("missing")
	assert.False(t, ok)
}

func TestStoreBookmarks(t *testing.T) {
	store := NewStore()
	store.SetBookmarks([]string{"r1", "r2"})

	assert.True(t, store.IsBookmarked("r1"))
	assert.False(t, store.IsBookmarked("r3"))

	store.AddBookmark("r3")
	store.RemoveBookmark("r1")

	assert.True(t, store.IsBookmarked("r3"))
	assert.False(t, store.IsBookmarked("r1"))
	assert.ElementsMatch(t, []string{"r2", "r3"}, store.BookmarkedIDs())
}

func TestStoreClearSessionDropsBookmarks(t *testing.T) {
	store := NewStore()
	store.SetSession(&Session{Token: "tok", User: User{ID: "u1"}})
	store.SetBookmarks([]string{"r1"})

	store.ClearSession()

	assert.Nil(t, store.Session())
	assert.False(t, store.IsBookmarked("r1"))
}

func TestStoreSessionReturnsCopy(t *testing.T) {
	store := NewStore()
	store.SetSession(&Session{Token: "tok", User: User{ID: "u1"}})

	session := store.Session()
	session.Token = "mutated"

	assert.Equal(t, "tok", store.Session().Token)
}
