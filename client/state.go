package client

import "sync"

// Store is the client-side application state: recipe and category caches,
// the signed-in session, and the set of bookmarked recipe ids. All reads
// return copies so callers can never mutate the cache in place.
type Store struct {
	mu         sync.RWMutex
	recipes    []EnrichedRecipe
	categories []Category
	session    *Session
	bookmarks  map[string]struct{}
}

func NewStore() *Store {
	return &Store{bookmarks: make(map[string]struct{})}
}

// SetRecipes replaces the recipe cache and re-joins category names from the
// current category cache.
func (s *Store) SetRecipes(recipes []Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = enrich(recipes, s.categories)
}

// SetCategories replaces the category cache and re-joins names into the
// cached recipes so both views stay consistent.
func (s *Store) SetCategories(categories []Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]Category(nil), categories...)

	plain := make([]Recipe, len(s.recipes))
	for i, r := range s.recipes {
		plain[i] = r.Recipe
	}
	s.recipes = enrich(plain, s.categories)
}

func (s *Store) Recipes() []EnrichedRecipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]EnrichedRecipe(nil), s.recipes...)
}

func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Category(nil), s.categories...)
}

// RecipeByID returns the cached recipe, or ok=false on a cache miss;
// callers fall back to fetching the detail view.
func (s *Store) RecipeByID(id string) (EnrichedRecipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return EnrichedRecipe{}, false
}

func (s *Store) SetSession(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session == nil {
		s.session = nil
		return
	}
	clone := *session
	s.session = &clone
}

func (s *Store) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	clone := *s.session
	return &clone
}

// ClearSession drops the signed-in user and their bookmarks.
func (s *Store) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.bookmarks = make(map[string]struct{})
}

// SetBookmarks replaces the bookmark set with the server's view.
func (s *Store) SetBookmarks(recipeIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks = make(map[string]struct{}, len(recipeIDs))
	for _, id := range recipeIDs {
		s.bookmarks[id] = struct{}{}
	}
}

func (s *Store) AddBookmark(recipeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks[recipeID] = struct{}{}
}

func (s *Store) RemoveBookmark(recipeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookmarks, recipeID)
}

func (s *Store) IsBookmarked(recipeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bookmarks[recipeID]
	return ok
}

func (s *Store) BookmarkedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.bookmarks))
	for id := range s.bookmarks {
		ids = append(ids, id)
	}
	return ids
}

func enrich(recipes []Recipe, categories []Category) []EnrichedRecipe {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	out := make([]EnrichedRecipe, len(recipes))
	for i, r := range recipes {
		er := EnrichedRecipe{Recipe: r}
		for _, id := range r.Categories {
			if name, ok := names[id]; ok {
				er.CategoryNames = append(er.CategoryNames, name)
			}
		}
		out[i] = er
	}
	return out
}
