package client

import "context"

// App ties the API client to the state store: it keeps the caches fresh,
// persists the session across restarts, and applies bookmark toggles
// optimistically with rollback on failure.
type App struct {
	api         *Client
	state       *Store
	sessionPath string
}

func NewApp(api *Client, state *Store, sessionPath string) *App {
	return &App{api: api, state: state, sessionPath: sessionPath}
}

func (a *App) State() *Store { return a.state }

// Restore loads a persisted session, if any, and fetches the user's
// bookmarks. It must run before the first bookmark read so saved recipes
// survive a restart. A missing session file leaves the app signed out.
func (a *App) Restore(ctx context.Context) error {
	session, err := LoadSession(a.sessionPath)
	if err != nil {
		if err == ErrNoSession {
			return nil
		}
		return err
	}
	a.api.SetToken(session.Token)
	a.state.SetSession(session)
	return a.RefreshBookmarks(ctx)
}

// Login authenticates, persists the session, and loads the user's
// bookmarks.
func (a *App) Login(ctx context.Context, email, password string) error {
	session, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return a.beginSession(ctx, session)
}

// Register creates an account and signs the new user in.
func (a *App) Register(ctx context.Context, firstname, lastname, email, password string) error {
	session, err := a.api.Register(ctx, firstname, lastname, email, password)
	if err != nil {
		return err
	}
	return a.beginSession(ctx, session)
}

func (a *App) beginSession(ctx context.Context, session *Session) error {
	a.state.SetSession(session)
	if err := SaveSession(a.sessionPath, session); err != nil {
		return err
	}
	return a.RefreshBookmarks(ctx)
}

// Logout clears the session in memory and on disk.
func (a *App) Logout() error {
	a.api.SetToken("")
	a.state.ClearSession()
	return ClearSessionFile(a.sessionPath)
}

func (a *App) RefreshRecipes(ctx context.Context) error {
	recipes, err := a.api.Recipes(ctx)
	if err != nil {
		return err
	}
	a.state.SetRecipes(recipes)
	return nil
}

func (a *App) RefreshCategories(ctx context.Context) error {
	categories, err := a.api.Categories(ctx)
	if err != nil {
		return err
	}
	a.state.SetCategories(categories)
	return nil
}

func (a *App) RefreshBookmarks(ctx context.Context) error {
	saved, err := a.api.Saved(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, len(saved))
	for i, r := range saved {
		ids[i] = r.ID
	}
	a.state.SetBookmarks(ids)
	return nil
}

// ToggleBookmark flips the bookmark state for a recipe. The store is
// updated before the request so the UI reacts immediately; if the server
// rejects the change the previous state is restored.
func (a *App) ToggleBookmark(ctx context.Context, recipeID string) error {
	wasBookmarked := a.state.IsBookmarked(recipeID)

	if wasBookmarked {
		a.state.RemoveBookmark(recipeID)
		if err := a.api.UnsaveRecipe(ctx, recipeID); err != nil {
			a.state.AddBookmark(recipeID)
			return err
		}
		return nil
	}

	a.state.AddBookmark(recipeID)
	if err := a.api.SaveRecipe(ctx, recipeID); err != nil {
		a.state.RemoveBookmark(recipeID)
		return err
	}
	return nil
}
