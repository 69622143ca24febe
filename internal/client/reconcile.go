package client

import (
	"context"
	"log/slog"

	"github.com/spicelab/recipebox/internal/models"
)

// Reconciler keeps the user's favorites consistent across anonymous and
// signed-in sessions. While anonymous, membership comes from the local
// FavoriteSet. After SignIn the server list is authoritative: local ids
// that the server catalog knows about are pushed up once, then every
// membership test reads the server state.
type Reconciler struct {
	client *Client
	local  *FavoriteSet
	logger *slog.Logger

	signedIn bool
	server   map[string]bool
}

func NewReconciler(c *Client, local *FavoriteSet, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		client: c,
		local:  local,
		logger: logger,
		server: make(map[string]bool),
	}
}

// Recipes returns the catalog to display. The server list comes first;
// sample recipes the server does not know about are appended so the
// catalog is never empty, even fully offline.
func (r *Reconciler) Recipes(ctx context.Context) []models.Recipe {
	return MergeRecipes(r.client.Recipes(ctx), SampleRecipes())
}

// SignIn authenticates, pushes locally marked favorites the server can
// accept, and switches membership to the server's list. Push failures are
// logged and skipped; a recipe the server does not have (a sample-only id,
// or one deleted server-side) simply stays local.
func (r *Reconciler) SignIn(ctx context.Context, email, password string) (models.PublicUser, error) {
	user, err := r.client.Login(ctx, email, password)
	if err != nil {
		return models.PublicUser{}, err
	}
	if err := r.sync(ctx); err != nil {
		return models.PublicUser{}, err
	}
	return user, nil
}

// SignUp registers an account and performs the same reconciliation as SignIn.
func (r *Reconciler) SignUp(ctx context.Context, name, email, password string) (models.PublicUser, error) {
	user, err := r.client.Signup(ctx, name, email, password)
	if err != nil {
		return models.PublicUser{}, err
	}
	if err := r.sync(ctx); err != nil {
		return models.PublicUser{}, err
	}
	return user, nil
}

// SignOut drops the server session. Membership falls back to the local set.
func (r *Reconciler) SignOut() {
	r.client.SetToken("")
	r.signedIn = false
	r.server = make(map[string]bool)
}

func (r *Reconciler) sync(ctx context.Context) error {
	favorites, err := r.client.Favorites(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		known[f.ID.String()] = true
	}

	// Adding is idempotent server-side, so re-pushing an id the server
	// already has is harmless.
	for _, id := range r.local.IDs() {
		if known[id] {
			continue
		}
		updated, err := r.client.AddFavorite(ctx, id)
		if err != nil {
			r.logger.Warn("skipping local favorite during sync", "recipe_id", id, "error", err)
			continue
		}
		known = make(map[string]bool, len(updated))
		for _, f := range updated {
			known[f.ID.String()] = true
		}
	}

	r.server = known
	r.signedIn = true
	return nil
}

// IsFavorite reports membership against whichever side is authoritative.
func (r *Reconciler) IsFavorite(id string) bool {
	if r.signedIn {
		return r.server[id]
	}
	return r.local.Contains(id)
}

// Toggle flips the favorite state of a recipe and reports the new state.
func (r *Reconciler) Toggle(ctx context.Context, id string) (bool, error) {
	if !r.signedIn {
		return r.local.Toggle(id)
	}
	if r.server[id] {
		updated, err := r.client.RemoveFavorite(ctx, id)
		if err != nil {
			return true, err
		}
		r.replaceServer(updated)
		return false, nil
	}
	updated, err := r.client.AddFavorite(ctx, id)
	if err != nil {
		return false, err
	}
	r.replaceServer(updated)
	return true, nil
}

// Favorites lists favorite recipes. Signed in, that is the server's list;
// anonymous, it is the subset of the merged catalog marked locally.
func (r *Reconciler) Favorites(ctx context.Context) ([]models.Recipe, error) {
	if r.signedIn {
		return r.client.Favorites(ctx)
	}
	var out []models.Recipe
	for _, recipe := range r.Recipes(ctx) {
		if r.local.Contains(recipe.ID.String()) {
			out = append(out, recipe)
		}
	}
	return out, nil
}

func (r *Reconciler) replaceServer(list []models.Recipe) {
	r.server = make(map[string]bool, len(list))
	for _, f := range list {
		r.server[f.ID.String()] = true
	}
}
