package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/tinyapp/internal/infrastructure/memory"
	"github.com/ErlanBelekov/tinyapp/internal/password"
	"github.com/ErlanBelekov/tinyapp/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDemo_SeedsUsersAndLinks(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	links := memory.NewLinkRepository()
	h := password.NewHasher(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, seed.Demo(ctx, users, links, h, logger))

	u, err := users.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "RhJsk8", u.ID)
	assert.NoError(t, h.Verify(u.HashedPassword, "purple-monkey-dinosaur"))

	owned, err := links.ListByOwner(ctx, "hjfg45")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "9sm5xK", owned[0].ShortCode)
	assert.Equal(t, "http://www.google.com", owned[0].LongURL)

	// Running again is a no-op.
	require.NoError(t, seed.Demo(ctx, users, links, h, logger))
	n, err := links.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
