package user

import (
	"context"
	"math"
	"testing"

	"github.com/kuba-04/task-manager-rest-demo/database"
	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepository opens a repository on an in-memory SQLite database.
func setupTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := database.Open(":memory:", false, &Record{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	return NewRepository(db)
}

// Both stores must behave the same way.
func storeImplementations(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()

	return map[string]func(t *testing.T) Store{
		"memory": func(*testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store { return setupTestRepository(t) },
	}
}

func seedUsers(t *testing.T, store Store) []*domain.User {
	t.Helper()

	users := []*domain.User{
		newUser(t, "Alice", "Smith", "alice@example.com"),
		newUser(t, "Bob", "Smithson", "bob@example.org"),
		newUser(t, "Carol", "Jones", "carol@example.com"),
		newUser(t, "alina", "Novak", "ALINA@EXAMPLE.NET"),
	}
	for _, u := range users {
		require.NoError(t, store.Save(context.Background(), u))
	}
	return users
}

func TestStore_SaveAndFind(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			u := newUser(t, "Alice", "Smith", "alice@example.com")

			require.NoError(t, store.Save(ctx, u))

			found, ok, err := store.FindByID(ctx, u.ID())
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, u.ID(), found.ID())
			assert.Equal(t, "Alice", found.FirstName())
			assert.Equal(t, "Smith", found.LastName())
			assert.Equal(t, "alice@example.com", found.Email())

			exists, err := store.ExistsByID(ctx, u.ID())
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestStore_FindMissing(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, ok, err := store.FindByID(ctx, domain.NewID())
			require.NoError(t, err)
			assert.False(t, ok)

			exists, err := store.ExistsByID(ctx, domain.NewID())
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			u := newUser(t, "Alice", "Smith", "alice@example.com")
			require.NoError(t, store.Save(ctx, u))

			renamed, err := domain.New(u.ID(), "Alicia", "Smith", "alicia@example.com")
			require.NoError(t, err)
			require.NoError(t, store.Save(ctx, renamed))

			found, ok, err := store.FindByID(ctx, u.ID())
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Alicia", found.FirstName())
			assert.Equal(t, "alicia@example.com", found.Email())

			result, err := store.FindBySearchParams(ctx, SearchParams{}, page.Request{Size: 10})
			require.NoError(t, err)
			assert.EqualValues(t, 1, result.TotalCount)
		})
	}
}

func TestStore_DeleteByID(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			users := seedUsers(t, store)

			require.NoError(t, store.DeleteByID(ctx, users[1].ID()))
			require.NoError(t, store.DeleteByID(ctx, domain.NewID()))

			_, ok, err := store.FindByID(ctx, users[1].ID())
			require.NoError(t, err)
			assert.False(t, ok)

			result, err := store.FindBySearchParams(ctx, SearchParams{}, page.Request{Size: 10})
			require.NoError(t, err)
			assert.EqualValues(t, 3, result.TotalCount)
		})
	}
}

func TestStore_FindBySearchParams(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			users := seedUsers(t, store)
			carolID := users[2].ID()

			tests := []struct {
				name   string
				params SearchParams
				want   []string
			}{
				{name: "no filters", params: SearchParams{}, want: []string{"Alice", "Bob", "Carol", "alina"}},
				{name: "first name substring ignores case", params: SearchParams{FirstName: "ALI"}, want: []string{"Alice", "alina"}},
				{name: "last name substring", params: SearchParams{LastName: "smith"}, want: []string{"Alice", "Bob"}},
				{name: "email substring", params: SearchParams{Email: "example.com"}, want: []string{"Alice", "Carol"}},
				{name: "filters combine", params: SearchParams{LastName: "smith", Email: ".org"}, want: []string{"Bob"}},
				{name: "by id", params: SearchParams{ID: &carolID}, want: []string{"Carol"}},
				{name: "no match", params: SearchParams{FirstName: "zed"}, want: []string{}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					result, err := store.FindBySearchParams(ctx, tt.params, page.Request{Size: 10})
					require.NoError(t, err)

					names := make([]string, 0, len(result.Items))
					for _, u := range result.Items {
						names = append(names, u.FirstName())
					}
					assert.Equal(t, tt.want, names)
					assert.EqualValues(t, len(tt.want), result.TotalCount)
				})
			}
		})
	}
}

func TestStore_FindBySearchParams_Paging(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			seedUsers(t, store)

			first, err := store.FindBySearchParams(ctx, SearchParams{}, page.Request{Index: 0, Size: 3})
			require.NoError(t, err)
			require.Len(t, first.Items, 3)
			assert.EqualValues(t, 4, first.TotalCount)
			assert.Equal(t, 0, first.PageIndex)
			assert.Equal(t, 3, first.PageSize)

			second, err := store.FindBySearchParams(ctx, SearchParams{}, page.Request{Index: 1, Size: 3})
			require.NoError(t, err)
			require.Len(t, second.Items, 1)
			assert.Equal(t, "alina", second.Items[0].FirstName())

			beyond, err := store.FindBySearchParams(ctx, SearchParams{}, page.Request{Index: 5, Size: 3})
			require.NoError(t, err)
			assert.Empty(t, beyond.Items)
			assert.EqualValues(t, 4, beyond.TotalCount)
		})
	}
}

func TestStore_FindBySearchParams_PageEdges(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			seedUsers(t, store)

			tests := []struct {
				name string
				req  page.Request
			}{
				{name: "negative index", req: page.Request{Index: -1, Size: 3}},
				{name: "zero size", req: page.Request{Index: 0, Size: 0}},
				{name: "negative size", req: page.Request{Index: 1, Size: -1}},
				{name: "overflowing offset", req: page.Request{Index: math.MaxInt / 10, Size: 20}},
				{name: "largest index", req: page.Request{Index: math.MaxInt, Size: 1}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					result, err := store.FindBySearchParams(ctx, SearchParams{}, tt.req)
					require.NoError(t, err)
					assert.NotNil(t, result.Items)
					assert.Empty(t, result.Items)
					assert.EqualValues(t, 4, result.TotalCount)
				})
			}
		})
	}
}

func TestStore_FindBySearchParams_LiteralWildcards(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			for _, u := range []*domain.User{
				newUser(t, "Ann", "O_Brien", "ann_o@example.com"),
				newUser(t, "Joe", "OXBrien", "joe.x@example.com"),
				newUser(t, "Max", "100%", "max@example.com"),
				newUser(t, "Eve", "1000", "eve@example.com"),
			} {
				require.NoError(t, store.Save(ctx, u))
			}

			tests := []struct {
				name   string
				params SearchParams
				want   []string
			}{
				{name: "underscore in last name", params: SearchParams{LastName: "o_b"}, want: []string{"Ann"}},
				{name: "underscore in email", params: SearchParams{Email: "_"}, want: []string{"Ann"}},
				{name: "percent", params: SearchParams{LastName: "0%"}, want: []string{"Max"}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					result, err := store.FindBySearchParams(ctx, tt.params, page.Request{Size: 10})
					require.NoError(t, err)

					names := make([]string, 0, len(result.Items))
					for _, u := range result.Items {
						names = append(names, u.FirstName())
					}
					assert.Equal(t, tt.want, names)
				})
			}
		})
	}
}
