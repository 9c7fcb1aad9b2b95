package repos_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"ecoloop/internal/repos"
)

// kv is the surface both backends share.
type kv interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

func exerciseKV(t *testing.T, a, b kv) {
	t.Helper()

	_, ok, err := a.Get("user")
	require.NoError(t, err)
	require.False(t, ok, "missing key must read as absent")

	require.NoError(t, a.Set("user", `{"email":"a@x.in"}`))
	require.NoError(t, a.Set("user", `{"email":"b@x.in"}`))
	v, ok, err := a.Get("user")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"email":"b@x.in"}`, v)

	// sessions do not see each other's keys
	_, ok, err = b.Get("user")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, a.Remove("user"))
	require.NoError(t, a.Remove("user"))
	_, ok, err = a.Get("user")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteLocalStorage(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := repos.NewStorageRepo(db)
	exerciseKV(t, r.For("sid-a"), r.For("sid-b"))
}

func TestRedisLocalStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := repos.NewRedisStorageRepoFromClient(rdb)
	t.Cleanup(func() { _ = r.Close() })

	exerciseKV(t, r.For("sid-a"), r.For("sid-b"))

	require.NoError(t, r.For("sid-a").Set("wishlist", "[3]"))
	require.True(t, mr.Exists("ecoloop:ls:sid-a"))
	require.Equal(t, "[3]", mr.HGet("ecoloop:ls:sid-a", "wishlist"))
}

func TestListingRepoGet(t *testing.T) {
	r := repos.NewListingRepo()
	require.Len(t, r.All(), 8)

	l, ok := r.Get(1)
	require.True(t, ok)
	require.Equal(t, "Dell Latitude 5590 Motherboards", l.Title)

	_, ok = r.Get(99)
	require.False(t, ok)

	seen := map[int]bool{}
	for _, l := range r.All() {
		require.False(t, seen[l.ID], "duplicate id %d", l.ID)
		seen[l.ID] = true
	}
}

func TestSchemaHasNoRedundantSidIndex(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.Get(&n, `SELECT count(*) FROM sqlite_master WHERE type='index' AND name='idx_local_storage_sid'`))
	require.Zero(t, n)
}
