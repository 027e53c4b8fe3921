package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
)

func testAccount(id string) marketplace.Account {
	return marketplace.Account{
		SellerID:            id,
		DisplayName:         "shop-" + id,
		LogoURL:             "https://cdn.example.com/" + id + ".png",
		AccessToken:         "access-" + id,
		RefreshToken:        "refresh-" + id,
		AccessTokenExpireAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	cred := testAccount("S1")

	s.Put(cred)

	got, err := s.Get("S1")
	require.NoError(t, err)
	assert.Equal(t, cred, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, marketplace.ErrAccountNotFound)
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	s := NewMemoryStore()
	s.Put(testAccount("S1"))

	replacement := testAccount("S1")
	replacement.AccessToken = "rotated"
	s.Put(replacement)

	got, err := s.Get("S1")
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.AccessToken)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_DeleteIdempotence(t *testing.T) {
	s := NewMemoryStore()
	s.Put(testAccount("S1"))

	assert.True(t, s.Delete("S1"))
	assert.False(t, s.Delete("S1"))

	_, err := s.Get("S1")
	assert.ErrorIs(t, err, marketplace.ErrAccountNotFound)
}

func TestMemoryStore_InsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	for _, id := range []string{"S3", "S1", "S2"} {
		s.Put(testAccount(id))
	}

	// Overwriting must not reorder
	s.Put(testAccount("S3"))

	var ids []string
	for _, a := range s.List() {
		ids = append(ids, a.SellerID)
	}
	assert.Equal(t, []string{"S3", "S1", "S2"}, ids)

	s.Delete("S1")
	ids = ids[:0]
	for _, identity := range s.ListIdentities() {
		ids = append(ids, identity.ID)
	}
	assert.Equal(t, []string{"S3", "S2"}, ids)
}

func TestMemoryStore_IdentitiesOmitSecrets(t *testing.T) {
	s := NewMemoryStore()
	s.Put(testAccount("S1"))
	s.Put(testAccount("S2"))

	for _, identity := range s.ListIdentities() {
		assert.NotEmpty(t, identity.ID)
		assert.NotEmpty(t, identity.DisplayName)
		// AccountIdentity has no token fields by construction; make sure the
		// projection carries only display data
		assert.NotContains(t, identity.LogoURL, "access-")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Put(testAccount(fmt.Sprintf("S%d", n)))
		}(i)
		go func() {
			defer wg.Done()
			_ = s.ListIdentities()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
