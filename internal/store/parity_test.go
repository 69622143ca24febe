package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spicelab/recipebox/internal/store"
	"github.com/spicelab/recipebox/internal/testhelpers"
)

// The relational and document backends must be indistinguishable through the
// Store interface, so both run the exact same contract suite.

func TestPostgresStoreContract(t *testing.T) {
	testStoreContract(t, func(t *testing.T) store.Store {
		return store.NewGormStore(testhelpers.SetupPostgres(t))
	})
}

func TestMongoStoreContract(t *testing.T) {
	testStoreContract(t, func(t *testing.T) store.Store {
		ms := store.NewMongoStore(testhelpers.SetupMongo(t))
		require.NoError(t, ms.EnsureIndexes(context.Background()))
		return ms
	})
}
