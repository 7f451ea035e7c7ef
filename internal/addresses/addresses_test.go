package addresses_test

import (
	"context"
	"testing"

	"github.com/salonhub/salonhub-go/internal/addresses"
	"github.com/salonhub/salonhub-go/internal/apitest"
	"github.com/salonhub/salonhub-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	srv := apitest.New(t)
	srv.Addresses = []domain.Address{
		{ID: "addr-1", City: "Bengaluru"},
		{ID: "addr-2", City: "Mumbai", IsDefault: true},
	}
	svc := addresses.NewService(srv.Client())

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDefault(t *testing.T) {
	flagged := []domain.Address{
		{ID: "addr-1"},
		{ID: "addr-2", IsDefault: true},
	}
	assert.Equal(t, "addr-2", addresses.Default(flagged).ID)

	unflagged := []domain.Address{
		{ID: "addr-1"},
		{ID: "addr-2"},
	}
	assert.Equal(t, "addr-1", addresses.Default(unflagged).ID, "first address wins when none is flagged")

	assert.Nil(t, addresses.Default(nil))
}
