package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-tools/incident-tracker/models"
	"github.com/helpdesk-tools/incident-tracker/repositories"
)

func TestClientCreate(t *testing.T) {
	srvs, _ := newTestServices(t)
	ctx := context.Background()

	client, err := srvs.Clients.Create(ctx, &models.ClientForm{
		Name:         "  Acme Corp  ",
		Sector:       "Retail",
		ContactEmail: "ops@acme.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", client.Name)
	assert.NotZero(t, client.ID)

	// Blank name is rejected
	_, err = srvs.Clients.Create(ctx, &models.ClientForm{Name: "   "})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	clients, err := srvs.Clients.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestClientUpdateOverwritesAllFields(t *testing.T) {
	srvs, _ := newTestServices(t)
	ctx := context.Background()

	client, err := srvs.Clients.Create(ctx, &models.ClientForm{Name: "Acme Corp", Sector: "Retail"})
	require.NoError(t, err)

	// Edit overwrites unconditionally, including clearing fields
	updated, err := srvs.Clients.Update(ctx, client.ID, &models.ClientForm{Name: "Acme Ltd", Sector: ""})
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", updated.Name)
	assert.Equal(t, "", updated.Sector)

	_, err = srvs.Clients.Update(ctx, 999, &models.ClientForm{Name: "Ghost"})
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestClientDelete(t *testing.T) {
	srvs, _ := newTestServices(t)
	ctx := context.Background()

	client, err := srvs.Clients.Create(ctx, &models.ClientForm{Name: "Acme Corp"})
	require.NoError(t, err)

	require.NoError(t, srvs.Clients.Delete(ctx, client.ID))

	err = srvs.Clients.Delete(ctx, client.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
