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

func TestSLACreateCoercesMinutes(t *testing.T) {
	srvs, _ := newTestServices(t)
	ctx := context.Background()

	sla, err := srvs.SLAs.Create(ctx, &models.SLAForm{
		Name:               "Gold",
		TargetResponseMins: "30",
		TargetResolveMins:  "abc", // non-numeric input silently defaults
	})
	require.NoError(t, err)
	assert.Equal(t, 30, sla.TargetResponseMins)
	assert.Equal(t, 0, sla.TargetResolveMins)

	_, err = srvs.SLAs.Create(ctx, &models.SLAForm{Name: ""})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSLAUpdateReparsesMinutes(t *testing.T) {
	srvs, _ := newTestServices(t)
	ctx := context.Background()

	sla, err := srvs.SLAs.Create(ctx, &models.SLAForm{Name: "Gold", TargetResponseMins: "30"})
	require.NoError(t, err)

	updated, err := srvs.SLAs.Update(ctx, sla.ID, &models.SLAForm{
		Name:               "Gold Plus",
		TargetResponseMins: "xyz",
		TargetResolveMins:  "120",
	})
	require.NoError(t, err)
	assert.Equal(t, "Gold Plus", updated.Name)
	assert.Equal(t, 0, updated.TargetResponseMins)
	assert.Equal(t, 120, updated.TargetResolveMins)

	_, err = srvs.SLAs.Update(ctx, 999, &models.SLAForm{Name: "Ghost"})
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestSLADelete(t *testing.T) {
	srvs, _ := newTestServices(t)
	ctx := context.Background()

	sla, err := srvs.SLAs.Create(ctx, &models.SLAForm{Name: "Gold"})
	require.NoError(t, err)

	require.NoError(t, srvs.SLAs.Delete(ctx, sla.ID))
	assert.True(t, errors.Is(srvs.SLAs.Delete(ctx, sla.ID), repositories.ErrNotFound))
}
