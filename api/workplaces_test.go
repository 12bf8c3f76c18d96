/*
workplaces_test.go - Tests for workplace endpoints
*/
package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkplaces_CreateListGet(t *testing.T) {
	// GIVEN: A workplace created without window hours
	// THEN: It persists with the standard Friday 15 / Sunday 5 window and
	//       only its owner can see it

	_, router := newTestRouter(t)

	var created WorkplaceDTO
	rec := doJSON(t, router, http.MethodPost, "/api/workplaces", "u-1", WorkplaceRequest{
		Name: "Cafe", HourlyRate: 55,
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 15, created.ShabbatStartHour)
	assert.Equal(t, 5, created.ShabbatEndHour)

	var listed []WorkplaceDTO
	doJSON(t, router, http.MethodGet, "/api/workplaces", "u-1", nil, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Cafe", listed[0].Name)

	var got WorkplaceDTO
	rec = doJSON(t, router, http.MethodGet, "/api/workplaces/"+created.ID, "u-1", nil, &got)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 55.0, got.HourlyRate)

	// Another user cannot see it.
	rec = doJSON(t, router, http.MethodGet, "/api/workplaces/"+created.ID, "u-2", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkplaces_UpdateRequiresOwnership(t *testing.T) {
	_, router := newTestRouter(t)

	var created WorkplaceDTO
	doJSON(t, router, http.MethodPost, "/api/workplaces", "u-1", WorkplaceRequest{Name: "Cafe"}, &created)

	rec := doJSON(t, router, http.MethodPost, "/api/workplaces", "u-2", WorkplaceRequest{
		ID: created.ID, Name: "Hijacked",
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var updated WorkplaceDTO
	rec = doJSON(t, router, http.MethodPost, "/api/workplaces", "u-1", WorkplaceRequest{
		ID: created.ID, Name: "Cafe North", HourlyRate: 58,
	}, &updated)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Cafe North", updated.Name)
}

func TestWorkplaces_RequiresName(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/workplaces", "u-1", WorkplaceRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
