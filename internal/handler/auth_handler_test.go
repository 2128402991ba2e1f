package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLoginSucceedsWithConfiguredPair(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodPost, "/api/admin/login",
		LoginRequest{Username: testAdminUser, Password: testAdminPass}, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]bool
	decodeBody(t, rec, &resp)
	assert.True(t, resp["success"])
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodPost, "/api/admin/login",
		LoginRequest{Username: testAdminUser, Password: "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginRejectsMissingFields(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodPost, "/api/admin/login",
		map[string]string{"username": testAdminUser}, false)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRootBanner(t *testing.T) {
	e := setupTest(t)

	rec := doRequest(t, e, http.MethodGet, "/api/", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "working", resp["status"])
}
