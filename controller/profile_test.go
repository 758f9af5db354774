package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"matrimony-service/model"
	"matrimony-service/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCard_OwnerOnly(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, env := get(t, app, "/profile/groom/rahul", "rahul", "groom")
	require.Equal(t, http.StatusOK, code)

	var card service.ProfileCard
	require.NoError(t, json.Unmarshal(env.Data, &card))
	assert.Equal(t, "rahul", card.Profile.Username)
	assert.Len(t, card.Candidates, 2)

	// another user's card stays closed
	code, _ = get(t, app, "/profile/bride/priya", "rahul", "groom")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestProfileCard_KindMustMatchClaim(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	// the same username exists in both pools; owning it as a bride grants
	// nothing over the groom of the same name
	_, err := svc.CreateProfile(model.KindBride, service.ProfileInput{
		FullName: "Bride Rahul", Username: "rahul", Password: "other",
	})
	require.NoError(t, err)

	code, _ := get(t, app, "/profile/groom/rahul", "rahul", "bride")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := get(t, app, "/profile/bride/rahul", "rahul", "bride")
	require.Equal(t, http.StatusOK, code)
	var card service.ProfileCard
	require.NoError(t, json.Unmarshal(env.Data, &card))
	assert.Equal(t, "Bride Rahul", card.Profile.FullName)
}

func TestProfileFull_OppositeKindOnly(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, env := get(t, app, "/profile/bride/priya/full", "rahul", "groom")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", env.Status)

	// same-kind browsing is closed
	code, _ = get(t, app, "/profile/bride/priya/full", "anita", "bride")
	assert.Equal(t, http.StatusUnauthorized, code)
}
