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

func TestMessageSave(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, env := post(t, app, "/message", "rahul", "groom",
		MessageInput{Receiver: "priya", Message: "hello"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "success", env.Status)

	var msg model.Message
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Equal(t, "rahul", msg.Sender)
	assert.Equal(t, service.RoomID("rahul", "priya"), msg.RoomID)
	assert.NotEmpty(t, msg.Date)
	assert.NotEmpty(t, msg.Time)
}

func TestMessageSave_EmptyBody(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, _ := post(t, app, "/message", "rahul", "groom",
		MessageInput{Receiver: "priya"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMessageSave_UnknownReceiver(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, _ := post(t, app, "/message", "rahul", "groom",
		MessageInput{Receiver: "ghost", Message: "hello"})
	assert.Equal(t, http.StatusNotFound, code)

	// the rejected message left no row behind
	code, env := get(t, app, "/message?with=ghost", "rahul", "groom")
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Messages []model.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.Messages)
}

func TestMessageList(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	for _, body := range []string{"hi", "how are you"} {
		code, _ := post(t, app, "/message", "rahul", "groom",
			MessageInput{Receiver: "priya", Message: body})
		require.Equal(t, http.StatusOK, code)
	}
	code, _ := post(t, app, "/message", "priya", "bride",
		MessageInput{Receiver: "rahul", Message: "fine"})
	require.Equal(t, http.StatusOK, code)

	// an unrelated conversation stays out of the result
	code, _ = post(t, app, "/message", "anita", "bride",
		MessageInput{Receiver: "vikram", Message: "hello there"})
	require.Equal(t, http.StatusOK, code)

	code, env := get(t, app, "/message?with=priya", "rahul", "groom")
	require.Equal(t, http.StatusOK, code)

	var data struct {
		RoomID   string          `json:"room_id"`
		Messages []model.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, service.RoomID("rahul", "priya"), data.RoomID)
	require.Len(t, data.Messages, 3)
	assert.Equal(t, "hi", data.Messages[0].Body)
	assert.Equal(t, "fine", data.Messages[2].Body)
}

func TestMessageList_LegacyParticipants(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, _ := post(t, app, "/message", "rahul", "groom",
		MessageInput{Receiver: "priya", Message: "hi"})
	require.Equal(t, http.StatusOK, code)

	code, env := get(t, app, "/message?sender=rahul&receiver=priya", "priya", "bride")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", env.Status)

	// a third party cannot read the pair's history
	code, _ = get(t, app, "/message?sender=rahul&receiver=priya", "anita", "bride")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = get(t, app, "/message?sender=rahul", "rahul", "groom")
	assert.Equal(t, http.StatusBadRequest, code)
}
