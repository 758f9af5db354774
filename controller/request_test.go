package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSend(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, env := post(t, app, "/request/send", "rahul", "groom",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", env.Status)

	// duplicate in either direction conflicts
	code, _ = post(t, app, "/request/send", "rahul", "groom",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = post(t, app, "/request/send", "priya", "bride",
		RequestInput{Sender: "priya", Receiver: "rahul"})
	assert.Equal(t, http.StatusConflict, code)
}

func TestRequestSend_CallerMustBeSender(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, env := post(t, app, "/request/send", "anita", "bride",
		RequestInput{Sender: "priya", Receiver: "rahul"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "error", env.Status)
}

func TestRequestSend_UnknownReceiver(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, _ := post(t, app, "/request/send", "rahul", "groom",
		RequestInput{Sender: "rahul", Receiver: "ghost"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRequestSend_MissingFields(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, _ := post(t, app, "/request/send", "rahul", "groom",
		RequestInput{Sender: "rahul"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRequestApprove(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, _ := post(t, app, "/request/send", "rahul", "groom",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	require.Equal(t, http.StatusOK, code)

	// the sender cannot approve their own request
	code, _ = post(t, app, "/request/approve", "rahul", "groom",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := post(t, app, "/request/approve", "priya", "bride",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", env.Status)

	// a second approve finds nothing waiting
	code, _ = post(t, app, "/request/approve", "priya", "bride",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRequestCancel_SenderOnly(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, _ := post(t, app, "/request/send", "rahul", "groom",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	require.Equal(t, http.StatusOK, code)

	code, _ = post(t, app, "/request/cancel", "priya", "bride",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = post(t, app, "/request/cancel", "rahul", "groom",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	assert.Equal(t, http.StatusOK, code)
}

func TestRequestDelete_ParticipantsOnly(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, _ := post(t, app, "/request/send", "rahul", "groom",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	require.Equal(t, http.StatusOK, code)
	code, _ = post(t, app, "/request/approve", "priya", "bride",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	require.Equal(t, http.StatusOK, code)

	code, _ = post(t, app, "/request/delete", "anita", "bride",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	assert.Equal(t, http.StatusUnauthorized, code)

	// the receiver is a participant and may unlink
	code, _ = post(t, app, "/request/delete", "priya", "bride",
		RequestInput{Sender: "rahul", Receiver: "priya"})
	assert.Equal(t, http.StatusOK, code)
}

func TestRequestStatus(t *testing.T) {
	app := newTestApp(t)
	seedCouple(t)

	code, env := get(t, app, "/request/status?candidate=priya", "rahul", "groom")
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Status string `json:"status"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "None", data.Status)
	assert.Equal(t, "None", data.Role)

	post(t, app, "/request/send", "rahul", "groom",
		RequestInput{Sender: "rahul", Receiver: "priya"})

	code, env = get(t, app, "/request/status?candidate=rahul", "priya", "bride")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Waiting", data.Status)
	assert.Equal(t, "Receiver", data.Role)

	code, _ = get(t, app, "/request/status", "rahul", "groom")
	assert.Equal(t, http.StatusBadRequest, code)
}
