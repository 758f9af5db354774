package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"matrimony-service/model"
	"matrimony-service/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileQuery(t *testing.T) {
	q, ok := parseProfileQuery("show me brides from pune age 24 to 28")
	require.True(t, ok)
	assert.Equal(t, model.KindBride, q.kind)
	assert.Equal(t, "Pune", q.city)
	assert.Equal(t, 24, q.ageMin)
	assert.Equal(t, 28, q.ageMax)

	// single age collapses the range
	q, ok = parseProfileQuery("grooms from new delhi age 30")
	require.True(t, ok)
	assert.Equal(t, model.KindGroom, q.kind)
	assert.Equal(t, "New Delhi", q.city)
	assert.Equal(t, 30, q.ageMin)
	assert.Equal(t, 30, q.ageMax)

	_, ok = parseProfileQuery("what is the meaning of life")
	assert.False(t, ok)

	_, ok = parseProfileQuery("brides from pune")
	assert.False(t, ok)
}

func TestChatbot_ProfileQuery(t *testing.T) {
	app := newTestApp(t)

	dob := time.Date(time.Now().Year()-25, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	_, err := svc.CreateProfile(model.KindBride, service.ProfileInput{
		FullName: "Priya Sharma", Username: "priya", Password: "p",
		City: "Pune", DateOfBirth: dob, Profession: "Engineer",
	})
	require.NoError(t, err)

	code, env := post(t, app, "/chatbot", "rahul", "groom",
		ChatbotInput{Message: "brides from pune age 20 to 30"})
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Contains(t, data.Reply, "Priya Sharma")
	assert.Contains(t, data.Reply, "Pune")
}

func TestChatbot_NoMatches(t *testing.T) {
	app := newTestApp(t)

	code, env := post(t, app, "/chatbot", "rahul", "groom",
		ChatbotInput{Message: "brides from chennai age 20 to 30"})
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Contains(t, data.Reply, "No brides found")
}

func TestChatbot_Fallback(t *testing.T) {
	app := newTestApp(t)

	code, env := post(t, app, "/chatbot", "rahul", "groom",
		ChatbotInput{Message: "tell me a joke"})
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Contains(t, data.Reply, "couldn't understand")
}
