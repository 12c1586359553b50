package view

import (
	"bytes"
	"testing"

	"backendprobe/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLinePlain(t *testing.T) {
	line := StatusLine(models.ConnectionState{IsConnected: true, StatusMessage: "Connected! Status: ok"}, Options{})

	assert.Equal(t, "● Connected! Status: ok", line)
}

func TestStatusLineColor(t *testing.T) {
	connected := StatusLine(models.ConnectionState{IsConnected: true, StatusMessage: "up"}, Options{Color: true})
	failed := StatusLine(models.ConnectionState{StatusMessage: "Connection failed"}, Options{Color: true})

	assert.Equal(t, "\033[32m●\033[0m up", connected)
	assert.Equal(t, "\033[31m●\033[0m Connection failed", failed)
}

func TestStatusLineShowKind(t *testing.T) {
	state := models.ConnectionState{StatusMessage: "Registration failed (status: 409)", Kind: models.KindHTTP}

	assert.Equal(t, "● Registration failed (status: 409) [http]", StatusLine(state, Options{ShowKind: true}))
	assert.Equal(t, "● Connected! Status: ok", StatusLine(models.ConnectionState{IsConnected: true, StatusMessage: "Connected! Status: ok"}, Options{ShowKind: true}))
}

func TestOptionsForBuffer(t *testing.T) {
	assert.Equal(t, Options{}, OptionsFor(&bytes.Buffer{}))
}

func TestRender(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, Render(&out, models.DefaultConnectionState(), Options{}))

	assert.Equal(t, "● Not tested\n", out.String())
}

func TestRenderScreenMasksPassword(t *testing.T) {
	var out bytes.Buffer
	model := Model{
		State: models.ConnectionState{IsConnected: true, StatusMessage: "Registered successfully! Welcome Ann"},
		Form:  models.RegistrationInput{Email: "a@b.com", Password: "secret", Name: "Ann"},
	}

	require.NoError(t, RenderScreen(&out, model, Options{}))

	expected := "Backend Test  ● Connected\n" +
		"  email:    a@b.com\n" +
		"  password: ••••••\n" +
		"  name:     Ann\n" +
		"● Registered successfully! Welcome Ann\n"
	assert.Equal(t, expected, out.String())
	assert.NotContains(t, out.String(), "secret")
}
