//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexis-yamamoto/rappa/cmd"
	"github.com/nexis-yamamoto/rappa/midi"
	"github.com/nexis-yamamoto/rappa/model"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "rappa-e2e-*")
	if err != nil {
		panic(err.Error())
	}
	os.Setenv("RAPPA_OUT_DIR", dir)

	exitVal := m.Run()

	os.RemoveAll(dir)
	os.Exit(exitVal)
}

func post(handler func(http.ResponseWriter, *http.Request), path string, body any) *http.Response {
	data, err := json.Marshal(body)
	if err != nil {
		panic(err.Error())
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler(w, req)
	return w.Result()
}

func decode(resp *http.Response, out any) {
	respBody, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(respBody, out); err != nil {
		panic(err.Error())
	}
}

func TestConvertLilypondE2E(t *testing.T) {
	resp := post(cmd.HandleConvert, "/convert", model.ConvertRequestBody{
		Lilypond: "\\relative c' { c4 d e f }",
	})

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var res model.ConvertResponse
	decode(resp, &res)
	assert.NotEmpty(res.Id)
	assert.Equal(res.Events, 4)
	assert.Equal(res.Ticks, uint32(1920))
	assert.Equal(res.BPM, float64(120))

	s, err := midi.ReadFile(res.File)
	assert.NoError(err)
	assert.Equal(len(s.Tracks), 1)

	var ons int
	var ch, key, vel uint8
	for _, evt := range s.Tracks[0] {
		if evt.Message.GetNoteOn(&ch, &key, &vel) {
			ons++
		}
	}
	assert.Equal(ons, 4)
}

func TestConvertRejectsInputWithoutMusicE2E(t *testing.T) {
	resp := post(cmd.HandleConvert, "/convert", model.ConvertRequestBody{
		Lilypond: "just words",
	})

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 400)

	var res model.ErrorResponse
	decode(resp, &res)
	assert.Contains(res.Error, "music")
}

func TestConvertHonorsResolutionE2E(t *testing.T) {
	resp := post(cmd.HandleConvert, "/convert", model.ConvertRequestBody{
		Lilypond:   "{ c'4 }",
		Resolution: 96,
	})

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var res model.ConvertResponse
	decode(resp, &res)
	assert.Equal(res.Ticks, uint32(96))
}

func TestAbcE2E(t *testing.T) {
	resp := post(cmd.HandleAbc, "/abc", model.AbcRequestBody{
		Notation: "C2 D/2 z E",
	})

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var res model.ConvertResponse
	decode(resp, &res)
	assert.Equal(res.Events, 4)
	assert.Equal(res.Ticks, uint32(2160))
	assert.Equal(res.BPM, float64(120))

	_, err := os.Stat(res.File)
	assert.NoError(err)
}

func TestParseE2E(t *testing.T) {
	resp := post(cmd.HandleParse, "/parse", model.ParseRequestBody{
		Notation: "C z2",
	})

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var res []model.ParsedNote
	decode(resp, &res)
	assert.Equal(res, []model.ParsedNote{
		{Token: "C", Rest: false, Frequency: 261.63, Note: 60, DurationMs: 500},
		{Token: "z2", Rest: true, Frequency: 0, Note: 0, DurationMs: 1000},
	})
}

func TestFrequenciesE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/frequencies", nil)
	w := httptest.NewRecorder()
	cmd.HandleFrequencies(w, req)

	resp := w.Result()

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var res map[string]float64
	decode(resp, &res)
	assert.Equal(len(res), 14)
	assert.Equal(res["A"], float64(440))
}
