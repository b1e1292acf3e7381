package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/nexis-yamamoto/rappa/abc"
	"github.com/nexis-yamamoto/rappa/constants"
	"github.com/nexis-yamamoto/rappa/ly"
	"github.com/nexis-yamamoto/rappa/midi"
	"github.com/nexis-yamamoto/rappa/model"
	"github.com/nexis-yamamoto/rappa/timeline"
)

var serveAddr string
var serveOutDir string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveOutDir, "out-dir", "", "directory for converted .mid files (default $RAPPA_OUT_DIR or ./out)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the converter over HTTP",
	Long:  `Serves the converter over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// outDir resolves the artifact directory: the --out-dir flag when given,
// otherwise the environment fallback. Resolved per request so tests can
// redirect it.
func outDir() string {
	if serveOutDir != "" {
		return serveOutDir
	}
	return constants.GetOutDir()
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func readBody(w http.ResponseWriter, r *http.Request, input any) bool {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body: "+err.Error())
		return false
	}
	if err := json.Unmarshal(reqBody, input); err != nil {
		writeError(w, 400, "could not unmarshal request body: "+err.Error())
		return false
	}
	return true
}

// respondWithFile stores the rendered file under a fresh uuid name and
// answers with its location and timeline stats.
func respondWithFile(w http.ResponseWriter, s *smf.SMF, events []timeline.Event, bpm float64) {
	dir := outDir()
	if err := os.MkdirAll(dir, 0777); err != nil {
		writeError(w, 500, "could not create output dir: "+err.Error())
		return
	}
	id := uuid.New().String()
	path := filepath.Join(dir, id+".mid")
	if err := midi.WriteFile(s, path); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	json.NewEncoder(w).Encode(model.ConvertResponse{
		Id:     id,
		File:   path,
		Events: len(events),
		Ticks:  timeline.Length(events),
		BPM:    bpm,
	})
}

// HandleConvert turns LilyPond notation into a stored .mid file.
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	var input model.ConvertRequestBody
	if !readBody(w, r, &input) {
		return
	}

	events, bpm, err := ly.Events(input.Lilypond, ly.Options{
		Tempo:      input.Tempo,
		Resolution: input.Resolution,
	})
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	s := timeline.NewSMF(events, timeline.Options{
		Resolution: input.Resolution,
		Tempo:      bpm,
		TrackName:  constants.LilyPondTrackName,
	})
	respondWithFile(w, s, events, bpm)
}

// HandleAbc turns ABC notation into a stored .mid file.
func HandleAbc(w http.ResponseWriter, r *http.Request) {
	var input model.AbcRequestBody
	if !readBody(w, r, &input) {
		return
	}

	notes := abc.Parse(input.Notation, abc.Options{})
	events := abc.ToEvents(notes, input.Resolution)
	s := timeline.NewSMF(events, timeline.Options{
		Resolution: input.Resolution,
		TrackName:  constants.AbcTrackName,
	})
	respondWithFile(w, s, events, constants.DefaultTempo)
}

// HandleParse answers with the parsed form of each ABC token.
func HandleParse(w http.ResponseWriter, r *http.Request) {
	var input model.ParseRequestBody
	if !readBody(w, r, &input) {
		return
	}

	notes := abc.Parse(input.Notation, abc.Options{})
	res := make([]model.ParsedNote, 0, len(notes))
	for _, n := range notes {
		pn := model.ParsedNote{Token: n.Token, Rest: n.Rest, DurationMs: n.Duration.Milliseconds()}
		if !n.Rest {
			pn.Frequency = n.Frequency
			pn.Note = abc.NoteNumber(n.Frequency)
		}
		res = append(res, pn)
	}
	json.NewEncoder(w).Encode(res)
}

// HandleFrequencies answers with the note frequency table.
func HandleFrequencies(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(abc.Frequencies)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/abc", HandleAbc).Methods("POST")
	router.HandleFunc("/parse", HandleParse).Methods("POST")
	router.HandleFunc("/frequencies", HandleFrequencies).Methods("GET")

	handler := cors.Default().Handler(router)
	fmt.Printf("listening on %v\n", serveAddr)
	log.Fatal(http.ListenAndServe(serveAddr, handler))
}
