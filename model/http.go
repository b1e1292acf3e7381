package model

type ConvertRequestBody struct {
	Lilypond   string  `json:"lilypond"`
	Tempo      float64 `json:"tempo,omitempty"`
	Resolution uint16  `json:"resolution,omitempty"`
}

type AbcRequestBody struct {
	Notation   string `json:"notation"`
	Resolution uint16 `json:"resolution,omitempty"`
}

type ConvertResponse struct {
	Id     string  `json:"id"`
	File   string  `json:"file"`
	Events int     `json:"events"`
	Ticks  uint32  `json:"ticks"`
	BPM    float64 `json:"bpm"`
}

type ParseRequestBody struct {
	Notation string `json:"notation"`
}

type ParsedNote struct {
	Token      string  `json:"token"`
	Rest       bool    `json:"rest"`
	Frequency  float64 `json:"frequency"`
	Note       int     `json:"note"`
	DurationMs int64   `json:"duration_ms"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
