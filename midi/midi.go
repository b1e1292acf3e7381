// Package midi wraps standard MIDI file I/O for the rest of the repo.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadFile loads and parses a standard MIDI file.
func ReadFile(path string) (s *smf.SMF, e error) {
	// the reader panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file %v: %w", path, err)
	}
	return res, nil
}

// WriteFile writes s to path as a standard MIDI file.
func WriteFile(s *smf.SMF, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating midi file: %w", err)
	}
	defer f.Close()
	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("writing midi file %v: %w", path, err)
	}
	return nil
}

// WriteTemp writes s to a fresh temporary .mid file and returns its path.
// The file is removed again if the write fails.
func WriteTemp(s *smf.SMF) (string, error) {
	f, err := os.CreateTemp("", "rappa-*.mid")
	if err != nil {
		return "", fmt.Errorf("creating temp midi file: %w", err)
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing midi file %v: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
