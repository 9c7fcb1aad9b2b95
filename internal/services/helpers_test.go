package services_test

import (
	"bytes"
	"errors"
	"log"
	"testing"
)

// memStorage is an in-memory services.Storage.
type memStorage struct {
	kv     map[string]string
	writes int
}

func newMem() *memStorage { return &memStorage{kv: map[string]string{}} }

func (m *memStorage) Get(k string) (string, bool, error) {
	v, ok := m.kv[k]
	return v, ok, nil
}

func (m *memStorage) Set(k, v string) error {
	m.writes++
	m.kv[k] = v
	return nil
}

func (m *memStorage) Remove(k string) error {
	delete(m.kv, k)
	return nil
}

var errDown = errors.New("storage down")

type brokenStorage struct{}

func (brokenStorage) Get(string) (string, bool, error) { return "", false, errDown }
func (brokenStorage) Set(string, string) error         { return errDown }
func (brokenStorage) Remove(string) error              { return errDown }

// captureLog redirects the standard logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldW := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(oldW) })
	return &buf
}
