package ai

import (
	"context"
	"errors"
	"slices"
)

// fakeProvider hands out fakeRemoteSessions and records the configs they were created with
type fakeProvider struct {
	configs    []SessionConfig
	sessions   []*fakeRemoteSession
	newErr     error
	historyErr error
}

func (fp *fakeProvider) Name() string  { return "Fake" }
func (fp *fakeProvider) Model() string { return "fake-model" }

func (fp *fakeProvider) NewSession(_ context.Context, config SessionConfig) (RemoteSession, error) {
	if fp.newErr != nil {
		return nil, fp.newErr
	}
	fp.configs = append(fp.configs, config)
	s := &fakeRemoteSession{historyErr: fp.historyErr}
	fp.sessions = append(fp.sessions, s)
	return s, nil
}

func (fp *fakeProvider) current() *fakeRemoteSession {
	return fp.sessions[len(fp.sessions)-1]
}

// fakeRemoteSession echoes messages back unless sendErr is set
type fakeRemoteSession struct {
	sent       []string
	history    []Entry
	sendErr    error
	historyErr error
	panicValue any
}

func (frs *fakeRemoteSession) SendMessage(_ context.Context, message string) (string, error) {
	if frs.panicValue != nil {
		panic(frs.panicValue)
	}
	frs.sent = append(frs.sent, message)
	if frs.sendErr != nil {
		return "", frs.sendErr
	}
	reply := "echo: " + message
	frs.history = append(frs.history, Entry{Role: RoleUser, Content: message}, Entry{Role: RoleModel, Content: reply})
	return reply, nil
}

func (frs *fakeRemoteSession) History(_ context.Context) ([]Entry, error) {
	if frs.historyErr != nil {
		return nil, frs.historyErr
	}
	history := slices.Clone(frs.history)
	if history == nil {
		history = []Entry{}
	}
	return history, nil
}

var errFake = errors.New("connection refused")
