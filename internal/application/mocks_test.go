package application

import (
	"context"
	"sync"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

// --- Mock implementations ---

// mockCredentialStore is an in-memory driven.CredentialStore.
type mockCredentialStore struct {
	mu      sync.Mutex
	values  map[string]string
	getErr  error
	setErr  error
	delErr  error
	sets    int
	deletes int
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{values: make(map[string]string)}
}

func (m *mockCredentialStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.values[key], nil
}

func (m *mockCredentialStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockCredentialStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.values, key)
	return nil
}

// mockGenerator records every prompt it receives.
type mockGenerator struct {
	mu          sync.Mutex
	text        string
	err         error
	prompts     []string
	credentials []model.Credential
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, cred model.Credential) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.credentials = append(m.credentials, cred)
	return m.text, m.err
}

func (m *mockGenerator) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

const testAPIKey = "AIzaSyTestKey0123456789abcdef"
