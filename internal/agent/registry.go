// Package agent maintains the persona registry: the named system prompts a
// conversation can be seeded with.
package agent

import (
	"encoding/json"
	"sort"
	"strings"

	"chatapp/internal/models"
	"chatapp/internal/store"
)

// DefaultAgentID is the persona every fresh install starts on and the one
// the UI falls back to when the active persona is deleted.
const DefaultAgentID = "default"

// ValidationError reports a rejected agent save. The operation leaves the
// registry untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid agent " + e.Field + ": " + e.Reason
}

// ProtectedAgentError reports an attempt to delete a default agent.
type ProtectedAgentError struct {
	ID string
}

func (e *ProtectedAgentError) Error() string {
	return "agent " + e.ID + " is a default agent and cannot be deleted"
}

func defaultAgents() map[string]models.Agent {
	return map[string]models.Agent{
		"default": {
			ID:           "default",
			Name:         "General Assistant",
			SystemPrompt: "You are a helpful assistant.",
			Icon:         "robot",
			IsDefault:    true,
		},
		"coder": {
			ID:           "coder",
			Name:         "Code Expert",
			SystemPrompt: "You are an expert programmer. Provide detailed code examples and explanations when asked about programming topics.",
			Icon:         "code",
			IsDefault:    true,
		},
		"creative": {
			ID:           "creative",
			Name:         "Creative Writer",
			SystemPrompt: "You are a creative writing assistant. Help with storytelling, poetry, and creative content.",
			Icon:         "pen",
			IsDefault:    true,
		},
		"teacher": {
			ID:           "teacher",
			Name:         "Educational Tutor",
			SystemPrompt: "You are an educational tutor. Explain concepts clearly and provide examples to help with learning.",
			Icon:         "graduation",
			IsDefault:    true,
		},
	}
}

// Registry holds the agent set and writes the full snapshot to the store on
// every mutation.
type Registry struct {
	store  *store.Store
	agents map[string]models.Agent
}

// Load reads the registry snapshot, seeding the default personas when the
// store has never been written.
func Load(st *store.Store) (*Registry, error) {
	r := &Registry{store: st}

	raw, ok, err := st.Get(store.KeyAgents)
	if err != nil {
		return nil, err
	}
	if !ok {
		r.agents = defaultAgents()
		if err := r.persist(); err != nil {
			return nil, err
		}
		return r, nil
	}

	if err := json.Unmarshal([]byte(raw), &r.agents); err != nil {
		return nil, err
	}
	if len(r.agents) == 0 {
		r.agents = defaultAgents()
		if err := r.persist(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Get returns the agent for id.
func (r *Registry) Get(id string) (models.Agent, bool) {
	a, ok := r.agents[id]
	return a, ok
}

// List returns all agents, defaults first, each group sorted by name.
func (r *Registry) List() []models.Agent {
	out := make([]models.Agent, 0, len(r.agents))
	for _, a := range r.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Upsert creates or updates an agent. The IsDefault flag of an existing
// entry is preserved; new entries are never default.
func (r *Registry) Upsert(id, name, systemPrompt, icon string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return &ValidationError{Field: "systemPrompt", Reason: "must not be empty"}
	}

	isDefault := false
	if existing, ok := r.agents[id]; ok {
		isDefault = existing.IsDefault
	}
	r.agents[id] = models.Agent{
		ID:           id,
		Name:         name,
		SystemPrompt: systemPrompt,
		Icon:         icon,
		IsDefault:    isDefault,
	}
	return r.persist()
}

// Delete removes a custom agent. Default agents are protected; callers that
// delete the active agent must switch to DefaultAgentID afterwards.
func (r *Registry) Delete(id string) error {
	a, ok := r.agents[id]
	if !ok {
		return nil
	}
	if a.IsDefault {
		return &ProtectedAgentError{ID: id}
	}
	delete(r.agents, id)
	return r.persist()
}

func (r *Registry) persist() error {
	data, err := json.Marshal(r.agents)
	if err != nil {
		return err
	}
	return r.store.Set(store.KeyAgents, string(data))
}
