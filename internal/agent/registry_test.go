package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoadSeedsDefaults(t *testing.T) {
	r, err := Load(openStore(t))
	require.NoError(t, err)

	for _, id := range []string{"default", "coder", "creative", "teacher"} {
		ag, ok := r.Get(id)
		require.True(t, ok, id)
		assert.True(t, ag.IsDefault)
		assert.NotEmpty(t, ag.SystemPrompt)
	}

	ag, _ := r.Get(DefaultAgentID)
	assert.Equal(t, "General Assistant", ag.Name)
	assert.Equal(t, "You are a helpful assistant.", ag.SystemPrompt)
}

func TestListOrdersDefaultsFirst(t *testing.T) {
	r, err := Load(openStore(t))
	require.NoError(t, err)
	require.NoError(t, r.Upsert("custom-1", "Aardvark Helper", "Be an aardvark.", ""))

	list := r.List()
	require.Len(t, list, 5)
	for _, ag := range list[:4] {
		assert.True(t, ag.IsDefault)
	}
	assert.Equal(t, "Aardvark Helper", list[4].Name)
}

func TestUpsertValidation(t *testing.T) {
	r, err := Load(openStore(t))
	require.NoError(t, err)

	var verr *ValidationError
	err = r.Upsert("x", "  ", "prompt", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	err = r.Upsert("x", "Name", "\n\t", "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "systemPrompt", verr.Field)

	// Rejected saves leave the registry untouched.
	_, ok := r.Get("x")
	assert.False(t, ok)
}

func TestUpsertPreservesDefaultFlag(t *testing.T) {
	r, err := Load(openStore(t))
	require.NoError(t, err)

	require.NoError(t, r.Upsert("coder", "Code Expert 2", "New prompt.", "code"))
	ag, ok := r.Get("coder")
	require.True(t, ok)
	assert.True(t, ag.IsDefault, "editing a default agent keeps it protected")
	assert.Equal(t, "Code Expert 2", ag.Name)

	require.NoError(t, r.Upsert("mine", "Mine", "Prompt.", ""))
	ag, _ = r.Get("mine")
	assert.False(t, ag.IsDefault)
}

func TestDeleteProtectsDefaults(t *testing.T) {
	r, err := Load(openStore(t))
	require.NoError(t, err)

	var perr *ProtectedAgentError
	err = r.Delete("default")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "default", perr.ID)
	_, ok := r.Get("default")
	assert.True(t, ok)

	require.NoError(t, r.Upsert("mine", "Mine", "Prompt.", ""))
	require.NoError(t, r.Delete("mine"))
	_, ok = r.Get("mine")
	assert.False(t, ok)

	// Deleting a missing agent is a no-op.
	require.NoError(t, r.Delete("never-existed"))
}

func TestRegistryPersistsAcrossLoads(t *testing.T) {
	st := openStore(t)

	r, err := Load(st)
	require.NoError(t, err)
	require.NoError(t, r.Upsert("mine", "Mine", "Prompt.", "star"))

	reloaded, err := Load(st)
	require.NoError(t, err)
	ag, ok := reloaded.Get("mine")
	require.True(t, ok)
	assert.Equal(t, "star", ag.Icon)
	assert.Len(t, reloaded.List(), 5)
}
