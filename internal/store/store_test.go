package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKey(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	_, ok, err := st.Get("nothing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetGetRoundTrip(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Set(KeyAgents, `{"default":{}}`))
	val, ok, err := st.Get(KeyAgents)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"default":{}}`, val)

	// Set replaces the whole value.
	require.NoError(t, st.Set(KeyAgents, `{}`))
	val, _, err = st.Get(KeyAgents)
	require.NoError(t, err)
	assert.Equal(t, `{}`, val)
}

func TestDelete(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Set(KeySidebar, "hidden"))
	require.NoError(t, st.Delete(KeySidebar))
	_, ok, err := st.Get(KeySidebar)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Delete("never-set"))
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, st.Set(KeyHistory, `[]`))
	require.NoError(t, st.Close())

	st2, err := Open(dir)
	require.NoError(t, err)
	defer st2.Close()
	val, ok, err := st2.Get(KeyHistory)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, val)
}
