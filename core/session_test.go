package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/internal/testutil"
)

func TestGetTurnsReturnsCopy(t *testing.T) {
	sess := testutil.NewSessionBuilder("sess-1").Exchange("hi", "hello").Build()

	turns := sess.GetTurns()
	require.Len(t, turns, 2)

	turns[0].Text = "mutated"
	fresh := sess.GetTurns()
	assert.Equal(t, "hi", fresh[0].Text)
}

func TestAppendTurnsPreservesOrder(t *testing.T) {
	sess := core.NewSession("sess-1")
	sess.AppendTurns(testutil.Conversation(6)...)

	turns := sess.GetTurns()
	require.Len(t, turns, 6)
	assert.Equal(t, core.RoleUser, turns[0].Role)
	assert.Equal(t, core.RoleAssistant, turns[5].Role)
	assert.Equal(t, "user 2", turns[4].Text)
}

func TestSessionContext(t *testing.T) {
	sess := testutil.NewSessionBuilder("sess-1").Context("dsp_code", "DSP001").Build()

	v, ok := sess.GetContext("dsp_code")
	require.True(t, ok)
	assert.Equal(t, "DSP001", v)

	_, ok = sess.GetContext("missing")
	assert.False(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	sess := testutil.NewSessionBuilder("sess-1").
		Context("k", "v").
		Exchange("hi", "hello").
		Build()

	clone := sess.Clone()
	clone.AppendTurns(core.NewUserTurn("extra"))
	clone.SetContext("k", "changed")

	assert.Equal(t, 2, sess.Len())
	v, _ := sess.GetContext("k")
	assert.Equal(t, "v", v)
}

func TestNewTurnsHaveIdentity(t *testing.T) {
	u := core.NewUserTurn("hi")
	a := core.NewAssistantTurn("hello")

	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, u.ID, a.ID)
	assert.Equal(t, core.RoleUser, u.Role)
	assert.Equal(t, core.RoleAssistant, a.Role)
	assert.False(t, u.Timestamp.IsZero())
}
