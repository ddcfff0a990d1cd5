package dspagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokiteck/dspagent/agent"
	"github.com/lokiteck/dspagent/questions"
)

func TestPlatformDefaults(t *testing.T) {
	platform, err := New()
	require.NoError(t, err)

	names := platform.AgentNames()
	assert.Len(t, names, 5)
	for _, name := range []string{
		"driver_screening", "company_admin", "content_generator",
		"performance_analyzer", "coaching_analyzer",
	} {
		_, ok := platform.Agent(name)
		assert.True(t, ok, "agent %q should be registered", name)
	}

	_, ok := platform.Agent("unknown")
	assert.False(t, ok)
}

func TestPlatformProcessMessage(t *testing.T) {
	manager := questions.NewInMemory()
	manager.Seed("DSP001", questions.Question{Text: "Do you have a valid driver's license?"})

	platform, err := New(func(o *Options) {
		o.Questions = manager
	})
	require.NoError(t, err)

	ctx := context.Background()
	reply, err := platform.ProcessMessage(ctx, "driver_screening", "sess-1", "hello", agent.ProcessOptions{
		CompanyCode: "DSP001",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	history, err := platform.SessionStore().History(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestPlatformUnknownAgent(t *testing.T) {
	platform, err := New()
	require.NoError(t, err)

	_, err = platform.ProcessMessage(context.Background(), "nope", "sess-1", "hello", agent.ProcessOptions{})
	assert.Error(t, err)
}

func TestPlatformReset(t *testing.T) {
	platform, err := New()
	require.NoError(t, err)

	ctx := context.Background()
	_, err = platform.ProcessMessage(ctx, "content_generator", "sess-1", "write a memo", agent.ProcessOptions{})
	require.NoError(t, err)

	require.NoError(t, platform.Reset(ctx, "sess-1"))
	history, err := platform.SessionStore().History(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}
