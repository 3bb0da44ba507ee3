package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	name     string
	out      string
	err      error
	requests []Request
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Execute(ctx context.Context, req Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeProvider) Close() error { return nil }

func (f *fakeProvider) ModelInfo() map[string]interface{} {
	return map[string]interface{}{"provider": f.name}
}

func chainRequest() Request {
	return Request{
		System: "system",
		Prompt: "prompt",
		Schema: &Schema{Fields: []Field{{Name: "value", Kind: KindInt}}},
	}
}

func TestChainPrimarySucceeds(t *testing.T) {
	primary := &fakeProvider{name: "primary", out: `{"value": 7}`}
	fallback := &fakeProvider{name: "fallback", out: `{"value": 9}`}
	chain := NewChain([]Provider{primary, fallback}, zap.NewNop())

	raw, err := chain.Execute(context.Background(), chainRequest())

	require.NoError(t, err)
	assert.JSONEq(t, `{"value": 7}`, string(raw))
	assert.Empty(t, fallback.requests, "fallback must not be consulted on success")
}

func TestChainFallsBackWithIdenticalRequest(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("connection refused")}
	fallback := &fakeProvider{name: "fallback", out: `{"value": 9}`}
	chain := NewChain([]Provider{primary, fallback}, zap.NewNop())

	req := chainRequest()
	raw, err := chain.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.JSONEq(t, `{"value": 9}`, string(raw))
	require.Len(t, fallback.requests, 1)
	assert.Equal(t, req.Prompt, fallback.requests[0].Prompt)
	assert.Equal(t, req.System, fallback.requests[0].System)
	assert.Equal(t, req.Schema, fallback.requests[0].Schema)
}

func TestChainSchemaViolationAdvances(t *testing.T) {
	primary := &fakeProvider{name: "primary", out: `{"other": true}`}
	fallback := &fakeProvider{name: "fallback", out: `{"value": 3}`}
	chain := NewChain([]Provider{primary, fallback}, zap.NewNop())

	raw, err := chain.Execute(context.Background(), chainRequest())

	require.NoError(t, err)
	assert.JSONEq(t, `{"value": 3}`, string(raw))
}

func TestChainStripsFences(t *testing.T) {
	provider := &fakeProvider{name: "fenced", out: "```json\n{\"value\": 4}\n```"}
	chain := NewChain([]Provider{provider}, zap.NewNop())

	raw, err := chain.Execute(context.Background(), chainRequest())

	require.NoError(t, err)
	assert.JSONEq(t, `{"value": 4}`, string(raw))
}

func TestChainExhaustedAggregatesFailures(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("401 unauthorized")}
	fallback := &fakeProvider{name: "fallback", out: `not json at all`}
	chain := NewChain([]Provider{primary, fallback}, zap.NewNop())

	_, err := chain.Execute(context.Background(), chainRequest())

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Len(t, exhausted.Failures, 2)
	assert.Equal(t, "primary", exhausted.Failures[0].Provider)
	assert.Contains(t, exhausted.Failures[0].Reason, "401")
	assert.Equal(t, "fallback", exhausted.Failures[1].Provider)
	assert.Contains(t, exhausted.Error(), "primary")
	assert.Contains(t, exhausted.Error(), "fallback")
}

func TestEmptyChainFailsWithExhausted(t *testing.T) {
	chain := NewChain(nil, zap.NewNop())

	_, err := chain.Execute(context.Background(), chainRequest())

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Empty(t, exhausted.Failures)
}

func TestChainProvidersInfoTracksFailures(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("down")}
	fallback := &fakeProvider{name: "fallback", out: `{"value": 1}`}
	chain := NewChain([]Provider{primary, fallback}, zap.NewNop())

	_, err := chain.Execute(context.Background(), chainRequest())
	require.NoError(t, err)

	info := chain.ProvidersInfo()
	require.Len(t, info, 2)
	assert.Equal(t, 0, info[0]["priority"])
	assert.Equal(t, 1, info[0]["consecutive_failures"])
	assert.Equal(t, 0, info[1]["consecutive_failures"])
}
