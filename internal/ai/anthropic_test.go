package ai

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	anthropt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageSender struct {
	responses []string // Raw JSON messages, returned in order
	err       error
	params    []anthropic.MessageNewParams
}

func (fms *fakeMessageSender) SendMessage(_ context.Context, params anthropic.MessageNewParams, _ ...anthropt.RequestOption) (anthropic.Message, error) {
	fms.params = append(fms.params, params)
	if fms.err != nil {
		return anthropic.Message{}, fms.err
	}
	var msg anthropic.Message
	raw := fms.responses[0]
	fms.responses = fms.responses[1:]
	err := json.Unmarshal([]byte(raw), &msg)
	return msg, err
}

func assistantMessageJSON(text string) string {
	b, _ := json.Marshal(text)
	return `{"id":"msg_1","type":"message","role":"assistant","model":"claude-sonnet-4-0",` +
		`"content":[{"type":"text","text":` + string(b) + `}],` +
		`"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":5}}`
}

func newTestAnthropicSession(sender messageSender) RemoteSession {
	provider := &AnthropicProvider{sender: sender, model: anthropic.ModelClaudeSonnet4_0, maxOutputTokens: 1024}
	session, _ := provider.NewSession(context.Background(), SessionConfig{SystemPrompt: "Sei UrbanAI.", Temperature: 0.7})
	return session
}

func TestAnthropicSendMessage_ResendsConversation(t *testing.T) {
	sender := &fakeMessageSender{responses: []string{
		assistantMessageJSON("Ciao!"),
		assistantMessageJSON("Sto bene."),
	}}
	session := newTestAnthropicSession(sender)

	reply, err := session.SendMessage(context.Background(), "ciao")
	require.NoError(t, err)
	assert.Equal(t, "Ciao!", reply)

	reply, err = session.SendMessage(context.Background(), "come stai?")
	require.NoError(t, err)
	assert.Equal(t, "Sto bene.", reply)

	require.Len(t, sender.params, 2)
	assert.Len(t, sender.params[0].Messages, 1)
	assert.Len(t, sender.params[1].Messages, 3)
	require.Len(t, sender.params[1].System, 1)
	assert.Equal(t, "Sei UrbanAI.", sender.params[1].System[0].Text)
	assert.InDelta(t, 0.7, sender.params[1].Temperature.Value, 1e-6)
	assert.Equal(t, int64(1024), sender.params[1].MaxTokens)

	history, err := session.History(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Role: RoleUser, Content: "ciao"},
		{Role: RoleModel, Content: "Ciao!"},
		{Role: RoleUser, Content: "come stai?"},
		{Role: RoleModel, Content: "Sto bene."},
	}, history)
}

func TestAnthropicSendMessage_FailureLeavesConversation(t *testing.T) {
	sender := &fakeMessageSender{err: errFake}
	session := newTestAnthropicSession(sender)

	_, err := session.SendMessage(context.Background(), "ciao")
	require.ErrorIs(t, err, errFake)

	history, err := session.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAnthropicSendMessage_NoText(t *testing.T) {
	sender := &fakeMessageSender{responses: []string{
		`{"id":"msg_1","type":"message","role":"assistant","model":"claude-sonnet-4-0","content":[],"stop_reason":"max_tokens","usage":{"input_tokens":10,"output_tokens":0}}`,
	}}
	session := newTestAnthropicSession(sender)

	_, err := session.SendMessage(context.Background(), "ciao")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}
