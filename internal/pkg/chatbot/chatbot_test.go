package chatbot

import (
	"context"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessagesSystemPromptFirst(t *testing.T) {
	msgs := buildMessages("Como declaro um slice em Go?", nil)

	require.Len(t, msgs, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "assistente de programação")
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	assert.Equal(t, "Como declaro um slice em Go?", msgs[1].Content)
}

func TestBuildMessagesKeepsHistoryOrder(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "O que é uma goroutine?"},
		{Role: "assistant", Content: "É uma função executada de forma concorrente."},
	}

	msgs := buildMessages("E um channel?", history)

	require.Len(t, msgs, 4)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	assert.Equal(t, "O que é uma goroutine?", msgs[1].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[3].Role)
	assert.Equal(t, "E um channel?", msgs[3].Content)
}

func TestBuildMessagesUnknownRoleDefaultsToUser(t *testing.T) {
	msgs := buildMessages("oi", []Message{{Role: "tool", Content: "x"}})

	require.Len(t, msgs, 3)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
}

func TestSendMessageRejectsEmptyInput(t *testing.T) {
	s := NewService(nil, openai.GPT4oMini)

	_, err := s.SendMessage(context.Background(), "   ", nil)
	require.Error(t, err)
}
