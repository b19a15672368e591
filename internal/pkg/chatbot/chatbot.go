package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/EdmilsonDev/CodeMentor/internal/pkg/env"
)

// mentorPrompt pins the assistant to the programming-mentor persona. The
// assistant politely refuses anything outside programming topics.
const mentorPrompt = `Você é um assistente de programação especializado. Seu foco é fornecer respostas precisas, claras e detalhadas apenas sobre programação, desenvolvimento de software, algoritmos, frameworks, linguagens e boas práticas de código.

Regras do seu comportamento:
1. Responda apenas questões relacionadas a programação; se a pergunta não for de programação, informe educadamente que só pode ajudar com programação.
2. Explique conceitos complexos de forma simples, passo a passo, usando exemplos de código sempre que possível.
3. Forneça códigos comentados em qualquer linguagem relevante quando solicitado.
4. Sugira melhores práticas, otimizações e alternativas eficientes para os problemas apresentados.
5. Ajude a debugar códigos, encontrar erros e explicar o motivo do erro.
6. Mantenha um tom profissional, paciente e didático, mas também motivador para quem está aprendendo.

Objetivo: Ser um mentor e guia completo para qualquer pessoa que queira aprender, desenvolver ou resolver problemas de programação.`

// Message is one prior turn of the conversation, as supplied by the caller.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service wraps the chat completion API behind a single opaque call. There
// is no retry here: a failure propagates to the caller, which must discard
// the just-sent user turn.
type Service struct {
	client *openai.Client
	model  string
}

// NewService creates a chat service with an explicit client and model.
func NewService(client *openai.Client, model string) *Service {
	return &Service{client: client, model: model}
}

// NewServiceFromEnv builds the service from OPENAI_API_KEY / OPENAI_MODEL.
func NewServiceFromEnv() (*Service, error) {
	apiKey := env.GetEnv("OPENAI_API_KEY", "")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	model := env.GetEnv("OPENAI_MODEL", openai.GPT4oMini)
	return NewService(openai.NewClient(apiKey), model), nil
}

// SendMessage sends one user turn plus prior history and returns the
// assistant's reply.
func (s *Service) SendMessage(ctx context.Context, message string, history []Message) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", errors.New("message is empty")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: buildMessages(message, history),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages flattens the persona prompt, prior turns and the new user
// message into the request shape. Unknown history roles default to user.
func buildMessages(message string, history []Message) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: mentorPrompt,
	})
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	return msgs
}
