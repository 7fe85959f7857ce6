package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mixmixailov/BRO247/internal/domain"
	"github.com/mixmixailov/BRO247/internal/store"
)

const (
	chatCompletionsURL = "https://api.openai.com/v1/chat/completions"
	historyWindow      = 12 // messages kept per chat, both roles counted
	requestTimeout     = 60 * time.Second
)

// Message is one turn in a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client answers non-reminder messages through the OpenAI chat API, keeping a
// sliding window of recent turns per chat. History lives in memory only and
// is lost on restart.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     *zap.Logger

	mu      sync.Mutex
	history map[int64][]Message
}

// New creates an AI client. The model name comes from configuration.
func New(apiKey, model string, log *zap.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: chatCompletionsURL,
		client:  &http.Client{Timeout: requestTimeout},
		log:     log,
		history: make(map[int64][]Message),
	}
}

// Reply sends the user's message with profile-derived system prompt and
// recent history, records both turns, and returns the assistant's answer.
func (c *Client) Reply(ctx context.Context, chatID int64, profile *store.Profile, text string) (string, error) {
	c.mu.Lock()
	hist := append(c.history[chatID], Message{Role: "user", Content: text})
	if len(hist) > historyWindow {
		hist = hist[len(hist)-historyWindow:]
	}
	c.history[chatID] = hist
	messages := make([]Message, 0, len(hist)+1)
	messages = append(messages, Message{Role: "system", Content: BuildPrompt(profile)})
	messages = append(messages, hist...)
	c.mu.Unlock()

	reply, err := c.complete(ctx, messages)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	hist = append(c.history[chatID], Message{Role: "assistant", Content: reply})
	if len(hist) > historyWindow {
		hist = hist[len(hist)-historyWindow:]
	}
	c.history[chatID] = hist
	c.mu.Unlock()

	return reply, nil
}

func (c *Client) complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr chatError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("OpenAI API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("OpenAI API returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// BuildPrompt assembles the system prompt from the chat's profile. A nil
// profile falls back to the street style in Russian.
func BuildPrompt(p *store.Profile) string {
	style, lang, gender := "street", domain.LocaleRU, ""
	if p != nil {
		if p.Style != "" {
			style = p.Style
		}
		if p.Language != "" {
			lang = p.Language
		}
		gender = p.Gender
	}

	var base string
	if lang == domain.LocaleRU {
		switch style {
		case "coach":
			base = "Ты коуч и наставник. Говоришь уверенно, мотивируешь, даёшь советы чётко и по делу."
		case "psych":
			base = "Ты психолог. Говоришь мягко, внимательно, с эмпатией. Помогаешь разобраться в чувствах, задаёшь наводящие вопросы."
		default:
			base = "Ты уличный бот-бро. Говори просто, с юмором, можешь вставлять лёгкий сленг, немного неформальности. Главное — поддержка и уверенность."
		}
	} else {
		switch style {
		case "coach":
			base = "You're a motivational coach. Speak clearly, confidently, and give concrete, action-oriented advice."
		case "psych":
			base = "You're an empathetic psychologist. Speak gently and attentively, help the user understand their emotions and thoughts."
		default:
			base = "You're a street-style AI bro. Speak casually, with slang and humor. Be confident and supportive."
		}
	}

	var genderLine string
	switch {
	case gender == "female" && lang == domain.LocaleRU:
		genderLine = " Пользователь — женщина."
	case gender == "male" && lang == domain.LocaleRU:
		genderLine = " Пользователь — мужчина."
	case gender == "female":
		genderLine = " The user is female."
	case gender == "male":
		genderLine = " The user is male."
	}
	return base + genderLine
}
