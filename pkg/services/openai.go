package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"PredicaAI/pkg/config"
)

const apiBase = "https://api.openai.com/v1"

// OpenAIService calls the OpenAI HTTP API directly for chat completions,
// Whisper transcription and TTS.
type OpenAIService struct {
	apiKey       string
	chatModel    string
	whisperModel string
	client       *http.Client
}

func NewOpenAIService() *OpenAIService {
	return &OpenAIService{
		apiKey:       config.OpenAIAPIKey,
		chatModel:    config.ChatModel,
		whisperModel: config.WhisperModel,
		client:       &http.Client{Timeout: 5 * time.Minute},
	}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends a single system-message prompt and returns the
// model's text. Retries once on retriable (quota/overload) failures.
func (s *OpenAIService) ChatCompletion(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		log.Printf("[openai] OPENAI_API_KEY is not set")
		return "", fmt.Errorf("OPENAI_API_KEY is not set")
	}

	text, err := s.callChatCompletion(ctx, prompt)
	if err != nil && isRetriable(err) {
		sleepWithContext(ctx, 2*time.Second)
		text, err = s.callChatCompletion(ctx, prompt)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion from model %s", s.chatModel)
	}
	return text, nil
}

func (s *OpenAIService) callChatCompletion(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"model": s.chatModel,
		"messages": []any{
			map[string]any{"role": "system", "content": prompt},
		},
	}
	bodyBytes, _ := json.Marshal(reqBody)

	log.Printf("[openai] POST %s/chat/completions model=%s", apiBase, s.chatModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return parsed.Choices[0].Message.Content, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads an audio file to the Whisper endpoint and returns the
// transcribed text. A single attempt; callers wanting retries use
// TranscribeWithRetries.
func (s *OpenAIService) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		log.Printf("[openai] OPENAI_API_KEY is not set")
		return "", fmt.Errorf("OPENAI_API_KEY is not set")
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", s.whisperModel); err != nil {
		return "", err
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	log.Printf("[openai] POST %s/audio/transcriptions model=%s file=%s", apiBase, s.whisperModel, filepath.Base(audioPath))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/audio/transcriptions", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}
	return parsed.Text, nil
}

// Speech converts text to audio via the TTS endpoint and returns the raw
// audio bytes (mp3).
func (s *OpenAIService) Speech(ctx context.Context, model, voice, input string) ([]byte, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		log.Printf("[openai] OPENAI_API_KEY is not set")
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	reqBody := map[string]any{
		"model": model,
		"voice": voice,
		"input": input,
	}
	bodyBytes, _ := json.Marshal(reqBody)

	log.Printf("[openai] POST %s/audio/speech model=%s voice=%s", apiBase, model, voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/audio/speech", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}
	return respBytes, nil
}

func isRetriable(err error) bool {
	if err == nil {
		return false
	}
	e := strings.ToLower(err.Error())
	if strings.Contains(e, "status 503") || strings.Contains(e, "unavailable") {
		return true
	}
	if strings.Contains(e, "status 429") || strings.Contains(e, "rate limit") || strings.Contains(e, "quota") {
		return true
	}
	return false
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
