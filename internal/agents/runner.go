// Package agents hosts the ADK-based LLM capabilities: profile analysis for
// the verification pipeline and professional ranking for matching. Every
// agent has a disabled mode so the rest of the system can run without an
// API key; callers are expected to degrade to sentinel results.
package agents

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

// agentRunner wraps the ADK runner plumbing shared by all no-tool agents:
// one-shot sessions, non-streaming runs, text accumulation.
type agentRunner struct {
	runner         *runner.Runner
	sessionService session.Service
	appName        string
	runMu          sync.Mutex
}

func newAgentRunner(appName, agentName, description, instruction string, llm model.LLM) (*agentRunner, error) {
	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       llm,
		Description: description,
		Instruction: instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s agent: %w", agentName, err)
	}

	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          adkAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s runner: %w", agentName, err)
	}

	return &agentRunner{
		runner:         r,
		sessionService: sessionService,
		appName:        appName,
	}, nil
}

// run executes one prompt in a throwaway session and returns the
// accumulated response text.
func (a *agentRunner) run(ctx context.Context, promptText string) (string, error) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	sessionID := uuid.New().String()
	userID := a.appName + "-user"

	_, err := a.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   a.appName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("%s: create session: %w", a.appName, err)
	}
	defer func() {
		_ = a.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   a.appName,
			UserID:    userID,
			SessionID: sessionID,
		})
	}()

	userMessage := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{{
			Text: promptText,
		}},
	}

	runConfig := agent.RunConfig{StreamingMode: agent.StreamingModeNone}

	var outputText strings.Builder
	for event, err := range a.runner.Run(ctx, userID, sessionID, userMessage, runConfig) {
		if err != nil {
			return "", fmt.Errorf("%s: run failed: %w", a.appName, err)
		}
		if event.Content == nil {
			continue
		}
		for _, part := range event.Content.Parts {
			outputText.WriteString(part.Text)
		}
	}

	return strings.TrimSpace(outputText.String()), nil
}
