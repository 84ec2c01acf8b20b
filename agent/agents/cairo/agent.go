package cairo

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/rs/zerolog/log"

	contractx "github.com/colomboai/cairo/agent/contract"
	policyx "github.com/colomboai/cairo/agent/policy"
	promptx "github.com/colomboai/cairo/agent/prompt"
	toolx "github.com/colomboai/cairo/agent/tool"
)

const DefaultMaxStep = 12

// Config is loaded with the CAIRO prefix.
type Config struct {
	MaxStep int `split_words:"true" default:"12"`
	// Instructions overrides the built-in system prompt when set.
	Instructions string `ignored:"true"`
	// Gate filters the tool list. Defaults to the package-level policy gate.
	Gate *policyx.Gate `ignored:"true"`
}

type Agent struct {
	tools  []string
	runner compose.Runnable[string, string]
}

// New binds the allowed tools to chatModel. It fails when the policy leaves no tool.
func New(ctx context.Context, cfg Config, chatModel einomodel.ToolCallingChatModel, tools []*toolx.Descriptor) (*Agent, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrConfiguration)
	}

	gate := cfg.Gate
	if gate == nil {
		gate = policyx.NewGate()
	}
	allowed, err := gate.Guard(tools)
	if err != nil {
		return nil, err
	}

	maxStep := cfg.MaxStep
	if maxStep <= 0 {
		maxStep = DefaultMaxStep
	}
	instructions := strings.TrimSpace(cfg.Instructions)
	if instructions == "" {
		instructions = promptx.Instructions()
	}

	reactAgent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: toolx.EinoizeAll(allowed),
		},
		MaxStep: maxStep,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: build react agent: %v", contractx.ErrModelInvoke, err)
	}

	runner, err := compileTurnGraph(ctx, instructions, reactAgent)
	if err != nil {
		return nil, fmt.Errorf("%w: compile turn graph: %v", contractx.ErrModelInvoke, err)
	}

	names := make([]string, 0, len(allowed))
	for _, d := range allowed {
		names = append(names, d.Name())
	}
	log.Info().
		Strs("tools", names).
		Int("max_step", maxStep).
		Msg("cairo agent ready")

	return &Agent{tools: names, runner: runner}, nil
}

// Tools lists the names bound to the model after policy filtering.
func (a *Agent) Tools() []string {
	return append([]string(nil), a.tools...)
}

// HandleMessage runs one user turn and returns the final reply.
func (a *Agent) HandleMessage(ctx context.Context, text string) (string, error) {
	return a.runner.Invoke(ctx, text)
}
