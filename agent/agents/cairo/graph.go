package cairo

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/colomboai/cairo/agent/contract"
)

func compileTurnGraph(
	ctx context.Context,
	instructions string,
	reactAgent *react.Agent,
) (compose.Runnable[string, string], error) {
	graph := compose.NewGraph[string, string]()

	if err := graph.AddLambdaNode("prepare",
		compose.InvokableLambda(func(ctx context.Context, text string) ([]*schema.Message, error) {
			text = strings.TrimSpace(text)
			if text == "" {
				return nil, fmt.Errorf("%w: message is empty", contractx.ErrValidation)
			}
			return []*schema.Message{
				schema.SystemMessage(instructions),
				schema.UserMessage(text),
			}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add turn prepare node: %w", err)
	}

	if err := graph.AddLambdaNode("react",
		compose.InvokableLambda(func(ctx context.Context, input []*schema.Message) (*schema.Message, error) {
			msg, err := reactAgent.Generate(ctx, input)
			if err != nil {
				return nil, fmt.Errorf("%w: react agent: %v", contractx.ErrModelInvoke, err)
			}
			return msg, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add turn react node: %w", err)
	}

	if err := graph.AddLambdaNode("reply",
		compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (string, error) {
			if msg == nil {
				return "", fmt.Errorf("%w: empty agent response", contractx.ErrModelInvoke)
			}
			reply := strings.TrimSpace(msg.Content)
			if reply == "" {
				return "", fmt.Errorf("%w: agent reply is empty", contractx.ErrModelInvoke)
			}
			return reply, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add turn reply node: %w", err)
	}

	if err := graph.AddEdge(compose.START, "prepare"); err != nil {
		return nil, fmt.Errorf("add turn edge start->prepare: %w", err)
	}
	if err := graph.AddEdge("prepare", "react"); err != nil {
		return nil, fmt.Errorf("add turn edge prepare->react: %w", err)
	}
	if err := graph.AddEdge("react", "reply"); err != nil {
		return nil, fmt.Errorf("add turn edge react->reply: %w", err)
	}
	if err := graph.AddEdge("reply", compose.END); err != nil {
		return nil, fmt.Errorf("add turn edge reply->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("cairo.turn_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile turn graph: %w", err)
	}
	return runner, nil
}
