package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	cairox "github.com/colomboai/cairo/agent/agents/cairo"
	auditx "github.com/colomboai/cairo/agent/audit"
	llmx "github.com/colomboai/cairo/agent/llm"
	mem0x "github.com/colomboai/cairo/agent/mem0"
	policyx "github.com/colomboai/cairo/agent/policy"
	recenginex "github.com/colomboai/cairo/agent/recengine"
	searxngx "github.com/colomboai/cairo/agent/searxng"
	toolx "github.com/colomboai/cairo/agent/tool"
	configx "github.com/colomboai/cairo/pkg/config"
	_ "github.com/colomboai/cairo/pkg/logger/autoload"
	openrouterx "github.com/colomboai/cairo/pkg/openrouter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Error().Err(err).Msg("cairo failed")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	message, err := readMessage(flag.Args(), os.Stdin)
	if err != nil {
		return err
	}

	recorder, closeRecorder := newRecorder(ctx, *configx.MustNew[auditx.Config]("AUDIT"))
	defer closeRecorder()

	registry := toolx.NewRegistry(toolx.WithRecorder(recorder))
	if err := registerTools(registry); err != nil {
		return err
	}

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	openRouterCfg := llmCfg.OpenRouter()
	if !llmCfg.SkipPreflight {
		if err := openrouterx.Preflight(ctx, openrouterx.NewClient(openRouterCfg), openRouterCfg.Model); err != nil {
			return err
		}
	}
	chatModel, err := openRouterCfg.New(ctx)
	if err != nil {
		return err
	}

	agentCfg := configx.MustNew[cairox.Config]("CAIRO")
	agentCfg.Gate = policyx.FromConfig(*configx.MustNew[policyx.Config]("POLICY"))

	agent, err := cairox.New(ctx, *agentCfg, chatModel, registry.Tools())
	if err != nil {
		return err
	}

	reply, err := agent.HandleMessage(ctx, message)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

// registerTools keeps search and memory ahead of the recommendation controls.
func registerTools(registry *toolx.Registry) error {
	searx, err := searxngx.NewClient(*configx.MustNew[searxngx.Config]("SEARXNG"))
	if err != nil {
		return err
	}
	searchTools, err := toolx.SearchTools(searx)
	if err != nil {
		return err
	}

	memCfg := configx.MustNew[mem0x.Config]("MEM0")
	mem, err := mem0x.NewClient(*memCfg)
	if err != nil {
		return err
	}
	memoryTools, err := toolx.MemoryTools(mem, memCfg.DefaultUserID)
	if err != nil {
		return err
	}

	rec, err := recenginex.NewClient(*configx.MustNew[recenginex.Config]("REC"))
	if err != nil {
		return err
	}
	recommendationTools, err := toolx.RecommendationTools(recenginex.NewController(rec))
	if err != nil {
		return err
	}

	for _, group := range [][]*toolx.Descriptor{searchTools, memoryTools, recommendationTools} {
		if err := registry.Register(group...); err != nil {
			return err
		}
	}
	return nil
}

// newRecorder journals to Postgres when AUDIT_DSN is set and falls back to the log otherwise.
func newRecorder(ctx context.Context, cfg auditx.Config) (auditx.Recorder, func()) {
	logRecorder := auditx.NewLogRecorder(log.Logger)
	if strings.TrimSpace(cfg.DSN) == "" {
		return logRecorder, func() {}
	}

	bunRecorder, err := auditx.NewBunRecorder(ctx, cfg)
	if err == nil {
		err = bunRecorder.Init(ctx)
		if err != nil {
			_ = bunRecorder.Close()
		}
	}
	if err != nil {
		log.Warn().Err(err).Msg("audit database unavailable, journaling to log")
		return logRecorder, func() {}
	}

	return bunRecorder, func() {
		if err := bunRecorder.Close(); err != nil {
			log.Warn().Err(err).Msg("close audit database")
		}
	}
}

func readMessage(args []string, stdin io.Reader) (string, error) {
	if text := strings.TrimSpace(strings.Join(args, " ")); text != "" {
		return text, nil
	}

	raw, err := io.ReadAll(bufio.NewReader(stdin))
	if err != nil {
		return "", fmt.Errorf("read message from stdin: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", errors.New("usage: cairo [-env file] <message>  (or pipe the message on stdin)")
	}
	return text, nil
}
