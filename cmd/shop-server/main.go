package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	assistantx "github.com/worapol/shop-multiagent/agent/assistant"
	contractx "github.com/worapol/shop-multiagent/agent/contract"
	mcptoolx "github.com/worapol/shop-multiagent/agent/mcptool"
	promptx "github.com/worapol/shop-multiagent/agent/prompt"
	workflowx "github.com/worapol/shop-multiagent/agent/workflow"
	configx "github.com/worapol/shop-multiagent/pkg/config"
	llmclientx "github.com/worapol/shop-multiagent/pkg/llmclient"
	logx "github.com/worapol/shop-multiagent/pkg/logger"
	serverx "github.com/worapol/shop-multiagent/server"
)

func main() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))

	serverCfg := configx.MustNew[serverx.Config]("SERVER")
	llmCfg := configx.MustNew[llmclientx.Config]("LLM")
	mcpCfg := configx.MustNew[mcptoolx.Config]("MCP")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid llm config")
	}

	ctx := context.Background()

	gateway, err := mcptoolx.Connect(ctx, *mcpCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("tool backend unavailable")
	}
	defer gateway.Close()

	client := llmclientx.NewClient(*llmCfg)
	prompts := promptx.LoadPromptSet()

	shopping, err := assistantx.New(
		contractx.AssistantShopping, prompts.Shopping,
		client, llmCfg.Model, llmCfg.Temperature, gateway.Definitions(),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("create shopping assistant")
	}

	runner, err := workflowx.NewTurnRunner(shopping, gateway, serverCfg.MaxTurnSteps)
	if err != nil {
		log.Fatal().Err(err).Msg("build turn runner")
	}

	handler := serverx.NewHandler(runner, serverx.NewSessions(), serverCfg.Streaming)
	router := serverx.NewRouter(handler)

	addr := fmt.Sprintf(":%d", serverCfg.Port)
	log.Info().Str("addr", addr).Bool("streaming", serverCfg.Streaming).Msg("server listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
