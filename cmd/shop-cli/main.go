package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	assistantx "github.com/worapol/shop-multiagent/agent/assistant"
	contractx "github.com/worapol/shop-multiagent/agent/contract"
	conversationx "github.com/worapol/shop-multiagent/agent/conversation"
	mcptoolx "github.com/worapol/shop-multiagent/agent/mcptool"
	promptx "github.com/worapol/shop-multiagent/agent/prompt"
	workflowx "github.com/worapol/shop-multiagent/agent/workflow"
	configx "github.com/worapol/shop-multiagent/pkg/config"
	llmclientx "github.com/worapol/shop-multiagent/pkg/llmclient"
	logx "github.com/worapol/shop-multiagent/pkg/logger"
)

type AppConfig struct {
	MaxSteps int `envconfig:"WORKFLOW_MAX_STEPS" split_words:"true" default:"100"`
}

func main() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))

	appCfg := configx.MustNew[AppConfig]("")
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
	checkout, err := assistantx.New(
		contractx.AssistantCheckout, prompts.Checkout,
		client, llmCfg.Model, llmCfg.Temperature, gateway.Definitions(),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("create checkout assistant")
	}

	wf, err := workflowx.New(
		shopping, checkout, gateway, newReplReader(os.Stdin),
		workflowx.WithMaxSteps(appCfg.MaxSteps),
		workflowx.WithReplyFunc(printReply),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("build workflow")
	}

	printBanner()

	if err := wf.Run(ctx, conversationx.NewState("")); err != nil {
		log.Error().Err(err).Msg("conversation aborted")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Println("Thank you very much, come back soon!")
}

func printBanner() {
	fmt.Println("═════════════════════════════════════════════")
	fmt.Println("   Welcome to the Electronic Store")
	fmt.Println("   Use the prompt to get help!")
	fmt.Println("═════════════════════════════════════════════")
	fmt.Println()
}
