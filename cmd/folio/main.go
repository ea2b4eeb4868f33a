package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	chatcmder "github.com/foliodev/folio/cmd/folio/chat"
	promptcmder "github.com/foliodev/folio/cmd/folio/prompt"
	servecmder "github.com/foliodev/folio/cmd/folio/serve"
)

func main() {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio server with a streaming AI chat relay",
		Long: `folio serves a personal portfolio site and relays its chat widget's
conversations to an upstream language-model provider, streaming the
reply back token by token.`,
		SilenceUsage: true,
	}

	root.AddCommand(servecmder.NewServeCmd())
	root.AddCommand(chatcmder.NewChatCmd())
	root.AddCommand(promptcmder.NewPromptCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
