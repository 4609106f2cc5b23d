// Command support-chat serves the mental-health support chat API and
// offers a few offline tools for the heuristics layer.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mindcare/support-chat/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "support-chat",
	Short: "Supportive chat backend in front of a hosted language model",
	Long: `support-chat proxies conversation turns to an OpenAI-compatible chat
completions API (Mistral by default). A heuristics layer in front of the model
handles repeated messages, clarifying questions and emotion-aware prompts.
It also stores mood check-ins and PHQ-9 results in Supabase.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		config.InitLogger()
		if verbose {
			config.Logger.SetLevel(logrus.DebugLevel)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
