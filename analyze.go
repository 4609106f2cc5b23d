package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mindcare/support-chat/analysis"
	"mindcare/support-chat/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <message>",
	Short: "Print the style profile and emotion detected for a message",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := strings.Join(args, " ")
		history := []types.ChatMessage{{Role: types.RoleUser, Content: msg}}

		report := struct {
			Message string             `json:"message"`
			Emotion types.Emotion      `json:"emotion"`
			Style   types.StyleProfile `json:"style"`
			Name    string             `json:"name,omitempty"`
		}{
			Message: msg,
			Emotion: analysis.ClassifyEmotion(msg),
			Style:   analysis.AnalyzeStyle(msg),
			Name:    analysis.ExtractName(history),
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
