package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/semgraph/pkg/genai"
)

var askModelFile string

func init() {
	askCmd.Flags().StringVarP(&askModelFile, "model-file", "m", "", "model document to answer against (default: demo)")
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the collaborator about the model",
	Long: `ask sends a question about the semantic model to the generative
collaborator. With no question argument it starts an interactive chat;
type 'exit' to leave. When the collaborator is unreachable a fallback
reply is shown and the session keeps working.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var fileArgs []string
		if askModelFile != "" {
			fileArgs = []string{askModelFile}
		}
		m, _, err := loadModel(fileArgs)
		if err != nil {
			return err
		}

		conv := genai.NewConversation(genai.NewClientFromEnv())

		if len(args) > 0 {
			answer, err := conv.Ask(cmd.Context(), m, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		}

		Info.Printf("Chatting about %q. Type 'exit' to leave.\n", m.Name)
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}
			if question == "exit" || question == "quit" {
				break
			}

			answer, err := conv.Ask(cmd.Context(), m, question)
			if err == genai.ErrBusy {
				Subtle.Println("still thinking about the last question")
				continue
			}
			if err != nil {
				return err
			}
			fmt.Println(answer)
		}
		return scanner.Err()
	},
}
