package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petasbytes/agente/internal/agent"
)

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Faz uma única pergunta ao agente",
		Long: `Envia a persona e o prompt ao modelo e imprime a resposta.
Falhas do provedor são impressas como mensagem de erro, sem código de saída
diferente de zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ag := agent.New(a.cfg, agent.WithLogger(a.log))
			reply := ag.Ask(cmd.Context(), strings.Join(args, " "))
			_, err := fmt.Fprintln(a.out, reply)
			return err
		},
	}
}
