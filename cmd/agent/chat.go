package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petasbytes/agente/internal/provider"
	"github.com/petasbytes/agente/internal/runner"
	"github.com/petasbytes/agente/internal/session"
	"github.com/petasbytes/agente/internal/tui"
)

func newChatCmd(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Conversa interativa com memória da sessão",
		Long: `Abre uma conversa em que cada mensagem é enviada junto com o histórico
da sessão. Digite ` + tui.CmdReset + ` para recomeçar e ` + tui.CmdQuit + ` para sair.
Use --plain (ou redirecione a entrada) para o modo linha a linha.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tty := isTerminal(a.in)
			log := a.log
			if !plain && tty {
				// The TUI owns the terminal; stderr logging would tear it.
				log = zap.NewNop()
			}
			client, err := provider.New(a.cfg, nil)
			if err != nil {
				return err
			}
			sess := session.New(runner.New(client, a.cfg.Persona, runner.SurfaceChat, log))
			if plain || !tty {
				return a.chatPlain(cmd.Context(), sess)
			}
			return tui.Run(cmd.Context(), sess)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "line-oriented chat without the full-screen interface")
	return cmd
}

func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// chatPlain reads one prompt per line until EOF, /sair or ctx is done.
func (a *app) chatPlain(ctx context.Context, sess *session.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scanner := bufio.NewScanner(a.in)
	fmt.Fprintf(a.out, "Converse com o agente (%s para recomeçar, %s ou Ctrl-C para sair)\n", tui.CmdReset, tui.CmdQuit)

	inputCh := make(chan string)
	go func() {
		defer close(inputCh)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(a.out, "\u001b[94mVocê\u001b[0m: ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out, "\nSaindo...")
			return nil
		case line, ok = <-inputCh:
			if !ok {
				fmt.Fprintln(a.out)
				return scanner.Err()
			}
		}

		switch strings.TrimSpace(line) {
		case tui.CmdQuit:
			return nil
		case tui.CmdReset:
			sess.Reset()
			fmt.Fprintln(a.out, "Conversa reiniciada.")
			continue
		}

		entry, err := sess.Submit(ctx, line)
		if errors.Is(err, session.ErrBlankInput) {
			continue
		}
		fmt.Fprintf(a.out, "\u001b[93mAgente\u001b[0m: %s\n", entry.Content)
	}
}
