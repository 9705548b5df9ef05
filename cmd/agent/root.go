package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petasbytes/agente/internal/config"
	"github.com/petasbytes/agente/internal/logging"
)

// app is the state shared by all subcommands once PersistentPreRunE ran.
type app struct {
	configPath string
	envFile    string
	verbose    bool

	cfg config.Config
	log *zap.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "agent",
		Short: "Agente simples com persona fixa",
		Long: `agent encaminha mensagens a um modelo de linguagem hospedado,
sempre precedidas pela persona configurada, e devolve a resposta.

Configuração: arquivo --config (.toml/.yaml), arquivo .env e variáveis
AGT_* (AGT_PROVIDER, AGT_MODEL, AGT_API_KEY, ...). A chave do provedor
também é lida de OPENAI_API_KEY ou ANTHROPIC_API_KEY.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAskCmd(a), newChatCmd(a), newServeCmd(a))
	return root
}

func (a *app) setup() error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.With(zap.String("provider", cfg.Provider))
	return nil
}
