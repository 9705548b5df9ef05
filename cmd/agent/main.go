// Command agent talks to a hosted LLM through a fixed persona.
//
//	agent ask "Quem é você?"   one-shot question
//	agent chat                 interactive chat with memory
//	agent serve                HTTP API on POST /agente-simples
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
