package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/raywall/mockerize/pkg/storage"
)

var (
	// Version é injetada no build
	Version = "dev"

	// Variáveis injetáveis para mocking
	newStore = func(region string) documentStore { return storage.NewUniversalStore(storage.WithRegion(region)) }
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute roda a árvore de comandos e devolve o exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mockerize",
		Short: "mockerize serve respostas HTTP fixas descritas em um documento",
		Long: `mockerize lê um documento JSON ou YAML com servidor, rotas e respostas
e sobe um servidor HTTP que devolve a resposta ativa de cada rota.

O documento pode estar em disco ou em s3://, dynamodb://, redis:// e postgres://.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newNewCmd(), newRunCmd(), newTestCmd())
	return root
}

// printError escreve ERROR seguido da cadeia de causas, uma por linha.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "ERROR")
	for _, msg := range causeChain(err) {
		fmt.Fprintln(w, msg)
	}
}

func causeChain(err error) []string {
	var out []string
	seen := map[string]bool{}

	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if msg := e.Error(); !seen[msg] {
			seen[msg] = true
			out = append(out, msg)
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		default:
			walk(errors.Unwrap(e))
		}
	}

	walk(err)
	return out
}
