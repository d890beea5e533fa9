package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raywall/mockerize/pkg/mock"
	"github.com/raywall/mockerize/pkg/storage"
)

type newOptions struct {
	name    string
	address string
	port    uint16
	yes     bool
}

func newNewCmd() *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "new <path>",
		Short: "Gera um documento inicial com a rota GET /hello-world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "Mockerize server", "nome do servidor")
	cmd.Flags().StringVarP(&opts.address, "address", "a", mock.DefaultServerAddr, "endereço IP de escuta")
	cmd.Flags().Uint16VarP(&opts.port, "port", "p", mock.DefaultServerPort, "porta de escuta")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "sobrescreve sem perguntar")
	return cmd
}

func runNew(cmd *cobra.Command, target string, opts newOptions) error {
	out := cmd.OutOrStdout()

	info, err := starterDocument(opts)
	if err != nil {
		return err
	}

	overwrite := opts.yes
	if !isRemote(target) && !overwrite {
		path := strings.TrimPrefix(target, storage.SchemeFile)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "O arquivo `%s` já existe. Deseja sobrescrevê-lo? (yes/no)\n", target)
			if !confirm(cmd.InOrStdin(), out) {
				fmt.Fprintln(out, "Ação cancelada pelo usuário.")
				return nil
			}
			overwrite = true
		}
	}

	store := newStore("")
	if err := store.Save(cmd.Context(), info, target, overwrite); err != nil {
		return fmt.Errorf("falha ao gravar o documento em `%s`: %w", target, err)
	}

	fmt.Fprintf(out, "Nova configuração salva em `%s`.\n", target)
	return nil
}

func starterDocument(opts newOptions) (*mock.ServerInfo, error) {
	info, err := mock.NewServerInfo()
	if err != nil {
		return nil, err
	}

	addr, err := mock.ParseAddress(opts.address)
	if err != nil {
		return nil, err
	}
	info.Server.Address = addr
	info.Server.Port = opts.port
	info.Server.Name = opts.name

	resp := mock.NewResponse("Example", 200, mock.ResponseText, "Hello, World")
	route := mock.NewRoute("/hello-world", mock.MethodGet)
	route.AddResponse(resp)
	route.SetActiveResponse(resp.ID)
	info.Router.AddRoute(route)

	return info, nil
}
