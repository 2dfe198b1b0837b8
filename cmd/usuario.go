package main

import (
	"fmt"

	"github.com/corregedoria/api-inspecoes/internal/usuario"
	"github.com/corregedoria/api-inspecoes/internal/utils"

	"github.com/spf13/cobra"
)

var novoUsuario usuario.CriarUsuarioRequest

var criarUsuarioCmd = &cobra.Command{
	Use:   "criar-usuario",
	Short: "Cadastra um usuário no banco",
	RunE:  runCriarUsuario,
}

func init() {
	criarUsuarioCmd.Flags().StringVar(&novoUsuario.Nome, "nome", "", "nome do usuário")
	criarUsuarioCmd.Flags().StringVar(&novoUsuario.Email, "email", "", "e-mail de login (obrigatório)")
	criarUsuarioCmd.Flags().StringVar(&novoUsuario.Senha, "senha", "", "senha inicial (gerada se omitida)")
	criarUsuarioCmd.Flags().BoolVar(&novoUsuario.IsAdmin, "admin", false, "concede acesso administrativo")

	_ = criarUsuarioCmd.MarkFlagRequired("email")
}

func runCriarUsuario(cmd *cobra.Command, _ []string) error {
	cfg, log, err := carregar()
	if err != nil {
		return err
	}

	arm, err := abrirArmazenamento(cfg, log, true)
	if err != nil {
		return err
	}
	defer arm.Fechar()

	gerada := novoUsuario.Senha == ""
	if gerada {
		if novoUsuario.Senha, err = utils.GerarSenhaTemporaria(); err != nil {
			return fmt.Errorf("gerar senha: %w", err)
		}
	}

	u, err := usuario.Novo(cmd.Context(), arm.Usuarios, novoUsuario)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "usuário %d criado (%s, admin=%t)\n", u.ID, u.Email, u.IsAdmin)
	if gerada {
		fmt.Fprintf(out, "senha temporária: %s\n", novoUsuario.Senha)
	}
	return nil
}
