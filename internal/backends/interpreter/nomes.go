package interpreter

import (
	"fmt"

	"github.com/khevencolino/Cometa/internal/lexer"
	"github.com/khevencolino/Cometa/internal/parser"
	"github.com/khevencolino/Cometa/internal/utils"
)

// resolverNomes percorre todos os comandos, inclusive os que ficam depois de
// um return, e rejeita nomes não declarados ou redeclarados antes de avaliar.
func resolverNomes(comandos []parser.Comando) error {
	declaradas := make(map[string]bool)

	for _, comando := range comandos {
		switch cmd := comando.(type) {
		case *parser.Declaracao:
			if declaradas[cmd.Nome] {
				return erroNome(cmd.Token, fmt.Sprintf("variável '%s' já declarada", cmd.Nome))
			}
			// A variável só existe depois do inicializador
			if err := resolverExpressao(cmd.Valor, declaradas); err != nil {
				return err
			}
			declaradas[cmd.Nome] = true

		case *parser.Atribuicao:
			if !declaradas[cmd.Nome] {
				return erroNome(cmd.Token, fmt.Sprintf("variável '%s' não declarada", cmd.Nome))
			}
			if err := resolverExpressao(cmd.Valor, declaradas); err != nil {
				return err
			}

		case *parser.Imprime:
			if err := resolverExpressao(cmd.Valor, declaradas); err != nil {
				return err
			}

		case *parser.Retorno:
			if err := resolverExpressao(cmd.Valor, declaradas); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolverExpressao(expressao parser.Expressao, declaradas map[string]bool) error {
	switch expr := expressao.(type) {
	case *parser.Variavel:
		if !declaradas[expr.Nome] {
			return erroNome(expr.Token, fmt.Sprintf("variável '%s' não declarada", expr.Nome))
		}
	case *parser.OperacaoUnaria:
		return resolverExpressao(expr.Operando, declaradas)
	case *parser.OperacaoBinaria:
		if err := resolverExpressao(expr.OperandoEsquerdo, declaradas); err != nil {
			return err
		}
		return resolverExpressao(expr.OperandoDireito, declaradas)
	}
	return nil
}

func erroNome(token lexer.Token, mensagem string) error {
	return erroEm(utils.ERRO_SEMANTICO, token.Position.Line, token.Position.Column, mensagem)
}
