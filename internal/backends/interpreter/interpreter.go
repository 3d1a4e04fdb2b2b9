package interpreter

import (
	"fmt"
	"io"
	"math"

	"github.com/khevencolino/Cometa/internal/debug"
	"github.com/khevencolino/Cometa/internal/parser"
	"github.com/khevencolino/Cometa/internal/registry"
	"github.com/khevencolino/Cometa/internal/utils"
)

type InterpreterBackend struct {
	variaveis map[string]int64
	registro  *registry.RegistroExterno
}

func NewInterpreterBackend() *InterpreterBackend {
	return &InterpreterBackend{
		variaveis: make(map[string]int64),
		registro:  registry.RegistroGlobal,
	}
}

func (i *InterpreterBackend) GetName() string { return "Interpretador AST" }

// Executar avalia a unidade diretamente da AST. print escreve em saida e o
// valor de retorno segue as mesmas regras do código gerado.
func (i *InterpreterBackend) Executar(unidade *parser.Unidade, saida io.Writer) (int64, error) {
	debug.Printf("🔍 Interpretando diretamente da AST...\n")
	i.variaveis = make(map[string]int64)

	if unidade.EhExpressao() {
		return i.avaliar(unidade.Expressao)
	}

	if err := resolverNomes(unidade.Comandos); err != nil {
		return 0, err
	}

	for idx, comando := range unidade.Comandos {
		debug.Printf("--- Comando %d: %s ---\n", idx+1, comando)

		valor, retornou, err := i.executar(comando, saida)
		if err != nil {
			return 0, err
		}
		if retornou {
			return valor, nil
		}
	}

	// Sem return, main devolve 0
	return 0, nil
}

// executar roda um comando; retornou indica que a execução deve parar
func (i *InterpreterBackend) executar(comando parser.Comando, saida io.Writer) (int64, bool, error) {
	switch cmd := comando.(type) {
	case *parser.Declaracao:
		if _, existe := i.variaveis[cmd.Nome]; existe {
			return 0, false, erroEm(utils.ERRO_SEMANTICO, cmd.Token.Position.Line, cmd.Token.Position.Column,
				fmt.Sprintf("variável '%s' já declarada", cmd.Nome))
		}
		valor, err := i.avaliar(cmd.Valor)
		if err != nil {
			return 0, false, err
		}
		i.variaveis[cmd.Nome] = valor
		return 0, false, nil

	case *parser.Atribuicao:
		if _, existe := i.variaveis[cmd.Nome]; !existe {
			return 0, false, erroEm(utils.ERRO_SEMANTICO, cmd.Token.Position.Line, cmd.Token.Position.Column,
				fmt.Sprintf("variável '%s' não declarada", cmd.Nome))
		}
		valor, err := i.avaliar(cmd.Valor)
		if err != nil {
			return 0, false, err
		}
		i.variaveis[cmd.Nome] = valor
		return 0, false, nil

	case *parser.Imprime:
		simbolo, err := i.registro.ObterSimboloValidado(registry.Imprime)
		if err != nil {
			return 0, false, utils.NovoErro(utils.ERRO_NAO_SUPORTADO, "print indisponível",
				cmd.Token.Position.Line, cmd.Token.Position.Column, err.Error())
		}
		valor, err := i.avaliar(cmd.Valor)
		if err != nil {
			return 0, false, err
		}
		if _, err := io.WriteString(saida, simbolo.Formatar(valor)); err != nil {
			return 0, false, utils.NovoErro(utils.ERRO_IO, "falha ao escrever a saída", 0, 0, err.Error())
		}
		return 0, false, nil

	case *parser.Retorno:
		valor, err := i.avaliar(cmd.Valor)
		return valor, err == nil, err

	default:
		return 0, false, utils.NovoErro(utils.ERRO_NAO_SUPORTADO, fmt.Sprintf("comando %T não suportado", comando), 0, 0, "")
	}
}

func (i *InterpreterBackend) avaliar(expressao parser.Expressao) (int64, error) {
	switch expr := expressao.(type) {
	case *parser.Constante:
		return expr.Valor, nil

	case *parser.Booleano:
		return booleano(expr.Valor), nil

	case *parser.Variavel:
		valor, existe := i.variaveis[expr.Nome]
		if !existe {
			return 0, erroEm(utils.ERRO_SEMANTICO, expr.Token.Position.Line, expr.Token.Position.Column,
				fmt.Sprintf("variável '%s' não declarada", expr.Nome))
		}
		return valor, nil

	case *parser.OperacaoUnaria:
		if expr.Operador != parser.NEGACAO {
			return 0, erroEm(utils.ERRO_NAO_SUPORTADO, expr.Token.Position.Line, expr.Token.Position.Column,
				fmt.Sprintf("operador '%s' não suportado pelo interpretador", expr.Operador))
		}
		valor, err := i.avaliar(expr.Operando)
		if err != nil {
			return 0, err
		}
		return -valor, nil

	case *parser.OperacaoBinaria:
		return i.operacaoBinaria(expr)

	default:
		return 0, utils.NovoErro(utils.ERRO_NAO_SUPORTADO, fmt.Sprintf("expressão %T não suportada", expressao), 0, 0, "")
	}
}

func (i *InterpreterBackend) operacaoBinaria(operacao *parser.OperacaoBinaria) (int64, error) {
	// Os dois lados são sempre avaliados, sem curto-circuito
	esquerdo, err := i.avaliar(operacao.OperandoEsquerdo)
	if err != nil {
		return 0, err
	}
	direito, err := i.avaliar(operacao.OperandoDireito)
	if err != nil {
		return 0, err
	}

	switch operacao.Operador {
	case parser.ADICAO:
		return esquerdo + direito, nil
	case parser.SUBTRACAO:
		return esquerdo - direito, nil
	case parser.MULTIPLICACAO:
		return esquerdo * direito, nil
	case parser.DIVISAO:
		if direito == 0 {
			return 0, erroEm(utils.ERRO_EXECUCAO, operacao.Token.Position.Line, operacao.Token.Position.Column, "divisão por zero")
		}
		if esquerdo == math.MinInt64 && direito == -1 {
			return 0, erroEm(utils.ERRO_EXECUCAO, operacao.Token.Position.Line, operacao.Token.Position.Column, "estouro na divisão")
		}
		return esquerdo / direito, nil
	case parser.IGUALDADE:
		return booleano(esquerdo == direito), nil
	case parser.DIFERENCA:
		return booleano(esquerdo != direito), nil
	case parser.MENOR_QUE:
		return booleano(esquerdo < direito), nil
	case parser.MENOR_IGUAL:
		return booleano(esquerdo <= direito), nil
	case parser.E_LOGICO:
		return booleano(esquerdo != 0 && direito != 0), nil
	case parser.OU_LOGICO:
		return booleano(esquerdo != 0 || direito != 0), nil
	default:
		return 0, erroEm(utils.ERRO_NAO_SUPORTADO, operacao.Token.Position.Line, operacao.Token.Position.Column,
			fmt.Sprintf("operador '%s' desconhecido", operacao.Operador))
	}
}

func booleano(condicao bool) int64 {
	if condicao {
		return 1
	}
	return 0
}

func erroEm(tipo utils.TipoErro, linha, coluna int, mensagem string) error {
	return utils.NovoErro(tipo, mensagem, linha, coluna, "")
}
