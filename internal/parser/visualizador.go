package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/m1gwings/treedrawer/tree"
)

// VisualizadorArvore cria representações visuais da AST
type VisualizadorArvore struct{}

// NovoVisualizador cria um novo visualizador
func NovoVisualizador() *VisualizadorArvore {
	return &VisualizadorArvore{}
}

// CriarArvore converte uma expressão para o formato do treedrawer
func (v *VisualizadorArvore) CriarArvore(expressao Expressao) *tree.Tree {
	arvore := tree.NewTree(tree.NodeString(rotuloExpressao(expressao)))
	v.adicionarFilhos(arvore, expressao)
	return arvore
}

// CriarArvoreUnidade converte uma unidade inteira; programas ganham uma raiz "programa"
func (v *VisualizadorArvore) CriarArvoreUnidade(unidade *Unidade) *tree.Tree {
	if unidade.EhExpressao() {
		return v.CriarArvore(unidade.Expressao)
	}

	arvore := tree.NewTree(tree.NodeString("programa"))
	for _, comando := range unidade.Comandos {
		no := arvore.AddChild(tree.NodeString(rotuloComando(comando)))
		if valor := valorDoComando(comando); valor != nil {
			v.adicionarSubarvore(no, valor)
		}
	}
	return arvore
}

// ImprimirArvore escreve a árvore da unidade em w
func (v *VisualizadorArvore) ImprimirArvore(w io.Writer, unidade *Unidade) {
	fmt.Fprintln(w, "=== Árvore Sintática ===")
	fmt.Fprintln(w, v.CriarArvoreUnidade(unidade))
	fmt.Fprintln(w)
}

// adicionarSubarvore pendura expressao (e seus filhos) abaixo de pai
func (v *VisualizadorArvore) adicionarSubarvore(pai *tree.Tree, expressao Expressao) {
	no := pai.AddChild(tree.NodeString(rotuloExpressao(expressao)))
	v.adicionarFilhos(no, expressao)
}

func (v *VisualizadorArvore) adicionarFilhos(no *tree.Tree, expressao Expressao) {
	switch expr := expressao.(type) {
	case *OperacaoBinaria:
		v.adicionarSubarvore(no, expr.OperandoEsquerdo)
		v.adicionarSubarvore(no, expr.OperandoDireito)
	case *OperacaoUnaria:
		v.adicionarSubarvore(no, expr.Operando)
	}
}

func rotuloExpressao(expressao Expressao) string {
	switch expr := expressao.(type) {
	case *Constante:
		return strconv.FormatInt(expr.Valor, 10)
	case *Booleano:
		return expr.String()
	case *Variavel:
		return expr.Nome
	case *OperacaoBinaria:
		return expr.Operador.String()
	case *OperacaoUnaria:
		return expr.Operador.String()
	default:
		return "?"
	}
}

func rotuloComando(comando Comando) string {
	switch cmd := comando.(type) {
	case *Imprime:
		return "print"
	case *Declaracao:
		return "int " + cmd.Nome
	case *Atribuicao:
		return cmd.Nome + " ="
	case *Retorno:
		return "return"
	default:
		return "?"
	}
}

func valorDoComando(comando Comando) Expressao {
	switch cmd := comando.(type) {
	case *Imprime:
		return cmd.Valor
	case *Declaracao:
		return cmd.Valor
	case *Atribuicao:
		return cmd.Valor
	case *Retorno:
		return cmd.Valor
	default:
		return nil
	}
}
