package parser

import (
	"fmt"
	"strings"

	"github.com/khevencolino/Cometa/internal/lexer"
)

// Expressao representa um nó de expressão da AST.
// O conjunto de nós é fechado: só os tipos deste pacote implementam a interface,
// e os consumidores os distinguem por type switch.
type Expressao interface {
	String() string
	expressao()
}

// Comando representa um nó de comando da AST
type Comando interface {
	String() string
	comando()
}

// Constante representa um literal inteiro na árvore
type Constante struct {
	Valor int64
	Token lexer.Token
}

// Booleano representa os literais true e false
type Booleano struct {
	Valor bool
	Token lexer.Token
}

// Variavel representa a referência a um identificador
type Variavel struct {
	Nome  string
	Token lexer.Token
}

// OperacaoBinaria representa uma operação binária na árvore
type OperacaoBinaria struct {
	OperandoEsquerdo Expressao
	Operador         TipoOperador
	OperandoDireito  Expressao
	Token            lexer.Token
}

// OperacaoUnaria representa uma operação prefixa (-x, &x, *x)
type OperacaoUnaria struct {
	Operador TipoOperadorUnario
	Operando Expressao
	Token    lexer.Token
}

func (*Constante) expressao()       {}
func (*Booleano) expressao()        {}
func (*Variavel) expressao()        {}
func (*OperacaoBinaria) expressao() {}
func (*OperacaoUnaria) expressao()  {}

func (c *Constante) String() string { return fmt.Sprintf("%d", c.Valor) }
func (v *Variavel) String() string  { return v.Nome }

func (b *Booleano) String() string {
	if b.Valor {
		return "true"
	}
	return "false"
}

// String retorna representação em string da operação
func (o *OperacaoBinaria) String() string {
	return fmt.Sprintf("(%s %s %s)",
		o.OperandoEsquerdo.String(),
		o.Operador.String(),
		o.OperandoDireito.String())
}

func (o *OperacaoUnaria) String() string {
	return fmt.Sprintf("(%s%s)", o.Operador.String(), o.Operando.String())
}

// TipoOperador representa os operadores binários.
// Não há "maior que": o parser troca os operandos e usa MENOR_QUE/MENOR_IGUAL.
type TipoOperador int

const (
	ADICAO TipoOperador = iota
	SUBTRACAO
	MULTIPLICACAO
	DIVISAO
	IGUALDADE
	DIFERENCA
	MENOR_QUE
	MENOR_IGUAL
	E_LOGICO
	OU_LOGICO
)

// String retorna representação em string do operador
func (t TipoOperador) String() string {
	switch t {
	case ADICAO:
		return "+"
	case SUBTRACAO:
		return "-"
	case MULTIPLICACAO:
		return "*"
	case DIVISAO:
		return "/"
	case IGUALDADE:
		return "=="
	case DIFERENCA:
		return "!="
	case MENOR_QUE:
		return "<"
	case MENOR_IGUAL:
		return "<="
	case E_LOGICO:
		return "&&"
	case OU_LOGICO:
		return "||"
	default:
		return "?"
	}
}

// TipoOperadorUnario representa os operadores prefixos
type TipoOperadorUnario int

const (
	NEGACAO TipoOperadorUnario = iota
	REFERENCIA
	DESREFERENCIA
)

func (t TipoOperadorUnario) String() string {
	switch t {
	case NEGACAO:
		return "-"
	case REFERENCIA:
		return "&"
	case DESREFERENCIA:
		return "*"
	default:
		return "?"
	}
}

// Imprime representa print(expr)
type Imprime struct {
	Valor Expressao
	Token lexer.Token
}

// Declaracao representa int nome = expr;
type Declaracao struct {
	Nome  string
	Valor Expressao
	Token lexer.Token
}

// Atribuicao representa nome = expr;
type Atribuicao struct {
	Nome  string
	Valor Expressao
	Token lexer.Token
}

// Retorno representa return expr;
type Retorno struct {
	Valor Expressao
	Token lexer.Token
}

func (*Imprime) comando()    {}
func (*Declaracao) comando() {}
func (*Atribuicao) comando() {}
func (*Retorno) comando()    {}

func (i *Imprime) String() string    { return fmt.Sprintf("print(%s)", i.Valor) }
func (d *Declaracao) String() string { return fmt.Sprintf("int %s = %s;", d.Nome, d.Valor) }
func (a *Atribuicao) String() string { return fmt.Sprintf("%s = %s;", a.Nome, a.Valor) }
func (r *Retorno) String() string    { return fmt.Sprintf("return %s;", r.Valor) }

// Unidade é o resultado da análise de uma fonte: uma expressão isolada
// ou uma sequência de comandos
type Unidade struct {
	Expressao Expressao
	Comandos  []Comando
}

// EhExpressao informa se a unidade foi analisada no modo expressão
func (u *Unidade) EhExpressao() bool {
	return u.Expressao != nil
}

func (u *Unidade) String() string {
	if u.EhExpressao() {
		return u.Expressao.String()
	}
	linhas := make([]string, len(u.Comandos))
	for i, comando := range u.Comandos {
		linhas[i] = comando.String()
	}
	return strings.Join(linhas, "\n")
}
