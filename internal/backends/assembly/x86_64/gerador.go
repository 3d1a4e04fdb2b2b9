package x86_64

import (
	"fmt"
	"math"
	"strconv"

	"github.com/khevencolino/Cometa/internal/debug"
	"github.com/khevencolino/Cometa/internal/lexer"
	"github.com/khevencolino/Cometa/internal/parser"
	"github.com/khevencolino/Cometa/internal/registry"
	"github.com/khevencolino/Cometa/internal/utils"
)

const (
	// RotuloEntrada é o único símbolo exportado pelo código gerado
	RotuloEntrada = "main"
	rotuloFormato = ".L.fmt"

	// Todo operador desempilha seus operandos nestes dois registradores
	regA = RAX
	regB = RDI
)

// Gerador traduz a AST para instruções de uma máquina de pilha:
// cada expressão deixa seu resultado no topo da pilha.
type Gerador struct {
	construtor *Construtor
	simbolos   *TabelaSimbolos
	registro   *registry.RegistroExterno
	usaImprime bool
}

// NovoGerador cria um gerador que resolve símbolos externos no registro global
func NovoGerador() *Gerador {
	return NovoGeradorComRegistro(registry.RegistroGlobal)
}

func NovoGeradorComRegistro(registro *registry.RegistroExterno) *Gerador {
	return &Gerador{registro: registro}
}

// GerarExpressao traduz uma expressão isolada; o valor dela é o retorno de main
func (g *Gerador) GerarExpressao(expressao parser.Expressao) (*Programa, error) {
	return g.Gerar(&parser.Unidade{Expressao: expressao})
}

// GerarPrograma traduz uma sequência de comandos
func (g *Gerador) GerarPrograma(comandos []parser.Comando) (*Programa, error) {
	return g.Gerar(&parser.Unidade{Comandos: comandos})
}

// Gerar traduz uma unidade inteira. Em caso de erro nenhum programa é retornado.
func (g *Gerador) Gerar(unidade *parser.Unidade) (*Programa, error) {
	g.construtor = NovoConstrutor()
	g.simbolos = NovaTabelaSimbolos()
	g.usaImprime = false

	g.construtor.Rotulo(RotuloEntrada)

	if unidade.EhExpressao() {
		g.prologo(0)
		if err := g.expressao(unidade.Expressao); err != nil {
			return nil, err
		}
		g.emitir(Pop(RAX))
		g.epilogo()
	} else {
		g.prologo(contarDeclaracoes(unidade.Comandos))
		for i, comando := range unidade.Comandos {
			debug.Printf("  Gerando comando %d: %s\n", i+1, comando)
			if err := g.comando(comando); err != nil {
				return nil, err
			}
		}
		g.emitir(MovImediato(RAX, 0))
		g.epilogo()
	}

	if g.usaImprime {
		if err := g.secaoDados(); err != nil {
			return nil, err
		}
	}

	return g.construtor.Construir(), nil
}

func (g *Gerador) emitir(instrucoes ...Instrucao) {
	g.construtor.Instrucao(instrucoes...)
}

// prologo monta o quadro de main com espaço para n variáveis
func (g *Gerador) prologo(variaveis int) {
	g.emitir(Push(RBP), Mov(RBP, RSP))
	if tamanho := tamanhoQuadro(variaveis); tamanho > 0 {
		g.emitir(SubImediato(RSP, tamanho))
	}
}

// epilogo desfaz o quadro e retorna o valor de rax
func (g *Gerador) epilogo() {
	g.emitir(Mov(RSP, RBP), Pop(RBP), Ret())
}

// secaoDados emite a string de formato usada por print
func (g *Gerador) secaoDados() error {
	simbolo, err := g.registro.ObterSimboloValidado(registry.Imprime)
	if err != nil {
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO, "print indisponível", 0, 0, err.Error())
	}
	g.construtor.Diretiva(".section .rodata")
	g.construtor.Rotulo(rotuloFormato)
	g.construtor.Diretiva(".string " + strconv.Quote(simbolo.Formato))
	return nil
}

func (g *Gerador) comando(comando parser.Comando) error {
	switch cmd := comando.(type) {
	case *parser.Declaracao:
		if g.simbolos.Contem(cmd.Nome) {
			return erroSemantico(cmd.Token, fmt.Sprintf("variável '%s' já declarada", cmd.Nome))
		}
		// A variável só passa a existir depois do inicializador: int a = a; é erro
		posicao := g.simbolos.Alocar()
		if err := g.expressao(cmd.Valor); err != nil {
			return err
		}
		g.emitir(Pop(RAX), Armazenar(posicao, RAX))
		g.simbolos.Registrar(cmd.Nome, posicao)
		return nil

	case *parser.Atribuicao:
		posicao, err := g.buscar(cmd.Nome, cmd.Token)
		if err != nil {
			return err
		}
		if err := g.expressao(cmd.Valor); err != nil {
			return err
		}
		g.emitir(Pop(RAX), Armazenar(posicao, RAX))
		return nil

	case *parser.Imprime:
		simbolo, err := g.registro.ObterSimboloValidado(registry.Imprime)
		if err != nil {
			return utils.NovoErro(utils.ERRO_NAO_SUPORTADO, "print indisponível",
				cmd.Token.Position.Line, cmd.Token.Position.Column, err.Error())
		}
		if err := g.expressao(cmd.Valor); err != nil {
			return err
		}
		// printf(formato, valor): rdi, rsi; al = 0 registradores vetoriais
		g.emitir(
			Pop(RSI),
			Lea(RDI, Simbolo{Nome: rotuloFormato, Relativo: true}),
			MovImediato(RAX, 0),
			Call(simbolo.Nome),
		)
		g.usaImprime = true
		return nil

	case *parser.Retorno:
		if err := g.expressao(cmd.Valor); err != nil {
			return err
		}
		g.emitir(Pop(RAX))
		g.epilogo()
		return nil

	default:
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO, fmt.Sprintf("comando %T não suportado", comando), 0, 0, "")
	}
}

func (g *Gerador) expressao(expressao parser.Expressao) error {
	switch expr := expressao.(type) {
	case *parser.Constante:
		g.empilharConstante(expr.Valor)
		return nil

	case *parser.Booleano:
		if expr.Valor {
			g.emitir(PushImediato(1))
		} else {
			g.emitir(PushImediato(0))
		}
		return nil

	case *parser.Variavel:
		posicao, err := g.buscar(expr.Nome, expr.Token)
		if err != nil {
			return err
		}
		g.emitir(Carregar(RAX, posicao), Push(RAX))
		return nil

	case *parser.OperacaoBinaria:
		if err := g.expressao(expr.OperandoEsquerdo); err != nil {
			return err
		}
		if err := g.expressao(expr.OperandoDireito); err != nil {
			return err
		}
		return g.operacaoBinaria(expr.Operador, expr.Token)

	case *parser.OperacaoUnaria:
		return g.operacaoUnaria(expr)

	default:
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO, fmt.Sprintf("expressão %T não suportada", expressao), 0, 0, "")
	}
}

// empilharConstante usa push imediato quando o valor cabe em 32 bits com sinal
func (g *Gerador) empilharConstante(valor int64) {
	if valor >= math.MinInt32 && valor <= math.MaxInt32 {
		g.emitir(PushImediato(valor))
		return
	}
	g.emitir(MovImediato(RAX, valor), Push(RAX))
}

// operacaoBinaria consome os dois valores do topo da pilha e empilha o resultado
func (g *Gerador) operacaoBinaria(operador parser.TipoOperador, token lexer.Token) error {
	g.emitir(Pop(regB), Pop(regA))

	switch operador {
	case parser.ADICAO:
		g.emitir(Add(regA, regB))
	case parser.SUBTRACAO:
		g.emitir(Sub(regA, regB))
	case parser.MULTIPLICACAO:
		g.emitir(Imul(regA, regB))
	case parser.DIVISAO:
		g.emitir(Cqo(), Idiv(regB))
	case parser.IGUALDADE:
		g.comparar(Sete)
	case parser.DIFERENCA:
		g.comparar(Setne)
	case parser.MENOR_QUE:
		g.comparar(Setl)
	case parser.MENOR_IGUAL:
		g.comparar(Setle)
	case parser.E_LOGICO:
		g.normalizar(regA)
		g.normalizar(regB)
		g.emitir(And(regA, regB))
	case parser.OU_LOGICO:
		g.emitir(Or(regA, regB))
		g.normalizar(regA)
	default:
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
			fmt.Sprintf("operador '%s' não suportado", operador),
			token.Position.Line, token.Position.Column, "")
	}

	g.emitir(Push(regA))
	return nil
}

func (g *Gerador) operacaoUnaria(expr *parser.OperacaoUnaria) error {
	switch expr.Operador {
	case parser.NEGACAO:
		// -x é traduzido como 0 - x
		g.emitir(PushImediato(0))
		if err := g.expressao(expr.Operando); err != nil {
			return err
		}
		return g.operacaoBinaria(parser.SUBTRACAO, expr.Token)

	case parser.REFERENCIA:
		variavel, ok := expr.Operando.(*parser.Variavel)
		if !ok {
			return utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
				fmt.Sprintf("endereço de '%s' não suportado", expr.Operando),
				expr.Token.Position.Line, expr.Token.Position.Column, "só variáveis têm endereço")
		}
		posicao, err := g.buscar(variavel.Nome, variavel.Token)
		if err != nil {
			return err
		}
		g.emitir(Lea(RAX, posicao), Push(RAX))
		return nil

	case parser.DESREFERENCIA:
		if err := g.expressao(expr.Operando); err != nil {
			return err
		}
		g.emitir(Pop(RAX), Carregar(RAX, Memoria{Base: RAX}), Push(RAX))
		return nil

	default:
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
			fmt.Sprintf("operador unário '%s' não suportado", expr.Operador),
			expr.Token.Position.Line, expr.Token.Position.Column, "")
	}
}

// comparar deixa em regA 1 se a condição de set vale para regA, regB, senão 0
func (g *Gerador) comparar(set func(Registrador) Instrucao) {
	g.emitir(Cmp(regA, regB), set(regA), Movzx(regA, regA))
}

// normalizar transforma qualquer valor não nulo em 1
func (g *Gerador) normalizar(registrador Registrador) {
	g.emitir(CmpImediato(registrador, 0), Setne(registrador), Movzx(registrador, registrador))
}

func (g *Gerador) buscar(nome string, token lexer.Token) (Memoria, error) {
	posicao, ok := g.simbolos.Buscar(nome)
	if !ok {
		return Memoria{}, erroSemantico(token, fmt.Sprintf("variável '%s' não declarada", nome))
	}
	return posicao, nil
}

func erroSemantico(token lexer.Token, mensagem string) error {
	return utils.NovoErro(utils.ERRO_SEMANTICO, mensagem, token.Position.Line, token.Position.Column, "")
}

func contarDeclaracoes(comandos []parser.Comando) int {
	total := 0
	for _, comando := range comandos {
		if _, ok := comando.(*parser.Declaracao); ok {
			total++
		}
	}
	return total
}
