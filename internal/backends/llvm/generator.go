package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/khevencolino/Cometa/internal/lexer"
	"github.com/khevencolino/Cometa/internal/parser"
	"github.com/khevencolino/Cometa/internal/registry"
	"github.com/khevencolino/Cometa/internal/utils"
)

var ponteiroI64 = types.NewPointer(types.I64)

// gerador guarda o estado de uma tradução: o módulo, a função main e o bloco corrente
type gerador struct {
	registro *registry.RegistroExterno

	modulo    *ir.Module
	main      *ir.Func
	entrada   *ir.Block
	bloco     *ir.Block
	printf    *ir.Func
	formato   value.Value
	variaveis map[string]*ir.InstAlloca
	retornos  int
}

func novoGerador(registro *registry.RegistroExterno) *gerador {
	return &gerador{registro: registro}
}

func (g *gerador) gerar(unidade *parser.Unidade) (*ir.Module, error) {
	g.modulo = ir.NewModule()
	g.variaveis = make(map[string]*ir.InstAlloca)
	g.printf = nil
	g.formato = nil
	g.retornos = 0

	g.main = g.modulo.NewFunc("main", types.I32)
	g.entrada = g.main.NewBlock("bloco.entrada")
	g.bloco = g.entrada

	if unidade.EhExpressao() {
		valor, err := g.expressao(unidade.Expressao)
		if err != nil {
			return nil, err
		}
		g.retornar(valor)
		return g.modulo, nil
	}

	for _, comando := range unidade.Comandos {
		if err := g.comando(comando); err != nil {
			return nil, err
		}
	}

	// Sem return, main devolve 0
	g.bloco.NewRet(constant.NewInt(types.I32, 0))
	return g.modulo, nil
}

// retornar encerra o bloco corrente com o valor truncado para o int de main
func (g *gerador) retornar(valor value.Value) {
	g.bloco.NewRet(g.bloco.NewTrunc(valor, types.I32))
}

func (g *gerador) comando(comando parser.Comando) error {
	switch cmd := comando.(type) {
	case *parser.Declaracao:
		if _, existe := g.variaveis[cmd.Nome]; existe {
			return erroSemantico(cmd.Token, fmt.Sprintf("variável '%s' já declarada", cmd.Nome))
		}
		valor, err := g.expressao(cmd.Valor)
		if err != nil {
			return err
		}
		// allocas ficam no bloco de entrada, como o clang faz
		variavel := g.entrada.NewAlloca(types.I64)
		variavel.SetName(cmd.Nome)
		g.moverParaInicio(variavel)
		g.bloco.NewStore(valor, variavel)
		g.variaveis[cmd.Nome] = variavel
		return nil

	case *parser.Atribuicao:
		variavel, err := g.buscar(cmd.Nome, cmd.Token)
		if err != nil {
			return err
		}
		valor, err := g.expressao(cmd.Valor)
		if err != nil {
			return err
		}
		g.bloco.NewStore(valor, variavel)
		return nil

	case *parser.Imprime:
		valor, err := g.expressao(cmd.Valor)
		if err != nil {
			return err
		}
		return g.imprimir(valor, cmd.Token)

	case *parser.Retorno:
		valor, err := g.expressao(cmd.Valor)
		if err != nil {
			return err
		}
		g.retornar(valor)
		// O que vier depois do return fica num bloco inalcançável
		g.retornos++
		g.bloco = g.main.NewBlock(fmt.Sprintf("bloco.apos.retorno.%d", g.retornos))
		return nil

	default:
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO, fmt.Sprintf("comando %T não suportado", comando), 0, 0, "")
	}
}

// moverParaInicio coloca a alloca recém-criada antes das demais instruções da entrada
func (g *gerador) moverParaInicio(alloca *ir.InstAlloca) {
	insts := g.entrada.Insts
	posicao := 0
	for posicao < len(insts)-1 {
		if _, ok := insts[posicao].(*ir.InstAlloca); !ok {
			break
		}
		posicao++
	}
	copy(insts[posicao+1:], insts[posicao:len(insts)-1])
	insts[posicao] = alloca
}

func (g *gerador) imprimir(valor value.Value, token lexer.Token) error {
	simbolo, err := g.registro.ObterSimboloValidado(registry.Imprime)
	if err != nil {
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO, "print indisponível",
			token.Position.Line, token.Position.Column, err.Error())
	}

	if g.printf == nil {
		g.printf = g.modulo.NewFunc(simbolo.Nome, types.I32, ir.NewParam("formato", types.NewPointer(types.I8)))
		g.printf.Sig.Variadic = simbolo.Variadico

		texto := constant.NewCharArrayFromString(simbolo.Formato + "\x00")
		global := g.modulo.NewGlobalDef("fmt", texto)
		global.Immutable = true
		global.Linkage = enum.LinkagePrivate
		zero := constant.NewInt(types.I64, 0)
		g.formato = constant.NewGetElementPtr(texto.Typ, global, zero, zero)
	}

	// %d lê um int, como no backend de assembly
	g.bloco.NewCall(g.printf, g.formato, g.bloco.NewTrunc(valor, types.I32))
	return nil
}

func (g *gerador) expressao(expressao parser.Expressao) (value.Value, error) {
	switch expr := expressao.(type) {
	case *parser.Constante:
		return constant.NewInt(types.I64, expr.Valor), nil

	case *parser.Booleano:
		if expr.Valor {
			return constant.NewInt(types.I64, 1), nil
		}
		return constant.NewInt(types.I64, 0), nil

	case *parser.Variavel:
		variavel, err := g.buscar(expr.Nome, expr.Token)
		if err != nil {
			return nil, err
		}
		return g.bloco.NewLoad(types.I64, variavel), nil

	case *parser.OperacaoBinaria:
		esquerda, err := g.expressao(expr.OperandoEsquerdo)
		if err != nil {
			return nil, err
		}
		direita, err := g.expressao(expr.OperandoDireito)
		if err != nil {
			return nil, err
		}
		return g.operacaoBinaria(expr, esquerda, direita)

	case *parser.OperacaoUnaria:
		return g.operacaoUnaria(expr)

	default:
		return nil, utils.NovoErro(utils.ERRO_NAO_SUPORTADO, fmt.Sprintf("expressão %T não suportada", expressao), 0, 0, "")
	}
}

var predicados = map[parser.TipoOperador]enum.IPred{
	parser.IGUALDADE:   enum.IPredEQ,
	parser.DIFERENCA:   enum.IPredNE,
	parser.MENOR_QUE:   enum.IPredSLT,
	parser.MENOR_IGUAL: enum.IPredSLE,
}

func (g *gerador) operacaoBinaria(operacao *parser.OperacaoBinaria, esquerda, direita value.Value) (value.Value, error) {
	switch operacao.Operador {
	case parser.ADICAO:
		return g.bloco.NewAdd(esquerda, direita), nil
	case parser.SUBTRACAO:
		return g.bloco.NewSub(esquerda, direita), nil
	case parser.MULTIPLICACAO:
		return g.bloco.NewMul(esquerda, direita), nil
	case parser.DIVISAO:
		return g.bloco.NewSDiv(esquerda, direita), nil
	case parser.IGUALDADE, parser.DIFERENCA, parser.MENOR_QUE, parser.MENOR_IGUAL:
		comparacao := g.bloco.NewICmp(predicados[operacao.Operador], esquerda, direita)
		return g.bloco.NewZExt(comparacao, types.I64), nil
	case parser.E_LOGICO:
		return g.bloco.NewZExt(g.bloco.NewAnd(g.verdadeiro(esquerda), g.verdadeiro(direita)), types.I64), nil
	case parser.OU_LOGICO:
		return g.bloco.NewZExt(g.bloco.NewOr(g.verdadeiro(esquerda), g.verdadeiro(direita)), types.I64), nil
	default:
		return nil, utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
			fmt.Sprintf("operador '%s' não suportado", operacao.Operador),
			operacao.Token.Position.Line, operacao.Token.Position.Column, "")
	}
}

// verdadeiro converte um i64 em i1: valor != 0
func (g *gerador) verdadeiro(valor value.Value) value.Value {
	return g.bloco.NewICmp(enum.IPredNE, valor, constant.NewInt(types.I64, 0))
}

func (g *gerador) operacaoUnaria(expr *parser.OperacaoUnaria) (value.Value, error) {
	switch expr.Operador {
	case parser.NEGACAO:
		valor, err := g.expressao(expr.Operando)
		if err != nil {
			return nil, err
		}
		return g.bloco.NewSub(constant.NewInt(types.I64, 0), valor), nil

	case parser.REFERENCIA:
		variavel, ok := expr.Operando.(*parser.Variavel)
		if !ok {
			return nil, utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
				fmt.Sprintf("endereço de '%s' não suportado", expr.Operando),
				expr.Token.Position.Line, expr.Token.Position.Column, "só variáveis têm endereço")
		}
		alloca, err := g.buscar(variavel.Nome, variavel.Token)
		if err != nil {
			return nil, err
		}
		return g.bloco.NewPtrToInt(alloca, types.I64), nil

	case parser.DESREFERENCIA:
		endereco, err := g.expressao(expr.Operando)
		if err != nil {
			return nil, err
		}
		ponteiro := g.bloco.NewIntToPtr(endereco, ponteiroI64)
		return g.bloco.NewLoad(types.I64, ponteiro), nil

	default:
		return nil, utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
			fmt.Sprintf("operador unário '%s' não suportado", expr.Operador),
			expr.Token.Position.Line, expr.Token.Position.Column, "")
	}
}

func (g *gerador) buscar(nome string, token lexer.Token) (*ir.InstAlloca, error) {
	variavel, ok := g.variaveis[nome]
	if !ok {
		return nil, erroSemantico(token, fmt.Sprintf("variável '%s' não declarada", nome))
	}
	return variavel, nil
}

func erroSemantico(token lexer.Token, mensagem string) error {
	return utils.NovoErro(utils.ERRO_SEMANTICO, mensagem, token.Position.Line, token.Position.Column, "")
}
