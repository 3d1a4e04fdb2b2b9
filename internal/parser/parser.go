package parser

import (
	"fmt"
	"strconv"

	"github.com/khevencolino/Cometa/internal/lexer"
	"github.com/khevencolino/Cometa/internal/utils"
)

// regraOperador associa um token a um operador binário do seu nível.
// inverter troca os operandos (a > b vira b < a).
type regraOperador struct {
	operador TipoOperador
	inverter bool
}

// Níveis de precedência, do menor para o maior
var (
	operadoresOu = map[lexer.TokenType]regraOperador{
		lexer.OR: {operador: OU_LOGICO},
	}
	operadoresE = map[lexer.TokenType]regraOperador{
		lexer.AND: {operador: E_LOGICO},
	}
	operadoresIgualdade = map[lexer.TokenType]regraOperador{
		lexer.EQUAL:     {operador: IGUALDADE},
		lexer.NOT_EQUAL: {operador: DIFERENCA},
	}
	operadoresRelacionais = map[lexer.TokenType]regraOperador{
		lexer.LESS:          {operador: MENOR_QUE},
		lexer.LESS_EQUAL:    {operador: MENOR_IGUAL},
		lexer.GREATER:       {operador: MENOR_QUE, inverter: true},
		lexer.GREATER_EQUAL: {operador: MENOR_IGUAL, inverter: true},
	}
	operadoresSoma = map[lexer.TokenType]regraOperador{
		lexer.PLUS:  {operador: ADICAO},
		lexer.MINUS: {operador: SUBTRACAO},
	}
	operadoresMultiplicacao = map[lexer.TokenType]regraOperador{
		lexer.STAR:  {operador: MULTIPLICACAO},
		lexer.SLASH: {operador: DIVISAO},
	}
)

// Parser representa o analisador sintático descendente recursivo.
// Consome os tokens sob demanda com um token de lookahead.
type Parser struct {
	lexer *lexer.Lexer
	atual lexer.Token
}

// NovoParser cria um novo analisador sintático já posicionado no primeiro token
func NovoParser(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{lexer: l}
	if err := p.avancar(); err != nil {
		return nil, err
	}
	return p, nil
}

// AnalisarExpressao analisa uma fonte inteira no modo expressão
func AnalisarExpressao(fonte string) (Expressao, error) {
	p, err := NovoParser(lexer.NovoLexer(fonte))
	if err != nil {
		return nil, err
	}
	return p.ExpressaoCompleta()
}

// AnalisarPrograma analisa uma fonte inteira como sequência de comandos
func AnalisarPrograma(fonte string) ([]Comando, error) {
	p, err := NovoParser(lexer.NovoLexer(fonte))
	if err != nil {
		return nil, err
	}
	return p.Programa()
}

// Programa analisa comandos até o fim da entrada
func (p *Parser) Programa() ([]Comando, error) {
	var comandos []Comando

	for p.atual.Type != lexer.EOF {
		comando, err := p.Comando()
		if err != nil {
			return nil, err
		}
		comandos = append(comandos, comando)
	}

	return comandos, nil
}

// ExpressaoCompleta analisa uma expressão seguida de ';' opcional e do fim da entrada
func (p *Parser) ExpressaoCompleta() (Expressao, error) {
	expressao, err := p.Expressao()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumir(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	if _, err := p.esperar(lexer.EOF); err != nil {
		return nil, err
	}
	return expressao, nil
}

// Comando analisa um único comando, decidindo pelo token inicial
func (p *Parser) Comando() (Comando, error) {
	token := p.atual

	switch token.Type {
	case lexer.INT:
		if err := p.avancar(); err != nil {
			return nil, err
		}
		nome, err := p.esperar(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		valor, err := p.valorAtribuido()
		if err != nil {
			return nil, err
		}
		return &Declaracao{Nome: nome.Value, Valor: valor, Token: token}, nil

	case lexer.IDENTIFIER:
		if err := p.avancar(); err != nil {
			return nil, err
		}
		valor, err := p.valorAtribuido()
		if err != nil {
			return nil, err
		}
		return &Atribuicao{Nome: token.Value, Valor: valor, Token: token}, nil

	case lexer.PRINT:
		if err := p.avancar(); err != nil {
			return nil, err
		}
		if _, err := p.esperar(lexer.LPAREN); err != nil {
			return nil, err
		}
		valor, err := p.Expressao()
		if err != nil {
			return nil, err
		}
		if _, err := p.esperar(lexer.RPAREN); err != nil {
			return nil, err
		}
		if _, err := p.consumir(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &Imprime{Valor: valor, Token: token}, nil

	case lexer.RETURN:
		if err := p.avancar(); err != nil {
			return nil, err
		}
		valor, err := p.Expressao()
		if err != nil {
			return nil, err
		}
		if _, err := p.esperar(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &Retorno{Valor: valor, Token: token}, nil

	default:
		return nil, p.erro(token, "comando inválido",
			fmt.Sprintf("esperado 'int', 'print', 'return' ou identificador, encontrado %s", descrever(token)))
	}
}

// valorAtribuido analisa "= expr ;"
func (p *Parser) valorAtribuido() (Expressao, error) {
	if _, err := p.esperar(lexer.ASSIGN); err != nil {
		return nil, err
	}
	valor, err := p.Expressao()
	if err != nil {
		return nil, err
	}
	if _, err := p.esperar(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return valor, nil
}

// Expressao analisa uma expressão a partir do nível de menor precedência
func (p *Parser) Expressao() (Expressao, error) {
	return p.ouLogico()
}

func (p *Parser) ouLogico() (Expressao, error) {
	return p.binariaEsquerda(p.eLogico, operadoresOu)
}

func (p *Parser) eLogico() (Expressao, error) {
	return p.binariaEsquerda(p.igualdade, operadoresE)
}

func (p *Parser) igualdade() (Expressao, error) {
	return p.binariaEsquerda(p.relacional, operadoresIgualdade)
}

func (p *Parser) relacional() (Expressao, error) {
	return p.binariaEsquerda(p.soma, operadoresRelacionais)
}

func (p *Parser) soma() (Expressao, error) {
	return p.binariaEsquerda(p.multiplicacao, operadoresSoma)
}

func (p *Parser) multiplicacao() (Expressao, error) {
	return p.binariaEsquerda(p.unaria, operadoresMultiplicacao)
}

// binariaEsquerda analisa operando (op operando)* e monta a árvore associativa à esquerda
func (p *Parser) binariaEsquerda(operando func() (Expressao, error), operadores map[lexer.TokenType]regraOperador) (Expressao, error) {
	esquerda, err := operando()
	if err != nil {
		return nil, err
	}

	for {
		regra, ok := operadores[p.atual.Type]
		if !ok {
			return esquerda, nil
		}

		operadorToken := p.atual
		if err := p.avancar(); err != nil {
			return nil, err
		}

		direita, err := operando()
		if err != nil {
			return nil, err
		}

		if regra.inverter {
			esquerda, direita = direita, esquerda
		}
		esquerda = &OperacaoBinaria{
			OperandoEsquerdo: esquerda,
			Operador:         regra.operador,
			OperandoDireito:  direita,
			Token:            operadorToken,
		}
	}
}

// unaria analisa um operador prefixo opcional seguido de uma expressão primária
func (p *Parser) unaria() (Expressao, error) {
	token := p.atual

	var operador TipoOperadorUnario
	switch token.Type {
	case lexer.PLUS:
		// + unário não altera o valor
		if err := p.avancar(); err != nil {
			return nil, err
		}
		return p.primaria()
	case lexer.MINUS:
		operador = NEGACAO
	case lexer.AMPERSAND:
		operador = REFERENCIA
	case lexer.STAR:
		operador = DESREFERENCIA
	default:
		return p.primaria()
	}

	if err := p.avancar(); err != nil {
		return nil, err
	}
	operando, err := p.primaria()
	if err != nil {
		return nil, err
	}
	return &OperacaoUnaria{Operador: operador, Operando: operando, Token: token}, nil
}

// primaria analisa números, booleanos, variáveis e expressões entre parênteses
func (p *Parser) primaria() (Expressao, error) {
	token := p.atual

	switch token.Type {
	case lexer.LPAREN:
		if err := p.avancar(); err != nil {
			return nil, err
		}
		expressao, err := p.Expressao()
		if err != nil {
			return nil, err
		}
		if _, err := p.esperar(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expressao, nil

	case lexer.NUMBER:
		valor, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			return nil, p.erro(token, "número fora do intervalo", token.Value)
		}
		if err := p.avancar(); err != nil {
			return nil, err
		}
		return &Constante{Valor: valor, Token: token}, nil

	case lexer.TRUE, lexer.FALSE:
		if err := p.avancar(); err != nil {
			return nil, err
		}
		return &Booleano{Valor: token.Type == lexer.TRUE, Token: token}, nil

	case lexer.IDENTIFIER:
		if err := p.avancar(); err != nil {
			return nil, err
		}
		return &Variavel{Nome: token.Value, Token: token}, nil

	default:
		return nil, p.erro(token, "expressão inválida",
			fmt.Sprintf("esperado número, identificador, booleano ou '(', encontrado %s", descrever(token)))
	}
}

// avancar lê o próximo token do lexer
func (p *Parser) avancar() error {
	token, err := p.lexer.ProximoToken()
	if err != nil {
		return err
	}
	p.atual = token
	return nil
}

// consumir avança se o token atual for do tipo dado
func (p *Parser) consumir(tipo lexer.TokenType) (bool, error) {
	if p.atual.Type != tipo {
		return false, nil
	}
	if err := p.avancar(); err != nil {
		return false, err
	}
	return true, nil
}

// esperar exige que o token atual seja do tipo dado e o consome
func (p *Parser) esperar(tipo lexer.TokenType) (lexer.Token, error) {
	token := p.atual
	if token.Type != tipo {
		return token, p.erro(token, "token inesperado",
			fmt.Sprintf("esperado %s, encontrado %s", tipo, descrever(token)))
	}
	if tipo == lexer.EOF {
		return token, nil
	}
	if err := p.avancar(); err != nil {
		return token, err
	}
	return token, nil
}

func (p *Parser) erro(token lexer.Token, mensagem, detalhes string) error {
	return utils.NovoErro(utils.ERRO_SINTATICO, mensagem, token.Position.Line, token.Position.Column, detalhes)
}

func descrever(token lexer.Token) string {
	switch {
	case token.Type == lexer.EOF:
		return "fim da entrada"
	case token.EPalavraReservada():
		return fmt.Sprintf("palavra reservada '%s'", token.Value)
	case token.ENumero():
		return fmt.Sprintf("número %s", token.Value)
	}
	return fmt.Sprintf("%s '%s'", token.Type, token.Value)
}
