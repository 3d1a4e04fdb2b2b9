package lexer

import "fmt"

// TokenType representa o tipo de token
type TokenType int

const (
	EOF     TokenType = iota // Fim da entrada
	INVALID                  // Token inválido

	NUMBER     // Números
	IDENTIFIER // Nomes de variáveis

	// Palavras reservadas
	INT    // int
	PRINT  // print
	RETURN // return
	TRUE   // true
	FALSE  // false

	// Pontuação
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;
	ASSIGN    // =
	AMPERSAND // &

	// Comparação
	LESS          // <
	LESS_EQUAL    // <=
	GREATER       // >
	GREATER_EQUAL // >=
	EQUAL         // ==
	NOT_EQUAL     // !=

	// Lógicos
	AND // &&
	OR  // ||
)

var nomesTokens = map[TokenType]string{
	EOF:           "EOF",
	INVALID:       "INVALID",
	NUMBER:        "NUMBER",
	IDENTIFIER:    "IDENTIFIER",
	INT:           "INT",
	PRINT:         "PRINT",
	RETURN:        "RETURN",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	STAR:          "STAR",
	SLASH:         "SLASH",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	SEMICOLON:     "SEMICOLON",
	ASSIGN:        "ASSIGN",
	AMPERSAND:     "AMPERSAND",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	EQUAL:         "EQUAL",
	NOT_EQUAL:     "NOT_EQUAL",
	AND:           "AND",
	OR:            "OR",
}

// String retorna uma representação em string do tipo de token
func (t TokenType) String() string {
	if nome, ok := nomesTokens[t]; ok {
		return nome
	}
	return "UNKNOWN"
}

// palavrasReservadas reclassifica identificadores
var palavrasReservadas = map[string]TokenType{
	"int":    INT,
	"print":  PRINT,
	"return": RETURN,
	"true":   TRUE,
	"false":  FALSE,
}

// pontuacao cobre os tokens de um único caractere sem ambiguidade
var pontuacao = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'(': LPAREN,
	')': RPAREN,
	';': SEMICOLON,
}

// Token representa um token encontrado no código fonte
type Token struct {
	Type     TokenType // Tipo do token
	Value    string    // Texto literal do token
	Position Position  // Posição no código fonte
}

// String retorna uma representação em string do token
func (t Token) String() string {
	return fmt.Sprintf("%s('%s') em %s", t.Type, t.Value, t.Position)
}

// NovoToken cria um novo token
func NovoToken(tipoToken TokenType, valor string, posicao Position) Token {
	return Token{
		Type:     tipoToken,
		Value:    valor,
		Position: posicao,
	}
}

// EPalavraReservada verifica se o token é uma palavra reservada
func (t Token) EPalavraReservada() bool {
	_, ok := palavrasReservadas[t.Value]
	return ok && t.Type != IDENTIFIER
}

// ENumero verifica se o token é um número
func (t Token) ENumero() bool {
	return t.Type == NUMBER
}
