package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/khevencolino/Cometa/internal/utils"
)

// Lexer representa o analisador léxico. Os tokens são produzidos sob demanda,
// sempre com um caractere atual no buffer e um de lookahead.
type Lexer struct {
	fonte     []rune   // Código fonte de entrada
	caractere rune     // Caractere atual, ainda não consumido
	terminado bool     // Fim da entrada atingido
	posicao   Position // Posição do caractere atual
}

// NovoLexer cria um novo analisador léxico
func NovoLexer(entrada string) *Lexer {
	lexer := &Lexer{
		fonte:   []rune(entrada),
		posicao: NovaPosicao(1, 1, 0),
	}
	lexer.carregar()
	return lexer
}

// Tokenizar consome toda a entrada e retorna a lista de tokens, terminando em EOF
func (l *Lexer) Tokenizar() ([]Token, error) {
	var tokens []Token

	for {
		token, err := l.ProximoToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)

		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// ProximoToken encontra o próximo token significativo
func (l *Lexer) ProximoToken() (Token, error) {
	l.pularEspacos()

	inicio := l.posicao
	if l.terminado {
		return NovoToken(EOF, "", inicio), nil
	}

	c := l.caractere
	if tipo, ok := pontuacao[c]; ok {
		l.lerCaractere()
		return NovoToken(tipo, string(c), inicio), nil
	}

	switch c {
	case '<':
		return l.operadorDuplo(inicio, '=', LESS_EQUAL, LESS), nil
	case '>':
		return l.operadorDuplo(inicio, '=', GREATER_EQUAL, GREATER), nil
	case '=':
		return l.operadorDuplo(inicio, '=', EQUAL, ASSIGN), nil
	case '&':
		return l.operadorDuplo(inicio, '&', AND, AMPERSAND), nil
	case '!':
		if l.espiarCaractere() == '=' {
			return l.operadorDuplo(inicio, '=', NOT_EQUAL, INVALID), nil
		}
	case '|':
		if l.espiarCaractere() == '|' {
			return l.operadorDuplo(inicio, '|', OR, INVALID), nil
		}
	}

	if numero, ok := l.lerNumero(); ok {
		return NovoToken(NUMBER, numero, inicio), nil
	}

	if ehInicioIdentificador(c) {
		texto := l.lerIdentificador()
		if tipo, reservada := palavrasReservadas[texto]; reservada {
			return NovoToken(tipo, texto, inicio), nil
		}
		return NovoToken(IDENTIFIER, texto, inicio), nil
	}

	// Caractere inválido
	return NovoToken(INVALID, string(c), inicio), utils.NovoErro(
		utils.ERRO_LEXICO,
		fmt.Sprintf("caractere inválido '%c'", c),
		inicio.Line,
		inicio.Column,
		"",
	)
}

// operadorDuplo consome um operador de um ou dois caracteres.
// O segundo caractere só é consumido quando espiarCaractere confirma o par.
func (l *Lexer) operadorDuplo(inicio Position, segundo rune, composto, simples TokenType) Token {
	primeiro := l.caractere
	if l.espiarCaractere() == segundo {
		l.lerCaractere()
		l.lerCaractere()
		return NovoToken(composto, string([]rune{primeiro, segundo}), inicio)
	}
	l.lerCaractere()
	return NovoToken(simples, string(primeiro), inicio)
}

// lerNumero acumula dígitos consecutivos; retorna false se o caractere atual não for dígito
func (l *Lexer) lerNumero() (string, bool) {
	if l.terminado || !ehDigito(l.caractere) {
		return "", false
	}

	var builder strings.Builder
	for !l.terminado && ehDigito(l.caractere) {
		builder.WriteRune(l.caractere)
		l.lerCaractere()
	}
	return builder.String(), true
}

// lerIdentificador acumula letras, dígitos e sublinhados
func (l *Lexer) lerIdentificador() string {
	var builder strings.Builder
	for !l.terminado && ehParteIdentificador(l.caractere) {
		builder.WriteRune(l.caractere)
		l.lerCaractere()
	}
	return builder.String()
}

// pularEspacos ignora espaços em branco e comentários de linha (//)
func (l *Lexer) pularEspacos() {
	for !l.terminado {
		switch {
		case unicode.IsSpace(l.caractere):
			l.lerCaractere()
		case l.caractere == '/' && l.espiarCaractere() == '/':
			for !l.terminado && l.caractere != '\n' {
				l.lerCaractere()
			}
		default:
			return
		}
	}
}

// carregar coloca no buffer o caractere da posição atual
func (l *Lexer) carregar() {
	if l.posicao.Offset >= len(l.fonte) {
		l.caractere = 0
		l.terminado = true
		return
	}
	l.caractere = l.fonte[l.posicao.Offset]
}

// lerCaractere avança o cursor um caractere
func (l *Lexer) lerCaractere() rune {
	if l.terminado {
		return l.caractere
	}
	l.posicao = l.posicao.depois(l.caractere)
	l.carregar()
	return l.caractere
}

// espiarCaractere retorna o caractere seguinte ao atual sem avançar
func (l *Lexer) espiarCaractere() rune {
	proximo := l.posicao.Offset + 1
	if l.terminado || proximo >= len(l.fonte) {
		return 0
	}
	return l.fonte[proximo]
}

func ehDigito(c rune) bool {
	return c >= '0' && c <= '9'
}

func ehInicioIdentificador(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func ehParteIdentificador(c rune) bool {
	return ehInicioIdentificador(c) || ehDigito(c)
}

// ImprimirTokens imprime todos os tokens de forma formatada
func ImprimirTokens(w io.Writer, tokens []Token) {
	fmt.Fprintf(w, "%-14s %-15s %-20s\n", "TIPO", "VALOR", "POSIÇÃO")
	fmt.Fprintln(w, strings.Repeat("-", 50))

	for _, token := range tokens {
		if token.Type != EOF {
			fmt.Fprintf(w, "%-14s %-15s %-20s\n", token.Type, token.Value, token.Position)
		}
	}
}
