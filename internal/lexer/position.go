package lexer

import "fmt"

// Position representa uma posição no código fonte
type Position struct {
	Line   int // Linha no código, a partir de 1
	Column int // Coluna no código, a partir de 1
	Offset int // Índice do caractere na entrada
}

// String retorna uma representação em string da posição
func (p Position) String() string {
	return fmt.Sprintf("linha %d, coluna %d", p.Line, p.Column)
}

// NovaPosicao cria uma nova posição
func NovaPosicao(linha, coluna, offset int) Position {
	return Position{
		Line:   linha,
		Column: coluna,
		Offset: offset,
	}
}

// depois retorna a posição seguinte ao caractere c
func (p Position) depois(c rune) Position {
	if c == '\n' {
		return Position{Line: p.Line + 1, Column: 1, Offset: p.Offset + 1}
	}
	return Position{Line: p.Line, Column: p.Column + 1, Offset: p.Offset + 1}
}
