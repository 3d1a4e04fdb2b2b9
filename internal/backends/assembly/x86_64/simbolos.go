package x86_64

const tamanhoPalavra = 8

// TabelaSimbolos mapeia nomes de variáveis para posições na pilha, relativas a rbp.
// É um espaço de nomes único, sem escopos.
type TabelaSimbolos struct {
	posicoes map[string]Memoria
	alocados int
}

func NovaTabelaSimbolos() *TabelaSimbolos {
	return &TabelaSimbolos{posicoes: make(map[string]Memoria)}
}

// Alocar reserva a próxima palavra do quadro, abaixo de rbp
func (t *TabelaSimbolos) Alocar() Memoria {
	t.alocados++
	return Memoria{Base: RBP, Deslocamento: -int64(t.alocados * tamanhoPalavra)}
}

// Registrar associa nome a uma posição já alocada
func (t *TabelaSimbolos) Registrar(nome string, posicao Memoria) {
	t.posicoes[nome] = posicao
}

func (t *TabelaSimbolos) Buscar(nome string) (Memoria, bool) {
	posicao, ok := t.posicoes[nome]
	return posicao, ok
}

func (t *TabelaSimbolos) Contem(nome string) bool {
	_, ok := t.posicoes[nome]
	return ok
}

// Len retorna o número de variáveis registradas
func (t *TabelaSimbolos) Len() int {
	return len(t.posicoes)
}

// tamanhoQuadro retorna os bytes de pilha para n variáveis, alinhado a 16
func tamanhoQuadro(n int) int64 {
	bytes := int64(n * tamanhoPalavra)
	if resto := bytes % 16; resto != 0 {
		bytes += 16 - resto
	}
	return bytes
}
