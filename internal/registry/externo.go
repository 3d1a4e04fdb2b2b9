package registry

import (
	"fmt"
	"sort"
)

// Nome da rotina de formatação usada pelo comando print
const Imprime = "printf"

// SimboloExterno descreve um símbolo fornecido pelo ligador (libc),
// do qual o código gerado passa a depender
type SimboloExterno struct {
	Nome      string
	Formato   string // String de formato passada como primeiro argumento
	Variadico bool
	Descricao string
}

// Formatar reproduz a saída da rotina para um argumento inteiro.
// %d do printf lê só os 32 bits inferiores do argumento.
func (s *SimboloExterno) Formatar(valor int64) string {
	return fmt.Sprintf(s.Formato, int32(valor))
}

// RegistroExterno mantém os símbolos externos conhecidos pelos backends
type RegistroExterno struct {
	simbolos map[string]*SimboloExterno
}

// NovoRegistroExterno cria um registro já com os símbolos padrão
func NovoRegistroExterno() *RegistroExterno {
	registro := &RegistroExterno{
		simbolos: make(map[string]*SimboloExterno),
	}

	for nome, simbolo := range simbolosPadrao {
		copia := simbolo
		registro.simbolos[nome] = &copia
	}

	return registro
}

var simbolosPadrao = map[string]SimboloExterno{
	Imprime: {
		Nome:      Imprime,
		Formato:   "%d\n",
		Variadico: true,
		Descricao: "Imprime um inteiro seguido de quebra de linha",
	},
}

// Registrar adiciona ou substitui um símbolo externo
func (r *RegistroExterno) Registrar(simbolo SimboloExterno) {
	r.simbolos[simbolo.Nome] = &simbolo
}

// ObterSimbolo retorna um símbolo pelo nome
func (r *RegistroExterno) ObterSimbolo(nome string) (*SimboloExterno, bool) {
	simbolo, ok := r.simbolos[nome]
	return simbolo, ok
}

// ObterSimboloValidado retorna o símbolo ou um erro se ele não estiver registrado
func (r *RegistroExterno) ObterSimboloValidado(nome string) (*SimboloExterno, error) {
	simbolo, ok := r.ObterSimbolo(nome)
	if !ok {
		return nil, fmt.Errorf("símbolo externo '%s' não registrado", nome)
	}
	return simbolo, nil
}

// ListarSimbolos retorna os nomes registrados em ordem alfabética
func (r *RegistroExterno) ListarSimbolos() []string {
	nomes := make([]string, 0, len(r.simbolos))
	for nome := range r.simbolos {
		nomes = append(nomes, nome)
	}
	sort.Strings(nomes)
	return nomes
}

// Instância global do registro
var RegistroGlobal = NovoRegistroExterno()
