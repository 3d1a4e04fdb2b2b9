package x86_64

// TipoItem distingue as linhas de um programa assembly
type TipoItem int

const (
	ITEM_ROTULO TipoItem = iota
	ITEM_INSTRUCAO
	ITEM_DIRETIVA // diretivas do montador, como .section e .string
)

// Item é uma linha do programa: rótulo, instrução ou diretiva
type Item struct {
	Tipo      TipoItem
	Rotulo    string
	Instrucao Instrucao
	Diretiva  string
}

// Programa é a sequência ordenada de itens gerada para uma unidade.
// Só o Construtor acrescenta itens; depois de construído é somente leitura.
type Programa struct {
	itens []Item
}

// Itens retorna uma cópia dos itens do programa
func (p *Programa) Itens() []Item {
	copia := make([]Item, len(p.itens))
	copy(copia, p.itens)
	return copia
}

// Instrucoes retorna apenas as instruções, na ordem
func (p *Programa) Instrucoes() []Instrucao {
	var instrucoes []Instrucao
	for _, item := range p.itens {
		if item.Tipo == ITEM_INSTRUCAO {
			instrucoes = append(instrucoes, item.Instrucao)
		}
	}
	return instrucoes
}

// Construtor acumula itens até Construir ser chamado
type Construtor struct {
	itens []Item
}

func NovoConstrutor() *Construtor {
	return &Construtor{}
}

// Instrucao acrescenta instruções ao final do programa
func (c *Construtor) Instrucao(instrucoes ...Instrucao) {
	for _, instrucao := range instrucoes {
		c.itens = append(c.itens, Item{Tipo: ITEM_INSTRUCAO, Instrucao: instrucao})
	}
}

func (c *Construtor) Rotulo(nome string) {
	c.itens = append(c.itens, Item{Tipo: ITEM_ROTULO, Rotulo: nome})
}

func (c *Construtor) Diretiva(texto string) {
	c.itens = append(c.itens, Item{Tipo: ITEM_DIRETIVA, Diretiva: texto})
}

// Construir entrega o programa e esvazia o construtor
func (c *Construtor) Construir() *Programa {
	programa := &Programa{itens: c.itens}
	c.itens = nil
	return programa
}
