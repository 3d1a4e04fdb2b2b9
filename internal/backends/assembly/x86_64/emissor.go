package x86_64

import (
	"strings"
)

const cabecalho = ".intel_syntax noprefix\n.globl " + RotuloEntrada + "\n"

// Emitir converte o programa em texto assembly pronto para o montador GNU.
// Não altera o programa: chamadas repetidas produzem o mesmo texto.
func Emitir(programa *Programa) string {
	var saida strings.Builder
	saida.WriteString(cabecalho)

	for _, item := range programa.itens {
		switch item.Tipo {
		case ITEM_ROTULO:
			saida.WriteString(item.Rotulo)
			saida.WriteString(":\n")
		case ITEM_INSTRUCAO:
			saida.WriteString("  ")
			saida.WriteString(item.Instrucao.String())
			saida.WriteByte('\n')
		case ITEM_DIRETIVA:
			saida.WriteString("  ")
			saida.WriteString(item.Diretiva)
			saida.WriteByte('\n')
		}
	}

	return saida.String()
}
