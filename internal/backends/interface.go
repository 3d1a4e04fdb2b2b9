package backends

import (
	"io"

	"github.com/khevencolino/Cometa/internal/parser"
)

// Backend traduz uma unidade analisada para o texto de saída do alvo
type Backend interface {
	Compilar(unidade *parser.Unidade) (string, error)
	GetName() string
	GetExtension() string
}

// Executor roda uma unidade sem ferramentas externas. O texto impresso vai
// para saida e o valor retornado por main é devolvido.
type Executor interface {
	Executar(unidade *parser.Unidade, saida io.Writer) (int64, error)
	GetName() string
}

// CodigoSaida reduz o valor de retorno ao status de processo (8 bits)
func CodigoSaida(valor int64) int {
	return int(uint8(valor))
}
