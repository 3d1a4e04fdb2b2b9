package x86_64

import (
	"io"

	"github.com/khevencolino/Cometa/internal/debug"
	"github.com/khevencolino/Cometa/internal/parser"
	"github.com/khevencolino/Cometa/internal/registry"
	"github.com/khevencolino/Cometa/internal/utils"
)

type X86_64Backend struct {
	registro *registry.RegistroExterno
}

func NewX86_64Backend() *X86_64Backend {
	return &X86_64Backend{registro: registry.RegistroGlobal}
}

func (a *X86_64Backend) GetName() string      { return "Assembly x86-64" }
func (a *X86_64Backend) GetExtension() string { return ".s" }

// Gerar produz o programa de instruções da unidade
func (a *X86_64Backend) Gerar(unidade *parser.Unidade) (*Programa, error) {
	debug.Printf("🔧 Compilando para Assembly x86-64...\n")

	programa, err := NovoGeradorComRegistro(a.registro).Gerar(unidade)
	if err != nil {
		return nil, err
	}

	debug.Printf("  %d instruções geradas\n", len(programa.Instrucoes()))
	return programa, nil
}

// Compilar retorna o texto assembly da unidade
func (a *X86_64Backend) Compilar(unidade *parser.Unidade) (string, error) {
	programa, err := a.Gerar(unidade)
	if err != nil {
		return "", err
	}
	return Emitir(programa), nil
}

// Executar roda o código gerado na Maquina, sem montador
func (a *X86_64Backend) Executar(unidade *parser.Unidade, saida io.Writer) (int64, error) {
	programa, err := a.Gerar(unidade)
	if err != nil {
		return 0, err
	}

	debug.Printf("▶️  Executando no simulador...\n")
	resultado, err := NovaMaquinaComRegistro(a.registro).Executar(programa)
	if err != nil {
		return 0, err
	}

	if _, err := io.WriteString(saida, resultado.Saida); err != nil {
		return 0, utils.NovoErro(utils.ERRO_IO, "falha ao escrever a saída", 0, 0, err.Error())
	}
	debug.Printf("  main retornou %d (status %d)\n", resultado.Valor, resultado.CodigoSaida())
	return resultado.Valor, nil
}
