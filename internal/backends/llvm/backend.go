package llvm

import (
	"github.com/khevencolino/Cometa/internal/debug"
	"github.com/khevencolino/Cometa/internal/parser"
	"github.com/khevencolino/Cometa/internal/registry"
)

// LLVMBackend gera LLVM IR textual, para ser ligado com clang
type LLVMBackend struct {
	registro *registry.RegistroExterno
}

func NewLLVMBackend() *LLVMBackend {
	return &LLVMBackend{registro: registry.RegistroGlobal}
}

func (l *LLVMBackend) GetName() string      { return "LLVM IR" }
func (l *LLVMBackend) GetExtension() string { return ".ll" }

// Compilar retorna o módulo LLVM da unidade como texto
func (l *LLVMBackend) Compilar(unidade *parser.Unidade) (string, error) {
	debug.Printf("Compilando para LLVM IR...\n")

	modulo, err := novoGerador(l.registro).gerar(unidade)
	if err != nil {
		return "", err
	}

	debug.Printf("  %d funções, %d globais no módulo\n", len(modulo.Funcs), len(modulo.Globals))
	return modulo.String(), nil
}
