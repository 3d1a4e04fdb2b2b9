package compiler

import (
	"fmt"

	"github.com/khevencolino/Cometa/internal/backends"
	"github.com/khevencolino/Cometa/internal/backends/assembly"
	"github.com/khevencolino/Cometa/internal/backends/interpreter"
	"github.com/khevencolino/Cometa/internal/backends/llvm"
	"github.com/khevencolino/Cometa/internal/utils"
)

const BACKEND_PADRAO = "assembly"

// apelidos aceitos em -backend, apontando para o nome canônico
var nomesBackend = map[string]string{
	"assembly":    "assembly",
	"asm":         "assembly",
	"native":      "assembly",
	"llvm":        "llvm",
	"llvmir":      "llvm",
	"ir":          "llvm",
	"simulador":   "simulador",
	"sim":         "simulador",
	"interpreter": "interpreter",
	"interp":      "interpreter",
	"ast":         "interpreter",
}

func canonico(nome string) (string, error) {
	if resolvido, ok := nomesBackend[nome]; ok {
		return resolvido, nil
	}
	return "", utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
		fmt.Sprintf("backend desconhecido: %s", nome), 0, 0,
		"backends: assembly, llvm, simulador, interpreter")
}

// ehExecutor informa se o backend roda o programa em vez de gerar um arquivo
func ehExecutor(nome string) bool {
	resolvido, err := canonico(nome)
	return err == nil && (resolvido == "simulador" || resolvido == "interpreter")
}

// novoBackend cria o backend gerador de texto
func novoBackend(opcoes Opcoes) (backends.Backend, error) {
	nome, err := canonico(opcoes.Backend)
	if err != nil {
		return nil, err
	}

	switch nome {
	case "assembly":
		return assembly.NewAssemblyBackend(opcoes.Arquitetura)
	case "llvm":
		return llvm.NewLLVMBackend(), nil
	default:
		return nil, utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
			fmt.Sprintf("backend %s não gera arquivo", nome), 0, 0, "")
	}
}

// novoExecutor cria o backend que executa sem ferramentas externas
func novoExecutor(opcoes Opcoes) (backends.Executor, error) {
	nome, err := canonico(opcoes.Backend)
	if err != nil {
		return nil, err
	}

	switch nome {
	case "simulador":
		return assembly.NewAssemblyBackend(opcoes.Arquitetura)
	case "interpreter":
		return interpreter.NewInterpreterBackend(), nil
	default:
		return nil, utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
			fmt.Sprintf("backend %s não executa programas", nome), 0, 0, "use simulador ou interpreter")
	}
}
