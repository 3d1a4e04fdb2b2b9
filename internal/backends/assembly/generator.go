package assembly

import (
	"fmt"

	"github.com/khevencolino/Cometa/internal/backends"
	"github.com/khevencolino/Cometa/internal/backends/assembly/x86_64"
	"github.com/khevencolino/Cometa/internal/utils"
)

// AssemblyBackend é um backend de assembly que também sabe simular o próprio código
type AssemblyBackend interface {
	backends.Backend
	backends.Executor
}

// NewAssemblyBackend retorna o backend da arquitetura pedida; só x86-64 é gerado
func NewAssemblyBackend(arch string) (AssemblyBackend, error) {
	switch arch {
	case "x86_64", "amd64", "":
		return x86_64.NewX86_64Backend(), nil
	default:
		return nil, utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
			fmt.Sprintf("arquitetura de assembly não suportada: %s", arch), 0, 0,
			"arquiteturas disponíveis: x86_64, amd64")
	}
}
