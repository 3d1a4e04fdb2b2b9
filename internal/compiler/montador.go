package compiler

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/khevencolino/Cometa/internal/debug"
	"github.com/khevencolino/Cometa/internal/utils"
)

// ferramentas de ligação por extensão do arquivo gerado
var ligadores = map[string][]string{
	".s":  {"cc", "gcc", "clang"},
	".ll": {"clang"},
}

// Montar liga arquivo num executável com o compilador C do sistema
func Montar(ctx context.Context, arquivo, executavel string) error {
	extensao := filepath.Ext(arquivo)
	candidatos, ok := ligadores[extensao]
	if !ok {
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
			fmt.Sprintf("não sei montar arquivos %s", extensao), 0, 0, "")
	}

	ferramenta, err := encontrarFerramenta(candidatos)
	if err != nil {
		return err
	}

	debug.Printf("Montando com %s: %s -> %s\n", ferramenta, arquivo, executavel)
	cmd := exec.CommandContext(ctx, ferramenta, "-o", executavel, arquivo)
	if saida, err := cmd.CombinedOutput(); err != nil {
		return utils.NovoErro(utils.ERRO_EXECUCAO,
			fmt.Sprintf("%s falhou", ferramenta), 0, 0, strings.TrimSpace(string(saida)))
	}
	return nil
}

func encontrarFerramenta(candidatos []string) (string, error) {
	for _, candidato := range candidatos {
		if caminho, err := exec.LookPath(candidato); err == nil {
			return caminho, nil
		}
	}
	return "", utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
		"nenhum compilador C encontrado", 0, 0, "instale um de: "+strings.Join(candidatos, ", "))
}
