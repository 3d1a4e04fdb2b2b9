package utils

import (
	"os"
	"path/filepath"
)

// LerArquivo lê um arquivo e retorna seu conteúdo
func LerArquivo(nomeArquivo string) (string, error) {
	bytesConteudo, err := os.ReadFile(nomeArquivo)
	if err != nil {
		return "", NovoErro(ERRO_IO, "erro ao ler arquivo", 0, 0, err.Error())
	}
	return string(bytesConteudo), nil
}

// ArquivoExiste informa se o caminho aponta para um arquivo regular
func ArquivoExiste(caminho string) bool {
	info, err := os.Stat(caminho)
	return err == nil && info.Mode().IsRegular()
}

// EscreverArquivo escreve conteúdo em um arquivo, criando o diretório se preciso.
// O conteúdo vai primeiro para um arquivo temporário no mesmo diretório e só
// então substitui o destino, para que uma falha não deixe saída parcial.
func EscreverArquivo(nomeArquivo string, conteudo string) error {
	diretorio := filepath.Dir(nomeArquivo)
	if err := os.MkdirAll(diretorio, 0o755); err != nil {
		return NovoErro(ERRO_IO, "erro ao criar diretório", 0, 0, err.Error())
	}

	temporario, err := os.CreateTemp(diretorio, ".cometa-*")
	if err != nil {
		return NovoErro(ERRO_IO, "erro ao escrever arquivo", 0, 0, err.Error())
	}
	defer os.Remove(temporario.Name())

	if _, err := temporario.WriteString(conteudo); err != nil {
		temporario.Close()
		return NovoErro(ERRO_IO, "erro ao escrever arquivo", 0, 0, err.Error())
	}
	if err := temporario.Close(); err != nil {
		return NovoErro(ERRO_IO, "erro ao escrever arquivo", 0, 0, err.Error())
	}
	if err := os.Chmod(temporario.Name(), 0o644); err != nil {
		return NovoErro(ERRO_IO, "erro ao escrever arquivo", 0, 0, err.Error())
	}
	if err := os.Rename(temporario.Name(), nomeArquivo); err != nil {
		return NovoErro(ERRO_IO, "erro ao escrever arquivo", 0, 0, err.Error())
	}

	return nil
}
