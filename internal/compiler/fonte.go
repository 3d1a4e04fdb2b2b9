package compiler

import (
	"path/filepath"
	"strings"

	"github.com/khevencolino/Cometa/internal/utils"
)

// nome usado para a saída quando a fonte vem direto da linha de comando
const nomePadrao = "programa"

// Fonte é o código a compilar e de onde ele veio
type Fonte struct {
	Nome    string // caminho do arquivo ou "<linha de comando>"
	Caminho string // vazio se a fonte não veio de um arquivo
	Texto   string
}

// CarregarFonte lê entrada como arquivo se ele existir; senão entrada é o próprio código
func CarregarFonte(entrada string) (*Fonte, error) {
	if !utils.ArquivoExiste(entrada) {
		return &Fonte{Nome: "<linha de comando>", Texto: entrada}, nil
	}

	texto, err := utils.LerArquivo(entrada)
	if err != nil {
		return nil, err
	}
	return &Fonte{Nome: entrada, Caminho: entrada, Texto: texto}, nil
}

// Saida deriva o arquivo de saída: programa.cmt vira programa.s, por exemplo
func (f *Fonte) Saida(extensao string) string {
	if f.Caminho == "" {
		return nomePadrao + extensao
	}
	return semExtensao(f.Caminho) + extensao
}

func semExtensao(caminho string) string {
	return strings.TrimSuffix(caminho, filepath.Ext(caminho))
}
