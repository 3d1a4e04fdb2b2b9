package utils

import (
	"errors"
	"fmt"
	"strings"
)

// TipoErro classifica a etapa do pipeline que falhou
type TipoErro int

const (
	ERRO_LEXICO        TipoErro = iota // Caractere que não casa com nenhuma regra
	ERRO_SINTATICO                     // Token inesperado
	ERRO_SEMANTICO                     // Variável não declarada ou redeclarada
	ERRO_NAO_SUPORTADO                 // Construção sem tradução implementada
	ERRO_EXECUCAO                      // Falha ao executar o programa gerado
	ERRO_IO                            // Leitura ou escrita de arquivos
)

// String retorna o nome da categoria do erro
func (t TipoErro) String() string {
	switch t {
	case ERRO_LEXICO:
		return "erro léxico"
	case ERRO_SINTATICO:
		return "erro sintático"
	case ERRO_SEMANTICO:
		return "erro semântico"
	case ERRO_NAO_SUPORTADO:
		return "não suportado"
	case ERRO_EXECUCAO:
		return "erro de execução"
	case ERRO_IO:
		return "erro de entrada/saída"
	default:
		return "erro"
	}
}

// CompilerError representa um erro do compilador com informações de posição
type CompilerError struct {
	Tipo     TipoErro // Etapa que falhou
	Mensagem string   // Mensagem de erro
	Linha    int      // Linha onde ocorreu o erro
	Coluna   int      // Coluna onde ocorreu o erro
	Detalhes string   // Detalhes adicionais do erro
}

// Error implementa a interface error
func (e *CompilerError) Error() string {
	var builder strings.Builder
	builder.WriteString(e.Tipo.String())
	builder.WriteString(": ")
	builder.WriteString(e.Mensagem)
	if e.Linha > 0 && e.Coluna > 0 {
		builder.WriteString(fmt.Sprintf(" em linha %d, coluna %d", e.Linha, e.Coluna))
	}
	if e.Detalhes != "" {
		builder.WriteString(" (")
		builder.WriteString(e.Detalhes)
		builder.WriteString(")")
	}
	return builder.String()
}

// NovoErro cria um novo erro do compilador
func NovoErro(tipo TipoErro, mensagem string, linha, coluna int, detalhes string) *CompilerError {
	return &CompilerError{
		Tipo:     tipo,
		Mensagem: mensagem,
		Linha:    linha,
		Coluna:   coluna,
		Detalhes: detalhes,
	}
}

// EhTipo informa se err (ou algum erro embrulhado por ele) é um CompilerError do tipo dado
func EhTipo(err error, tipo TipoErro) bool {
	var erroCompilador *CompilerError
	if !errors.As(err, &erroCompilador) {
		return false
	}
	return erroCompilador.Tipo == tipo
}
