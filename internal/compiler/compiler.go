package compiler

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/khevencolino/Cometa/internal/backends"
	"github.com/khevencolino/Cometa/internal/debug"
	"github.com/khevencolino/Cometa/internal/lexer"
	"github.com/khevencolino/Cometa/internal/parser"
	"github.com/khevencolino/Cometa/internal/utils"
)

// Modo escolhe a gramática usada na análise
type Modo int

const (
	MODO_AUTOMATICO Modo = iota // decide pelos primeiros tokens
	MODO_EXPRESSAO              // uma única expressão
	MODO_PROGRAMA               // sequência de comandos
)

func (m Modo) String() string {
	switch m {
	case MODO_EXPRESSAO:
		return "expr"
	case MODO_PROGRAMA:
		return "prog"
	default:
		return "auto"
	}
}

// ParseModo converte o valor da flag -modo
func ParseModo(texto string) (Modo, error) {
	switch texto {
	case "", "auto":
		return MODO_AUTOMATICO, nil
	case "expr", "expressao":
		return MODO_EXPRESSAO, nil
	case "prog", "programa":
		return MODO_PROGRAMA, nil
	default:
		return MODO_AUTOMATICO, utils.NovoErro(utils.ERRO_NAO_SUPORTADO,
			fmt.Sprintf("modo desconhecido: %s", texto), 0, 0, "modos: auto, expr, prog")
	}
}

// Opcoes configuram uma execução do compilador
type Opcoes struct {
	Backend       string // assembly, llvm, simulador ou interpreter
	Arquitetura   string // só para o backend assembly
	Saida         string // arquivo de saída; vazio deriva do nome da entrada
	Modo          Modo
	Montar        bool // liga o arquivo gerado num executável
	MostrarTokens bool
	MostrarArvore bool
}

// Compilador conduz fonte -> tokens -> AST -> backend
type Compilador struct {
	opcoes    Opcoes
	relatorio io.Writer // tokens, árvore e resultados para o usuário
}

// NovoCompilador cria um compilador que escreve relatórios na saída padrão
func NovoCompilador(opcoes Opcoes) *Compilador {
	return NovoCompiladorComSaida(opcoes, os.Stdout)
}

func NovoCompiladorComSaida(opcoes Opcoes, relatorio io.Writer) *Compilador {
	if opcoes.Backend == "" {
		opcoes.Backend = BACKEND_PADRAO
	}
	return &Compilador{opcoes: opcoes, relatorio: relatorio}
}

// Analisar transforma a fonte em uma unidade, no modo configurado
func (c *Compilador) Analisar(fonte string) (*parser.Unidade, error) {
	if c.opcoes.MostrarTokens {
		tokens, err := lexer.NovoLexer(fonte).Tokenizar()
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(c.relatorio, "Tokens encontrados:\n")
		lexer.ImprimirTokens(c.relatorio, tokens)
	}

	modo := c.opcoes.Modo
	if modo == MODO_AUTOMATICO {
		modo = detectarModo(fonte)
	}
	debug.Printf("Analisando no modo %s\n", modo)

	unidade := &parser.Unidade{}
	if modo == MODO_EXPRESSAO {
		expressao, err := parser.AnalisarExpressao(fonte)
		if err != nil {
			return nil, err
		}
		unidade.Expressao = expressao
	} else {
		comandos, err := parser.AnalisarPrograma(fonte)
		if err != nil {
			return nil, err
		}
		unidade.Comandos = comandos
	}

	if c.opcoes.MostrarArvore {
		parser.NovoVisualizador().ImprimirArvore(c.relatorio, unidade)
	}
	return unidade, nil
}

// Compilar retorna o texto gerado pelo backend configurado
func (c *Compilador) Compilar(fonte string) (string, error) {
	backend, err := novoBackend(c.opcoes)
	if err != nil {
		return "", err
	}
	unidade, err := c.Analisar(fonte)
	if err != nil {
		return "", err
	}
	return backend.Compilar(unidade)
}

// Executar roda a fonte num backend executor (simulador ou interpretador)
func (c *Compilador) Executar(fonte string, saida io.Writer) (int64, error) {
	executor, err := novoExecutor(c.opcoes)
	if err != nil {
		return 0, err
	}
	unidade, err := c.Analisar(fonte)
	if err != nil {
		return 0, err
	}
	return executor.Executar(unidade, saida)
}

// CompilarArquivo processa entrada, que é um caminho de arquivo ou, se nenhum
// arquivo com esse nome existir, o próprio código fonte.
// A saída só é escrita se todas as etapas tiverem sucesso.
func (c *Compilador) CompilarArquivo(ctx context.Context, entrada string) error {
	fonte, err := CarregarFonte(entrada)
	if err != nil {
		return err
	}
	debug.Printf("Fonte: %s (%d bytes)\n", fonte.Nome, len(fonte.Texto))

	if err := ctx.Err(); err != nil {
		return err
	}

	if ehExecutor(c.opcoes.Backend) {
		valor, err := c.Executar(fonte.Texto, c.relatorio)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.relatorio, "Resultado: %d (status %d)\n", valor, backends.CodigoSaida(valor))
		return nil
	}

	backend, err := novoBackend(c.opcoes)
	if err != nil {
		return err
	}
	unidade, err := c.Analisar(fonte.Texto)
	if err != nil {
		return err
	}
	codigo, err := backend.Compilar(unidade)
	if err != nil {
		return err
	}

	arquivoSaida := c.opcoes.Saida
	if arquivoSaida == "" {
		arquivoSaida = fonte.Saida(backend.GetExtension())
	}
	if err := utils.EscreverArquivo(arquivoSaida, codigo); err != nil {
		return fmt.Errorf("escrevendo %s: %w", arquivoSaida, err)
	}
	fmt.Fprintf(c.relatorio, "Arquivo %s criado com sucesso: %s\n", backend.GetName(), arquivoSaida)

	if !c.opcoes.Montar {
		return nil
	}
	executavel := semExtensao(arquivoSaida)
	if err := Montar(ctx, arquivoSaida, executavel); err != nil {
		return fmt.Errorf("montando %s: %w", arquivoSaida, err)
	}
	fmt.Fprintf(c.relatorio, "Executável gerado: %s\n", executavel)
	return nil
}

// detectarModo olha os dois primeiros tokens: int, print, return ou nome = indicam programa
func detectarModo(fonte string) Modo {
	l := lexer.NovoLexer(fonte)
	primeiro, err := l.ProximoToken()
	if err != nil {
		return MODO_EXPRESSAO
	}

	switch primeiro.Type {
	case lexer.INT, lexer.PRINT, lexer.RETURN, lexer.EOF:
		return MODO_PROGRAMA
	case lexer.IDENTIFIER:
		segundo, err := l.ProximoToken()
		if err == nil && segundo.Type == lexer.ASSIGN {
			return MODO_PROGRAMA
		}
	}
	return MODO_EXPRESSAO
}
