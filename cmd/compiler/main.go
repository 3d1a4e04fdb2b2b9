package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/khevencolino/Cometa/internal/compiler"
	"github.com/khevencolino/Cometa/internal/debug"
	"github.com/khevencolino/Cometa/internal/registry"
)

func main() {
	entrada, opcoes, showHelp, err := processarArgumentos()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}

	if showHelp {
		mostrarAjuda()
		return
	}

	ctx, cancelar := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelar()

	compilador := compiler.NovoCompilador(opcoes)

	if err := compilador.CompilarArquivo(ctx, entrada); err != nil {
		fmt.Fprintf(os.Stderr, "Erro de compilação: %v\n", err)
		cancelar()
		os.Exit(1)
	}
}

func processarArgumentos() (string, compiler.Opcoes, bool, error) {
	backend := flag.String("backend", compiler.BACKEND_PADRAO, "Backend a ser usado (assembly, llvm, simulador, interpreter)")
	arch := flag.String("arch", "x86_64", "Arquitetura para assembly (x86_64)")
	saida := flag.String("o", "", "Arquivo de saída (padrão: nome da entrada com a extensão do backend)")
	modo := flag.String("modo", "auto", "Gramática da entrada (auto, expr, prog)")
	montar := flag.Bool("montar", false, "Liga o arquivo gerado num executável com cc/clang")
	tokens := flag.Bool("tokens", false, "Mostra os tokens encontrados")
	arvore := flag.Bool("arvore", false, "Mostra a árvore sintática")
	depurar := flag.Bool("debug", false, "Ativar mensagens de debug")
	help := flag.Bool("help", false, "Mostra ajuda")

	flag.Parse()

	if *help {
		return "", compiler.Opcoes{}, true, nil
	}

	args := flag.Args()
	if len(args) < 1 {
		return "", compiler.Opcoes{}, false, fmt.Errorf("arquivo de entrada ou expressão requerido")
	}

	modoAnalise, err := compiler.ParseModo(*modo)
	if err != nil {
		return "", compiler.Opcoes{}, false, err
	}

	debug.Enabled = *depurar

	opcoes := compiler.Opcoes{
		Backend:       *backend,
		Arquitetura:   *arch,
		Saida:         *saida,
		Modo:          modoAnalise,
		Montar:        *montar,
		MostrarTokens: *tokens,
		MostrarArvore: *arvore,
	}
	return args[0], opcoes, false, nil
}

func mostrarAjuda() {
	fmt.Printf(`Compilador Cometa - expressões para assembly x86-64

USO:
    cometa [flags] <arquivo | expressão>

    Se o argumento não for um arquivo existente, ele é o próprio código fonte.

FLAGS:
    -backend=<tipo>     Backend a ser usado (padrão: assembly)
    -arch=<arquitetura> Arquitetura para assembly (padrão: x86_64)
    -o=<arquivo>        Arquivo de saída
    -modo=<modo>        auto, expr ou prog (padrão: auto)
    -montar             Liga a saída num executável (cc para .s, clang para .ll)
    -tokens             Mostra os tokens
    -arvore             Mostra a árvore sintática
    -debug              Ativar mensagens de debug
    -help               Mostra esta ajuda

BACKENDS DISPONÍVEIS:

assembly, asm, native
    - Assembly x86-64 em sintaxe Intel (.s)
    - O executável retorna o valor da expressão como status de saída

llvm, llvmir, ir
    - LLVM IR (.ll), ligável com clang

simulador, sim
    - Executa o assembly gerado numa máquina simulada, sem montador

interpreter, interp, ast
    - Interpretação direta da AST

LINGUAGEM:
    expressão:  1+2*3   (5>2) && (1!=0)   -(4/2)
    programa:   int a = 1; a = a + 1; print(a) return a;

EXEMPLOS:
    cometa '1+2*3'                                  # gera programa.s
    cometa -montar -o soma.s '1+2*3'                # gera e liga ./soma
    cometa -backend=simulador 'print(5-20) return 0;'
    cometa -backend=llvm programa.cmt               # gera programa.ll
    cometa -tokens -arvore -debug programa.cmt
`)

	listarSimbolos(os.Stdout, registry.RegistroGlobal)
}

// listarSimbolos mostra as rotinas da libc de que o código gerado depende
func listarSimbolos(w io.Writer, registro *registry.RegistroExterno) {
	fmt.Fprintln(w, "\nSÍMBOLOS EXTERNOS:")
	for _, nome := range registro.ListarSimbolos() {
		simbolo, _ := registro.ObterSimbolo(nome)
		fmt.Fprintf(w, "    %-10s %s\n", nome, simbolo.Descricao)
	}
}
