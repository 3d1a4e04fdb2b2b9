package compiler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/khevencolino/Cometa/internal/utils"
)

func TestDetectarModo(t *testing.T) {
	tests := []struct {
		fonte    string
		esperado Modo
	}{
		{"1+2", MODO_EXPRESSAO},
		{"a + 1", MODO_EXPRESSAO},
		{"(a)", MODO_EXPRESSAO},
		{"int a = 1;", MODO_PROGRAMA},
		{"print(1)", MODO_PROGRAMA},
		{"return 0;", MODO_PROGRAMA},
		{"a = 1;", MODO_PROGRAMA},
		{"  // só comentário\n", MODO_PROGRAMA},
		{"$", MODO_EXPRESSAO},
	}

	for _, tt := range tests {
		t.Run(tt.fonte, func(t *testing.T) {
			if obtido := detectarModo(tt.fonte); obtido != tt.esperado {
				t.Errorf("esperado %s, obtido %s", tt.esperado, obtido)
			}
		})
	}
}

func TestParseModo(t *testing.T) {
	for texto, esperado := range map[string]Modo{"": MODO_AUTOMATICO, "auto": MODO_AUTOMATICO, "expr": MODO_EXPRESSAO, "prog": MODO_PROGRAMA} {
		modo, err := ParseModo(texto)
		if err != nil || modo != esperado {
			t.Errorf("ParseModo(%q) = %s, %v", texto, modo, err)
		}
	}
	if _, err := ParseModo("outro"); !utils.EhTipo(err, utils.ERRO_NAO_SUPORTADO) {
		t.Errorf("esperado erro para modo desconhecido, obtido %v", err)
	}
}

func TestCompilarAssembly(t *testing.T) {
	codigo, err := NovoCompiladorComSaida(Opcoes{}, &bytes.Buffer{}).Compilar("1+2*3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(codigo, ".intel_syntax noprefix\n.globl main\nmain:\n") {
		t.Errorf("cabeçalho inesperado:\n%s", codigo)
	}
}

func TestModoForcado(t *testing.T) {
	compilador := NovoCompiladorComSaida(Opcoes{Modo: MODO_EXPRESSAO}, &bytes.Buffer{})
	if _, err := compilador.Analisar("int a = 1;"); !utils.EhTipo(err, utils.ERRO_SINTATICO) {
		t.Errorf("programa no modo expressão deveria falhar, obtido %v", err)
	}

	compilador = NovoCompiladorComSaida(Opcoes{Modo: MODO_PROGRAMA}, &bytes.Buffer{})
	if _, err := compilador.Analisar("1+2"); !utils.EhTipo(err, utils.ERRO_SINTATICO) {
		t.Errorf("expressão no modo programa deveria falhar, obtido %v", err)
	}
}

func TestExecutores(t *testing.T) {
	tests := []struct {
		backend string
		fonte   string
		valor   int64
		saida   string
	}{
		{"simulador", "5-20", -15, ""},
		{"interpreter", "5-20", -15, ""},
		{"sim", "int a = 1; a = a + 1; print(a) return a;", 2, "2\n"},
		{"ast", "int a = 1; a = a + 1; print(a) return a;", 2, "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.backend+"/"+tt.fonte, func(t *testing.T) {
			var saida bytes.Buffer
			valor, err := NovoCompiladorComSaida(Opcoes{Backend: tt.backend}, &bytes.Buffer{}).Executar(tt.fonte, &saida)
			if err != nil {
				t.Fatal(err)
			}
			if valor != tt.valor || saida.String() != tt.saida {
				t.Errorf("obtido %d %q, esperado %d %q", valor, saida.String(), tt.valor, tt.saida)
			}
		})
	}
}

func TestBackendsIncompativeis(t *testing.T) {
	if _, err := NovoCompiladorComSaida(Opcoes{Backend: "simulador"}, &bytes.Buffer{}).Compilar("1"); !utils.EhTipo(err, utils.ERRO_NAO_SUPORTADO) {
		t.Errorf("simulador não gera arquivo, obtido %v", err)
	}
	if _, err := NovoCompiladorComSaida(Opcoes{Backend: "llvm"}, &bytes.Buffer{}).Executar("1", &bytes.Buffer{}); !utils.EhTipo(err, utils.ERRO_NAO_SUPORTADO) {
		t.Errorf("llvm não executa, obtido %v", err)
	}
	if _, err := NovoCompiladorComSaida(Opcoes{Backend: "jvm"}, &bytes.Buffer{}).Compilar("1"); !utils.EhTipo(err, utils.ERRO_NAO_SUPORTADO) {
		t.Errorf("backend desconhecido deveria falhar, obtido %v", err)
	}
	if _, err := NovoCompiladorComSaida(Opcoes{Arquitetura: "arm64"}, &bytes.Buffer{}).Compilar("1"); !utils.EhTipo(err, utils.ERRO_NAO_SUPORTADO) {
		t.Errorf("arm64 não é suportado, obtido %v", err)
	}
}

func TestCompilarArquivo(t *testing.T) {
	dir := t.TempDir()
	entrada := filepath.Join(dir, "conta.cmt")
	if err := os.WriteFile(entrada, []byte("int a = 2;\nreturn a * 21;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var relatorio bytes.Buffer
	if err := NovoCompiladorComSaida(Opcoes{}, &relatorio).CompilarArquivo(context.Background(), entrada); err != nil {
		t.Fatal(err)
	}

	gerado, err := os.ReadFile(filepath.Join(dir, "conta.s"))
	if err != nil {
		t.Fatalf("arquivo de saída ausente: %v", err)
	}
	if !strings.Contains(string(gerado), "imul rax, rdi") {
		t.Errorf("assembly inesperado:\n%s", gerado)
	}
	if !strings.Contains(relatorio.String(), "conta.s") {
		t.Errorf("relatório deveria citar a saída: %q", relatorio.String())
	}
}

func TestCompilarArquivoLLVM(t *testing.T) {
	saida := filepath.Join(t.TempDir(), "saida.ll")
	opcoes := Opcoes{Backend: "llvm", Saida: saida}
	if err := NovoCompiladorComSaida(opcoes, &bytes.Buffer{}).CompilarArquivo(context.Background(), "1<2"); err != nil {
		t.Fatal(err)
	}
	gerado, err := os.ReadFile(saida)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(gerado), "define i32 @main()") {
		t.Errorf("IR inesperado:\n%s", gerado)
	}
}

func TestErroNaoEscreveSaida(t *testing.T) {
	tests := []struct {
		name  string
		fonte string
		tipo  utils.TipoErro
	}{
		{"lexico", "1 $ 2", utils.ERRO_LEXICO},
		{"sintatico", "int a = ;", utils.ERRO_SINTATICO},
		{"semantico", "return b;", utils.ERRO_SEMANTICO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saida := filepath.Join(t.TempDir(), "programa.s")
			err := NovoCompiladorComSaida(Opcoes{Saida: saida}, &bytes.Buffer{}).CompilarArquivo(context.Background(), tt.fonte)
			if !utils.EhTipo(err, tt.tipo) {
				t.Errorf("esperado %s, obtido %v", tt.tipo, err)
			}
			if _, err := os.Stat(saida); !os.IsNotExist(err) {
				t.Error("nenhum arquivo deveria ser escrito em caso de erro")
			}
		})
	}
}

func TestCompilarArquivoExecutor(t *testing.T) {
	var relatorio bytes.Buffer
	opcoes := Opcoes{Backend: "simulador"}
	if err := NovoCompiladorComSaida(opcoes, &relatorio).CompilarArquivo(context.Background(), "print(3) return 5 - 20;"); err != nil {
		t.Fatal(err)
	}
	if relatorio.String() != "3\nResultado: -15 (status 241)\n" {
		t.Errorf("relatório inesperado %q", relatorio.String())
	}
}

func TestContextoCancelado(t *testing.T) {
	ctx, cancelar := context.WithCancel(context.Background())
	cancelar()

	saida := filepath.Join(t.TempDir(), "programa.s")
	if err := NovoCompiladorComSaida(Opcoes{Saida: saida}, &bytes.Buffer{}).CompilarArquivo(ctx, "1"); err == nil {
		t.Error("contexto cancelado deveria interromper a compilação")
	}
}

func TestMostrarTokensEArvore(t *testing.T) {
	var relatorio bytes.Buffer
	opcoes := Opcoes{MostrarTokens: true, MostrarArvore: true}
	if _, err := NovoCompiladorComSaida(opcoes, &relatorio).Analisar("1+2"); err != nil {
		t.Fatal(err)
	}
	texto := relatorio.String()
	for _, trecho := range []string{"Tokens encontrados", "NUMBER", "Árvore Sintática"} {
		if !strings.Contains(texto, trecho) {
			t.Errorf("trecho %q ausente:\n%s", trecho, texto)
		}
	}
}

func TestFonte(t *testing.T) {
	fonte, err := CarregarFonte("1+2")
	if err != nil {
		t.Fatal(err)
	}
	if fonte.Texto != "1+2" || fonte.Saida(".s") != "programa.s" {
		t.Errorf("fonte inesperada: %+v", fonte)
	}

	arquivo := &Fonte{Caminho: filepath.Join("dir", "x.cmt")}
	if saida := arquivo.Saida(".ll"); saida != filepath.Join("dir", "x.ll") {
		t.Errorf("saída derivada inesperada %q", saida)
	}
}

func TestMontarExtensaoDesconhecida(t *testing.T) {
	if err := Montar(context.Background(), "programa.txt", "programa"); !utils.EhTipo(err, utils.ERRO_NAO_SUPORTADO) {
		t.Errorf("esperado ERRO_NAO_SUPORTADO, obtido %v", err)
	}
}
