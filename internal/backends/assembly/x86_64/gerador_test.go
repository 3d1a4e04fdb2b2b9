package x86_64

import (
	"testing"

	"github.com/khevencolino/Cometa/internal/parser"
	"github.com/khevencolino/Cometa/internal/registry"
	"github.com/khevencolino/Cometa/internal/utils"
)

func gerarExpressao(t *testing.T, fonte string) *Programa {
	t.Helper()
	expressao, err := parser.AnalisarExpressao(fonte)
	if err != nil {
		t.Fatalf("AnalisarExpressao(%q): %v", fonte, err)
	}
	programa, err := NovoGerador().GerarExpressao(expressao)
	if err != nil {
		t.Fatalf("GerarExpressao(%q): %v", fonte, err)
	}
	return programa
}

func gerarPrograma(t *testing.T, fonte string) (*Programa, error) {
	t.Helper()
	comandos, err := parser.AnalisarPrograma(fonte)
	if err != nil {
		t.Fatalf("AnalisarPrograma(%q): %v", fonte, err)
	}
	return NovoGerador().GerarPrograma(comandos)
}

func textos(instrucoes []Instrucao) []string {
	linhas := make([]string, len(instrucoes))
	for i, instrucao := range instrucoes {
		linhas[i] = instrucao.String()
	}
	return linhas
}

func compararLinhas(t *testing.T, obtido, esperado []string) {
	t.Helper()
	if len(obtido) != len(esperado) {
		t.Fatalf("esperado %d linhas, obtido %d:\n%q", len(esperado), len(obtido), obtido)
	}
	for i := range esperado {
		if obtido[i] != esperado[i] {
			t.Errorf("linha %d: esperado %q, obtido %q", i, esperado[i], obtido[i])
		}
	}
}

func TestGerarSoma(t *testing.T) {
	programa := gerarExpressao(t, "1+2")
	compararLinhas(t, textos(programa.Instrucoes()), []string{
		"push rbp",
		"mov rbp, rsp",
		"push 1",
		"push 2",
		"pop rdi",
		"pop rax",
		"add rax, rdi",
		"push rax",
		"pop rax",
		"mov rsp, rbp",
		"pop rbp",
		"ret",
	})
}

func TestGerarOperadores(t *testing.T) {
	tests := []struct {
		fonte    string
		esperado []string
	}{
		{"4/2", []string{"cqo", "idiv rdi"}},
		{"4*2", []string{"imul rax, rdi"}},
		{"4-2", []string{"sub rax, rdi"}},
		{"1==2", []string{"cmp rax, rdi", "sete al", "movzx rax, al"}},
		{"1!=2", []string{"cmp rax, rdi", "setne al", "movzx rax, al"}},
		{"1<2", []string{"cmp rax, rdi", "setl al", "movzx rax, al"}},
		{"1<=2", []string{"cmp rax, rdi", "setle al", "movzx rax, al"}},
		{"1&&2", []string{
			"cmp rax, 0", "setne al", "movzx rax, al",
			"cmp rdi, 0", "setne dil", "movzx rdi, dil",
			"and rax, rdi",
		}},
		{"1||2", []string{"or rax, rdi", "cmp rax, 0", "setne al", "movzx rax, al"}},
	}

	for _, tt := range tests {
		t.Run(tt.fonte, func(t *testing.T) {
			linhas := textos(gerarExpressao(t, tt.fonte).Instrucoes())
			// prólogo(2) + operandos(2) + pops(2), depois o operador, depois push/pop + epílogo(3)
			corpo := linhas[6 : len(linhas)-5]
			compararLinhas(t, corpo, tt.esperado)
		})
	}
}

func TestMaiorQueGeraMesmoCodigoQueMenorQueInvertido(t *testing.T) {
	pares := [][2]string{{"1>2", "2<1"}, {"3>=4", "4<=3"}}

	for _, par := range pares {
		a := Emitir(gerarExpressao(t, par[0]))
		b := Emitir(gerarExpressao(t, par[1]))
		if a != b {
			t.Errorf("%s e %s deveriam gerar o mesmo código:\n%s\n---\n%s", par[0], par[1], a, b)
		}
	}
}

func TestGerarConstanteGrande(t *testing.T) {
	linhas := textos(gerarExpressao(t, "10000000000").Instrucoes())
	compararLinhas(t, linhas[2:4], []string{"mov rax, 10000000000", "push rax"})
}

func TestGerarNegacao(t *testing.T) {
	linhas := textos(gerarExpressao(t, "-5").Instrucoes())
	compararLinhas(t, linhas[2:8], []string{"push 0", "push 5", "pop rdi", "pop rax", "sub rax, rdi", "push rax"})
}

func TestGerarQuadroDeVariaveis(t *testing.T) {
	tests := []struct {
		fonte  string
		quadro string
	}{
		{"int a = 1; return a;", "sub rsp, 16"},
		{"int a = 1; int b = 2; return a + b;", "sub rsp, 16"},
		{"int a = 1; int b = 2; int c = 3; return a;", "sub rsp, 32"},
	}

	for _, tt := range tests {
		t.Run(tt.fonte, func(t *testing.T) {
			programa, err := gerarPrograma(t, tt.fonte)
			if err != nil {
				t.Fatal(err)
			}
			if linha := programa.Instrucoes()[2].String(); linha != tt.quadro {
				t.Errorf("esperado %q, obtido %q", tt.quadro, linha)
			}
		})
	}
}

func TestGerarVariaveis(t *testing.T) {
	programa, err := gerarPrograma(t, "int a = 1; a = a + 1; return a;")
	if err != nil {
		t.Fatal(err)
	}
	compararLinhas(t, textos(programa.Instrucoes()), []string{
		"push rbp",
		"mov rbp, rsp",
		"sub rsp, 16",
		"push 1",
		"pop rax",
		"mov [rbp-8], rax",
		"mov rax, [rbp-8]",
		"push rax",
		"push 1",
		"pop rdi",
		"pop rax",
		"add rax, rdi",
		"push rax",
		"pop rax",
		"mov [rbp-8], rax",
		"mov rax, [rbp-8]",
		"push rax",
		"pop rax",
		"mov rsp, rbp",
		"pop rbp",
		"ret",
		"mov rax, 0",
		"mov rsp, rbp",
		"pop rbp",
		"ret",
	})
}

func TestGerarReferencia(t *testing.T) {
	programa, err := gerarPrograma(t, "int a = 5; int p = &a; return *p;")
	if err != nil {
		t.Fatal(err)
	}
	linhas := textos(programa.Instrucoes())
	compararLinhas(t, linhas[6:10], []string{
		"lea rax, [rbp-8]",
		"push rax",
		"pop rax",
		"mov [rbp-16], rax",
	})
	compararLinhas(t, linhas[12:15], []string{
		"pop rax",
		"mov rax, [rax]",
		"push rax",
	})
}

func TestGerarImprime(t *testing.T) {
	programa, err := gerarPrograma(t, "print(7)")
	if err != nil {
		t.Fatal(err)
	}
	compararLinhas(t, textos(programa.Instrucoes())[2:7], []string{
		"push 7",
		"pop rsi",
		"lea rdi, [rip + .L.fmt]",
		"mov rax, 0",
		"call printf@PLT",
	})

	itens := programa.Itens()
	dados := itens[len(itens)-3:]
	if dados[0].Diretiva != ".section .rodata" || dados[1].Rotulo != ".L.fmt" || dados[2].Diretiva != `.string "%d\n"` {
		t.Errorf("seção de dados inesperada: %+v", dados)
	}
}

func TestSemImprimeSemSecaoDeDados(t *testing.T) {
	programa, err := gerarPrograma(t, "int a = 1; return a;")
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range programa.Itens() {
		if item.Tipo == ITEM_DIRETIVA {
			t.Errorf("diretiva inesperada %q", item.Diretiva)
		}
	}
}

func TestErrosDeGeracao(t *testing.T) {
	tests := []struct {
		name  string
		fonte string
		tipo  utils.TipoErro
	}{
		{"variavel nao declarada", "return x;", utils.ERRO_SEMANTICO},
		{"atribuicao sem declaracao", "x = 1;", utils.ERRO_SEMANTICO},
		{"redeclaracao", "int a = 1; int a = 2;", utils.ERRO_SEMANTICO},
		{"inicializador usa a propria variavel", "int a = a;", utils.ERRO_SEMANTICO},
		{"referencia a expressao", "int a = 1; return &(a + 1);", utils.ERRO_NAO_SUPORTADO},
		{"referencia a constante", "return &1;", utils.ERRO_NAO_SUPORTADO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			programa, err := gerarPrograma(t, tt.fonte)
			if err == nil {
				t.Fatalf("esperado erro para %q", tt.fonte)
			}
			if programa != nil {
				t.Error("nenhum programa deveria ser retornado em caso de erro")
			}
			if !utils.EhTipo(err, tt.tipo) {
				t.Errorf("esperado %s, obtido %v", tt.tipo, err)
			}
		})
	}
}

func TestVariavelEmModoExpressao(t *testing.T) {
	expressao, err := parser.AnalisarExpressao("a + 1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NovoGerador().GerarExpressao(expressao); !utils.EhTipo(err, utils.ERRO_SEMANTICO) {
		t.Errorf("esperado ERRO_SEMANTICO, obtido %v", err)
	}
}

func TestImprimeSemPrintfRegistrado(t *testing.T) {
	comandos, err := parser.AnalisarPrograma("print(1)")
	if err != nil {
		t.Fatal(err)
	}
	vazio := &registry.RegistroExterno{}
	if _, err := NovoGeradorComRegistro(vazio).GerarPrograma(comandos); !utils.EhTipo(err, utils.ERRO_NAO_SUPORTADO) {
		t.Errorf("esperado ERRO_NAO_SUPORTADO, obtido %v", err)
	}
}
