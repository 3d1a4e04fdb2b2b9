package interpreter

import (
	"bytes"
	"testing"

	"github.com/khevencolino/Cometa/internal/parser"
	"github.com/khevencolino/Cometa/internal/utils"
)

func executarPrograma(t *testing.T, fonte string) (int64, string, error) {
	t.Helper()
	comandos, err := parser.AnalisarPrograma(fonte)
	if err != nil {
		t.Fatalf("AnalisarPrograma(%q): %v", fonte, err)
	}
	var saida bytes.Buffer
	valor, err := NewInterpreterBackend().Executar(&parser.Unidade{Comandos: comandos}, &saida)
	return valor, saida.String(), err
}

func TestExpressoes(t *testing.T) {
	tests := []struct {
		fonte    string
		esperado int64
	}{
		{"1+2*3", 7},
		{"5-20", -15},
		{"1-2-3", -4},
		{"(1+2)*(3/(4+5))", 0},
		{"-7/2", -3},
		{"1>2", 0},
		{"1<=1", 1},
		{"3==3", 1},
		{"3!=3", 0},
		{"true&&2", 1},
		{"false||0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.fonte, func(t *testing.T) {
			expressao, err := parser.AnalisarExpressao(tt.fonte)
			if err != nil {
				t.Fatal(err)
			}
			valor, err := NewInterpreterBackend().Executar(&parser.Unidade{Expressao: expressao}, &bytes.Buffer{})
			if err != nil {
				t.Fatal(err)
			}
			if valor != tt.esperado {
				t.Errorf("esperado %d, obtido %d", tt.esperado, valor)
			}
		})
	}
}

func TestProgramas(t *testing.T) {
	tests := []struct {
		fonte string
		valor int64
		saida string
	}{
		{"int a = 1; a = a + 1; return a;", 2, ""},
		{"int a = 2; print(a) print(a * a); return 0;", 0, "2\n4\n"},
		{"print(1 < 2) return 3; print(5)", 3, "1\n"},
		{"print(3000000000) return 0;", 0, "-1294967296\n"},
		{"int a = 1;", 0, ""},
		{"", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.fonte, func(t *testing.T) {
			valor, saida, err := executarPrograma(t, tt.fonte)
			if err != nil {
				t.Fatal(err)
			}
			if valor != tt.valor {
				t.Errorf("esperado %d, obtido %d", tt.valor, valor)
			}
			if saida != tt.saida {
				t.Errorf("saída esperada %q, obtida %q", tt.saida, saida)
			}
		})
	}
}

func TestErros(t *testing.T) {
	tests := []struct {
		name  string
		fonte string
		tipo  utils.TipoErro
	}{
		{"nao declarada", "return x;", utils.ERRO_SEMANTICO},
		{"atribuicao sem declaracao", "x = 1;", utils.ERRO_SEMANTICO},
		{"redeclaracao", "int a = 1; int a = 2;", utils.ERRO_SEMANTICO},
		{"inicializador usa a propria variavel", "int a = a;", utils.ERRO_SEMANTICO},
		{"nao declarada depois do return", "return 1; x = 2;", utils.ERRO_SEMANTICO},
		{"redeclaracao depois do return", "int a = 1; return a; int a = 2;", utils.ERRO_SEMANTICO},
		{"nao declarada em print inalcancavel", "return 0; print(y)", utils.ERRO_SEMANTICO},
		{"divisao por zero", "return 1 / 0;", utils.ERRO_EXECUCAO},
		{"referencia", "int a = 1; return &a;", utils.ERRO_NAO_SUPORTADO},
		{"desreferencia", "int a = 1; return *a;", utils.ERRO_NAO_SUPORTADO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executarPrograma(t, tt.fonte)
			if !utils.EhTipo(err, tt.tipo) {
				t.Errorf("esperado %s, obtido %v", tt.tipo, err)
			}
		})
	}
}
