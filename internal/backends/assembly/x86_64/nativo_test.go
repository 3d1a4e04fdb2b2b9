package x86_64

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// montarEExecutar liga o assembly com cc e roda o executável
func montarEExecutar(t *testing.T, programa *Programa) (int, string) {
	t.Helper()
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		t.Skip("executável nativo só em linux/amd64")
	}
	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skip("cc não encontrado")
	}

	dir := t.TempDir()
	fonte := filepath.Join(dir, "programa.s")
	executavel := filepath.Join(dir, "programa")
	if err := os.WriteFile(fonte, []byte(Emitir(programa)), 0o644); err != nil {
		t.Fatal(err)
	}

	if saida, err := exec.Command(cc, "-o", executavel, fonte).CombinedOutput(); err != nil {
		t.Fatalf("cc falhou: %v\n%s", err, saida)
	}

	saida, err := exec.Command(executavel).Output()
	var erroSaida *exec.ExitError
	switch {
	case err == nil:
		return 0, string(saida)
	case errors.As(err, &erroSaida):
		return erroSaida.ExitCode(), string(saida)
	default:
		t.Fatal(err)
		return 0, ""
	}
}

func TestNativoCodigoDeSaida(t *testing.T) {
	tests := []struct {
		fonte    string
		esperado int
	}{
		{"1+2*3", 7},
		{"5-20", 241},
		{"(1+2)*(3/(4+5))", 0},
		{"1>2", 0},
		{"2>1", 1},
		{"true&&2", 1},
	}

	for _, tt := range tests {
		t.Run(tt.fonte, func(t *testing.T) {
			if codigo, _ := montarEExecutar(t, gerarExpressao(t, tt.fonte)); codigo != tt.esperado {
				t.Errorf("esperado status %d, obtido %d", tt.esperado, codigo)
			}
		})
	}
}

func TestNativoPrograma(t *testing.T) {
	tests := []struct {
		fonte  string
		codigo int
		saida  string
	}{
		{"int a = 1; int p = &a; a = a + 1; print(*p) print(a * 10); return a;", 2, "2\n20\n"},
		{"print(3000000000) return 0;", 0, "-1294967296\n"},
	}

	for _, tt := range tests {
		t.Run(tt.fonte, func(t *testing.T) {
			programa, err := gerarPrograma(t, tt.fonte)
			if err != nil {
				t.Fatal(err)
			}

			codigo, saida := montarEExecutar(t, programa)
			if codigo != tt.codigo {
				t.Errorf("esperado status %d, obtido %d", tt.codigo, codigo)
			}
			if saida != tt.saida {
				t.Errorf("saída inesperada %q", saida)
			}

			// o simulador tem que concordar com o executável
			resultado := executar(t, programa)
			if resultado.CodigoSaida() != codigo || resultado.Saida != saida {
				t.Errorf("simulador: status %d saída %q", resultado.CodigoSaida(), resultado.Saida)
			}
		})
	}
}
