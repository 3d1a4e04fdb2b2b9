package registry

import "testing"

func TestImprimePadrao(t *testing.T) {
	simbolo, ok := RegistroGlobal.ObterSimbolo(Imprime)
	if !ok {
		t.Fatal("printf deveria estar registrado")
	}
	if !simbolo.Variadico {
		t.Error("printf é variádico")
	}
	if saida := simbolo.Formatar(-15); saida != "-15\n" {
		t.Errorf("esperado %q, obtido %q", "-15\n", saida)
	}
}

func TestRegistrosIndependentes(t *testing.T) {
	registro := NovoRegistroExterno()
	registro.Registrar(SimboloExterno{Nome: Imprime, Formato: "[%d]\n"})

	if simbolo, _ := registro.ObterSimbolo(Imprime); simbolo.Formatar(1) != "[1]\n" {
		t.Errorf("substituição não aplicada: %q", simbolo.Formatar(1))
	}
	if simbolo, _ := RegistroGlobal.ObterSimbolo(Imprime); simbolo.Formato != "%d\n" {
		t.Errorf("registro global foi alterado: %q", simbolo.Formato)
	}
}

func TestSimboloDesconhecido(t *testing.T) {
	if _, err := NovoRegistroExterno().ObterSimboloValidado("puts"); err == nil {
		t.Error("esperado erro para símbolo não registrado")
	}
	if nomes := NovoRegistroExterno().ListarSimbolos(); len(nomes) != 1 || nomes[0] != Imprime {
		t.Errorf("listagem inesperada: %v", nomes)
	}
}

func TestFormatarTruncaEm32Bits(t *testing.T) {
	simbolo, _ := RegistroGlobal.ObterSimbolo(Imprime)
	tests := []struct {
		valor    int64
		esperado string
	}{
		{3000000000, "-1294967296\n"},
		{1 << 32, "0\n"},
		{-1, "-1\n"},
	}
	for _, tt := range tests {
		if saida := simbolo.Formatar(tt.valor); saida != tt.esperado {
			t.Errorf("Formatar(%d): esperado %q, obtido %q", tt.valor, tt.esperado, saida)
		}
	}
}
