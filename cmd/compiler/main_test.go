package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/khevencolino/Cometa/internal/registry"
)

func TestListarSimbolos(t *testing.T) {
	registro := registry.NovoRegistroExterno()
	registro.Registrar(registry.SimboloExterno{Nome: "puts", Formato: "%d", Descricao: "Escreve uma linha"})

	var saida bytes.Buffer
	listarSimbolos(&saida, registro)

	texto := saida.String()
	for _, trecho := range []string{"SÍMBOLOS EXTERNOS:", "printf", "Escreve uma linha"} {
		if !strings.Contains(texto, trecho) {
			t.Errorf("ajuda sem %q:\n%s", trecho, texto)
		}
	}
	if strings.Index(texto, "printf") > strings.Index(texto, "puts") {
		t.Errorf("símbolos fora de ordem:\n%s", texto)
	}
}
