package x86_64

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/khevencolino/Cometa/internal/registry"
	"github.com/khevencolino/Cometa/internal/utils"
)

const (
	topoPilha        int64 = 0x7fff0000
	inicioDados      int64 = 0x1000
	retornoSentinela int64 = -1
	limitePassos           = 1 << 20
)

// Resultado é o efeito observável de uma execução: valor retornado por main e texto impresso
type Resultado struct {
	Valor int64
	Saida string
}

// CodigoSaida retorna o status que o processo teria: os 8 bits inferiores do retorno
func (r *Resultado) CodigoSaida() int {
	return int(uint8(r.Valor))
}

// Maquina interpreta um Programa instrução a instrução, sem montar nem ligar.
// Serve para testar o gerador em qualquer plataforma.
type Maquina struct {
	registradores [len(nomesRegistradores)]int64
	memoria       map[int64]int64
	registro      *registry.RegistroExterno

	// operandos do último cmp, consultados por setcc
	cmpEsquerda, cmpDireita int64

	codigo    []Instrucao
	enderecos map[string]int64
	textos    map[int64]string
	saida     strings.Builder
}

func NovaMaquina() *Maquina {
	return NovaMaquinaComRegistro(registry.RegistroGlobal)
}

func NovaMaquinaComRegistro(registro *registry.RegistroExterno) *Maquina {
	return &Maquina{registro: registro}
}

// Executar roda main até o ret final
func (m *Maquina) Executar(programa *Programa) (*Resultado, error) {
	if err := m.carregar(programa); err != nil {
		return nil, err
	}

	m.registradores[RSP] = topoPilha
	m.empilhar(retornoSentinela)

	for pc, passos := 0, 0; ; passos++ {
		if pc >= len(m.codigo) {
			return nil, erroExecucao("execução passou do fim de main sem ret")
		}
		if passos > limitePassos {
			return nil, erroExecucao("limite de passos excedido")
		}

		instrucao := m.codigo[pc]
		pc++

		if instrucao.Op == RET {
			destino, err := m.desempilhar()
			if err != nil {
				return nil, err
			}
			if destino != retornoSentinela {
				return nil, erroExecucao(fmt.Sprintf("ret para endereço desconhecido %#x", destino))
			}
			return &Resultado{Valor: m.registradores[RAX], Saida: m.saida.String()}, nil
		}

		if err := m.passo(instrucao); err != nil {
			return nil, err
		}
	}
}

// carregar separa o código de main dos dados e dá endereços simbólicos aos rótulos de dados
func (m *Maquina) carregar(programa *Programa) error {
	m.registradores = [len(nomesRegistradores)]int64{}
	m.memoria = make(map[int64]int64)
	m.enderecos = make(map[string]int64)
	m.textos = make(map[int64]string)
	m.codigo = nil
	m.saida.Reset()

	entrada := false
	rotuloAtual := ""
	proximoDado := inicioDados

	for _, item := range programa.itens {
		switch item.Tipo {
		case ITEM_ROTULO:
			rotuloAtual = item.Rotulo
			if item.Rotulo == RotuloEntrada {
				entrada = true
				continue
			}
			m.enderecos[item.Rotulo] = proximoDado
			proximoDado += 0x100
		case ITEM_INSTRUCAO:
			if rotuloAtual == RotuloEntrada {
				m.codigo = append(m.codigo, item.Instrucao)
			}
		case ITEM_DIRETIVA:
			texto, ok := strings.CutPrefix(item.Diretiva, ".string ")
			if !ok || rotuloAtual == "" || rotuloAtual == RotuloEntrada {
				continue
			}
			valor, err := strconv.Unquote(texto)
			if err != nil {
				return utils.NovoErro(utils.ERRO_EXECUCAO, "diretiva .string inválida", 0, 0, item.Diretiva)
			}
			m.textos[m.enderecos[rotuloAtual]] = valor
		}
	}

	if !entrada {
		return erroExecucao("rótulo " + RotuloEntrada + " ausente")
	}
	return nil
}

func (m *Maquina) passo(instrucao Instrucao) error {
	switch instrucao.Op {
	case MOV, MOV_IMEDIATO, CARREGAR, ARMAZENAR:
		valor, err := m.ler(instrucao.Origem)
		if err != nil {
			return err
		}
		return m.escrever(instrucao.Destino, valor)

	case LEA:
		endereco, err := m.endereco(instrucao.Origem)
		if err != nil {
			return err
		}
		return m.escrever(instrucao.Destino, endereco)

	case PUSH, PUSH_IMEDIATO:
		valor, err := m.ler(instrucao.Origem)
		if err != nil {
			return err
		}
		m.empilhar(valor)
		return nil

	case POP:
		valor, err := m.desempilhar()
		if err != nil {
			return err
		}
		return m.escrever(instrucao.Destino, valor)

	case ADD, ADD_IMEDIATO:
		return m.aritmetica(instrucao, func(a, b int64) int64 { return a + b })
	case SUB, SUB_IMEDIATO:
		return m.aritmetica(instrucao, func(a, b int64) int64 { return a - b })
	case IMUL, IMUL_IMEDIATO:
		return m.aritmetica(instrucao, func(a, b int64) int64 { return a * b })
	case AND:
		return m.aritmetica(instrucao, func(a, b int64) int64 { return a & b })
	case OR:
		return m.aritmetica(instrucao, func(a, b int64) int64 { return a | b })

	case CQO:
		m.registradores[RDX] = m.registradores[RAX] >> 63
		return nil

	case IDIV:
		return m.dividir(instrucao)

	case CMP, CMP_IMEDIATO:
		esquerda, err := m.ler(instrucao.Destino)
		if err != nil {
			return err
		}
		direita, err := m.ler(instrucao.Origem)
		if err != nil {
			return err
		}
		m.cmpEsquerda, m.cmpDireita = esquerda, direita
		return nil

	case SETE:
		return m.definirByte(instrucao.Destino, m.cmpEsquerda == m.cmpDireita)
	case SETNE:
		return m.definirByte(instrucao.Destino, m.cmpEsquerda != m.cmpDireita)
	case SETL:
		return m.definirByte(instrucao.Destino, m.cmpEsquerda < m.cmpDireita)
	case SETLE:
		return m.definirByte(instrucao.Destino, m.cmpEsquerda <= m.cmpDireita)

	case MOVZX:
		valor, err := m.ler(instrucao.Origem)
		if err != nil {
			return err
		}
		return m.escrever(instrucao.Destino, valor&0xff)

	case CALL:
		return m.chamar(instrucao)

	default:
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO, "instrução não suportada pela máquina", 0, 0, instrucao.String())
	}
}

func (m *Maquina) aritmetica(instrucao Instrucao, operacao func(a, b int64) int64) error {
	a, err := m.ler(instrucao.Destino)
	if err != nil {
		return err
	}
	b, err := m.ler(instrucao.Origem)
	if err != nil {
		return err
	}
	return m.escrever(instrucao.Destino, operacao(a, b))
}

// dividir segue idiv: rdx:rax / divisor, quociente em rax e resto em rdx
func (m *Maquina) dividir(instrucao Instrucao) error {
	divisor, err := m.ler(instrucao.Origem)
	if err != nil {
		return err
	}
	dividendo := m.registradores[RAX]

	if divisor == 0 {
		return erroExecucao("divisão por zero")
	}
	if m.registradores[RDX] != dividendo>>63 {
		return erroExecucao("rdx não contém a extensão de sinal de rax; falta cqo")
	}
	if dividendo == math.MinInt64 && divisor == -1 {
		return erroExecucao("estouro na divisão")
	}

	m.registradores[RAX] = dividendo / divisor
	m.registradores[RDX] = dividendo % divisor
	return nil
}

// chamar executa uma rotina externa registrada; só printf de um inteiro é conhecido
func (m *Maquina) chamar(instrucao Instrucao) error {
	simbolo, ok := instrucao.Origem.(Simbolo)
	if !ok {
		return erroExecucao("call sem símbolo")
	}
	externo, err := m.registro.ObterSimboloValidado(simbolo.Nome)
	if err != nil {
		return utils.NovoErro(utils.ERRO_NAO_SUPORTADO, "chamada externa desconhecida", 0, 0, err.Error())
	}
	if m.registradores[RSP]%16 != 0 {
		return erroExecucao(fmt.Sprintf("pilha desalinhada na chamada a %s", externo.Nome))
	}

	formato, ok := m.textos[m.registradores[RDI]]
	if !ok {
		return erroExecucao(fmt.Sprintf("rdi não aponta para uma string de formato em %s", externo.Nome))
	}

	// printf lê o inteiro de esi
	texto := fmt.Sprintf(formato, int32(m.registradores[RSI]))
	m.saida.WriteString(texto)
	m.registradores[RAX] = int64(len(texto))
	return nil
}

func (m *Maquina) empilhar(valor int64) {
	m.registradores[RSP] -= tamanhoPalavra
	m.memoria[m.registradores[RSP]] = valor
}

func (m *Maquina) desempilhar() (int64, error) {
	if m.registradores[RSP] >= topoPilha {
		return 0, erroExecucao("pop com pilha vazia")
	}
	valor, err := m.carregarMemoria(m.registradores[RSP])
	if err != nil {
		return 0, err
	}
	m.registradores[RSP] += tamanhoPalavra
	return valor, nil
}

func (m *Maquina) ler(operando Operando) (int64, error) {
	switch op := operando.(type) {
	case Registrador:
		return m.registradores[op], nil
	case Imediato:
		return int64(op), nil
	case Memoria:
		return m.carregarMemoria(m.registradores[op.Base] + op.Deslocamento)
	case Simbolo:
		return m.endereco(op)
	default:
		return 0, erroExecucao(fmt.Sprintf("operando inválido %v", operando))
	}
}

func (m *Maquina) escrever(operando Operando, valor int64) error {
	switch op := operando.(type) {
	case Registrador:
		m.registradores[op] = valor
		return nil
	case Memoria:
		m.memoria[m.registradores[op.Base]+op.Deslocamento] = valor
		return nil
	default:
		return erroExecucao(fmt.Sprintf("destino inválido %v", operando))
	}
}

func (m *Maquina) endereco(operando Operando) (int64, error) {
	switch op := operando.(type) {
	case Memoria:
		return m.registradores[op.Base] + op.Deslocamento, nil
	case Simbolo:
		endereco, ok := m.enderecos[op.Nome]
		if !ok {
			return 0, erroExecucao(fmt.Sprintf("rótulo '%s' não definido", op.Nome))
		}
		return endereco, nil
	default:
		return 0, erroExecucao(fmt.Sprintf("operando sem endereço %v", operando))
	}
}

func (m *Maquina) carregarMemoria(endereco int64) (int64, error) {
	valor, ok := m.memoria[endereco]
	if !ok {
		return 0, erroExecucao(fmt.Sprintf("leitura de memória não inicializada em %#x", endereco))
	}
	return valor, nil
}

// definirByte troca apenas o byte inferior do registrador, como setcc
func (m *Maquina) definirByte(operando Operando, condicao bool) error {
	registrador, ok := operando.(Registrador)
	if !ok {
		return erroExecucao("setcc exige registrador")
	}
	var b int64
	if condicao {
		b = 1
	}
	m.registradores[registrador] = m.registradores[registrador]&^0xff | b
	return nil
}

func erroExecucao(mensagem string) error {
	return utils.NovoErro(utils.ERRO_EXECUCAO, mensagem, 0, 0, "")
}
