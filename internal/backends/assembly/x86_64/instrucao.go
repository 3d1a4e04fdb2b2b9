package x86_64

import (
	"fmt"
	"strconv"
)

// Registrador representa um registrador de uso geral de 64 bits
type Registrador int

const (
	RAX Registrador = iota
	RDI
	RSI
	RDX
	RCX
	RBP
	RSP
	RBX
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

var nomesRegistradores = [...]string{
	"rax", "rdi", "rsi", "rdx", "rcx", "rbp", "rsp", "rbx",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

// nomes dos 8 bits inferiores, usados por setcc e movzx
var nomesRegistradoresByte = [...]string{
	"al", "dil", "sil", "dl", "cl", "bpl", "spl", "bl",
	"r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b",
}

func (r Registrador) String() string {
	if r < 0 || int(r) >= len(nomesRegistradores) {
		return fmt.Sprintf("reg%d", int(r))
	}
	return nomesRegistradores[r]
}

// Byte retorna o nome do byte inferior do registrador
func (r Registrador) Byte() string {
	if r < 0 || int(r) >= len(nomesRegistradoresByte) {
		return fmt.Sprintf("reg%db", int(r))
	}
	return nomesRegistradoresByte[r]
}

// Operando é um dos operandos tipados de uma instrução
type Operando interface {
	String() string
	operando()
}

// Imediato é uma constante embutida na instrução
type Imediato int64

// Memoria endereça [Base + Deslocamento]
type Memoria struct {
	Base         Registrador
	Deslocamento int64
}

// Simbolo referencia um rótulo pelo nome; Relativo gera [rip + nome]
type Simbolo struct {
	Nome     string
	Relativo bool
}

func (Registrador) operando() {}
func (Imediato) operando()    {}
func (Memoria) operando()     {}
func (Simbolo) operando()     {}

func (i Imediato) String() string { return strconv.FormatInt(int64(i), 10) }

func (m Memoria) String() string {
	switch {
	case m.Deslocamento < 0:
		return fmt.Sprintf("[%s-%d]", m.Base, -m.Deslocamento)
	case m.Deslocamento > 0:
		return fmt.Sprintf("[%s+%d]", m.Base, m.Deslocamento)
	default:
		return fmt.Sprintf("[%s]", m.Base)
	}
}

func (s Simbolo) String() string {
	if s.Relativo {
		return fmt.Sprintf("[rip + %s]", s.Nome)
	}
	return s.Nome
}

// Operacao identifica a forma de uma instrução
type Operacao int

const (
	MOV           Operacao = iota // mov reg, reg
	MOV_IMEDIATO                  // mov reg, imm
	CARREGAR                      // mov reg, [mem]
	ARMAZENAR                     // mov [mem], reg
	LEA                           // lea reg, [mem]
	PUSH                          // push reg
	PUSH_IMEDIATO                 // push imm
	POP                           // pop reg
	ADD                           // add reg, reg
	ADD_IMEDIATO                  // add reg, imm
	SUB                           // sub reg, reg
	SUB_IMEDIATO                  // sub reg, imm
	IMUL                          // imul reg, reg
	IMUL_IMEDIATO                 // imul reg, imm
	IDIV                          // idiv reg (rdx:rax / reg)
	CQO                           // estende rax com sinal para rdx:rax
	CMP                           // cmp reg, reg
	CMP_IMEDIATO                  // cmp reg, imm
	SETE                          // sete byte
	SETNE                         // setne byte
	SETL                          // setl byte
	SETLE                         // setle byte
	MOVZX                         // movzx reg, byte
	AND                           // and reg, reg
	OR                            // or reg, reg
	CALL                          // call símbolo
	RET
)

// Instrucao é uma operação da máquina com até dois operandos
type Instrucao struct {
	Op      Operacao
	Destino Operando
	Origem  Operando
}

func Mov(destino, origem Registrador) Instrucao {
	return Instrucao{Op: MOV, Destino: destino, Origem: origem}
}

func MovImediato(destino Registrador, valor int64) Instrucao {
	return Instrucao{Op: MOV_IMEDIATO, Destino: destino, Origem: Imediato(valor)}
}

func Carregar(destino Registrador, origem Memoria) Instrucao {
	return Instrucao{Op: CARREGAR, Destino: destino, Origem: origem}
}

func Armazenar(destino Memoria, origem Registrador) Instrucao {
	return Instrucao{Op: ARMAZENAR, Destino: destino, Origem: origem}
}

// Lea calcula um endereço; origem é Memoria ou Simbolo relativo
func Lea(destino Registrador, origem Operando) Instrucao {
	return Instrucao{Op: LEA, Destino: destino, Origem: origem}
}

func Push(origem Registrador) Instrucao {
	return Instrucao{Op: PUSH, Origem: origem}
}

func PushImediato(valor int64) Instrucao {
	return Instrucao{Op: PUSH_IMEDIATO, Origem: Imediato(valor)}
}

func Pop(destino Registrador) Instrucao {
	return Instrucao{Op: POP, Destino: destino}
}

func Add(destino, origem Registrador) Instrucao {
	return Instrucao{Op: ADD, Destino: destino, Origem: origem}
}

func AddImediato(destino Registrador, valor int64) Instrucao {
	return Instrucao{Op: ADD_IMEDIATO, Destino: destino, Origem: Imediato(valor)}
}

func Sub(destino, origem Registrador) Instrucao {
	return Instrucao{Op: SUB, Destino: destino, Origem: origem}
}

func SubImediato(destino Registrador, valor int64) Instrucao {
	return Instrucao{Op: SUB_IMEDIATO, Destino: destino, Origem: Imediato(valor)}
}

func Imul(destino, origem Registrador) Instrucao {
	return Instrucao{Op: IMUL, Destino: destino, Origem: origem}
}

func ImulImediato(destino Registrador, valor int64) Instrucao {
	return Instrucao{Op: IMUL_IMEDIATO, Destino: destino, Origem: Imediato(valor)}
}

// Idiv divide rdx:rax pelo divisor; quociente em rax, resto em rdx
func Idiv(divisor Registrador) Instrucao {
	return Instrucao{Op: IDIV, Origem: divisor}
}

func Cqo() Instrucao {
	return Instrucao{Op: CQO}
}

func Cmp(esquerda, direita Registrador) Instrucao {
	return Instrucao{Op: CMP, Destino: esquerda, Origem: direita}
}

func CmpImediato(esquerda Registrador, valor int64) Instrucao {
	return Instrucao{Op: CMP_IMEDIATO, Destino: esquerda, Origem: Imediato(valor)}
}

func Sete(destino Registrador) Instrucao  { return Instrucao{Op: SETE, Destino: destino} }
func Setne(destino Registrador) Instrucao { return Instrucao{Op: SETNE, Destino: destino} }
func Setl(destino Registrador) Instrucao  { return Instrucao{Op: SETL, Destino: destino} }
func Setle(destino Registrador) Instrucao { return Instrucao{Op: SETLE, Destino: destino} }

// Movzx estende com zeros o byte inferior de origem para destino
func Movzx(destino, origem Registrador) Instrucao {
	return Instrucao{Op: MOVZX, Destino: destino, Origem: origem}
}

func And(destino, origem Registrador) Instrucao {
	return Instrucao{Op: AND, Destino: destino, Origem: origem}
}

func Or(destino, origem Registrador) Instrucao {
	return Instrucao{Op: OR, Destino: destino, Origem: origem}
}

func Call(nome string) Instrucao {
	return Instrucao{Op: CALL, Origem: Simbolo{Nome: nome}}
}

func Ret() Instrucao {
	return Instrucao{Op: RET}
}

// String retorna a instrução na sintaxe Intel sem prefixos
func (i Instrucao) String() string {
	switch i.Op {
	case MOV, MOV_IMEDIATO, CARREGAR, ARMAZENAR:
		return fmt.Sprintf("mov %s, %s", i.Destino, i.Origem)
	case LEA:
		return fmt.Sprintf("lea %s, %s", i.Destino, i.Origem)
	case PUSH, PUSH_IMEDIATO:
		return fmt.Sprintf("push %s", i.Origem)
	case POP:
		return fmt.Sprintf("pop %s", i.Destino)
	case ADD, ADD_IMEDIATO:
		return fmt.Sprintf("add %s, %s", i.Destino, i.Origem)
	case SUB, SUB_IMEDIATO:
		return fmt.Sprintf("sub %s, %s", i.Destino, i.Origem)
	case IMUL, IMUL_IMEDIATO:
		return fmt.Sprintf("imul %s, %s", i.Destino, i.Origem)
	case IDIV:
		return fmt.Sprintf("idiv %s", i.Origem)
	case CQO:
		return "cqo"
	case CMP, CMP_IMEDIATO:
		return fmt.Sprintf("cmp %s, %s", i.Destino, i.Origem)
	case SETE:
		return fmt.Sprintf("sete %s", byteDe(i.Destino))
	case SETNE:
		return fmt.Sprintf("setne %s", byteDe(i.Destino))
	case SETL:
		return fmt.Sprintf("setl %s", byteDe(i.Destino))
	case SETLE:
		return fmt.Sprintf("setle %s", byteDe(i.Destino))
	case MOVZX:
		return fmt.Sprintf("movzx %s, %s", i.Destino, byteDe(i.Origem))
	case AND:
		return fmt.Sprintf("and %s, %s", i.Destino, i.Origem)
	case OR:
		return fmt.Sprintf("or %s, %s", i.Destino, i.Origem)
	case CALL:
		// printf vem da libc; @PLT permite ligar como PIE
		return fmt.Sprintf("call %s@PLT", i.Origem)
	case RET:
		return "ret"
	default:
		return fmt.Sprintf("# operação desconhecida %d", int(i.Op))
	}
}

func byteDe(operando Operando) string {
	if registrador, ok := operando.(Registrador); ok {
		return registrador.Byte()
	}
	return operando.String()
}
