package domain

import (
	"fmt"
	"time"
)

const (
	EmailHostPadrao  = "smtp.gmail.com"
	EmailPortaPadrao = 587

	// IPIndisponivel substitui o IP quando nenhuma estratégia de descoberta funciona.
	IPIndisponivel = "Não foi possível obter o IP"
)

type OrigemIP int

const (
	OrigemIndisponivel OrigemIP = iota
	OrigemSonda
	OrigemResolucao
)

func (o OrigemIP) String() string {
	switch o {
	case OrigemSonda:
		return "sonda"
	case OrigemResolucao:
		return "resolucao"
	default:
		return "indisponivel"
	}
}

type IdentidadeMaquina struct {
	NomeMaquina string
	IP          string
	OrigemIP    OrigemIP
}

// Conteudo devolve o texto exato gravado no arquivo de estado.
func (i IdentidadeMaquina) Conteudo() string {
	return fmt.Sprintf("Nome da Máquina: %s\nIP da Máquina: %s\n", i.NomeMaquina, i.IP)
}

type ConfigEmail struct {
	Host          string
	Porta         int
	Usuario       string
	Senha         string
	Destinatarios []string
}

type RegistroAlteracao struct {
	IDExecucao  string    `msgpack:"id_execucao"`
	Momento     time.Time `msgpack:"momento"`
	NomeMaquina string    `msgpack:"nome_maquina"`
	IP          string    `msgpack:"ip"`
	OrigemIP    string    `msgpack:"origem_ip"`
	Hash        string    `msgpack:"hash"`
}
