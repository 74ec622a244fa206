package domain

import "errors"

var (
	ErrConfiguracaoAusente    = errors.New("arquivo de configuração de e-mail não encontrado")
	ErrConfiguracaoInvalida   = errors.New("configuração de e-mail inválida")
	ErrIdentidadeIndisponivel = errors.New("não foi possível obter o nome da máquina")
	ErrFalhaPersistencia      = errors.New("falha ao persistir o estado")
	ErrFalhaNotificacao       = errors.New("falha ao enviar notificação")
)
