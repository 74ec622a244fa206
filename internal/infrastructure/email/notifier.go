package email

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"machineMonitor/internal/core/domain"
)

const X_MAILER = "machineMonitor"

// Discador abre a sessão SMTP.
type Discador interface {
	Dial() (gomail.SendCloser, error)
}

type Notificador struct {
	NovoDiscador func(cfg domain.ConfigEmail) Discador
	Log          zerolog.Logger
}

func NovoNotificador(log zerolog.Logger) *Notificador {
	return &Notificador{NovoDiscador: discadorPadrao, Log: log}
}

func discadorPadrao(cfg domain.ConfigEmail) Discador {
	return NovoDiscadorSMTP(cfg.Host, cfg.Porta, cfg.Usuario, cfg.Senha)
}

// Enviar abre uma única sessão e envia uma mensagem por destinatário, na
// ordem configurada. A primeira falha interrompe os envios restantes; as
// mensagens já enviadas permanecem. Devolve quantas mensagens o servidor aceitou.
func (n *Notificador) Enviar(assunto, corpo string, cfg *domain.ConfigEmail) (int, error) {
	if cfg == nil {
		n.Log.Warn().Msg("Configuração de e-mail ausente ou inválida. Envio de e-mail cancelado.")
		return 0, nil
	}

	s, err := n.NovoDiscador(*cfg).Dial()
	if err != nil {
		return 0, fmt.Errorf("%w: conectando a %s:%d: %v", domain.ErrFalhaNotificacao, cfg.Host, cfg.Porta, err)
	}
	defer s.Close()

	enviados := 0
	for _, destinatario := range cfg.Destinatarios {
		if err := gomail.Send(s, montarMensagem(cfg.Usuario, destinatario, assunto, corpo)); err != nil {
			return enviados, fmt.Errorf("%w: enviando para '%s': %v", domain.ErrFalhaNotificacao, destinatario, err)
		}
		enviados++
		n.Log.Info().Msgf("E-mail enviado para %s", destinatario)
	}

	n.Log.Info().Msg("Todos os e-mails foram enviados com sucesso.")
	return enviados, nil
}

func montarMensagem(remetente, destinatario, assunto, corpo string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", remetente)
	m.SetHeader("To", destinatario)
	m.SetHeader("Subject", assunto)
	m.SetHeader("Reply-To", remetente)
	m.SetHeader("X-Mailer", X_MAILER)
	m.SetBody("text/plain", corpo)
	return m
}
