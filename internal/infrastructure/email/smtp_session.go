package email

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

var (
	errSemSTARTTLS = errors.New("servidor não oferece STARTTLS")
	errSemAUTH     = errors.New("servidor não oferece AUTH")
)

// DiscadorSMTP abre uma sessão de submissão que sempre passa por STARTTLS e
// autenticação. O gomail.Dialer pula as duas etapas quando o servidor não
// as anuncia, por isso a sessão é montada aqui sobre net/smtp.
type DiscadorSMTP struct {
	Host      string
	Porta     int
	Usuario   string
	Senha     string
	TLSConfig *tls.Config
	Timeout   time.Duration
}

func NovoDiscadorSMTP(host string, porta int, usuario, senha string) *DiscadorSMTP {
	return &DiscadorSMTP{
		Host:      host,
		Porta:     porta,
		Usuario:   usuario,
		Senha:     senha,
		TLSConfig: &tls.Config{ServerName: host},
		Timeout:   30 * time.Second,
	}
}

func (d *DiscadorSMTP) Dial() (gomail.SendCloser, error) {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(d.Host, strconv.Itoa(d.Porta)), d.Timeout)
	if err != nil {
		return nil, err
	}

	c, err := smtp.NewClient(conn, d.Host)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := d.iniciar(c); err != nil {
		c.Close()
		return nil, err
	}
	return &sessaoSMTP{c: c}, nil
}

func (d *DiscadorSMTP) iniciar(c *smtp.Client) error {
	if err := c.Hello("localhost"); err != nil {
		return err
	}
	if ok, _ := c.Extension("STARTTLS"); !ok {
		return errSemSTARTTLS
	}
	if err := c.StartTLS(d.TLSConfig); err != nil {
		return fmt.Errorf("STARTTLS: %w", err)
	}
	if ok, _ := c.Extension("AUTH"); !ok {
		return errSemAUTH
	}
	if err := c.Auth(smtp.PlainAuth("", d.Usuario, d.Senha, d.Host)); err != nil {
		return fmt.Errorf("autenticação: %w", err)
	}
	return nil
}

type sessaoSMTP struct {
	c *smtp.Client
}

func (s *sessaoSMTP) Send(from string, to []string, msg io.WriterTo) error {
	if err := s.c.Mail(from); err != nil {
		return err
	}
	for _, addr := range to {
		if err := s.c.Rcpt(addr); err != nil {
			return err
		}
	}

	w, err := s.c.Data()
	if err != nil {
		return err
	}
	if _, err := msg.WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *sessaoSMTP) Close() error {
	if err := s.c.Quit(); err != nil {
		return s.c.Close()
	}
	return nil
}
