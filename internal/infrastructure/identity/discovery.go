package identity

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"

	"machineMonitor/internal/core/domain"
)

const EnderecoSondaPadrao = "8.8.8.8:80"

// Descobridor obtém o nome da máquina e o IP de saída. Cada etapa pode ser
// substituída nos testes.
type Descobridor struct {
	NomeHost func() (string, error)
	Sonda    func(ctx context.Context) (net.IP, error)
	Resolver func(ctx context.Context, host string) (net.IP, error)
	Log      zerolog.Logger
}

func NovoDescobridor(enderecoSonda string, log zerolog.Logger) *Descobridor {
	if enderecoSonda == "" {
		enderecoSonda = EnderecoSondaPadrao
	}
	return &Descobridor{
		NomeHost: os.Hostname,
		Sonda: func(ctx context.Context) (net.IP, error) {
			return SondarIPSaida(ctx, enderecoSonda)
		},
		Resolver: ResolverIPHost,
		Log:      log,
	}
}

func (d *Descobridor) Descobrir(ctx context.Context) (domain.IdentidadeMaquina, error) {
	nome, err := d.NomeHost()
	if err != nil {
		return domain.IdentidadeMaquina{}, fmt.Errorf("%w: %v", domain.ErrIdentidadeIndisponivel, err)
	}
	if nome == "" {
		return domain.IdentidadeMaquina{}, fmt.Errorf("%w: nome vazio", domain.ErrIdentidadeIndisponivel)
	}

	ip, origem := d.descobrirIP(ctx, nome)
	return domain.IdentidadeMaquina{NomeMaquina: nome, IP: ip, OrigemIP: origem}, nil
}

func (d *Descobridor) descobrirIP(ctx context.Context, nome string) (string, domain.OrigemIP) {
	ip, err := d.Sonda(ctx)
	if err == nil {
		return ip.String(), domain.OrigemSonda
	}
	d.Log.Warn().Err(err).Msg("Falha ao obter IP externo")

	ip, err = d.Resolver(ctx, nome)
	if err == nil {
		return ip.String(), domain.OrigemResolucao
	}
	d.Log.Error().Err(err).Msg("Falha ao obter IP local")

	return domain.IPIndisponivel, domain.OrigemIndisponivel
}

// SondarIPSaida abre um socket UDP "conectado" ao endereço e lê o endereço
// local escolhido pela tabela de rotas. Nenhum pacote é enviado.
func SondarIPSaida(ctx context.Context, endereco string) (net.IP, error) {
	dialer := net.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "udp4", endereco)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil || addr.IP.IsUnspecified() {
		return nil, fmt.Errorf("endereço local inesperado: %v", conn.LocalAddr())
	}
	return addr.IP, nil
}

// ResolverIPHost resolve o nome da máquina, preferindo IPv4.
func ResolverIPHost(ctx context.Context, host string) (net.IP, error) {
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return nil, err
	}
	if len(ips) == 0 {
		return nil, errors.New("nenhum endereço IPv4 para " + host)
	}
	return ips[0], nil
}
