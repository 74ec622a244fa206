package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"machineMonitor/internal/core/domain"
	"machineMonitor/internal/infrastructure/metrics"
	"machineMonitor/internal/pkg/utils"
)

const ASSUNTO_EMAIL = "Atualização de informações da máquina"

type DescobridorIdentidade interface {
	Descobrir(ctx context.Context) (domain.IdentidadeMaquina, error)
}

type RepositorioEstado interface {
	Ler() (string, bool)
	Salvar(conteudo string) error
}

type Notificador interface {
	Enviar(assunto, corpo string, cfg *domain.ConfigEmail) (int, error)
}

type HistoricoAlteracoes interface {
	Ultimo() (*domain.RegistroAlteracao, error)
	Registrar(reg domain.RegistroAlteracao) error
}

// Monitor executa uma verificação completa. Historico, Detalhes e Metricas
// são opcionais.
type Monitor struct {
	IDExecucao  string
	Descobridor DescobridorIdentidade
	Estado      RepositorioEstado
	Notificador Notificador
	Historico   HistoricoAlteracoes
	Detalhes    func(ctx context.Context) string
	Metricas    *metrics.Metricas
	Log         zerolog.Logger
	Agora       func() time.Time
}

type Resultado struct {
	Identidade domain.IdentidadeMaquina
	Conteudo   string
	Alterado   bool
	Enviados   int
}

// Executar só devolve erro quando a identidade da máquina não pôde ser
// obtida; as demais falhas são registradas e a execução continua.
func (m *Monitor) Executar(ctx context.Context, cfgEmail *domain.ConfigEmail) (Resultado, error) {
	identidade, err := m.Descobridor.Descobrir(ctx)
	if err != nil {
		m.Log.Error().Err(err).Msg("Não foi possível obter todas as informações da máquina.")
		return Resultado{}, err
	}
	m.Metricas.OrigemIP(identidade.OrigemIP.String())
	m.Log.Debug().
		Str("nome", identidade.NomeMaquina).
		Str("ip", identidade.IP).
		Stringer("origem_ip", identidade.OrigemIP).
		Msg("Identidade obtida")

	resultado := Resultado{Identidade: identidade, Conteudo: identidade.Conteudo()}

	anterior, existia := m.Estado.Ler()
	if existia && anterior == resultado.Conteudo {
		m.Log.Info().Msg("As informações não mudaram. Nada foi alterado.")
		m.Metricas.Alterado(false)
		return resultado, nil
	}
	resultado.Alterado = true
	m.Metricas.Alterado(true)

	if err := m.Estado.Salvar(resultado.Conteudo); err != nil {
		m.Log.Error().Err(err).Msg("Erro ao salvar as informações da máquina")
		m.Metricas.FalhaPersistencia()
	} else {
		m.Log.Info().Msg("Informações atualizadas e salvas.")
	}

	m.registrarHistorico(identidade, resultado.Conteudo)

	corpo := m.montarCorpo(ctx, resultado.Conteudo, anterior, existia)
	resultado.Enviados, err = m.Notificador.Enviar(ASSUNTO_EMAIL, corpo, cfgEmail)
	m.Metricas.EmailsEnviados(resultado.Enviados)
	if err != nil {
		m.Log.Error().Err(err).Int("enviados", resultado.Enviados).Msg("Erro ao enviar e-mail")
		m.Metricas.FalhaNotificacao()
	}

	return resultado, nil
}

func (m *Monitor) registrarHistorico(identidade domain.IdentidadeMaquina, conteudo string) {
	if m.Historico == nil {
		return
	}
	if ultimo, err := m.Historico.Ultimo(); err != nil {
		m.Log.Warn().Err(err).Msg("Erro ao ler a última alteração do histórico")
	} else if ultimo != nil {
		m.Log.Info().
			Str("ip_anterior", ultimo.IP).
			Msgf("Última alteração registrada em %s", ultimo.Momento.Format("02/01/2006 às 15:04:05"))
	}

	reg := domain.RegistroAlteracao{
		IDExecucao:  m.IDExecucao,
		Momento:     m.agora(),
		NomeMaquina: identidade.NomeMaquina,
		IP:          identidade.IP,
		OrigemIP:    identidade.OrigemIP.String(),
		Hash:        utils.CalcularHash([]byte(conteudo)),
	}
	if err := m.Historico.Registrar(reg); err != nil {
		m.Log.Error().Err(err).Msg("Erro ao registrar a alteração no histórico")
	}
}

func (m *Monitor) montarCorpo(ctx context.Context, novo, anterior string, existia bool) string {
	corpo := "As seguintes informações da máquina foram atualizadas:\n\n" + novo
	if existia && anterior != "" {
		corpo += "\nAlterações em relação ao registro anterior:\n\n" + utils.GerarDiffTexto(anterior, novo)
	}
	if m.Detalhes != nil {
		if detalhes := m.Detalhes(ctx); detalhes != "" {
			corpo += "\nDetalhes do sistema:\n\n" + detalhes
		}
	}
	return corpo
}

func (m *Monitor) agora() time.Time {
	if m.Agora != nil {
		return m.Agora()
	}
	return time.Now()
}
