package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"machineMonitor/internal/config"
	"machineMonitor/internal/core/domain"
	"machineMonitor/internal/core/services"
	"machineMonitor/internal/infrastructure/email"
	"machineMonitor/internal/infrastructure/identity"
	"machineMonitor/internal/infrastructure/metrics"
	"machineMonitor/internal/infrastructure/persistence"
	"machineMonitor/internal/pkg/logger"
)

const ARQUIVO_CONFIG_APP = "monitor.toml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base := diretorioExecutavel()

	cfgApp, errApp := config.CarregarConfiguracaoApp(filepath.Join(base, ARQUIVO_CONFIG_APP), base)
	if errApp != nil {
		cfgApp = config.Padrao(base)
	}

	arquivoLog, err := logger.OpenFile(cfgApp.Monitor.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERRO CRÍTICO: não foi possível abrir o log: %v\n", err)
		os.Exit(1)
	}
	defer arquivoLog.Close()

	idExecucao := uuid.NewString()
	log := logger.Init(arquivoLog, cfgApp.Monitor.LogLevel).With().Str("execucao", idExecucao).Logger()

	log.Info().Msg("Início do script")
	if errApp != nil {
		log.Error().Err(errApp).Msg("Configuração do monitor inválida. Usando valores padrão.")
	}

	cfgEmail, err := config.CarregarConfiguracaoEmail(cfgApp.Monitor.EmailConfig)
	switch {
	case errors.Is(err, domain.ErrConfiguracaoAusente):
		log.Warn().Msgf("Arquivo de configuração %s não encontrado. E-mails não serão enviados.", cfgApp.Monitor.EmailConfig)
	case err != nil:
		log.Error().Err(err).Msg("Erro ao carregar a configuração de e-mail")
	default:
		log.Info().Msgf("Configuração de e-mail carregada de %s.", cfgApp.Monitor.EmailConfig)
	}

	modo, err := cfgApp.Monitor.ParseStateFileMode()
	if err != nil {
		log.Error().Err(err).Msg("Permissão do arquivo de estado inválida. Usando 0666.")
		modo = 0o666
	}

	monitor := &services.Monitor{
		IDExecucao:  idExecucao,
		Descobridor: identity.NovoDescobridor(cfgApp.Monitor.ProbeAddress, log),
		Estado:      persistence.NovoRepositorioEstado(cfgApp.Monitor.StateFile, modo, log),
		Notificador: email.NovoNotificador(log),
		Detalhes:    identity.ColetarDetalhes,
		Metricas:    metrics.Novo(),
		Log:         log,
	}

	if cfgApp.Monitor.HistoryDB != "" {
		historico, err := persistence.AbrirHistorico(cfgApp.Monitor.HistoryDB, log)
		if err != nil {
			log.Error().Err(err).Msg("Erro ao abrir o histórico de alterações")
		} else {
			defer historico.Close()
			monitor.Historico = historico
		}
	}

	// Identity errors are already logged by the monitor.
	_, _ = monitor.Executar(ctx, cfgEmail)

	if cfgApp.Monitor.MetricsTextfile != "" {
		if err := monitor.Metricas.Gravar(cfgApp.Monitor.MetricsTextfile, time.Now()); err != nil {
			log.Error().Err(err).Msg("Erro ao gravar as métricas")
		}
	}

	log.Info().Msg("Fim do script")
}

func diretorioExecutavel() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolvido, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolvido
	}
	return filepath.Dir(exe)
}
