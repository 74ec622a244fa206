package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metricas holds the gauges of one run. The registry is private so a run
// never exports collectors it did not set.
type Metricas struct {
	registry *prometheus.Registry

	ultimaExecucao     prometheus.Gauge
	alterado           prometheus.Gauge
	origemIP           *prometheus.GaugeVec
	emailsEnviados     prometheus.Gauge
	falhasNotificacao  prometheus.Gauge
	falhasPersistencia prometheus.Gauge
}

func Novo() *Metricas {
	m := &Metricas{
		registry: prometheus.NewRegistry(),
		ultimaExecucao: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "machine_monitor_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run.",
		}),
		alterado: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "machine_monitor_identity_changed",
			Help: "1 when the last run detected a new hostname or IP.",
		}),
		origemIP: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "machine_monitor_ip_source",
			Help: "Strategy that produced the IP in the last run.",
		}, []string{"source"}),
		emailsEnviados: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "machine_monitor_emails_sent",
			Help: "Messages accepted by the SMTP server in the last run.",
		}),
		falhasNotificacao: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "machine_monitor_notification_failed",
			Help: "1 when the last notification attempt failed.",
		}),
		falhasPersistencia: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "machine_monitor_persistence_failed",
			Help: "1 when the last state write failed.",
		}),
	}

	m.registry.MustRegister(
		m.ultimaExecucao,
		m.alterado,
		m.origemIP,
		m.emailsEnviados,
		m.falhasNotificacao,
		m.falhasPersistencia,
	)
	return m
}

// The setters below are no-ops on a nil *Metricas.

func (m *Metricas) Alterado(alterado bool) {
	if m != nil {
		m.alterado.Set(boolFloat(alterado))
	}
}

func (m *Metricas) OrigemIP(origem string) {
	if m != nil {
		m.origemIP.WithLabelValues(origem).Set(1)
	}
}

func (m *Metricas) EmailsEnviados(n int) {
	if m != nil {
		m.emailsEnviados.Set(float64(n))
	}
}

func (m *Metricas) FalhaNotificacao() {
	if m != nil {
		m.falhasNotificacao.Set(1)
	}
}

func (m *Metricas) FalhaPersistencia() {
	if m != nil {
		m.falhasPersistencia.Set(1)
	}
}

func (m *Metricas) Gatherer() prometheus.Gatherer { return m.registry }

// Gravar stamps the run time and writes the metrics in the text format read
// by node_exporter's textfile collector. The write is atomic.
func (m *Metricas) Gravar(caminho string, agora time.Time) error {
	m.ultimaExecucao.Set(float64(agora.Unix()))
	if err := prometheus.WriteToTextfile(caminho, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", caminho, err)
	}
	return nil
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
