package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"machineMonitor/internal/core/domain"
)

func escreverConfig(t *testing.T, conteudo string) string {
	t.Helper()
	caminho := filepath.Join(t.TempDir(), "email_config.txt")
	if err := os.WriteFile(caminho, []byte(conteudo), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return caminho
}

func TestCarregarConfiguracaoEmail_Valida(t *testing.T) {
	caminho := escreverConfig(t, "EMAIL_HOST=smtp.example.com\nEMAIL_PORT=2525\nEMAIL_USER=monitor@example.com\nEMAIL_PASSWORD=a=b=c\nEMAIL_TO=a@x.com, b@x.com\n")

	cfg, err := CarregarConfiguracaoEmail(caminho)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Host != "smtp.example.com" {
		t.Errorf("Host: got %s, want smtp.example.com", cfg.Host)
	}
	if cfg.Porta != 2525 {
		t.Errorf("Porta: got %d, want 2525", cfg.Porta)
	}
	if cfg.Usuario != "monitor@example.com" {
		t.Errorf("Usuario: got %s, want monitor@example.com", cfg.Usuario)
	}
	if cfg.Senha != "a=b=c" {
		t.Errorf("Senha: got %s, want a=b=c", cfg.Senha)
	}
	if want := []string{"a@x.com", "b@x.com"}; !reflect.DeepEqual(cfg.Destinatarios, want) {
		t.Errorf("Destinatarios: got %q, want %q", cfg.Destinatarios, want)
	}
}

func TestCarregarConfiguracaoEmail_Padroes(t *testing.T) {
	caminho := escreverConfig(t, "EMAIL_USER=u@example.com\nEMAIL_PASSWORD=secret\nEMAIL_TO=a@x.com\n")

	cfg, err := CarregarConfiguracaoEmail(caminho)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Host != domain.EmailHostPadrao {
		t.Errorf("default Host: got %s, want %s", cfg.Host, domain.EmailHostPadrao)
	}
	if cfg.Porta != domain.EmailPortaPadrao {
		t.Errorf("default Porta: got %d, want %d", cfg.Porta, domain.EmailPortaPadrao)
	}
	if len(cfg.Destinatarios) != 1 {
		t.Errorf("Destinatarios: got %d entries, want 1", len(cfg.Destinatarios))
	}
}

func TestCarregarConfiguracaoEmail_DestinatariosSemFiltro(t *testing.T) {
	caminho := escreverConfig(t, "EMAIL_USER=u\nEMAIL_PASSWORD=p\nEMAIL_TO= a@x.com ,,a@x.com, \n")

	cfg, err := CarregarConfiguracaoEmail(caminho)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := []string{"a@x.com", "", "a@x.com", ""}
	if !reflect.DeepEqual(cfg.Destinatarios, want) {
		t.Errorf("Destinatarios: got %q, want %q", cfg.Destinatarios, want)
	}
}

func TestCarregarConfiguracaoEmail_Invalida(t *testing.T) {
	casos := []struct {
		nome     string
		conteudo string
	}{
		{"sem EMAIL_TO", "EMAIL_USER=u\nEMAIL_PASSWORD=p\n"},
		{"EMAIL_TO em branco", "EMAIL_USER=u\nEMAIL_PASSWORD=p\nEMAIL_TO=   \n"},
		{"sem EMAIL_USER", "EMAIL_PASSWORD=p\nEMAIL_TO=a@x.com\n"},
		{"sem EMAIL_PASSWORD", "EMAIL_USER=u\nEMAIL_TO=a@x.com\n"},
		{"porta não numérica", "EMAIL_PORT=smtp\nEMAIL_USER=u\nEMAIL_PASSWORD=p\nEMAIL_TO=a@x.com\n"},
		{"arquivo vazio", ""},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			cfg, err := CarregarConfiguracaoEmail(escreverConfig(t, c.conteudo))
			if !errors.Is(err, domain.ErrConfiguracaoInvalida) {
				t.Fatalf("expected ErrConfiguracaoInvalida, got %v", err)
			}
			if cfg != nil {
				t.Errorf("expected nil config, got %+v", cfg)
			}
		})
	}
}

func TestCarregarConfiguracaoEmail_ArquivoAusente(t *testing.T) {
	cfg, err := CarregarConfiguracaoEmail(filepath.Join(t.TempDir(), "nao_existe.txt"))
	if !errors.Is(err, domain.ErrConfiguracaoAusente) {
		t.Fatalf("expected ErrConfiguracaoAusente, got %v", err)
	}
	if errors.Is(err, domain.ErrConfiguracaoInvalida) {
		t.Error("missing file must be reported distinctly from an invalid one")
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestCarregarConfiguracaoApp_Padroes(t *testing.T) {
	base := t.TempDir()

	cfg, err := CarregarConfiguracaoApp(filepath.Join(base, "monitor.toml"), base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Monitor.LogLevel != "info" {
		t.Errorf("default LogLevel: got %s, want info", cfg.Monitor.LogLevel)
	}
	if want := filepath.Join(base, "machine_info.txt"); cfg.Monitor.StateFile != want {
		t.Errorf("default StateFile: got %s, want %s", cfg.Monitor.StateFile, want)
	}
	if want := filepath.Join(base, "service_logs", "script_log.txt"); cfg.Monitor.LogFile != want {
		t.Errorf("default LogFile: got %s, want %s", cfg.Monitor.LogFile, want)
	}
	if cfg.Monitor.HistoryDB != "" {
		t.Errorf("default HistoryDB: got %s, want empty", cfg.Monitor.HistoryDB)
	}
	if cfg.Monitor.ProbeAddress != "8.8.8.8:80" {
		t.Errorf("default ProbeAddress: got %s, want 8.8.8.8:80", cfg.Monitor.ProbeAddress)
	}

	modo, err := cfg.Monitor.ParseStateFileMode()
	if err != nil {
		t.Fatalf("parse mode: %v", err)
	}
	if modo != 0o666 {
		t.Errorf("default mode: got %o, want 666", modo)
	}
}

func TestCarregarConfiguracaoApp_Valida(t *testing.T) {
	base := t.TempDir()
	caminho := filepath.Join(base, "monitor.toml")

	content := `
[monitor]
  log_level = "debug"
  state_file = "/var/lib/monitor/machine_info.txt"
  state_file_mode = "0640"
  history_db = "history.db"
  metrics_textfile = "machine_monitor.prom"
`
	if err := os.WriteFile(caminho, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := CarregarConfiguracaoApp(caminho, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Monitor.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s, want debug", cfg.Monitor.LogLevel)
	}
	if cfg.Monitor.StateFile != "/var/lib/monitor/machine_info.txt" {
		t.Errorf("StateFile: got %s", cfg.Monitor.StateFile)
	}
	if want := filepath.Join(base, "history.db"); cfg.Monitor.HistoryDB != want {
		t.Errorf("HistoryDB: got %s, want %s", cfg.Monitor.HistoryDB, want)
	}
	if want := filepath.Join(base, "machine_monitor.prom"); cfg.Monitor.MetricsTextfile != want {
		t.Errorf("MetricsTextfile: got %s, want %s", cfg.Monitor.MetricsTextfile, want)
	}

	modo, err := cfg.Monitor.ParseStateFileMode()
	if err != nil {
		t.Fatalf("parse mode: %v", err)
	}
	if modo != 0o640 {
		t.Errorf("mode: got %o, want 640", modo)
	}
}

func TestCarregarConfiguracaoApp_TOMLInvalido(t *testing.T) {
	base := t.TempDir()
	caminho := filepath.Join(base, "monitor.toml")
	if err := os.WriteFile(caminho, []byte("invalid [[[ toml"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := CarregarConfiguracaoApp(caminho, base); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestParseStateFileMode_Invalido(t *testing.T) {
	cfg := &MonitorConfig{StateFileMode: "rw-rw-rw-"}
	if _, err := cfg.ParseStateFileMode(); err == nil {
		t.Error("expected error for non-octal mode")
	}
}

func TestCarregarConfiguracaoEmail_LinhaLonga(t *testing.T) {
	senha := strings.Repeat("x", 100*1024)
	caminho := escreverConfig(t, "EMAIL_USER=u\nEMAIL_PASSWORD="+senha+"\nEMAIL_TO=a@x.com")

	cfg, err := CarregarConfiguracaoEmail(caminho)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Senha != senha {
		t.Errorf("Senha: got %d bytes, want %d", len(cfg.Senha), len(senha))
	}
	if len(cfg.Destinatarios) != 1 || cfg.Destinatarios[0] != "a@x.com" {
		t.Errorf("last line without newline must be read: %q", cfg.Destinatarios)
	}
}
