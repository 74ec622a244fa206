package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"machineMonitor/internal/core/domain"
)

const ARQUIVO_ESTADO = "machine_info.txt"

type RepositorioEstado struct {
	Caminho string
	Modo    fs.FileMode
	Log     zerolog.Logger
}

func NovoRepositorioEstado(caminho string, modo fs.FileMode, log zerolog.Logger) *RepositorioEstado {
	if caminho == "" {
		caminho = ARQUIVO_ESTADO
	}
	return &RepositorioEstado{Caminho: caminho, Modo: modo, Log: log}
}

// Ler devolve o conteúdo gravado e se o arquivo existia. Erros de leitura
// são registrados e tratados como arquivo ausente.
func (r *RepositorioEstado) Ler() (string, bool) {
	dados, err := os.ReadFile(r.Caminho)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.Log.Warn().Msgf("Arquivo '%s' não encontrado.", r.Caminho)
		} else {
			r.Log.Error().Err(err).Msgf("Erro ao ler o arquivo '%s'", r.Caminho)
		}
		return "", false
	}
	return string(dados), true
}

// Salvar sobrescreve o arquivo inteiro e em seguida aplica as permissões.
// Falha ao aplicar permissões só é registrada.
func (r *RepositorioEstado) Salvar(conteudo string) error {
	if err := os.WriteFile(r.Caminho, []byte(conteudo), r.Modo); err != nil {
		return fmt.Errorf("%w: salvando '%s': %v", domain.ErrFalhaPersistencia, r.Caminho, err)
	}
	if err := os.Chmod(r.Caminho, r.Modo); err != nil {
		r.Log.Error().Err(err).Msgf("Erro ao definir permissões do arquivo '%s'", r.Caminho)
	}
	return nil
}
