package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"machineMonitor/internal/core/domain"
)

var chavesObrigatorias = []string{"EMAIL_USER", "EMAIL_PASSWORD", "EMAIL_TO"}

// CarregarConfiguracaoEmail lê um arquivo KEY=VALUE e monta a configuração de envio.
// Host e porta têm valores padrão; usuário, senha e destinatários são obrigatórios.
func CarregarConfiguracaoEmail(caminho string) (*domain.ConfigEmail, error) {
	arquivo, err := os.Open(caminho)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfiguracaoAusente, caminho)
		}
		return nil, fmt.Errorf("%w: abrindo '%s': %v", domain.ErrConfiguracaoInvalida, caminho, err)
	}
	defer arquivo.Close()

	valores := map[string]string{
		"EMAIL_HOST": domain.EmailHostPadrao,
		"EMAIL_PORT": strconv.Itoa(domain.EmailPortaPadrao),
	}

	// Linhas de qualquer tamanho.
	leitor := bufio.NewReader(arquivo)
	for {
		linha, err := leitor.ReadString('\n')
		if strings.Contains(linha, "=") {
			chave, valor, _ := strings.Cut(strings.TrimSpace(linha), "=")
			valores[chave] = valor
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: lendo '%s': %v", domain.ErrConfiguracaoInvalida, caminho, err)
		}
	}

	var ausentes []string
	for _, chave := range chavesObrigatorias {
		if strings.TrimSpace(valores[chave]) == "" {
			ausentes = append(ausentes, chave)
		}
	}
	if len(ausentes) > 0 {
		return nil, fmt.Errorf("%w: parâmetros ausentes ou inválidos: %s", domain.ErrConfiguracaoInvalida, strings.Join(ausentes, ", "))
	}

	porta, err := strconv.Atoi(strings.TrimSpace(valores["EMAIL_PORT"]))
	if err != nil {
		return nil, fmt.Errorf("%w: o parâmetro 'EMAIL_PORT' deve ser um número inteiro", domain.ErrConfiguracaoInvalida)
	}

	var destinatarios []string
	for _, email := range strings.Split(valores["EMAIL_TO"], ",") {
		destinatarios = append(destinatarios, strings.TrimSpace(email))
	}

	return &domain.ConfigEmail{
		Host:          valores["EMAIL_HOST"],
		Porta:         porta,
		Usuario:       valores["EMAIL_USER"],
		Senha:         valores["EMAIL_PASSWORD"],
		Destinatarios: destinatarios,
	}, nil
}
