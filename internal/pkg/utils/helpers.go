package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func CalcularHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GerarDiffTexto compara os textos linha a linha e marca cada linha com
// "- " (removida), "+ " (adicionada) ou "  " (inalterada).
func GerarDiffTexto(textoAntigo, textoNovo string) string {
	dmp := diffmatchpatch.New()
	a, b, linhas := dmp.DiffLinesToChars(textoAntigo, textoNovo)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), linhas)

	var saida strings.Builder
	for _, d := range diffs {
		prefixo := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefixo = "- "
		case diffmatchpatch.DiffInsert:
			prefixo = "+ "
		}
		for _, linha := range strings.SplitAfter(d.Text, "\n") {
			if linha == "" {
				continue
			}
			saida.WriteString(prefixo)
			saida.WriteString(linha)
			if !strings.HasSuffix(linha, "\n") {
				saida.WriteString("\n")
			}
		}
	}
	return saida.String()
}
