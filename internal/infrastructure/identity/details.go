package identity

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// ColetarDetalhes descreve o sistema operacional para o corpo do e-mail.
// Devolve "" quando o gopsutil não consegue ler as informações.
func ColetarDetalhes(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return ""
	}

	var b strings.Builder
	sistema := info.Platform
	if info.PlatformVersion != "" {
		sistema += " " + info.PlatformVersion
	}
	if sistema == "" {
		sistema = info.OS
	}
	fmt.Fprintf(&b, "Sistema: %s\n", sistema)
	if info.KernelVersion != "" {
		fmt.Fprintf(&b, "Kernel: %s\n", info.KernelVersion)
	}
	fmt.Fprintf(&b, "Arquitetura: %s\n", runtime.GOARCH)
	if info.BootTime > 0 {
		fmt.Fprintf(&b, "Ligada desde: %s\n", time.Unix(int64(info.BootTime), 0).Format("02/01/2006 às 15:04:05"))
	}
	return b.String()
}
