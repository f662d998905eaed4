package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/mapatag/internal/common"
	"github.com/dmitrijs2005/mapatag/internal/export"
	"github.com/dmitrijs2005/mapatag/internal/views"
)

// Export kinds.
const (
	ExportMasterList = "masterlist"
	ExportAudit      = "audit"
)

func (a *App) Audit(ctx context.Context, term string) error {
	if err := a.require(views.Audit); err != nil {
		return err
	}
	a.refresh(ctx)
	logs, err := a.audit.Search(ctx, term)
	if err != nil {
		return err
	}

	a.println("== " + views.Audit.Title() + " ==")
	if len(logs) == 0 {
		a.println("No entries.")
		return nil
	}
	for _, e := range logs {
		a.println("  " + e.String())
	}
	a.printf("%d entr(ies)\n", len(logs))
	return nil
}

// Export writes an XLSX file to the configured export directory. The master
// list needs the registry view and the audit export the audit view. Exports
// are reads and are not audited.
func (a *App) Export(ctx context.Context, kind string) error {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = ExportMasterList
	}

	var (
		data []byte
		err  error
	)
	switch kind {
	case ExportMasterList:
		if err := a.require(views.Registry); err != nil {
			return err
		}
		a.refresh(ctx)
		data, err = export.MasterList(a.state.Seniors)
	case ExportAudit:
		if err := a.require(views.Audit); err != nil {
			return err
		}
		a.refresh(ctx)
		data, err = export.AuditTrail(a.state.Logs)
	default:
		return fmt.Errorf("%w: unknown export %q (use %s or %s)", common.ErrorValidation, kind, ExportMasterList, ExportAudit)
	}
	if err != nil {
		return err
	}

	path := filepath.Join(a.config.ExportDir, export.FileName(kind, a.now()))
	if err := a.writeFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	a.log.Info(ctx, "export written", "kind", kind, "path", path, "bytes", len(data))
	a.printf("Wrote %s\n", path)
	return nil
}
