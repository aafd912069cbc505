package views

import (
	"fmt"

	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/ui"
	"github.com/pterm/pterm"
)

func uploadStatus(s model.UploadStatus) string {
	switch s {
	case model.UploadCompleted:
		return pterm.Green(string(s))
	case model.UploadFailed:
		return pterm.Red(string(s))
	case model.UploadProcessing:
		return pterm.Yellow(string(s))
	default:
		return string(s)
	}
}

func RenderUploadList(page *model.UploadPage) error {
	if len(page.Sessions) == 0 {
		pterm.Warning.Println("No uploads found")
		return nil
	}

	pterm.DefaultSection.Printf("Uploads (page %d of %d)", page.Pagination.Page, max(page.Pagination.TotalPages, 1))

	tableData := pterm.TableData{
		{"Upload ID", "File", "Gateway", "Status", "Rows", "Progress", "Charged", "Created"},
	}
	for _, s := range page.Sessions {
		tableData = append(tableData, []string{
			s.UploadID,
			s.FileName,
			ui.Gateway(s.PaymentGateway),
			uploadStatus(s.Status),
			fmt.Sprintf("%d/%d", s.ProcessedRows, s.TotalRows),
			fmt.Sprintf("%d%%", s.Percent()),
			fmt.Sprint(s.ChargedCount),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d uploads\n", page.Pagination.Total)
	return nil
}

func RenderUploadSession(s *model.UploadSession) error {
	data := pterm.TableData{
		{"Upload ID", s.UploadID},
		{"File", s.FileName},
		{"Gateway", ui.Gateway(s.PaymentGateway)},
		{"Status", uploadStatus(s.Status)},
		{"Rows", fmt.Sprintf("%d/%d", s.ProcessedRows, s.TotalRows)},
		{"Charged", fmt.Sprint(s.ChargedCount)},
	}
	if s.Error != "" {
		data = append(data, []string{"Error", pterm.Red(s.Error)})
	}
	return pterm.DefaultTable.WithData(data).Render()
}

// UploadProgress drives a progress bar from successive session snapshots.
type UploadProgress struct {
	bar  *pterm.ProgressbarPrinter
	seen int
}

func StartUploadProgress(s *model.UploadSession) (*UploadProgress, error) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(100).
		WithTitle("Processing " + s.FileName).
		WithRemoveWhenDone(false).
		Start()
	if err != nil {
		return nil, err
	}
	p := &UploadProgress{bar: bar}
	p.Update(*s)
	return p, nil
}

// Update advances the bar to the session's percentage. It never moves back.
func (p *UploadProgress) Update(s model.UploadSession) {
	pct := s.Percent()
	if pct > p.seen {
		p.bar.Add(pct - p.seen)
		p.seen = pct
	}
	p.bar.UpdateTitle(fmt.Sprintf("Processing %s (%d/%d rows)", s.FileName, s.ProcessedRows, s.TotalRows))
}

func (p *UploadProgress) Stop() {
	_, _ = p.bar.Stop()
}
