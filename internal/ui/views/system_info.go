package views

import (
	"fmt"

	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath      string
	DBPath          string
	DBExists        bool // true = Found, false = Not Found
	LedgerPath      string
	PendingOps      int
	APIBaseURL      string
	CacheBackend    string
	DefaultGateway  string
	DefaultCurrency string
	AppDataDir      string
	LoggedInAs      string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	pending := pterm.Green("none")
	if data.PendingOps > 0 {
		pending = pterm.Yellow(fmt.Sprintf("%d unconfirmed", data.PendingOps))
	}

	session := pterm.Gray("not logged in")
	if data.LoggedInAs != "" {
		session = data.LoggedInAs
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"API Base URL", data.APIBaseURL},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Ledger Path", data.LedgerPath},
		{"Payment Operations", pending},
		{"Cache Backend", data.CacheBackend},
		{"Default Gateway", data.DefaultGateway},
		{"Default Currency", data.DefaultCurrency},
		{"Session", session},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
